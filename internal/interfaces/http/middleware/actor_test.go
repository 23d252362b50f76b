package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestActorMiddleware(t *testing.T) {
	newRouter := func() (*gin.Engine, *string, *string) {
		var uid, role string
		r := gin.New()
		r.Use(ActorMiddleware())
		r.GET("/test", func(c *gin.Context) {
			uid = GetActorUID(c)
			role = GetActorRole(c)
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r, &uid, &role
	}

	t.Run("extracts actor headers", func(t *testing.T) {
		r, uid, role := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(ActorUIDHeaderKey, "user-42")
		req.Header.Set(ActorRoleHeaderKey, "admin")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "user-42", *uid)
		assert.Equal(t, "admin", *role)
	})

	t.Run("defaults role when absent", func(t *testing.T) {
		r, uid, role := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(ActorUIDHeaderKey, "user-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "user-42", *uid)
		assert.Equal(t, DefaultActorRole, *role)
	})

	t.Run("anonymous request passes through", func(t *testing.T) {
		r, uid, role := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, *uid)
		assert.Empty(t, *role)
	})
}
