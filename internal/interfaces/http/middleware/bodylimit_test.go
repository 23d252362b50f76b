package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	newRouter := func(limit int64) *gin.Engine {
		r := gin.New()
		r.Use(BodyLimit(limit))
		r.POST("/test", func(c *gin.Context) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false})
				return
			}
			c.JSON(http.StatusOK, gin.H{"size": len(body)})
		})
		return r
	}

	t.Run("allows body under limit", func(t *testing.T) {
		r := newRouter(64)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"rate":"2500"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects declared oversize body", func(t *testing.T) {
		r := newRouter(16)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})

	t.Run("rejects oversize body without content length", func(t *testing.T) {
		r := newRouter(16)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(strings.Repeat("x", 64)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
