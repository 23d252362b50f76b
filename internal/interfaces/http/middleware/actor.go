package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tms/backend/internal/infrastructure/logger"
)

// Context keys and headers for actor attribution
const (
	ActorUIDKey        = "actor_uid"
	ActorRoleKey       = "actor_role"
	ActorUIDHeaderKey  = "X-Actor-UID"
	ActorRoleHeaderKey = "X-Actor-Role"

	// DefaultActorRole is assumed when the caller does not identify a role
	DefaultActorRole = "dispatcher"
)

// ActorMiddleware extracts the acting user from the X-Actor-UID and
// X-Actor-Role headers. Every mutation is attributed to an actor in the
// audit trail, so writes without a UID are rejected at the handler level
// rather than here; reads are allowed through anonymously.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader(ActorUIDHeaderKey)
		role := c.GetHeader(ActorRoleHeaderKey)
		if role == "" {
			role = DefaultActorRole
		}

		if uid != "" {
			c.Set(ActorUIDKey, uid)
			c.Set(ActorRoleKey, role)

			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithActorUID(ctx, log, uid)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// GetActorUID retrieves the actor UID from gin.Context
func GetActorUID(c *gin.Context) string {
	if uid, exists := c.Get(ActorUIDKey); exists {
		if s, ok := uid.(string); ok {
			return s
		}
	}
	return ""
}

// GetActorRole retrieves the actor role from gin.Context
func GetActorRole(c *gin.Context) string {
	if role, exists := c.Get(ActorRoleKey); exists {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}
