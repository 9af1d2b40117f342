package auth

import (
	"net/http"

	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// HasRole reports whether the current identity holds one of roles.
func HasRole(c *gin.Context, roles ...models.Role) bool {
	id, ok := CurrentIdentity(c)
	if !ok {
		return false
	}
	for _, r := range roles {
		if models.Role(id.Role) == r {
			return true
		}
	}
	return false
}

// RequireRole creates a gin middleware that rejects identities outside roles.
// It must be used AFTER AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := CurrentIdentity(c); !exists {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		if !HasRole(c, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
