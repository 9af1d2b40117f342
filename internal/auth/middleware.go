package auth

import (
	"errors"
	"net/http"

	"campaign/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid session. A missing token is 401, a bad or
// expired one is 403.
func AuthMiddleware(sessions *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.Verify(tokenFrom(c, cookieName))
		if err != nil {
			if errors.Is(err, jwt.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the identity if a valid token is present,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(sessions *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := sessions.Verify(tokenFrom(c, cookieName)); err == nil {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}
