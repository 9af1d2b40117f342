package auth

import (
	"net/http"
	"strings"
	"time"

	"campaign/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Cookie describes the session cookie.
type Cookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// SetSessionCookie stores token in an HttpOnly, SameSite=Lax cookie.
func SetSessionCookie(c *gin.Context, cookie Cookie, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, int(cookie.TTL.Seconds()), "/", "", cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie. Clearing an absent cookie is fine.
func ClearSessionCookie(c *gin.Context, cookie Cookie) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

// tokenFrom reads the session cookie, falling back to a Bearer header.
func tokenFrom(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CurrentIdentity returns the identity set by AuthMiddleware or OptionalAuthMiddleware.
func CurrentIdentity(c *gin.Context) (*jwt.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*jwt.Identity)
	return id, ok
}
