// file: internal/server/middleware/auth.go
// version: 1.2.0
// guid: 2b84f6d0-3e19-4a7c-95b8-c07d61e4f823

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the auth session cookie used by API clients.
	SessionCookieName = "session_id"
	contextAuthKey    = "auth_authenticated"
	contextTokenKey   = "auth_api_token"
)

// SessionTokenFromRequest extracts the session token from Bearer auth or cookie.
func SessionTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		token := strings.TrimSpace(authHeader[len("Bearer "):])
		if token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// MarkAuthenticated flags the request so downstream middleware (the
// response cache in particular) treats it as authenticated.
func MarkAuthenticated(c *gin.Context) {
	if c != nil {
		c.Set(contextAuthKey, true)
	}
}

// IsAuthenticated reports whether the request carries credentials: an
// upstream middleware marked it, or it presents a session token or
// basic-auth header. Authenticated requests are never cached.
func IsAuthenticated(c *gin.Context) bool {
	if c == nil {
		return false
	}
	if value, ok := c.Get(contextAuthKey); ok {
		if flagged, ok := value.(bool); ok && flagged {
			return true
		}
	}
	if c.Request == nil {
		return false
	}
	if SessionTokenFromRequest(c.Request) != "" {
		return true
	}
	if _, _, ok := c.Request.BasicAuth(); ok {
		return true
	}
	return false
}

// APITokenAuth accepts a static bearer token as an alternative
// credential for the routes it guards. An empty token disables the
// check. On a match the request is marked authenticated and a later
// BasicAuth middleware lets it through; a missing or wrong token falls
// through so basic auth can still be attempted.
func APITokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" {
			presented := SessionTokenFromRequest(c.Request)
			if presented != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1 {
				MarkAuthenticated(c)
				c.Set(contextTokenKey, true)
			}
		}
		c.Next()
	}
}

// TokenAuthenticated reports whether an upstream APITokenAuth
// middleware validated the request's bearer token.
func TokenAuthenticated(c *gin.Context) bool {
	if c == nil {
		return false
	}
	value, ok := c.Get(contextTokenKey)
	if !ok {
		return false
	}
	flagged, ok := value.(bool)
	return ok && flagged
}

// AuthMarker marks requests that present credentials. It performs no
// validation itself; the hosting application remains responsible for
// enforcing auth. Its only job is keeping such requests out of the cache.
func AuthMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionTokenFromRequest(c.Request) != "" {
			MarkAuthenticated(c)
		}
		c.Next()
	}
}
