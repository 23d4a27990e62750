// file: internal/server/middleware/basicauth.go
// version: 1.2.0
// guid: d13a7f58-40c6-4e92-b8d1-5a29e06c83f7

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth returns a Gin middleware that enforces HTTP Basic
// Authentication on the routes it is attached to. An empty username
// disables enforcement, and requests already validated by APITokenAuth
// pass without basic credentials. When passwordHash is set it is
// compared with bcrypt and takes precedence over the plaintext
// password.
func BasicAuth(username, password, passwordHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username == "" || TokenAuthenticated(c) {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="respcache admin"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1

		passMatch := false
		if passwordHash != "" {
			passMatch = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) == nil
		} else {
			passMatch = subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		}

		if !userMatch || !passMatch {
			c.Header("WWW-Authenticate", `Basic realm="respcache admin"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		MarkAuthenticated(c)
		c.Next()
	}
}
