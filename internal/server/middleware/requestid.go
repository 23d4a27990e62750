// file: internal/server/middleware/requestid.go
// version: 1.0.0
// guid: f27e9b04-5c18-4d63-8a97-b30c4e51d286

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
)

// RequestIDHeader is the header carrying the per-request identifier.
const RequestIDHeader = "X-Request-ID"

const contextRequestIDKey = "request_id"

// RequestID assigns a ULID to each request lacking one and echoes it in
// the response headers so cache hits and misses can be correlated in logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the identifier assigned by RequestID.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(contextRequestIDKey)
}
