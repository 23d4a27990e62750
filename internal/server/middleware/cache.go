// file: internal/server/middleware/cache.go
// version: 1.0.0
// guid: 6a0c8e24-f1b7-4d59-93a6-e82d4b07c615

package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/respcache/internal/cache"
)

// CachedResponse is the payload stored per cache key: the status code
// and serialized body of a successful downstream response.
type CachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// ResponseStore is the store type the response-cache adapters operate on.
type ResponseStore = cache.Store[CachedResponse]

// Predicate decides whether a request is eligible for response caching.
type Predicate func(c *gin.Context) bool

// ResponseCache returns middleware that serves eligible GET requests
// from the store and populates it from successful responses.
//
// Non-GET requests and authenticated requests bypass the cache
// entirely. The cache key is the literal path plus raw query string;
// no query normalization is performed, so the same parameters in a
// different order produce a distinct key.
func ResponseCache(store *ResponseStore, ttl time.Duration) gin.HandlerFunc {
	return ResponseCacheIf(store, ttl, func(c *gin.Context) bool {
		if c.Request.Method != http.MethodGet {
			return false
		}
		return !IsAuthenticated(c)
	})
}

// ResponseCacheIf is ResponseCache with caller-supplied eligibility,
// enabling per-route policies.
func ResponseCacheIf(store *ResponseStore, ttl time.Duration, eligible Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !eligible(c) {
			c.Next()
			return
		}

		key := CacheKey(c.Request)

		if resp, ok := store.Get(key); ok {
			c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
			c.Abort()
			return
		}

		capture := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := capture.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices && capture.body.Len() > 0 {
			body := append([]byte(nil), capture.body.Bytes()...)
			store.SetWithTTL(key, CachedResponse{Status: status, Body: body}, ttl)
		}
	}
}

// CacheKey builds the store key for a request: path plus the raw,
// unnormalized query string.
func CacheKey(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// bodyCaptureWriter tees the response body so it can be stored after
// the handler chain completes.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
