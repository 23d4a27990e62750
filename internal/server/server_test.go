// file: internal/server/server_test.go
// version: 1.1.0
// guid: 6e3a9c50-17df-4b82-94e6-d02f8a5c71b9

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/respcache/internal/cache"
	"github.com/jdfalk/respcache/internal/config"
	"github.com/jdfalk/respcache/internal/server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	store := cache.New[middleware.CachedResponse](cache.Config{})
	return NewServer(store)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer()

	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer()

	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "respcache_")
}

func TestCacheStatsEndpoint(t *testing.T) {
	srv := newTestServer()
	srv.store.Set("/items?page=1", middleware.CachedResponse{Status: 200, Body: []byte(`{}`)})
	srv.store.Get("/items?page=1")
	srv.store.Get("/missing")

	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data cache.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Size)
	assert.Equal(t, uint64(1), body.Data.Hits)
	assert.Equal(t, uint64(1), body.Data.Misses)
	assert.Equal(t, float64(50), body.Data.HitRate)
}

func TestCacheClearEndpoint(t *testing.T) {
	srv := newTestServer()
	srv.store.Set("key", middleware.CachedResponse{Status: 200, Body: []byte(`{}`)})

	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, srv.store.Len())
}

func TestCacheInvalidateEndpoint(t *testing.T) {
	srv := newTestServer()
	srv.store.Set("user:1", middleware.CachedResponse{Status: 200})
	srv.store.Set("user:2", middleware.CachedResponse{Status: 200})
	srv.store.Set("order:1", middleware.CachedResponse{Status: 200})

	payload := bytes.NewBufferString(`{"pattern":"user:"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", payload)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"removed":2`)
	assert.Equal(t, 1, srv.store.Len())
	assert.True(t, srv.store.Has("order:1"))
}

func TestCacheInvalidateEndpoint_Regex(t *testing.T) {
	srv := newTestServer()
	srv.store.Set("/items?page=1", middleware.CachedResponse{Status: 200})
	srv.store.Set("/users?page=1", middleware.CachedResponse{Status: 200})

	payload := bytes.NewBufferString(`{"pattern":"^/items","regex":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", payload)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, srv.store.Has("/items?page=1"))
	assert.True(t, srv.store.Has("/users?page=1"))
}

func TestCacheInvalidateEndpoint_BadRequests(t *testing.T) {
	srv := newTestServer()

	// Missing pattern.
	req := httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Broken regex.
	req = httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", bytes.NewBufferString(`{"pattern":"([","regex":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
}

func TestCacheAdminAPIToken(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig.AdminUsername = "admin"
	config.AppConfig.AdminPassword = "s3cret"
	config.AppConfig.APIToken = "ops-token"
	defer func() { config.AppConfig = prev }()

	srv := newTestServer()

	// No credentials at all.
	resp := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// The static token grants admin access without basic credentials.
	req := httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
	req.Header.Set("Authorization", "Bearer ops-token")
	resp = httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	// A wrong token falls through to basic auth and is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp = httptest.NewRecorder()
	srv.Router().ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDemoRouteIsCached(t *testing.T) {
	srv := newTestServer()

	start := time.Now()
	resp1 := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp1, httptest.NewRequest(http.MethodGet, "/api/demo/slow", nil))
	require.Equal(t, http.StatusOK, resp1.Code)
	firstDuration := time.Since(start)

	start = time.Now()
	resp2 := httptest.NewRecorder()
	srv.Router().ServeHTTP(resp2, httptest.NewRequest(http.MethodGet, "/api/demo/slow", nil))
	require.Equal(t, http.StatusOK, resp2.Code)
	secondDuration := time.Since(start)

	assert.Equal(t, resp1.Body.String(), resp2.Body.String())
	assert.Less(t, secondDuration, firstDuration, "cached response should skip the slow handler")
}
