// file: internal/server/server.go
// version: 2.1.0
// guid: 5e1d9c73-0b46-4a28-bf95-d67a03c84e12

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/respcache/internal/config"
	"github.com/jdfalk/respcache/internal/metrics"
	"github.com/jdfalk/respcache/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	store      *middleware.ResponseStore
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns the server configuration derived from
// the application config.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         config.AppConfig.Port,
		Host:         config.AppConfig.Host,
		ReadTimeout:  config.AppConfig.ReadTimeout,
		WriteTimeout: config.AppConfig.WriteTimeout,
		IdleTimeout:  config.AppConfig.IdleTimeout,
	}
}

// NewServer creates a new server instance around an existing response
// store. The caller owns the store lifecycle (sweeper start/stop).
func NewServer(store *middleware.ResponseStore) *Server {
	router := gin.New()

	// Set up middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.AuthMarker())
	if config.AppConfig.RateLimitPerMinute > 0 {
		limiter := middleware.NewIPRateLimiter(
			config.AppConfig.RateLimitPerMinute,
			config.AppConfig.RateLimitBurst,
			config.AppConfig.RateLimitIdleTTL,
		)
		router.Use(limiter.Middleware())
	}

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router: router,
		store:  store,
	}

	server.setupRoutes()

	return server
}

// Router exposes the underlying engine, mainly for tests and for hosts
// that mount additional routes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	s.router.GET("/api/health", s.healthCheck)

	// Cache administration
	admin := s.router.Group("/api/cache")
	admin.Use(middleware.APITokenAuth(config.AppConfig.APIToken))
	admin.Use(middleware.BasicAuth(
		config.AppConfig.AdminUsername,
		config.AppConfig.AdminPassword,
		config.AppConfig.AdminPasswordHash,
	))
	{
		admin.GET("/stats", s.cacheStats)
		admin.POST("/clear", s.cacheClear)
		admin.POST("/invalidate", s.cacheInvalidate)
	}

	// Demo routes behind the response cache; these exist so the adapter
	// is exercised end to end without an embedding application.
	demo := s.router.Group("/api/demo")
	demo.Use(middleware.ResponseCache(s.store, config.AppConfig.ResponseTTL))
	{
		demo.GET("/slow", s.demoSlow)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
