// file: internal/server/cache_handlers.go
// version: 1.0.0
// guid: b08d4f62-1a93-4c75-8e20-f549c6d2b317

package server

import (
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/respcache/internal/server/middleware"
)

type invalidateRequest struct {
	Pattern string `json:"pattern" binding:"required"`
	Regex   bool   `json:"regex"`
}

// cacheStats returns a snapshot of store size and lookup counters.
func (s *Server) cacheStats(c *gin.Context) {
	RespondWithOK(c, s.store.Stats())
}

// cacheClear empties the store and resets the hit/miss counters.
func (s *Server) cacheClear(c *gin.Context) {
	s.store.Clear()
	log.Printf("[INFO] cache cleared via admin API [request-id: %s]", middleware.RequestIDFromContext(c))
	RespondWithOK(c, gin.H{"cleared": true})
}

// cacheInvalidate deletes keys matching the supplied pattern. With
// regex=true the pattern is compiled first and a bad expression is a
// 400, not a server error.
func (s *Server) cacheInvalidate(c *gin.Context) {
	var req invalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	var pattern any = req.Pattern
	if req.Regex {
		re, err := regexp.Compile(req.Pattern)
		if err != nil {
			RespondWithValidationError(c, "pattern", "invalid regular expression")
			return
		}
		pattern = re
	}

	removed, err := s.store.InvalidatePattern(pattern)
	if err != nil {
		RespondWithBadRequest(c, err.Error())
		return
	}
	RespondWithOK(c, gin.H{"removed": removed})
}

// demoSlow simulates an expensive handler so cache behavior is
// observable from the outside.
func (s *Server) demoSlow(c *gin.Context) {
	time.Sleep(150 * time.Millisecond)
	c.JSON(http.StatusOK, gin.H{
		"message":     "expensive result",
		"computed_at": time.Now().UTC(),
	})
}
