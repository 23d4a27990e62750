// file: internal/cache/maintenance.go
// version: 1.1.0
// guid: c94e5a07-2f81-4d36-9ab2-64e0c17f8d25

package cache

import (
	"context"
	"log"
	"time"

	"github.com/jdfalk/respcache/internal/metrics"
)

// StartSweeper launches the background sweep goroutine. It is a no-op
// if the sweeper is already running. The store owns the goroutine; call
// Stop to shut it down.
func (s *Store[T]) StartSweeper() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true
	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop halts the background sweeper and waits for it to exit. Safe to
// call multiple times, and safe to call without a prior StartSweeper.
// The store remains usable afterward; only the sweeper is stopped.
func (s *Store[T]) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	// Cancel outside the lock so the loop can finish a sweep in progress.
	cancel()
	s.wg.Wait()
}

// sweepLoop periodically removes expired entries. A ticker-driven full
// scan is O(n) but keeps the sweeper easy to reason about and avoids
// per-entry timers.
func (s *Store[T]) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			removed := s.Sweep()
			metrics.ObserveSweepDuration(time.Since(start))
			if removed > 0 {
				log.Printf("[DEBUG] cache sweep removed %d expired entries", removed)
			}
		}
	}
}
