// file: internal/cache/stats.go
// version: 1.0.0
// guid: e81f3b5a-7c09-4f62-a4d8-19b6e25c0d47

package cache

import "time"

// Stats is a point-in-time snapshot of store state and lookup counters.
type Stats struct {
	Size        int       `json:"size"`
	MaxEntries  int       `json:"max_entries"`
	Hits        uint64    `json:"hits"`
	Misses      uint64    `json:"misses"`
	HitRate     float64   `json:"hit_rate"`
	LastSweepAt time.Time `json:"last_sweep_at"`
}

// Stats returns a snapshot. HitRate is a percentage, and exactly 0 when
// no lookups have occurred. Only Get updates the counters; Has, Set,
// Delete, and the sweep never do.
func (s *Store[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Size:        len(s.items),
		MaxEntries:  s.maxEntries,
		Hits:        s.hits,
		Misses:      s.misses,
		LastSweepAt: s.lastSweepAt,
	}
	if total := s.hits + s.misses; total > 0 {
		st.HitRate = float64(s.hits) / float64(total) * 100
	}
	return st
}
