// file: internal/cache/cache.go
// version: 2.1.0
// guid: 3f6a1c2e-9b4d-4e7a-8c05-d21f7e83ba96

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/jdfalk/respcache/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Default tuning values applied by New when Config fields are zero.
const (
	DefaultTTL           = 5 * time.Minute
	DefaultMaxEntries    = 1000
	DefaultSweepInterval = 60 * time.Second
)

// Config controls TTL, capacity, and background sweep behavior.
type Config struct {
	// DefaultTTL is used by Set and by SetWithTTL when ttl <= 0.
	DefaultTTL time.Duration
	// MaxEntries bounds the store; the earliest-inserted entry is evicted
	// to make room once the bound is reached.
	MaxEntries int
	// SweepInterval is the period of the background staleness sweep
	// started by StartSweeper.
	SweepInterval time.Duration
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
	elem      *list.Element
}

// Store is a bounded in-memory TTL cache safe for concurrent use.
//
// Capacity eviction is FIFO: when full, the earliest-inserted surviving
// entry is removed. Reads do not reorder entries, so this is not LRU and
// is deliberately not called that. Expired entries are treated as absent
// by every read path and removed lazily when observed, plus in bulk by
// the periodic sweep.
type Store[T any] struct {
	mu    sync.Mutex
	items map[string]*entry[T]
	order *list.List // Front = earliest inserted; element values are keys

	defaultTTL time.Duration
	maxEntries int
	sweepEvery time.Duration

	hits        uint64
	misses      uint64
	lastSweepAt time.Time

	// Sweeper goroutine ownership.
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool

	flight singleflight.Group
}

// New constructs a store with no sweeper running. Call StartSweeper to
// begin background staleness sweeps; lazy expiration works either way.
func New[T any](cfg Config) *Store[T] {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	return &Store[T]{
		items:      make(map[string]*entry[T]),
		order:      list.New(),
		defaultTTL: cfg.DefaultTTL,
		maxEntries: cfg.MaxEntries,
		sweepEvery: cfg.SweepInterval,
	}
}

// Set stores a value under key with the default TTL.
func (s *Store[T]) Set(key string, value T) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores a value with a specific TTL (ttl <= 0 means default).
//
// Set always succeeds. If the store is full it first sweeps stale
// entries, then, if still full, evicts the earliest-inserted key.
// Overwriting an existing key replaces value and expiry in place and
// keeps the key's original insertion position.
func (s *Store[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		e.value = value
		e.expiresAt = now.Add(ttl)
		return
	}

	if len(s.items) >= s.maxEntries {
		s.sweepLocked(now)
		if len(s.items) >= s.maxEntries {
			if front := s.order.Front(); front != nil {
				s.deleteLocked(front.Value.(string))
				metrics.IncEviction()
			}
		}
	}

	e := &entry[T]{value: value, expiresAt: now.Add(ttl)}
	e.elem = s.order.PushBack(key)
	s.items[key] = e
	metrics.SetEntries(len(s.items))
}

// Get returns the value for key if present and unexpired. An expired
// entry is deleted the moment it is observed and reported as absent.
// Get updates the hit/miss counters.
func (s *Store[T]) Get(key string) (T, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		s.misses++
		metrics.IncMiss()
		var zero T
		return zero, false
	}
	if !e.expiresAt.After(now) {
		s.deleteLocked(key)
		s.misses++
		metrics.IncMiss()
		metrics.SetEntries(len(s.items))
		var zero T
		return zero, false
	}
	s.hits++
	metrics.IncHit()
	return e.value, true
}

// Has reports whether key is present and unexpired. It shares Get's
// expiry semantics (an observed-stale entry is removed) but never
// touches the hit/miss counters.
func (s *Store[T]) Has(key string) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		return false
	}
	if !e.expiresAt.After(now) {
		s.deleteLocked(key)
		metrics.SetEntries(len(s.items))
		return false
	}
	return true
}

// peek is the internal non-counting read used by GetOrCompute's
// in-flight re-check.
func (s *Store[T]) peek(key string) (T, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !e.expiresAt.After(now) {
		s.deleteLocked(key)
		metrics.SetEntries(len(s.items))
		var zero T
		return zero, false
	}
	return e.value, true
}

// Delete removes a key if present. Deleting a missing key is a no-op.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	s.deleteLocked(key)
	metrics.SetEntries(len(s.items))
	s.mu.Unlock()
}

// Clear empties the store and resets the hit/miss counters. The last
// sweep timestamp is preserved.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	s.items = make(map[string]*entry[T])
	s.order.Init()
	s.hits = 0
	s.misses = 0
	metrics.SetEntries(0)
	s.mu.Unlock()
}

// Sweep removes every expired entry, stamps the last sweep time, and
// returns the number removed. It runs periodically on the sweeper
// goroutine and opportunistically inside SetWithTTL under capacity
// pressure (which does not stamp the sweep time).
func (s *Store[T]) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.sweepLocked(now)
	s.lastSweepAt = now
	return removed
}

// Len returns the number of stored entries, including any that have
// expired but not yet been observed or swept.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns all keys in insertion order. Diagnostic helper.
func (s *Store[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(string))
	}
	return out
}

func (s *Store[T]) deleteLocked(key string) {
	e, ok := s.items[key]
	if !ok {
		return
	}
	delete(s.items, key)
	s.order.Remove(e.elem)
}

func (s *Store[T]) sweepLocked(now time.Time) int {
	removed := 0
	for key, e := range s.items {
		if !e.expiresAt.After(now) {
			delete(s.items, key)
			s.order.Remove(e.elem)
			removed++
		}
	}
	if removed > 0 {
		metrics.AddSweepRemoved(removed)
		metrics.SetEntries(len(s.items))
	}
	return removed
}
