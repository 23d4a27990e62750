// file: internal/cache/compute.go
// version: 1.0.0
// guid: 52c7d9e3-0a48-4b1f-8e6d-37f2a95c14b8

package cache

import (
	"context"
	"time"
)

// Producer computes a value for a missing key.
type Producer[T any] func(ctx context.Context) (T, error)

// GetOrCompute returns the cached value for key, or invokes producer,
// stores the result with the default TTL, and returns it.
func (s *Store[T]) GetOrCompute(ctx context.Context, key string, producer Producer[T]) (T, error) {
	return s.GetOrComputeTTL(ctx, key, 0, producer)
}

// GetOrComputeTTL is GetOrCompute with an explicit TTL for the stored
// result (ttl <= 0 means default).
//
// Concurrent callers for the same missing key are coalesced through
// singleflight: one producer invocation runs and every caller receives
// its result. A producer error propagates unmodified to all waiting
// callers and nothing is stored for the key.
func (s *Store[T]) GetOrComputeTTL(ctx context.Context, key string, ttl time.Duration, producer Producer[T]) (T, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		// A racing caller may have stored the key between our miss and
		// winning the flight; peek avoids double-counting the lookup.
		if v, ok := s.peek(key); ok {
			return v, nil
		}
		result, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		s.SetWithTTL(key, result, ttl)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
