// file: internal/cache/doc.go
// version: 1.0.0
// guid: 7d2b8f41-6c3a-4a95-b1e8-0f4c9d62a573

// Package cache implements a bounded, in-process TTL cache for HTTP
// response payloads and other computed values.
//
// The store pairs a map with an insertion-order list: lookups are O(1)
// and capacity eviction removes the earliest-inserted key (FIFO, not
// LRU). Expired entries are removed lazily on read and in bulk by a
// periodic sweep whose goroutine the store owns; call StartSweeper and
// Stop to manage its lifecycle. GetOrCompute coalesces concurrent
// producers for the same key through singleflight.
package cache
