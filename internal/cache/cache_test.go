// file: internal/cache/cache_test.go
// version: 2.1.0
// guid: 9a4f2c81-6e5d-4b30-a8c7-f15e93d06b42

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	s := New[string](Config{})
	s.Set("k", "v")
	v, ok := s.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
}

func TestGetMissing(t *testing.T) {
	s := New[int](Config{})
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected absent key")
	}
	if s.Has("nope") {
		t.Fatal("expected Has false for absent key")
	}
}

func TestExpiry(t *testing.T) {
	s := New[int](Config{})
	s.SetWithTTL("k", 42, 10*time.Millisecond)
	if !s.Has("k") {
		t.Fatal("expected fresh entry present")
	}

	time.Sleep(20 * time.Millisecond)

	before := s.Stats()
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	after := s.Stats()
	if after.Misses != before.Misses+1 {
		t.Fatalf("expected miss counter to increment, got %d -> %d", before.Misses, after.Misses)
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired entry removed on observation, len=%d", s.Len())
	}
}

func TestHasDoesNotCount(t *testing.T) {
	s := New[string](Config{})
	s.Set("a", "1")
	s.Has("a")
	s.Has("missing")
	st := s.Stats()
	if st.Hits != 0 || st.Misses != 0 {
		t.Fatalf("Has must not touch counters, got hits=%d misses=%d", st.Hits, st.Misses)
	}
}

func TestHasGetAgree(t *testing.T) {
	s := New[int](Config{})
	s.SetWithTTL("x", 1, 15*time.Millisecond)
	for i := 0; i < 2; i++ {
		has := s.Has("x")
		_, got := s.Get("x")
		if has != got {
			t.Fatalf("Has=%v disagrees with Get=%v", has, got)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestCapacityEvictionFIFO(t *testing.T) {
	s := New[int](Config{MaxEntries: 2})
	s.Set("A", 1)
	s.Set("B", 2)
	s.Set("C", 3)

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries after eviction, got %d", s.Len())
	}
	if s.Has("A") {
		t.Fatal("expected A evicted as earliest-inserted")
	}
	if v, ok := s.Get("B"); !ok || v != 2 {
		t.Fatalf("expected B to survive, got %d ok=%v", v, ok)
	}
	if v, ok := s.Get("C"); !ok || v != 3 {
		t.Fatalf("expected C to survive, got %d ok=%v", v, ok)
	}
}

func TestCapacityPrefersStaleRemoval(t *testing.T) {
	s := New[int](Config{MaxEntries: 2})
	s.SetWithTTL("stale", 1, 5*time.Millisecond)
	s.Set("live", 2)

	time.Sleep(10 * time.Millisecond)

	// The capacity path sweeps stale entries before touching live ones.
	s.Set("new", 3)
	if !s.Has("live") {
		t.Fatal("expected live entry to survive capacity pressure")
	}
	if !s.Has("new") {
		t.Fatal("expected new entry to be stored")
	}
	if s.Has("stale") {
		t.Fatal("expected stale entry gone")
	}
}

func TestSizeNeverExceedsMax(t *testing.T) {
	s := New[int](Config{MaxEntries: 3})
	for i := 0; i < 20; i++ {
		s.Set(string(rune('a'+i)), i)
		if s.Len() > 3 {
			t.Fatalf("store size %d exceeds max 3 after set", s.Len())
		}
	}
}

func TestOverwriteKeepsInsertionOrder(t *testing.T) {
	s := New[int](Config{MaxEntries: 2})
	s.Set("A", 1)
	s.Set("B", 2)
	s.Set("A", 10) // overwrite, A keeps its front position

	s.Set("C", 3)
	if s.Has("A") {
		t.Fatal("expected A evicted despite the recent overwrite")
	}
	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "B" || keys[1] != "C" {
		t.Fatalf("unexpected key order %v", keys)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := New[string](Config{})
	s.Set("a", "1")
	s.Delete("a")
	s.Delete("a")
	s.Delete("never-existed")
	if s.Has("a") {
		t.Fatal("expected a deleted")
	}
}

func TestClearResetsCounters(t *testing.T) {
	s := New[int](Config{})
	s.Set("a", 1)
	s.Get("a")
	s.Get("missing")
	s.Sweep()

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("unexpected counters before clear: %+v", st)
	}
	sweepAt := st.LastSweepAt

	s.Clear()
	st = s.Stats()
	if st.Size != 0 || st.Hits != 0 || st.Misses != 0 {
		t.Fatalf("expected clear to reset store and counters: %+v", st)
	}
	if !st.LastSweepAt.Equal(sweepAt) {
		t.Fatal("clear must not reset the last sweep timestamp")
	}
}

func TestPeekRemovesExpiredEntry(t *testing.T) {
	s := New[string](Config{})
	s.SetWithTTL("k", "v", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)

	if _, ok := s.peek("k"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	if got := s.Len(); got != 0 {
		t.Fatalf("expected expired entry removed on observation, Len() = %d", got)
	}
	st := s.Stats()
	if st.Hits != 0 || st.Misses != 0 {
		t.Fatalf("peek must not count lookups: %+v", st)
	}
}
