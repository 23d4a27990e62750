// file: internal/cache/pattern.go
// version: 1.0.0
// guid: a6e04d28-95b3-47fc-8d12-c5f7b38e6a91

package cache

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jdfalk/respcache/internal/metrics"
)

// ErrInvalidPattern is returned by InvalidatePattern for arguments that
// are neither a substring nor a compiled regular expression.
var ErrInvalidPattern = errors.New("cache: pattern must be a string or *regexp.Regexp")

// InvalidatePattern deletes every key matching pattern and returns the
// number removed. A string pattern matches keys containing it as a
// substring; a *regexp.Regexp matches per the expression. Any other
// argument fails with ErrInvalidPattern. Cost is linear in store size.
func (s *Store[T]) InvalidatePattern(pattern any) (int, error) {
	var match func(key string) bool
	switch p := pattern.(type) {
	case string:
		match = func(key string) bool { return strings.Contains(key, p) }
	case *regexp.Regexp:
		if p == nil {
			return 0, ErrInvalidPattern
		}
		match = p.MatchString
	default:
		return 0, ErrInvalidPattern
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.items {
		if match(key) {
			s.deleteLocked(key)
			removed++
		}
	}
	if removed > 0 {
		metrics.SetEntries(len(s.items))
	}
	return removed, nil
}
