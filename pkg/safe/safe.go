// Package safe wraps a TopKElements tracker with a read-write mutex for
// callers who want to share a single tracker across goroutines. It does
// not give the tracker internal concurrency: it serializes access, the
// exact pattern spec.md §5 requires of multi-goroutine callers
// ("callers serialize"). Adapted from samber/hot's pkg/safe, which does
// the same for its InMemoryCache implementations.
package safe

import (
	"sync"

	"github.com/samber/heavyhitters/pkg/topk"
)

// SafeTracker wraps a *topk.TopKElements with a sync.RWMutex. Mutating
// operations take the write lock; read-only queries take the read
// lock, allowing concurrent readers to overlap with each other (but
// never with a writer).
type SafeTracker[K comparable] struct {
	inner *topk.TopKElements[K]
	mu    sync.RWMutex
}

// NewSafeTracker wraps an existing TopKElements tracker for concurrent
// use. The wrapped tracker must not be mutated directly afterward.
func NewSafeTracker[K comparable](inner *topk.TopKElements[K]) *SafeTracker[K] {
	return &SafeTracker[K]{inner: inner}
}

// Increment applies a positive delta under an exclusive write lock.
func (s *SafeTracker[K]) Increment(key K, delta uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Increment(key, delta)
}

// Decrement applies a negative delta under an exclusive write lock.
func (s *SafeTracker[K]) Decrement(key K, delta uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Decrement(key, delta)
}

// Remove evicts key under an exclusive write lock.
func (s *SafeTracker[K]) Remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Remove(key)
}

// Estimate reads the current estimate under a shared read lock.
func (s *SafeTracker[K]) Estimate(key K) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Estimate(key)
}

// Size reads the current tracked-set size under a shared read lock.
func (s *SafeTracker[K]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Size()
}

// K returns the configured maximum tracked-set size. Immutable after
// construction, so no lock is needed.
func (s *SafeTracker[K]) K() int {
	return s.inner.K()
}

// SortedTopKeys reads a descending-by-count snapshot under a shared
// read lock.
func (s *SafeTracker[K]) SortedTopKeys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SortedTopKeys()
}
