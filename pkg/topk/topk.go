// Package topk maintains a bounded set of at most k candidate heavy
// hitters, backed internally by a Count-Min Sketch. Every update flows
// through the sketch first; only then does the tracker promote,
// demote, or evict an entry, per spec.md §4.3.
//
// TopKElements is single-writer, single-reader: all operations are
// O(depth + log k) and none of them block or allocate goroutines.
package topk

import (
	"sort"

	"github.com/samber/heavyhitters/pkg/sketch"
)

// EvictionCallback is invoked, synchronously, whenever a key leaves the
// tracked set: on demotion by a stronger candidate, on its count
// falling to zero or below, or on an explicit Remove. The sketch's own
// counters for that key are never touched by eviction.
type EvictionCallback[K comparable] func(key K, lastCount int64)

// Option configures a TopKElements at construction time.
type Option[K comparable] func(*TopKElements[K])

// WithEvictionCallback registers a callback fired on every eviction.
func WithEvictionCallback[K comparable](fn EvictionCallback[K]) Option[K] {
	return func(t *TopKElements[K]) { t.onEviction = fn }
}

// TopKElements tracks the k keys currently believed to be the most
// frequent in the stream fed to its sketch. It owns the sketch
// exclusively (spec.md §9: no reference-counted sharing) — if a
// separate estimator needs the same counters, it should be handed a
// borrowed *sketch.CountMinSketch, not this tracker.
type TopKElements[K comparable] struct {
	k      int
	sketch *sketch.CountMinSketch[K]

	members map[K]int64
	heap    *indexedMinHeap[K]
	nextSeq uint64

	onEviction EvictionCallback[K]
}

// New builds a TopKElements tracking at most k keys, backed by the
// given sketch, which the tracker now owns exclusively.
func New[K comparable](k int, backingSketch *sketch.CountMinSketch[K], opts ...Option[K]) (*TopKElements[K], error) {
	if k <= 0 || backingSketch == nil {
		return nil, ErrInvalidShape
	}

	t := &TopKElements[K]{
		k:       k,
		sketch:  backingSketch,
		members: make(map[K]int64, k),
		heap:    newIndexedMinHeap[K](k),
	}
	for _, apply := range opts {
		apply(t)
	}
	return t, nil
}

// Increment feeds a positive delta through the sketch and then applies
// the promotion/update rule from spec.md §4.3.
func (t *TopKElements[K]) Increment(key K, delta uint64) {
	t.sketch.Update(key, int64(delta))
	est := t.sketch.Estimate(key)

	if est <= 0 {
		t.evictIfTracked(key, est)
		return
	}

	if _, tracked := t.members[key]; tracked {
		t.members[key] = est
		t.heap.updateCount(key, est)
		return
	}

	if len(t.members) < t.k {
		t.promote(key, est)
		return
	}

	min, ok := t.heap.peekMin()
	if ok && est > min.count {
		t.evict(min.key, min.count)
		t.promote(key, est)
	}
	// Otherwise est does not beat the current weakest member: dropped.
}

// Decrement feeds a negative delta through the sketch. A key that was
// never tracked is never promoted here, even though its sketch cells
// have just been mutated — this is the source-faithful behavior
// documented in spec.md §4.3 and §9.
func (t *TopKElements[K]) Decrement(key K, delta uint64) {
	t.sketch.Update(key, -int64(delta))

	if _, tracked := t.members[key]; !tracked {
		return
	}

	est := t.sketch.Estimate(key)
	if est <= 0 {
		t.evict(key, est)
		return
	}

	t.members[key] = est
	t.heap.updateCount(key, est)
}

// Remove unconditionally evicts key from the tracked set. The sketch's
// counters for key are left untouched: other keys may share those
// cells, and zeroing them would corrupt their estimates (spec.md §9).
func (t *TopKElements[K]) Remove(key K) {
	count, tracked := t.members[key]
	if !tracked {
		return
	}
	t.evict(key, count)
}

// Estimate returns the tracked count for key if it is a member;
// otherwise it falls through to the raw sketch estimate, which may be
// zero or negative (spec.md §9, open question resolved: raw value, no
// clamping).
func (t *TopKElements[K]) Estimate(key K) int64 {
	if count, tracked := t.members[key]; tracked {
		return count
	}
	return t.sketch.Estimate(key)
}

// Size returns the number of currently tracked keys.
func (t *TopKElements[K]) Size() int { return len(t.members) }

// Sketch returns a borrowed reference to the tracker's backing sketch.
// Per spec.md §9, the tracker owns the sketch exclusively; callers that
// need to read it (e.g. pkg/federated, merging several trackers) must
// not mutate it through this reference outside of a CloneEmpty target.
func (t *TopKElements[K]) Sketch() *sketch.CountMinSketch[K] { return t.sketch }

// K returns the configured maximum number of tracked keys.
func (t *TopKElements[K]) K() int { return t.k }

// SortedTopKeys returns a snapshot of tracked keys ordered by
// descending stored count, ties broken by insertion order (the older
// entry sorts first — spec.md §9 leaves this implementer's choice).
func (t *TopKElements[K]) SortedTopKeys() []K {
	entries := make([]*entry[K], len(t.heap.items))
	copy(entries, t.heap.items)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].seq < entries[j].seq
	})

	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

func (t *TopKElements[K]) promote(key K, count int64) {
	t.members[key] = count
	t.heap.insert(&entry[K]{key: key, count: count, seq: t.nextSeq})
	t.nextSeq++
}

func (t *TopKElements[K]) evictIfTracked(key K, count int64) {
	if _, tracked := t.members[key]; tracked {
		t.evict(key, count)
	}
}

func (t *TopKElements[K]) evict(key K, lastCount int64) {
	delete(t.members, key)
	t.heap.removeKey(key)
	if t.onEviction != nil {
		t.onEviction(key, lastCount)
	}
}
