package topk

import "container/heap"

// entry is one tracked heavy-hitter candidate. seq records insertion
// order, used only to break ties deterministically (spec.md §9, open
// question: tie-break rule is implementer's choice; this module picks
// insertion order).
type entry[K comparable] struct {
	key   K
	count int64
	seq   uint64
}

// indexedMinHeap is a binary min-heap ordered by count (ties broken by
// the older entry sorting first) that also maintains a key -> slice
// index back-map, giving O(log k) decrease-key and removal-by-key on
// top of container/heap's O(log k) push/pop. This is option (b) from
// spec.md §9: k is small, so a back-map-augmented heap beats a
// balanced ordered map for this workload.
type indexedMinHeap[K comparable] struct {
	items []*entry[K]
	index map[K]int
}

func newIndexedMinHeap[K comparable](capacity int) *indexedMinHeap[K] {
	return &indexedMinHeap[K]{
		items: make([]*entry[K], 0, capacity),
		index: make(map[K]int, capacity),
	}
}

func (h *indexedMinHeap[K]) Len() int { return len(h.items) }

func (h *indexedMinHeap[K]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.count != b.count {
		return a.count < b.count
	}
	return a.seq < b.seq
}

func (h *indexedMinHeap[K]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].key] = i
	h.index[h.items[j].key] = j
}

func (h *indexedMinHeap[K]) Push(x any) {
	e := x.(*entry[K])
	h.index[e.key] = len(h.items)
	h.items = append(h.items, e)
}

func (h *indexedMinHeap[K]) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	delete(h.index, e.key)
	return e
}

var _ heap.Interface = (*indexedMinHeap[string])(nil)

// peekMin returns the current minimum entry without removing it.
// Callers must not retain the pointer across a mutation.
func (h *indexedMinHeap[K]) peekMin() (*entry[K], bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[0], true
}

// insert adds a brand-new key to the heap.
func (h *indexedMinHeap[K]) insert(e *entry[K]) {
	heap.Push(h, e)
}

// updateCount changes the count for an already-tracked key and fixes
// its heap position. Panics if the key is not present; callers check
// membership first.
func (h *indexedMinHeap[K]) updateCount(key K, count int64) {
	idx, ok := h.index[key]
	if !ok {
		panic("topk: updateCount on an untracked key")
	}
	h.items[idx].count = count
	heap.Fix(h, idx)
}

// removeKey unconditionally evicts a tracked key from the heap.
func (h *indexedMinHeap[K]) removeKey(key K) {
	idx, ok := h.index[key]
	if !ok {
		return
	}
	heap.Remove(h, idx)
}

func (h *indexedMinHeap[K]) has(key K) bool {
	_, ok := h.index[key]
	return ok
}
