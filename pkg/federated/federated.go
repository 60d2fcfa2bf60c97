// Package federated implements the multi-writer pattern spec.md §5
// documents but does not mandate: per-thread (or per-shard) trackers,
// each single-writer, periodically merged by cell-wise adding their
// sketches and re-ranking the union of their candidate top-K sets
// against the merged sketch. Adapted from samber/hot's sharded
// package, whose Hasher[K]/computeHash this package keeps for callers
// who want to fan writes for one key out to the same shard every time.
package federated

import (
	"errors"
	"sort"

	"github.com/samber/heavyhitters/pkg/topk"
)

// ErrNoShards is returned by Merge when the federation has no shards.
var ErrNoShards = errors.New("federated: no shards to merge")

// Hasher produces a deterministic, uniformly distributed hash of a key.
// Used only to route a single writer's keys across shards; multiple
// independent writers typically instead call Shard(workerIndex)
// directly and never need a Hasher at all.
type Hasher[K any] func(key K) uint64

func (fn Hasher[K]) computeShard(key K, shards int) int {
	return int(fn(key) % uint64(shards))
}

// Federated holds N independent TopKElements trackers ("shards"), each
// of which is safe for single-writer use on its own goroutine. It adds
// no locking of its own: concurrent writers must either own disjoint
// shards or synchronize externally (e.g. via pkg/safe per shard).
type Federated[K comparable] struct {
	shards []*topk.TopKElements[K]
	hasher Hasher[K]
}

// New wraps an existing slice of per-shard trackers. All shards must
// share an identical sketch shape (width, depth, seed) so their
// sketches can be merged; this is the caller's responsibility to
// arrange, typically by constructing every shard from the same
// sketch.Option set.
func New[K comparable](shards []*topk.TopKElements[K], hasher Hasher[K]) (*Federated[K], error) {
	if len(shards) == 0 {
		return nil, ErrNoShards
	}
	return &Federated[K]{shards: shards, hasher: hasher}, nil
}

// ShardCount returns the number of shards.
func (f *Federated[K]) ShardCount() int { return len(f.shards) }

// Shard returns the tracker for shard i, for direct per-thread writes.
func (f *Federated[K]) Shard(i int) *topk.TopKElements[K] { return f.shards[i] }

// ShardFor routes key to a shard index via the configured Hasher, for
// callers that want a single writer's updates for the same key to
// always land on the same shard.
func (f *Federated[K]) ShardFor(key K) int {
	return f.hasher.computeShard(key, len(f.shards))
}

// Merge cell-wise adds every shard's sketch into a fresh sketch (no
// shard is mutated), then re-estimates the union of all shards'
// tracked keys against the merged sketch and returns the global top-k
// by descending merged estimate. This realizes the "union-then-re-rank"
// recommendation in spec.md §5.
func (f *Federated[K]) Merge(k int) ([]K, error) {
	if len(f.shards) == 0 {
		return nil, ErrNoShards
	}

	merged := f.shards[0].Sketch().CloneEmpty()
	for _, shard := range f.shards {
		if err := merged.Merge(shard.Sketch()); err != nil {
			return nil, err
		}
	}

	type candidate struct {
		key   K
		count int64
	}

	seen := map[K]struct{}{}
	candidates := make([]candidate, 0, k*len(f.shards))
	for _, shard := range f.shards {
		for _, key := range shard.SortedTopKeys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, candidate{key: key, count: merged.Estimate(key)})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].count > candidates[j].count
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	keys := make([]K, len(candidates))
	for i, c := range candidates {
		keys[i] = c.key
	}
	return keys, nil
}
