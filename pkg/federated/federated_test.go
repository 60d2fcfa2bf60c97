package federated

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samber/heavyhitters/pkg/sketch"
	"github.com/samber/heavyhitters/pkg/topk"
)

func newShard(t *testing.T, k int) *topk.TopKElements[string] {
	t.Helper()
	s, err := sketch.New[string](1000, 4)
	if err != nil {
		t.Fatal(err)
	}
	shard, err := topk.New[string](k, s)
	if err != nil {
		t.Fatal(err)
	}
	return shard
}

func TestNewRequiresShards(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	_, err := New[string](nil, nil)
	is.ErrorIs(err, ErrNoShards)
}

func TestShardForRoutesDeterministically(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	shards := []*topk.TopKElements[string]{newShard(t, 5), newShard(t, 5), newShard(t, 5)}
	hasher := Hasher[string](func(k string) uint64 {
		var h uint64
		for _, b := range []byte(k) {
			h = h*31 + uint64(b)
		}
		return h
	})
	f, err := New[string](shards, hasher)
	is.NoError(err)

	a := f.ShardFor("alice")
	b := f.ShardFor("alice")
	is.Equal(a, b)
	is.GreaterOrEqual(a, 0)
	is.Less(a, 3)
}

func TestMergeCombinesOverlappingKeysAcrossShards(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	shard1 := newShard(t, 5)
	shard2 := newShard(t, 5)

	// Same key seen by two independent per-thread writers.
	shard1.Increment("hot-key", 100)
	shard2.Increment("hot-key", 150)

	shard1.Increment("only-in-1", 10)
	shard2.Increment("only-in-2", 20)

	f, err := New[string]([]*topk.TopKElements[string]{shard1, shard2}, nil)
	is.NoError(err)

	top, err := f.Merge(5)
	is.NoError(err)
	is.Equal("hot-key", top[0], "merged sketch must sum hot-key's count across shards")
	is.Contains(top, "only-in-1")
	is.Contains(top, "only-in-2")
}

func TestMergeTruncatesToK(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	shard := newShard(t, 10)
	for i := 0; i < 10; i++ {
		shard.Increment(string(rune('a'+i)), uint64(i+1))
	}

	f, err := New[string]([]*topk.TopKElements[string]{shard}, nil)
	is.NoError(err)

	top, err := f.Merge(3)
	is.NoError(err)
	is.Len(top, 3)
}

func TestMergeDoesNotMutateShardSketches(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	shard1 := newShard(t, 5)
	shard2 := newShard(t, 5)
	shard1.Increment("k", 10)
	shard2.Increment("k", 20)

	f, _ := New[string]([]*topk.TopKElements[string]{shard1, shard2}, nil)
	_, err := f.Merge(5)
	is.NoError(err)

	// Shard 1's own view of "k" must be unaffected by the merge.
	is.Equal(int64(10), shard1.Estimate("k"))
	is.Equal(int64(20), shard2.Estimate("k"))
}
