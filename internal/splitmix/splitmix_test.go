package splitmix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMix64Deterministic(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	is.Equal(Mix64(42), Mix64(42))
	is.NotEqual(Mix64(42), Mix64(43))
	is.Equal(uint64(0), Mix64(0)^Mix64(0))
}

func TestSeedsIndependentAndDeterministic(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	a := Seeds(7, 4)
	b := Seeds(7, 4)
	is.Equal(a, b)
	is.Len(a, 4)

	seen := map[uint64]bool{}
	for _, s := range a {
		is.False(seen[s], "sub-seeds must be pairwise distinct")
		seen[s] = true
	}

	c := Seeds(8, 4)
	is.NotEqual(a, c)
}

func TestSeedsZeroLength(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	is.Empty(Seeds(1, 0))
}
