// Package hashfamily produces d independent, deterministic 64-bit
// hashes of a key's byte representation, reduced to column indices in
// [0, width). It deliberately does not use Go's map hash (randomized
// per process, not independent across rows); instead it computes one
// strong digest with xxhash and mixes it with d splitmix64-derived
// sub-seeds, per spec.md §4.1.
package hashfamily

import (
	"github.com/cespare/xxhash/v2"

	"github.com/samber/heavyhitters/internal/splitmix"
)

// Family is a pure, stateless-beyond-its-seeds hash family: Columns is
// a deterministic function of its input and the seeds fixed at
// construction.
type Family struct {
	width int
	depth int
	seeds []uint64
}

// New derives depth independent sub-seeds from master via splitmix64
// and returns a Family producing column indices in [0, width).
func New(width, depth int, master uint64) *Family {
	return &Family{
		width: width,
		depth: depth,
		seeds: splitmix.Seeds(master, depth),
	}
}

// Depth returns the number of rows this family produces.
func (f *Family) Depth() int { return f.depth }

// Width returns the column count each row is reduced into.
func (f *Family) Width() int { return f.width }

// Seeds returns the per-row sub-seeds, exposed only so Merge can verify
// two sketches share an identical hash family.
func (f *Family) Seeds() []uint64 { return f.seeds }

// Columns computes the d column indices for the given key bytes, one
// per row, each in [0, width).
func (f *Family) Columns(keyBytes []byte) []int {
	digest := xxhash.Sum64(keyBytes)

	cols := make([]int, f.depth)
	for i, seed := range f.seeds {
		mixed := splitmix.Mix64(digest ^ seed)
		cols[i] = int(mixed % uint64(f.width))
	}
	return cols
}

// SameShape reports whether two families would route any key to the
// same columns: identical width, depth, and seed vector.
func (f *Family) SameShape(other *Family) bool {
	if f.width != other.width || f.depth != other.depth {
		return false
	}
	for i, s := range f.seeds {
		if other.seeds[i] != s {
			return false
		}
	}
	return true
}
