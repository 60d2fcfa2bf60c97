// Package sketch implements a Count-Min Sketch: a fixed-width, fixed-depth
// matrix of signed counters that answers approximate frequency queries
// for a stream of (key, delta) updates under a strict space budget.
//
// Width and depth are fixed at construction and never resized. Update
// and Estimate are O(depth). Estimate is the minimum over all rows,
// never the median — see the package doc on Estimate for why this
// matters for signed workloads.
package sketch

import (
	"math"

	"github.com/samber/heavyhitters/internal/hashfamily"
	"github.com/samber/heavyhitters/internal/keybytes"
)

// DefaultSeed is used when no seed is supplied, so that two sketches
// built with the same (width, depth) and no explicit seed hash keys
// identically — this keeps tests reproducible across runs per spec.md §6.
const DefaultSeed uint64 = 0x9E3779B97F4A7C15

// Option configures a CountMinSketch at construction time.
type Option func(*options)

type options struct {
	seed uint64
}

// WithSeed overrides the default master seed used to derive the hash
// family's per-row sub-seeds.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

func resolveOptions(opts ...Option) options {
	o := options{seed: DefaultSeed}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// CountMinSketch is a d x w matrix of signed 64-bit counters plus the
// hash family used to route keys to cells. It owns all counter memory;
// callers never mutate counters directly.
type CountMinSketch[K comparable] struct {
	width  int
	depth  int
	counts [][]int64
	family *hashfamily.Family

	// positiveTotal is the cumulative sum of positive updates, used only
	// for diagnostics (spec.md §4.2, total_count).
	positiveTotal int64
}

// New builds a CountMinSketch with explicit width and depth. Returns
// ErrInvalidShape if either is zero.
func New[K comparable](width, depth int, opts ...Option) (*CountMinSketch[K], error) {
	if width <= 0 || depth <= 0 {
		return nil, ErrInvalidShape
	}

	o := resolveOptions(opts...)

	counts := make([][]int64, depth)
	for i := range counts {
		counts[i] = make([]int64, width)
	}

	return &CountMinSketch[K]{
		width:  width,
		depth:  depth,
		counts: counts,
		family: hashfamily.New(width, depth, o.seed),
	}, nil
}

// NewFromErrorRate builds a CountMinSketch sized from an (epsilon, delta)
// accuracy target: width = ceil(e/epsilon), depth = ceil(ln(1/delta)),
// per spec.md §3. Both epsilon and delta must be in (0, 1).
func NewFromErrorRate[K comparable](epsilon, delta float64, opts ...Option) (*CountMinSketch[K], error) {
	if epsilon <= 0 || epsilon >= 1 || delta <= 0 || delta >= 1 {
		return nil, ErrInvalidShape
	}

	width := int(math.Ceil(math.E / epsilon))
	depth := int(math.Ceil(math.Log(1 / delta)))
	return New[K](width, depth, opts...)
}

// Width returns the number of columns per row.
func (s *CountMinSketch[K]) Width() int { return s.width }

// Depth returns the number of independent hash rows.
func (s *CountMinSketch[K]) Depth() int { return s.depth }

// Update adds delta (which may be negative) to each of the d cells
// selected for key. O(depth).
func (s *CountMinSketch[K]) Update(key K, delta int64) {
	cols := s.family.Columns(keybytes.Encode(key))
	for row, col := range cols {
		s.counts[row][col] += delta
	}
	if delta > 0 {
		s.positiveTotal += delta
	}
}

// Estimate returns the minimum cell value across the d rows selected
// for key. O(depth). The minimum (not the median) is essential: under
// signed workloads a row can be pushed below the key's true count by
// an unrelated key's decrement sharing that cell, and the minimum is
// the only aggregation that preserves the one-sided error bound for
// positive-only streams (spec.md §3 invariant).
func (s *CountMinSketch[K]) Estimate(key K) int64 {
	cols := s.family.Columns(keybytes.Encode(key))

	min := s.counts[0][cols[0]]
	for row := 1; row < s.depth; row++ {
		if v := s.counts[row][cols[row]]; v < min {
			min = v
		}
	}
	return min
}

// TotalCount returns the cumulative sum of positive updates applied to
// this sketch. Diagnostic only; not used by Estimate.
func (s *CountMinSketch[K]) TotalCount() int64 {
	return s.positiveTotal
}

// Merge cell-wise adds other into s. Both sketches must share identical
// width, depth and seed; otherwise ErrIncompatibleShape is returned and
// s is left unmodified.
func (s *CountMinSketch[K]) Merge(other *CountMinSketch[K]) error {
	if s.width != other.width || s.depth != other.depth || !s.family.SameShape(other.family) {
		return ErrIncompatibleShape
	}

	for row := range s.counts {
		for col := range s.counts[row] {
			s.counts[row][col] += other.counts[row][col]
		}
	}
	s.positiveTotal += other.positiveTotal
	return nil
}

// Clear zeroes all cells and resets the diagnostic total. The hash
// family and dimensions are unchanged.
func (s *CountMinSketch[K]) Clear() {
	for row := range s.counts {
		for col := range s.counts[row] {
			s.counts[row][col] = 0
		}
	}
	s.positiveTotal = 0
}

// SizeBytes returns the matrix's approximate memory footprint: fixed
// given width and depth, unlike the dynamic members set in TopKElements.
func (s *CountMinSketch[K]) SizeBytes() int64 {
	const int64Bytes = 8
	return int64(s.depth*s.width*int64Bytes) + int64(s.depth)*int64Bytes
}

// CloneEmpty returns a new, zeroed sketch sharing s's width, depth and
// hash family (the family is a pure function of its seeds, so sharing
// the pointer across sketches is safe). Used as a merge target by
// pkg/federated, which folds several independent sketches without
// mutating any of them in place.
func (s *CountMinSketch[K]) CloneEmpty() *CountMinSketch[K] {
	counts := make([][]int64, s.depth)
	for i := range counts {
		counts[i] = make([]int64, s.width)
	}
	return &CountMinSketch[K]{
		width:  s.width,
		depth:  s.depth,
		counts: counts,
		family: s.family,
	}
}
