package heavyhitters

import (
	"github.com/samber/heavyhitters/pkg/metrics"
	"github.com/samber/heavyhitters/pkg/sketch"
	"github.com/samber/heavyhitters/pkg/topk"
)

// sizingMode selects how the backing sketch's width and depth are
// derived: either given directly, or computed from an accuracy target.
type sizingMode int

const (
	sizingDefault sizingMode = iota
	sizingWidthDepth
	sizingErrorRate
)

// NewTracker starts a fluent configuration for a Tracker that keeps at
// most k candidate heavy hitters. Mirrors the teacher's
// NewHotCache(...) HotCacheConfig[K, V] entry point: a value-receiver
// builder, every With* returning a new config rather than mutating in
// place, terminated by Build().
func NewTracker[K comparable](k int) TrackerConfig[K] {
	return TrackerConfig[K]{
		k:      k,
		width:  4096,
		depth:  4,
		seed:   sketch.DefaultSeed,
		sizing: sizingDefault,
	}
}

// TrackerConfig accumulates Tracker construction options. Zero value is
// not meant to be used directly; always start from NewTracker.
type TrackerConfig[K comparable] struct {
	k int

	sizing  sizingMode
	width   int
	depth   int
	epsilon float64
	delta   float64

	seed uint64

	metricsName string

	onEviction topk.EvictionCallback[K]
}

// WithWidthDepth sets the backing sketch's dimensions directly.
func (cfg TrackerConfig[K]) WithWidthDepth(width, depth int) TrackerConfig[K] {
	cfg.sizing = sizingWidthDepth
	cfg.width = width
	cfg.depth = depth
	return cfg
}

// WithErrorRate sizes the backing sketch from an (epsilon, delta)
// accuracy target instead of explicit dimensions.
func (cfg TrackerConfig[K]) WithErrorRate(epsilon, delta float64) TrackerConfig[K] {
	cfg.sizing = sizingErrorRate
	cfg.epsilon = epsilon
	cfg.delta = delta
	return cfg
}

// WithSeed overrides the master seed used to derive the hash family.
func (cfg TrackerConfig[K]) WithSeed(seed uint64) TrackerConfig[K] {
	cfg.seed = seed
	return cfg
}

// WithMetrics enables Prometheus instrumentation under the given metric
// name prefix. Omitted, the tracker reports through a no-op collector.
func (cfg TrackerConfig[K]) WithMetrics(name string) TrackerConfig[K] {
	cfg.metricsName = name
	return cfg
}

// WithEvictionCallback registers a callback fired whenever a key leaves
// the tracked set.
func (cfg TrackerConfig[K]) WithEvictionCallback(fn topk.EvictionCallback[K]) TrackerConfig[K] {
	cfg.onEviction = fn
	return cfg
}

// Build constructs the Tracker. Returns ErrInvalidShape if k, width, or
// depth is not positive, or if an error-rate target is out of (0, 1).
func (cfg TrackerConfig[K]) Build() (*Tracker[K], error) {
	var backingSketch *sketch.CountMinSketch[K]
	var err error

	switch cfg.sizing {
	case sizingErrorRate:
		backingSketch, err = sketch.NewFromErrorRate[K](cfg.epsilon, cfg.delta, sketch.WithSeed(cfg.seed))
	default:
		backingSketch, err = sketch.New[K](cfg.width, cfg.depth, sketch.WithSeed(cfg.seed))
	}
	if err != nil {
		return nil, wrapShapeError(err)
	}

	collector := metrics.NewCollector(cfg.metricsName, cfg.k)

	// A single callback drives both metrics and the caller's own hook, since
	// topk.Option only keeps the last-registered callback.
	onEviction := cfg.onEviction
	combined := topk.WithEvictionCallback(func(key K, lastCount int64) {
		collector.IncRemoval()
		if onEviction != nil {
			onEviction(key, lastCount)
		}
	})

	tracked, err := topk.New[K](cfg.k, backingSketch, combined)
	if err != nil {
		return nil, wrapShapeError(err)
	}

	return &Tracker[K]{
		TopKElements: tracked,
		collector:    collector,
	}, nil
}
