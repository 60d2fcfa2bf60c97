// Package heavyhitters tracks the k most frequent keys in a stream of
// signed increments, for use as an approximate cardinality statistic
// by a query optimizer: "what are the most common values of this
// column" without storing every distinct value seen.
//
// A Tracker is built with NewTracker(k).With*()...Build(), mirroring
// the fluent config builder samber/hot uses for its cache
// construction. It wraps a pkg/topk.TopKElements with diagnostics and
// optional Prometheus instrumentation.
package heavyhitters

import (
	"github.com/DmitriyVTitov/size"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/samber/heavyhitters/pkg/metrics"
	"github.com/samber/heavyhitters/pkg/topk"
)

var _ prometheus.Collector = (*Tracker[string])(nil)

// Tracker is the public entry point: a bounded top-K set backed by a
// Count-Min Sketch, with metrics wired through pkg/metrics.Collector.
type Tracker[K comparable] struct {
	*topk.TopKElements[K]

	collector metrics.Collector
}

// Increment feeds a positive delta for key through the backing sketch
// and updates the tracked top-K set, recording metrics along the way.
func (t *Tracker[K]) Increment(key K, delta uint64) {
	sizeBefore := t.TopKElements.Size()
	t.TopKElements.Increment(key, delta)
	t.collector.IncIncrement()
	if t.TopKElements.Size() > sizeBefore {
		t.collector.IncPromotion()
	}
	t.collector.SetSize(int64(t.TopKElements.Size()))
	t.collector.SetTotalCount(t.TopKElements.Sketch().TotalCount())
}

// Decrement feeds a negative delta for key through the backing sketch.
func (t *Tracker[K]) Decrement(key K, delta uint64) {
	sizeBefore := t.TopKElements.Size()
	t.TopKElements.Decrement(key, delta)
	t.collector.IncDecrement()
	if t.TopKElements.Size() < sizeBefore {
		t.collector.IncDemotion()
	}
	t.collector.SetSize(int64(t.TopKElements.Size()))
}

// Remove unconditionally evicts key from the tracked set. The eviction
// callback wired in by Build already reports this through collector.IncRemoval.
func (t *Tracker[K]) Remove(key K) {
	t.TopKElements.Remove(key)
	t.collector.SetSize(int64(t.TopKElements.Size()))
}

// SizeBytes reports the tracker's approximate in-memory footprint: the
// backing sketch's fixed matrix (pkg/sketch.SizeBytes) plus the
// dynamic members map, measured with DmitriyVTitov/size since its
// layout changes with K and the key type.
func (t *Tracker[K]) SizeBytes() int64 {
	total := t.TopKElements.Sketch().SizeBytes() + int64(size.Of(t.TopKElements))
	t.collector.SetSizeBytes(total)
	return total
}

// Describe implements prometheus.Collector.
func (t *Tracker[K]) Describe(ch chan<- *prometheus.Desc) {
	if pc, ok := t.collector.(prometheus.Collector); ok {
		pc.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (t *Tracker[K]) Collect(ch chan<- prometheus.Metric) {
	// Trigger a fresh sample of the gauges before emitting them.
	t.SizeBytes()

	if pc, ok := t.collector.(prometheus.Collector); ok {
		pc.Collect(ch)
	}
}
