// Package metrics instruments a Tracker with counters and gauges for
// the events a query optimizer cares about when watching its
// cardinality statistics: how many updates landed, how the tracked set
// churns, and how big the structure currently is. Adapted from
// samber/hot's pkg/metrics, whose Collector / PrometheusCollector /
// NoOpCollector split this package keeps unchanged in spirit.
package metrics

// Collector defines the interface for metric collection operations.
// This allows both real Prometheus metrics and a no-op implementation
// with the same zero-cost call sites when metrics are disabled.
type Collector interface {
	IncIncrement()
	IncDecrement()
	IncPromotion()
	IncDemotion()
	IncRemoval()
	SetSize(size int64)
	SetTotalCount(total int64)
	SetSizeBytes(bytes int64)
}

// NewCollector returns a PrometheusCollector labeled with name, or a
// NoOpCollector if name is empty (metrics disabled).
func NewCollector(name string, k int) Collector {
	if name == "" {
		return &NoOpCollector{}
	}
	return NewPrometheusCollector(name, k)
}
