package metrics

var _ Collector = (*NoOpCollector)(nil)

// NoOpCollector is a no-op implementation of Collector that does
// nothing. This provides better performance than conditional checks
// at every call site when metrics are disabled.
type NoOpCollector struct{}

func (n *NoOpCollector) IncIncrement()       {}
func (n *NoOpCollector) IncDecrement()       {}
func (n *NoOpCollector) IncPromotion()       {}
func (n *NoOpCollector) IncDemotion()        {}
func (n *NoOpCollector) IncRemoval()         {}
func (n *NoOpCollector) SetSize(int64)       {}
func (n *NoOpCollector) SetTotalCount(int64) {}
func (n *NoOpCollector) SetSizeBytes(int64)  {}
