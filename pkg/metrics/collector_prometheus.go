package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*PrometheusCollector)(nil)

// PrometheusCollector implements Collector using Prometheus metrics.
// Counters use atomic operations so Increment/Decrement/Remove stay
// lock-free on the tracker's hot path; gauges are sampled lazily at
// scrape time via Collect.
type PrometheusCollector struct {
	labels prometheus.Labels

	incrementCount int64
	decrementCount int64
	promotionCount int64
	demotionCount  int64
	removalCount   int64

	size       int64
	totalCount int64
	sizeBytes  int64

	settingsK prometheus.Gauge

	incrementDesc *prometheus.Desc
	decrementDesc *prometheus.Desc
	promotionDesc *prometheus.Desc
	demotionDesc  *prometheus.Desc
	removalDesc   *prometheus.Desc
	sizeDesc      *prometheus.Desc
	totalDesc     *prometheus.Desc
	sizeBytesDesc *prometheus.Desc
}

// NewPrometheusCollector creates a new Prometheus-based metric
// collector labeled by the tracker's name.
func NewPrometheusCollector(name string, k int) *PrometheusCollector {
	labels := prometheus.Labels{"name": name}

	c := &PrometheusCollector{
		labels: labels,

		incrementDesc: prometheus.NewDesc("heavyhitters_increment_total", "Total number of Increment calls", nil, labels),
		decrementDesc: prometheus.NewDesc("heavyhitters_decrement_total", "Total number of Decrement calls", nil, labels),
		promotionDesc: prometheus.NewDesc("heavyhitters_promotion_total", "Total number of keys promoted into the tracked top-K set", nil, labels),
		demotionDesc:  prometheus.NewDesc("heavyhitters_demotion_total", "Total number of keys demoted or evicted from the tracked top-K set", nil, labels),
		removalDesc:   prometheus.NewDesc("heavyhitters_removal_total", "Total number of explicit Remove calls", nil, labels),
		sizeDesc:      prometheus.NewDesc("heavyhitters_size", "Current number of tracked keys", nil, labels),
		totalDesc:     prometheus.NewDesc("heavyhitters_sketch_total_count", "Cumulative sum of positive updates applied to the backing sketch", nil, labels),
		sizeBytesDesc: prometheus.NewDesc("heavyhitters_size_bytes", "Approximate memory footprint of the tracker in bytes", nil, labels),

		settingsK: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "heavyhitters_settings_k",
			Help:        "Configured maximum number of tracked keys",
			ConstLabels: labels,
		}),
	}
	c.settingsK.Set(float64(k))

	return c
}

func (c *PrometheusCollector) IncIncrement() { atomic.AddInt64(&c.incrementCount, 1) }
func (c *PrometheusCollector) IncDecrement() { atomic.AddInt64(&c.decrementCount, 1) }
func (c *PrometheusCollector) IncPromotion() { atomic.AddInt64(&c.promotionCount, 1) }
func (c *PrometheusCollector) IncDemotion()  { atomic.AddInt64(&c.demotionCount, 1) }
func (c *PrometheusCollector) IncRemoval()   { atomic.AddInt64(&c.removalCount, 1) }

func (c *PrometheusCollector) SetSize(size int64)        { atomic.StoreInt64(&c.size, size) }
func (c *PrometheusCollector) SetTotalCount(total int64) { atomic.StoreInt64(&c.totalCount, total) }
func (c *PrometheusCollector) SetSizeBytes(bytes int64)  { atomic.StoreInt64(&c.sizeBytes, bytes) }

// Describe implements prometheus.Collector.
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.incrementDesc
	ch <- c.decrementDesc
	ch <- c.promotionDesc
	ch <- c.demotionDesc
	ch <- c.removalDesc
	ch <- c.sizeDesc
	ch <- c.totalDesc
	ch <- c.sizeBytesDesc
	ch <- c.settingsK.Desc()
}

// Collect implements prometheus.Collector.
func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.incrementDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.incrementCount)))
	ch <- prometheus.MustNewConstMetric(c.decrementDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.decrementCount)))
	ch <- prometheus.MustNewConstMetric(c.promotionDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.promotionCount)))
	ch <- prometheus.MustNewConstMetric(c.demotionDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.demotionCount)))
	ch <- prometheus.MustNewConstMetric(c.removalDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.removalCount)))
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&c.size)))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&c.totalCount)))
	ch <- prometheus.MustNewConstMetric(c.sizeBytesDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&c.sizeBytes)))
	c.settingsK.Collect(ch)
}
