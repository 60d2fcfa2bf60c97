package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestNewCollectorNoOpWhenNameEmpty(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewCollector("", 10)
	_, ok := c.(*NoOpCollector)
	is.True(ok, "empty name should select the no-op collector")
}

func TestNewCollectorPrometheusWhenNamed(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewCollector("columns.region", 10)
	pc, ok := c.(*PrometheusCollector)
	is.True(ok)
	is.Equal("columns.region", pc.labels["name"])
}

func TestPrometheusCollectorCounters(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewPrometheusCollector("t", 5)
	c.IncIncrement()
	c.IncIncrement()
	c.IncDecrement()
	c.IncPromotion()
	c.IncDemotion()
	c.IncRemoval()
	c.SetSize(3)
	c.SetTotalCount(42)
	c.SetSizeBytes(1024)

	is.Equal(int64(2), c.incrementCount)
	is.Equal(int64(1), c.decrementCount)
	is.Equal(int64(1), c.promotionCount)
	is.Equal(int64(1), c.demotionCount)
	is.Equal(int64(1), c.removalCount)
	is.Equal(int64(3), c.size)
	is.Equal(int64(42), c.totalCount)
	is.Equal(int64(1024), c.sizeBytes)
}

func TestPrometheusCollectorCollectEmitsAllDescriptors(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewPrometheusCollector("t", 5)
	c.IncIncrement()

	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	count := 0
	for m := range ch {
		var pb dto.Metric
		is.NoError(m.Write(&pb))
		count++
	}
	is.Equal(9, count) // 8 const metrics + the settingsK gauge
}

func TestNoOpCollectorDoesNothing(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := &NoOpCollector{}
	is.NotPanics(func() {
		c.IncIncrement()
		c.IncDecrement()
		c.IncPromotion()
		c.IncDemotion()
		c.IncRemoval()
		c.SetSize(1)
		c.SetTotalCount(1)
		c.SetSizeBytes(1)
	})
}
