package heavyhitters

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestBuildRejectsInvalidShape(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	_, err := NewTracker[string](0).WithWidthDepth(100, 4).Build()
	is.ErrorIs(err, ErrInvalidShape)

	_, err = NewTracker[string](5).WithWidthDepth(0, 4).Build()
	is.ErrorIs(err, ErrInvalidShape)

	_, err = NewTracker[string](5).WithErrorRate(1.5, 0.1).Build()
	is.ErrorIs(err, ErrInvalidShape)
}

func TestTrackerIncrementPromotesAndEstimates(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tr, err := NewTracker[string](2).WithWidthDepth(1000, 4).Build()
	is.NoError(err)

	tr.Increment("a", 10)
	tr.Increment("b", 5)
	tr.Increment("c", 20)

	is.Equal(2, tr.Size())
	is.Equal(int64(20), tr.Estimate("c"))
	is.Equal(2, tr.K())
}

func TestTrackerEvictionCallbackFires(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	var evicted []string
	tr, err := NewTracker[string](1).
		WithWidthDepth(1000, 4).
		WithEvictionCallback(func(key string, lastCount int64) {
			evicted = append(evicted, key)
		}).
		Build()
	is.NoError(err)

	tr.Increment("a", 10)
	tr.Increment("b", 20)

	is.Equal([]string{"a"}, evicted)
}

func TestFormatTopKeys(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tr, err := NewTracker[string](3).WithWidthDepth(1000, 4).Build()
	is.NoError(err)

	tr.Increment("x", 30)
	tr.Increment("y", 10)

	is.Equal("[x: 30, y: 10]", tr.FormatTopKeys())
}

func TestTrackerSizeBytesGrowsWithMembers(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tr, err := NewTracker[string](10).WithWidthDepth(1000, 4).Build()
	is.NoError(err)

	empty := tr.SizeBytes()

	for i := 0; i < 5; i++ {
		tr.Increment(string(rune('a'+i)), 10)
	}

	is.Greater(tr.SizeBytes(), empty)
}

func TestTrackerCollectsPrometheusMetricsWhenNamed(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tr, err := NewTracker[string](5).WithWidthDepth(1000, 4).WithMetrics("test_tracker").Build()
	is.NoError(err)

	tr.Increment("a", 10)

	ch := make(chan prometheus.Metric, 16)
	tr.Collect(ch)
	close(ch)

	count := 0
	for m := range ch {
		var pb dto.Metric
		is.NoError(m.Write(&pb))
		count++
	}
	is.Equal(9, count)
}

func TestTrackerNoOpMetricsWhenUnnamed(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tr, err := NewTracker[string](5).WithWidthDepth(1000, 4).Build()
	is.NoError(err)

	ch := make(chan prometheus.Metric, 16)
	tr.Collect(ch)
	close(ch)

	count := 0
	for range ch {
		count++
	}
	is.Equal(0, count)
}
