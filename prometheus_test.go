package rangecache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusCollector("rangecache", reg)

	c, err := New(ones(10), 2, WithMetrics(collector))
	require.NoError(t, err)

	_, err = c.RangeSum(0, 4) // miss
	require.NoError(t, err)
	_, err = c.RangeSum(0, 4) // hit
	require.NoError(t, err)
	_, err = c.RangeSum(5, 9) // miss
	require.NoError(t, err)
	_, err = c.RangeSum(0, 2) // miss, evicts
	require.NoError(t, err)
	require.NoError(t, c.Update(1, 7)) // invalidates {0,2}

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.hitsTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(collector.missesTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.evictionsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.updatesTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.invalidatedTotal))
}
