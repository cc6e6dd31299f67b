package rangecache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector is a MetricsCollector backed by Prometheus metrics.
type PrometheusCollector struct {
	hitsTotal        prometheus.Counter
	missesTotal      prometheus.Counter
	evictionsTotal   prometheus.Counter
	updatesTotal     prometheus.Counter
	invalidatedTotal prometheus.Counter
	queryDuration    prometheus.Histogram
	updateDuration   prometheus.Histogram
}

var _ MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates a PrometheusCollector registered with reg
// under the given namespace. If reg is nil, the default registerer is used.
func NewPrometheusCollector(namespace string, reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		hitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of range-sum queries served from the store",
		}),
		missesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of range-sum queries computed from the array",
		}),
		evictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of entries evicted for capacity",
		}),
		updatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of point updates applied",
		}),
		invalidatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidated_entries_total",
			Help:      "Total number of cached ranges purged by updates",
		}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "range_sum_duration_seconds",
			Help:      "Range-sum query latency in seconds",
			Buckets:   []float64{.000001, .00001, .0001, .001, .01, .1, 1},
		}),
		updateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_duration_seconds",
			Help:      "Point update latency in seconds",
			Buckets:   []float64{.000001, .00001, .0001, .001, .01, .1, 1},
		}),
	}
}

// RecordRangeSum implements MetricsCollector.
func (p *PrometheusCollector) RecordRangeSum(hit bool, duration time.Duration) {
	if hit {
		p.hitsTotal.Inc()
	} else {
		p.missesTotal.Inc()
	}
	p.queryDuration.Observe(duration.Seconds())
}

// RecordEviction implements MetricsCollector.
func (p *PrometheusCollector) RecordEviction() {
	p.evictionsTotal.Inc()
}

// RecordUpdate implements MetricsCollector.
func (p *PrometheusCollector) RecordUpdate(invalidated int, duration time.Duration) {
	p.updatesTotal.Inc()
	p.invalidatedTotal.Add(float64(invalidated))
	p.updateDuration.Observe(duration.Seconds())
}
