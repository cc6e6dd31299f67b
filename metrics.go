package rangecache

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; a
// ready-made Prometheus implementation is in prometheus.go.
type MetricsCollector interface {
	// RecordRangeSum is called after each successful range-sum query.
	// hit reports whether the result came from the store, duration is
	// the total time taken.
	RecordRangeSum(hit bool, duration time.Duration)

	// RecordEviction is called once per entry evicted for capacity.
	RecordEviction()

	// RecordUpdate is called after each successful point update.
	// invalidated is the number of cached ranges the write purged.
	RecordUpdate(invalidated int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRangeSum(bool, time.Duration) {}
func (NoopMetricsCollector) RecordEviction()                    {}
func (NoopMetricsCollector) RecordUpdate(int, time.Duration)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Hits               atomic.Int64
	Misses             atomic.Int64
	Evictions          atomic.Int64
	Updates            atomic.Int64
	InvalidatedEntries atomic.Int64
	QueryTotalNanos    atomic.Int64
	UpdateTotalNanos   atomic.Int64
}

// RecordRangeSum implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeSum(hit bool, duration time.Duration) {
	if hit {
		b.Hits.Add(1)
	} else {
		b.Misses.Add(1)
	}
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEviction() {
	b.Evictions.Add(1)
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(invalidated int, duration time.Duration) {
	b.Updates.Add(1)
	b.InvalidatedEntries.Add(int64(invalidated))
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
}

// HitRate returns the fraction of queries served from the store.
func (b *BasicMetricsCollector) HitRate() float64 {
	hits, misses := b.Hits.Load(), b.Misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
