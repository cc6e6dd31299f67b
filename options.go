package rangecache

import (
	"log/slog"
)

type options struct {
	logger  *slog.Logger
	metrics MetricsCollector
}

// Option configures Cache constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for cache operations.
// Hit, miss, eviction and invalidation events are logged at debug level.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics configures a MetricsCollector for cache operations.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
