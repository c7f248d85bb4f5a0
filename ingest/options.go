package ingest

import (
	"log/slog"
	"time"

	"github.com/sig-0/fcbrates/metrics"
)

type Option func(o *Orchestrator)

// WithLogger specifies the logger for the orchestrator
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithMetrics specifies the metrics the orchestrator reports to
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithQueryInterval specifies query interval for the orchestrator's jobs.
// Defaults to 1s.
// This should only be modified if the registered providers with the orchestrator
// have sparse runs (once every hour / 24hrs)
func WithQueryInterval(q time.Duration) Option {
	return func(o *Orchestrator) {
		o.queryInterval = q
	}
}

// WithRetryDelay specifies the base delay before a failed provider fetch is retried.
// The delay doubles with every consecutive failure, up to the provider interval.
// Defaults to 10s
func WithRetryDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.retryDelay = d
	}
}

// WithBufferSize specifies the size of the worker response buffer.
// Defaults to 100
func WithBufferSize(size int) Option {
	return func(o *Orchestrator) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}
