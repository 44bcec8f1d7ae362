package postgresengine

import (
	"github.com/libradb/book-catalog-go/bookcatalog"
)

// The observability contracts are defined once in the core package and
// re-exported here as aliases, so that engine users can keep importing only
// this package without colliding with the core declarations.
type (
	// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
	Logger = bookcatalog.Logger

	// MetricsCollector interface for collecting BookStore performance and operational metrics.
	MetricsCollector = bookcatalog.MetricsCollector

	// SpanContext represents an active tracing span that can be finished and updated with attributes.
	SpanContext = bookcatalog.SpanContext

	// TracingCollector interface for collecting distributed tracing information from BookStore operations.
	TracingCollector = bookcatalog.TracingCollector

	// ContextualLogger interface for context-aware logging with automatic trace correlation.
	ContextualLogger = bookcatalog.ContextualLogger
)

// Option defines a functional option for configuring BookStore.
type Option func(*BookStore) error

// WithTableName sets the table name for the BookStore.
func WithTableName(tableName string) Option {
	return func(bs *BookStore) error {
		if tableName == "" {
			return bookcatalog.ErrEmptyTableNameSupplied
		}

		bs.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the BookStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Operation outcomes with durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(bs *BookStore) error {
		bs.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the BookStore.
// The metrics collector will receive performance and operational metrics including
// operation durations, row counts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(bs *BookStore) error {
		bs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the BookStore.
// The tracing collector will receive distributed tracing information including
// span creation for every store operation, context propagation, and error tracking.
func WithTracing(collector TracingCollector) Option {
	return func(bs *BookStore) error {
		bs.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the BookStore.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled, enabling unified observability.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(bs *BookStore) error {
		bs.contextualLogger = logger
		return nil
	}
}
