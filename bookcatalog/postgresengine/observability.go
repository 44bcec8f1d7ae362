package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/libradb/book-catalog-go/bookcatalog"
)

const (
	metricOperationDuration = "bookstore_operation_duration_seconds"
	metricDatabaseErrors    = "bookstore_database_errors_total"
	spanNamePrefix          = "bookstore."
	spanAttrOperation       = "operation"
	spanAttrTable           = "table"
	spanAttrErrorType       = "error_type"
	labelStatus             = "status"
	statusSuccess           = "success"
	statusNotFound          = "not_found"
	statusError             = "error"
	errorTypeDatabase       = "database_error"
	errorTypeScan           = "scan_error"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (bs BookStore) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {
	if bs.contextualLogger != nil {
		bs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action,
			logAttrDurationMS, bs.toMilliseconds(duration), logAttrQuery, sqlQuery)

		return
	}

	if bs.logger != nil {
		bs.logger.Debug(logMsgSQLExecuted+action,
			logAttrDurationMS, bs.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (bs BookStore) logOperation(ctx context.Context, action string, args ...any) {
	if bs.contextualLogger != nil {
		bs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if bs.logger != nil {
		bs.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (bs BookStore) logWarn(ctx context.Context, message string, err error) {
	if bs.contextualLogger != nil {
		bs.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
		return
	}

	if bs.logger != nil {
		bs.logger.Warn(message, logAttrError, err.Error())
	}
}

// logError logs error information at error level if a logger is configured.
func (bs BookStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if bs.contextualLogger != nil {
		bs.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if bs.logger != nil {
		bs.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (bs BookStore) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationMetrics records an operation duration if the metrics collector is configured.
func (bs BookStore) recordDurationMetrics(ctx context.Context, operation string, duration time.Duration) {
	if bs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusSuccess,
	}

	// Use context-aware method if available
	if contextualCollector, ok := bs.metricsCollector.(bookcatalog.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
	} else {
		bs.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	}
}

// recordErrorMetrics records an error counter if the metrics collector is configured.
func (bs BookStore) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if bs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	// Use context-aware method if available
	if contextualCollector, ok := bs.metricsCollector.(bookcatalog.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		bs.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// startSpan starts a tracing span for an operation if the tracing collector is configured.
func (bs BookStore) startSpan(ctx context.Context, operation string) (context.Context, SpanContext) {
	if bs.tracingCollector == nil {
		return ctx, nil
	}

	return bs.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
		spanAttrOperation: operation,
		spanAttrTable:     bs.tableName,
	})
}

// finishSpan finishes a tracing span with the given status if one was started.
func (bs BookStore) finishSpan(span SpanContext, status string) {
	if bs.tracingCollector == nil || span == nil {
		return
	}

	bs.tracingCollector.FinishSpan(span, status, nil)
}
