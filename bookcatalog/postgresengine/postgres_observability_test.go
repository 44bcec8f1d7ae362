package postgresengine_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/libradb/book-catalog-go/bookcatalog/postgresengine"
	"github.com/libradb/book-catalog-go/testutil/fixtures"
	"github.com/libradb/book-catalog-go/testutil/postgresengine/config"
)

// collectingLogger records every log call for assertions.
type collectingLogger struct {
	mu     sync.Mutex
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *collectingLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, msg)
}

func (l *collectingLogger) Info(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *collectingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *collectingLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

// collectingMetrics records metric names for assertions.
type collectingMetrics struct {
	mu        sync.Mutex
	durations []string
	counters  []string
	values    []string
}

func (m *collectingMetrics) RecordDuration(metric string, _ time.Duration, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, metric)
}

func (m *collectingMetrics) IncrementCounter(metric string, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, metric)
}

func (m *collectingMetrics) RecordValue(metric string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, metric)
}

func setupObserved(t testing.TB, logger *collectingLogger, metrics *collectingMetrics) (context.Context, postgresengine.BookStore) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to DB pool in test setup")
	t.Cleanup(connPool.Close)

	bs, err := postgresengine.NewBookStoreFromPGXPool(
		connPool,
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(metrics),
	)
	assert.NoError(t, err, "creating the book store failed")

	fixtures.CreateBooksTable(t, ctxWithTimeout, connPool)
	fixtures.CleanUpBooks(t, ctxWithTimeout, connPool)

	return ctxWithTimeout, bs
}

func Test_Insert_LogsSQLAndOperation(t *testing.T) {
	// setup
	logger := &collectingLogger{}
	ctx, bs := setupObserved(t, logger, &collectingMetrics{})

	// act
	_, insertErr := bs.Insert(ctx, fixtures.FixtureDune())

	// assert
	assert.NoError(t, insertErr)
	assert.NotEmpty(t, logger.debugs, "the executed SQL should be logged at debug level")
	assert.True(t, strings.HasPrefix(logger.debugs[0], "executed sql for: "))
	assert.NotEmpty(t, logger.infos, "the operation outcome should be logged at info level")
	assert.Empty(t, logger.errors)
}

func Test_Insert_RecordsDurationMetric(t *testing.T) {
	// setup
	metrics := &collectingMetrics{}
	ctx, bs := setupObserved(t, &collectingLogger{}, metrics)

	// act
	_, insertErr := bs.Insert(ctx, fixtures.FixtureDune())

	// assert
	assert.NoError(t, insertErr)
	assert.Contains(t, metrics.durations, "bookstore_operation_duration_seconds")
	assert.Empty(t, metrics.counters, "no error counter should be incremented on success")
}

func Test_GetByID_OnMissingBook_DoesNotRecordErrorMetric(t *testing.T) {
	// setup: a miss is a regular outcome, not a database error
	metrics := &collectingMetrics{}
	ctx, bs := setupObserved(t, &collectingLogger{}, metrics)

	// act
	_, getErr := bs.GetByID(ctx, 424242)

	// assert
	assert.Error(t, getErr)
	assert.Empty(t, metrics.counters)
}
