// Package postgresengine provides the PostgreSQL-backed store for Book records.
//
// The engine builds its SQL with goqu from the schema descriptor in the core
// package and executes it through a database adapter, supporting pgxpool.Pool,
// sql.DB, and sqlx.DB connections. It implements the full lifecycle of a Book
// row: insert with storage-assigned id, read by id, field updates, delete,
// and an ordered listing of all rows.
//
// Observability is optional and injected via functional options: a Logger or
// ContextualLogger for SQL and operation logging, a MetricsCollector for
// durations and error counters, and a TracingCollector for spans.
package postgresengine
