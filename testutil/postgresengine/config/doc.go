// Package config provides database connection configurations for the
// PostgreSQL book store tests, one constructor per supported connection
// type (pgxpool.Pool, sql.DB, sqlx.DB).
package config
