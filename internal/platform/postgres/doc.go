// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It also owns the
// connection setup and the embedded schema migrations.
package postgres
