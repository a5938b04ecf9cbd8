// Package store implements the persistence layer: the SQL database handle
// and the user and note repositories.
//
// Two backends are supported through database/sql: PostgreSQL (pgx driver,
// production) and SQLite (development). The backend is selected from the
// DSN; all queries are written to run unchanged on both.
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Driver names accepted by database/sql for the two supported backends.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps the shared *sql.DB connection pool together with the selected
// driver name so that migrations can pick the matching goose dialect.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Driver returns the database/sql driver name the pool was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Open connects to the database selected by the DSN: a "postgres://" or
// "postgresql://" DSN opens a PostgreSQL pool via pgx, anything else is
// treated as a SQLite file path (the development backend).
func Open(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
