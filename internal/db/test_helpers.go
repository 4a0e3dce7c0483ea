package db

import (
	"database/sql"
	"io"
	"log/slog"
)

// NewTestDB wraps an already opened pool for tests. Logging is discarded and
// the pool is capped small; test suites run against a shared local database
// and must not exhaust its connection slots.
func NewTestDB(sqlDB *sql.DB) *DB {
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)

	return &DB{
		DB:     sqlDB,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
