// Package db owns the SQLite database file: opening it, creating the
// schema, and applying column evolutions.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrStorageUnavailable wraps failures to open or create the backing
// database file. Fatal to startup: nothing works without the store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Open opens (or creates) the SQLite database at path, creating the parent
// directory if missing. Foreign-key enforcement and a busy timeout are set
// through the DSN so they apply to every pooled connection, not just the
// first. Callers share the returned handle; database/sql checks a
// connection out per operation and releases it on every exit path.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory %s: %v", ErrStorageUnavailable, dir, err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStorageUnavailable, err)
	}
	if err := database.Ping(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to reach database at %s: %v", ErrStorageUnavailable, path, err)
	}

	return database, nil
}
