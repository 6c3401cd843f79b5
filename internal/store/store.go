// Package store persists flattened metric rows in a SQLite database.
//
// Each analyzed file owns a row in the files table and its metric rows in
// regular_rows or extended_rows, depending on the schema it was flattened
// with. Storing a file again replaces everything previously stored for it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store manages a SQLite metrics database.
// A Store is safe for concurrent use; writes are serialized.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating missing parent
// directories, and initializes the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}
	// One connection serializes writers and avoids SQLITE_BUSY between workers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
