// Package sqlitestore persists the small amounts of local state the
// integration keeps between runs: the customer's saved delivery address and
// the last successful negotiation candidate per operation. A single SQLite
// file backs both, so the state survives restarts without any external
// service.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orderlink/internal/pkg/errs"

	_ "modernc.org/sqlite"
)

// Store implements ports.KeyValueStore and ports.CandidateCache over one
// SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and ensures
// the schema exists. Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errs.NewValueIsRequiredError("path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// SQLite serializes writers; a single connection avoids busy errors.
	db.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS candidate_cache (
	op  TEXT PRIMARY KEY,
	idx INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ("", nil) when absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// LastSuccess returns the remembered candidate index for the operation and
// whether one is known.
func (s *Store) LastSuccess(ctx context.Context, operation string) (int, bool) {
	var index int
	err := s.db.QueryRowContext(ctx,
		`SELECT idx FROM candidate_cache WHERE op = ?`, operation).Scan(&index)
	if err != nil {
		return 0, false
	}
	return index, true
}

// RememberSuccess records the candidate index that last succeeded for the
// operation.
func (s *Store) RememberSuccess(ctx context.Context, operation string, index int) error {
	if operation == "" {
		return errs.NewValueIsRequiredError("operation")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO candidate_cache (op, idx) VALUES (?, ?)
		 ON CONFLICT (op) DO UPDATE SET idx = excluded.idx`, operation, index)
	if err != nil {
		return fmt.Errorf("remember candidate for %q: %w", operation, err)
	}
	return nil
}
