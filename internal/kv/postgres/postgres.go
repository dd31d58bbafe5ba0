package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docshelf/internal/kv"
)

// PostgresStore is a PostgreSQL implementation of kv.Store.
// It uses database/sql with parameterized queries and contains no business logic.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ kv.Store = (*PostgresStore)(nil)

// Get fetches the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM kv_entries WHERE key = $1`
	var value string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", kv.ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value under key and refreshes updated_at.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the row for key. Removing an absent key is not an error.
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
