package pending

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore implements Store on the pending_kv table.
type PGStore struct {
	DB  *sql.DB
	now func() time.Time
}

// NewPGStore constructs a PGStore.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db, now: time.Now}
}

// Get returns the value stored under key for scope.
func (s *PGStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	const query = `
SELECT value
FROM pending_kv
WHERE scope = $1 AND key = $2`
	var value string
	err := s.DB.QueryRowContext(ctx, query, scope, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set upserts value under key for scope.
func (s *PGStore) Set(ctx context.Context, scope, key, value string) error {
	const query = `
INSERT INTO pending_kv (scope, key, value, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (scope, key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	_, err := s.DB.ExecContext(ctx, query, scope, key, value, now().UTC())
	return err
}

// Remove deletes key for scope.
func (s *PGStore) Remove(ctx context.Context, scope, key string) error {
	const query = `
DELETE FROM pending_kv
WHERE scope = $1 AND key = $2`
	_, err := s.DB.ExecContext(ctx, query, scope, key)
	return err
}

var _ Store = (*PGStore)(nil)
