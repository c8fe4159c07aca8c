package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id, user_id, title, status, storage_key, size_bytes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.Title,
		res.Status,
		res.StorageKey,
		res.SizeBytes,
		res.CreatedAt,
	)
	return err
}

// GetByID returns a live resume owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, title, status, storage_key, size_bytes, created_at
FROM resumes
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
LIMIT 1`
	var res Resume
	err := r.DB.QueryRowContext(ctx, query, resumeID, userID).Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Status,
		&res.StorageKey,
		&res.SizeBytes,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// ListByUser lists live resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, status, storage_key, size_bytes, created_at
FROM resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		var res Resume
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Title,
			&res.Status,
			&res.StorageKey,
			&res.SizeBytes,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// SoftDelete marks a resume deleted.
func (r *PGRepo) SoftDelete(ctx context.Context, userID, resumeID string, at time.Time) error {
	const query = `
UPDATE resumes
SET deleted_at = $1
WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`
	result, err := r.DB.ExecContext(ctx, query, at, resumeID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets the status of a live resume.
func (r *PGRepo) UpdateStatus(ctx context.Context, userID, resumeID, status string) error {
	const query = `
UPDATE resumes
SET status = $1
WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`
	result, err := r.DB.ExecContext(ctx, query, status, resumeID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
