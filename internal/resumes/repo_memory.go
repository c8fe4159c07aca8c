package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume // resumeID -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Resume),
	}
}

// Create stores a resume.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[res.ID] = res
	return nil
}

// GetByID returns a live resume owned by userID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.data[resumeID]
	if !ok || res.UserID != userID || res.DeletedAt != nil {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

// ListByUser returns live resumes for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	out := make([]Resume, 0)
	for _, res := range r.data {
		if res.UserID == userID && res.DeletedAt == nil {
			out = append(out, res)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// SoftDelete marks a resume deleted.
func (r *MemoryRepo) SoftDelete(ctx context.Context, userID, resumeID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.data[resumeID]
	if !ok || res.UserID != userID || res.DeletedAt != nil {
		return ErrNotFound
	}
	res.DeletedAt = &at
	r.data[resumeID] = res
	return nil
}

// UpdateStatus sets the status of a live resume.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, resumeID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.data[resumeID]
	if !ok || res.UserID != userID || res.DeletedAt != nil {
		return ErrNotFound
	}
	res.Status = status
	r.data[resumeID] = res
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
