package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for saved resumes.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	SoftDelete(ctx context.Context, userID, resumeID string, at time.Time) error
	UpdateStatus(ctx context.Context, userID, resumeID, status string) error
}
