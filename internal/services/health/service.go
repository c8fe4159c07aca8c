package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service reports process and dependency health.
type Service struct {
	DB *sql.DB
}

// NewService constructs a health service. db may be nil when running on
// in-memory stores.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// Check pings the database when one is configured.
func (s *Service) Check(ctx context.Context) Status {
	if s == nil || s.DB == nil {
		return Status{OK: true, Database: "disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return Status{OK: false, Database: "down"}
	}
	return Status{OK: true, Database: "up"}
}
