package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/queue"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

const documentContentType = "application/json"

// Service contains business logic for saved resumes.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	// Queue is optional; when nil no notification is sent.
	Queue queue.Client
	now   func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore, q queue.Client) *Service {
	return &Service{Repo: repo, Store: store, Queue: q, now: time.Now}
}

// Save validates a save request body, stores its document and records the resume.
func (s *Service) Save(ctx context.Context, requestID string, body any) (Resume, error) {
	if err := validateSaveRequest(body); err != nil {
		return Resume{}, err
	}

	fields, _ := body.(map[string]any)
	rawUser, _ := fields["userId"].(string)
	userID := strings.TrimSpace(rawUser)
	rawTitle, _ := fields["title"].(string)
	title := strings.TrimSpace(rawTitle)
	status, _ := fields["status"].(string)
	if status == "" {
		status = StatusComplete
	}

	rec := resume.Parse(fields)
	doc := Document{
		UserID:         userID,
		Title:          title,
		PersonalInfo:   rec.PersonalInfo,
		WorkExperience: rec.WorkExperience,
		Skills:         rec.Skills,
		Education:      rec.Education,
		Status:         status,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return Resume{}, fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	key := storageKey(userID, id)
	size, err := s.Store.Save(ctx, key, documentContentType, bytes.NewReader(payload))
	if err != nil {
		return Resume{}, fmt.Errorf("store document: %w", err)
	}

	res := Resume{
		ID:         id,
		UserID:     userID,
		Title:      title,
		Status:     status,
		StorageKey: key,
		SizeBytes:  size,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("resumes.orphan_document", map[string]any{
				"resume_id":   id,
				"storage_key": key,
				"error":       delErr.Error(),
			})
		}
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}

	metrics.IncResumesSaved()
	telemetry.Info("resumes.saved", map[string]any{
		"request_id": requestID,
		"resume_id":  id,
		"user_id":    userID,
		"size_bytes": size,
	})
	s.notify(ctx, requestID, res)
	return res, nil
}

func (s *Service) notify(ctx context.Context, requestID string, res Resume) {
	if s.Queue == nil {
		return
	}
	msg := queue.NewResumeSaved(res.ID, res.UserID, requestID, s.clock())
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("resumes.notify_failed", map[string]any{
			"request_id": requestID,
			"resume_id":  res.ID,
			"error":      err.Error(),
		})
	}
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get returns a resume and its decoded document.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, Document, error) {
	res, rc, err := s.Open(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, Document{}, err
	}
	defer rc.Close()

	var doc Document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return Resume{}, Document{}, fmt.Errorf("decode document: %w", err)
	}
	return res, doc, nil
}

// Open returns a resume and a reader over its stored document.
func (s *Service) Open(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, nil, ErrInvalidInput
	}
	res, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	rc, err := s.Store.Open(ctx, res.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Resume{}, nil, ErrNotFound
		}
		return Resume{}, nil, fmt.Errorf("open document: %w", err)
	}
	return res, rc, nil
}

// Delete soft-deletes a resume. The stored document is kept.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" || resumeID == "" {
		return ErrInvalidInput
	}
	return s.Repo.SoftDelete(ctx, userID, resumeID, s.clock().UTC())
}

// Reconcile re-checks a saved document against the completeness rules and
// corrects the stored status. It returns the resulting status.
func (s *Service) Reconcile(ctx context.Context, userID, resumeID string) (string, error) {
	res, doc, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}

	want := StatusComplete
	check := resume.Validate(doc.Record())
	if !check.Valid {
		want = StatusDraft
	}
	if res.Status == want {
		return want, nil
	}
	if err := s.Repo.UpdateStatus(ctx, userID, resumeID, want); err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}
	telemetry.Info("resumes.status_reconciled", map[string]any{
		"resume_id": resumeID,
		"user_id":   userID,
		"from":      res.Status,
		"to":        want,
		"problems":  check.Errors,
	})
	return want, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func storageKey(userID, resumeID string) string {
	return path.Join("resumes", util.HashUserKey(userID), resumeID+".json")
}
