package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/telemetry"
)

// Storage keys and the readiness marker shared with the browser client.
const (
	KeyResumeData  = "resumeData"
	KeyResumeReady = "resumeReady"
	readyMarker    = "true"
)

var errNullRecord = errors.New("stored record is null")

// Bridge keeps at most one pending resume record per scope together with a
// readiness flag that is set whenever a record is saved.
type Bridge struct {
	store Store
	scope string
}

// NewBridge returns a Bridge over store for the given scope.
func NewBridge(store Store, scope string) *Bridge {
	return &Bridge{store: store, scope: scope}
}

// Scope returns the scope the bridge reads and writes.
func (b *Bridge) Scope() string {
	return b.scope
}

// Save replaces the pending record and marks it ready.
func (b *Bridge) Save(ctx context.Context, rec resume.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode record: %w", ErrStorageWrite, err)
	}
	if err := b.store.Set(ctx, b.scope, KeyResumeData, string(data)); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStorageWrite, KeyResumeData, err)
	}
	if err := b.store.Set(ctx, b.scope, KeyResumeReady, readyMarker); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStorageWrite, KeyResumeReady, err)
	}
	return nil
}

// Load returns the pending record exactly as saved; it is decoded, not
// normalized again. A missing, unreadable or undecodable record is reported
// as absent; read and decode failures are logged.
func (b *Bridge) Load(ctx context.Context) (resume.Record, bool) {
	raw, ok, err := b.store.Get(ctx, b.scope, KeyResumeData)
	if err != nil {
		b.logReadFailure(KeyResumeData, err)
		return resume.Record{}, false
	}
	if !ok {
		return resume.Record{}, false
	}
	if strings.TrimSpace(raw) == "null" {
		b.logReadFailure(KeyResumeData, errNullRecord)
		return resume.Record{}, false
	}
	var rec resume.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		b.logReadFailure(KeyResumeData, err)
		return resume.Record{}, false
	}
	return rec, true
}

// IsReady reports whether the readiness marker is set.
func (b *Bridge) IsReady(ctx context.Context) bool {
	val, ok, err := b.store.Get(ctx, b.scope, KeyResumeReady)
	if err != nil {
		b.logReadFailure(KeyResumeReady, err)
		return false
	}
	return ok && val == readyMarker
}

// Clear removes the pending record and the readiness marker.
func (b *Bridge) Clear(ctx context.Context) {
	for _, key := range []string{KeyResumeData, KeyResumeReady} {
		if err := b.store.Remove(ctx, b.scope, key); err != nil {
			telemetry.Warn("pending.clear_failed", map[string]any{
				"scope": b.scope,
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

func (b *Bridge) logReadFailure(key string, err error) {
	telemetry.Warn("pending.read_failed", map[string]any{
		"scope": b.scope,
		"key":   key,
		"error": fmt.Errorf("%w: %w", ErrStorageRead, err).Error(),
	})
}
