package chatbot

import (
	"context"

	"resume-builder/internal/pending"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// Collector receives completed resume payloads from the chat widget.
type Collector interface {
	HandleResumeData(ctx context.Context, scope string, raw any) (resume.Record, error)
}

// PendingCollector normalizes widget payloads and stores them as the
// pending record of the scope.
type PendingCollector struct {
	Store pending.Store
}

// NewPendingCollector constructs a PendingCollector over store.
func NewPendingCollector(store pending.Store) *PendingCollector {
	return &PendingCollector{Store: store}
}

// HandleResumeData parses raw and saves it, replacing any earlier pending record.
func (p *PendingCollector) HandleResumeData(ctx context.Context, scope string, raw any) (resume.Record, error) {
	rec := resume.Parse(raw)
	if err := pending.NewBridge(p.Store, scope).Save(ctx, rec); err != nil {
		return resume.Record{}, err
	}
	metrics.IncChatbotPayloads()
	telemetry.Info("chatbot.resume_collected", map[string]any{
		"scope":            scope,
		"work_experiences": len(rec.WorkExperience),
		"skills":           len(rec.Skills),
		"education":        len(rec.Education),
		"certifications":   len(rec.Certifications),
	})
	return rec, nil
}

var _ Collector = (*PendingCollector)(nil)
