package resumes

import (
	"time"

	"resume-builder/internal/resume"
)

// Resume statuses. The builder submits StatusComplete; reconciliation
// downgrades documents that fail the completeness rules to StatusDraft.
const (
	StatusComplete = "complete"
	StatusDraft    = "draft"
)

// Resume is a saved resume owned by a user. The document body lives in the
// object store under StorageKey.
type Resume struct {
	ID         string
	UserID     string
	Title      string
	Status     string
	StorageKey string
	SizeBytes  int64
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// Document is the stored JSON body of a saved resume.
type Document struct {
	UserID         string                  `json:"userId"`
	Title          string                  `json:"title"`
	PersonalInfo   resume.PersonalInfo     `json:"personalInfo"`
	WorkExperience []resume.WorkExperience `json:"workExperience"`
	Skills         []string                `json:"skills"`
	Education      []resume.Education      `json:"education"`
	Status         string                  `json:"status"`
}

// Record returns the document body in the collected record shape.
func (d Document) Record() resume.Record {
	rec := resume.Record{
		PersonalInfo:   d.PersonalInfo,
		WorkExperience: d.WorkExperience,
		Skills:         d.Skills,
		Education:      d.Education,
		Certifications: []string{},
	}
	if rec.WorkExperience == nil {
		rec.WorkExperience = []resume.WorkExperience{}
	}
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	if rec.Education == nil {
		rec.Education = []resume.Education{}
	}
	return rec
}
