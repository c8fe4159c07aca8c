package resumes

import (
	"errors"
	"testing"
)

func validBody() map[string]any {
	return map[string]any{
		"userId":         "user-1",
		"title":          "Resume - 3/7/2026",
		"status":         "complete",
		"personalInfo":   map[string]any{"name": "Ada", "email": "ada@example.com"},
		"workExperience": []any{map[string]any{"jobTitle": "Engineer", "companyName": "Acme", "startDate": "2020"}},
		"skills":         []any{"Go"},
		"education":      []any{},
	}
}

func TestValidateSaveRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		body    any
		wantErr bool
	}{
		{name: "valid", mutate: func(m map[string]any) {}},
		{name: "status optional", mutate: func(m map[string]any) { delete(m, "status") }},
		{name: "missing user", mutate: func(m map[string]any) { delete(m, "userId") }, wantErr: true},
		{name: "blank title", mutate: func(m map[string]any) { m["title"] = "   " }, wantErr: true},
		{name: "unknown status", mutate: func(m map[string]any) { m["status"] = "published" }, wantErr: true},
		{name: "skills not array", mutate: func(m map[string]any) { m["skills"] = "Go, Rust" }, wantErr: true},
		{name: "skill not string", mutate: func(m map[string]any) { m["skills"] = []any{1.0} }, wantErr: true},
		{name: "not an object", body: "hello", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body := tt.body
			if body == nil {
				m := validBody()
				tt.mutate(m)
				body = m
			}
			err := validateSaveRequest(body)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || len(verr.Problems) == 0 {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput in chain")
			}
		})
	}
}
