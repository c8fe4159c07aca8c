package resume

import (
	"reflect"
	"testing"
)

func TestParsePersonalInfoFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want PersonalInfo
	}{
		{
			name: "nested wins",
			raw: map[string]any{
				"personalInfo": map[string]any{"name": "Ada", "email": "ada@example.com", "phone": "555", "location": "London"},
				"name":         "Top",
				"email":        "top@example.com",
			},
			want: PersonalInfo{Name: "Ada", Email: "ada@example.com", Phone: "555", Location: "London"},
		},
		{
			name: "top level when nested missing",
			raw:  map[string]any{"name": "Grace", "email": "grace@example.com", "location": "NYC"},
			want: PersonalInfo{Name: "Grace", Email: "grace@example.com", Location: "NYC"},
		},
		{
			name: "empty nested falls back",
			raw: map[string]any{
				"personalInfo": map[string]any{"name": "", "email": "nested@example.com"},
				"name":         "Top",
			},
			want: PersonalInfo{Name: "Top", Email: "nested@example.com"},
		},
		{
			name: "personalInfo not an object",
			raw:  map[string]any{"personalInfo": "oops", "phone": "123"},
			want: PersonalInfo{Phone: "123"},
		},
		{
			name: "non string values ignored",
			raw:  map[string]any{"personalInfo": map[string]any{"name": 42}, "email": true},
			want: PersonalInfo{},
		},
		{name: "neither present", raw: map[string]any{}, want: PersonalInfo{}},
		{name: "nil payload", raw: nil, want: PersonalInfo{}},
		{name: "scalar payload", raw: "hello", want: PersonalInfo{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tt.raw)
			if got.PersonalInfo != tt.want {
				t.Fatalf("PersonalInfo = %+v, want %+v", got.PersonalInfo, tt.want)
			}
		})
	}
}

func TestParseDefaultsAreNeverNil(t *testing.T) {
	got := Parse(nil)
	if got.WorkExperience == nil || got.Skills == nil || got.Education == nil || got.Certifications == nil {
		t.Fatalf("expected non-nil slices, got %+v", got)
	}
	if len(got.WorkExperience)+len(got.Skills)+len(got.Education)+len(got.Certifications) != 0 {
		t.Fatalf("expected empty slices, got %+v", got)
	}
}

func TestParseStringLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "comma string", in: "Go, Rust,  ", want: []string{"Go", "Rust"}},
		{name: "array drops blanks and non strings", in: []any{"Go", "", 42}, want: []string{"Go"}},
		{name: "array keeps element as given", in: []any{" Go ", "   "}, want: []string{" Go "}},
		{name: "typed string slice", in: []string{"SQL", " "}, want: []string{"SQL"}},
		{name: "number", in: 7.0, want: []string{}},
		{name: "object", in: map[string]any{"a": "b"}, want: []string{}},
		{name: "missing", in: nil, want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(map[string]any{"skills": tt.in, "certifications": tt.in})
			if !reflect.DeepEqual(got.Skills, tt.want) {
				t.Fatalf("Skills = %#v, want %#v", got.Skills, tt.want)
			}
			if !reflect.DeepEqual(got.Certifications, tt.want) {
				t.Fatalf("Certifications = %#v, want %#v", got.Certifications, tt.want)
			}
		})
	}
}

func TestParseExperiencePassThroughVersusSkillFiltering(t *testing.T) {
	raw := map[string]any{
		"workExperience": []any{
			map[string]any{"jobTitle": "Engineer", "companyName": "Acme", "startDate": "2020-01", "isCurrent": true},
			"free text entry",
			map[string]any{},
		},
		"education": []any{
			map[string]any{"institutionName": "MIT", "degreeOrProgram": "BSc", "startDate": 2015},
			nil,
		},
		"skills": []any{"Go", "", nil, 3},
	}

	got := Parse(raw)

	if len(got.WorkExperience) != 3 {
		t.Fatalf("expected every work experience entry to be kept, got %d", len(got.WorkExperience))
	}
	first := got.WorkExperience[0]
	if first.JobTitle != "Engineer" || first.CompanyName != "Acme" || first.StartDate != "2020-01" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if first.IsCurrent == nil || !*first.IsCurrent {
		t.Fatalf("expected isCurrent=true, got %v", first.IsCurrent)
	}
	if got.WorkExperience[1] != (WorkExperience{}) {
		t.Fatalf("expected zero entry for non-object element, got %+v", got.WorkExperience[1])
	}

	if len(got.Education) != 2 {
		t.Fatalf("expected every education entry to be kept, got %d", len(got.Education))
	}
	if got.Education[0].StartDate != "" {
		t.Fatalf("expected mistyped startDate to be dropped, got %q", got.Education[0].StartDate)
	}

	if !reflect.DeepEqual(got.Skills, []string{"Go"}) {
		t.Fatalf("expected filtered skills, got %#v", got.Skills)
	}
}

func TestParseExperienceNonArray(t *testing.T) {
	got := Parse(map[string]any{
		"workExperience": map[string]any{"jobTitle": "Engineer"},
		"education":      "MIT",
	})
	if len(got.WorkExperience) != 0 || got.WorkExperience == nil {
		t.Fatalf("expected empty work experience, got %#v", got.WorkExperience)
	}
	if len(got.Education) != 0 || got.Education == nil {
		t.Fatalf("expected empty education, got %#v", got.Education)
	}
}

func TestParseJSON(t *testing.T) {
	payload := []byte(`{
		"personalInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"workExperience": [{"jobTitle": "Analyst", "companyName": "Engines Ltd", "startDate": "1842"}],
		"skills": "math, poetry",
		"certifications": ["Royal Society"]
	}`)

	got, err := ParseJSON(payload)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.PersonalInfo.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", got.PersonalInfo.Name)
	}
	if !reflect.DeepEqual(got.Skills, []string{"math", "poetry"}) {
		t.Fatalf("unexpected skills %#v", got.Skills)
	}
	if !reflect.DeepEqual(got.Certifications, []string{"Royal Society"}) {
		t.Fatalf("unexpected certifications %#v", got.Certifications)
	}

	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}
