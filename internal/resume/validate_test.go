package resume

import (
	"encoding/json"
	"reflect"
	"testing"
)

func minimalRecord() Record {
	return Record{
		PersonalInfo:   PersonalInfo{Name: "Ada", Email: "ada@example.com"},
		WorkExperience: []WorkExperience{{JobTitle: "Engineer", CompanyName: "Acme", StartDate: "2020"}},
		Skills:         []string{"Go"},
		Education:      []Education{},
		Certifications: []string{},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *Record)
		want   []string
	}{
		{name: "minimal record is valid", mutate: func(r *Record) {}, want: []string{}},
		{
			name: "missing name and email",
			mutate: func(r *Record) {
				r.PersonalInfo.Name = ""
				r.PersonalInfo.Email = ""
			},
			want: []string{MsgNameRequired, MsgEmailRequired},
		},
		{
			name:   "blank name",
			mutate: func(r *Record) { r.PersonalInfo.Name = "   " },
			want:   []string{MsgNameRequired},
		},
		{
			name:   "no experience",
			mutate: func(r *Record) { r.WorkExperience = nil },
			want:   []string{MsgExperienceRequired},
		},
		{
			name:   "no skills",
			mutate: func(r *Record) { r.Skills = []string{} },
			want:   []string{MsgSkillRequired},
		},
		{
			name:   "everything missing keeps rule order",
			mutate: func(r *Record) { *r = Parse(nil) },
			want:   []string{MsgNameRequired, MsgEmailRequired, MsgExperienceRequired, MsgSkillRequired},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := minimalRecord()
			tt.mutate(&rec)
			got := Validate(rec)
			if !reflect.DeepEqual(got.Errors, tt.want) {
				t.Fatalf("Errors = %#v, want %#v", got.Errors, tt.want)
			}
			if got.Valid != (len(tt.want) == 0) {
				t.Fatalf("Valid = %v with errors %v", got.Valid, got.Errors)
			}
		})
	}
}

func TestValidationResultEncodesEmptyErrors(t *testing.T) {
	payload, err := json.Marshal(Validate(minimalRecord()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"valid":true,"errors":[]}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}
