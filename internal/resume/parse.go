package resume

import (
	"encoding/json"
	"strings"
)

// Parse reshapes a loosely-typed chatbot payload into a Record. It never fails:
// missing or mistyped fields become empty strings or empty slices.
//
// Work experience and education arrays are passed through entry by entry
// without validation, while skills and certifications are filtered down to
// non-blank strings.
func Parse(raw any) Record {
	m := asMap(raw)
	info := asMap(m["personalInfo"])

	return Record{
		PersonalInfo: PersonalInfo{
			Name:     firstString(info["name"], m["name"]),
			Email:    firstString(info["email"], m["email"]),
			Phone:    firstString(info["phone"], m["phone"]),
			Location: firstString(info["location"], m["location"]),
		},
		WorkExperience: parseWorkExperience(m["workExperience"]),
		Skills:         parseStringList(m["skills"]),
		Education:      parseEducation(m["education"]),
		Certifications: parseStringList(m["certifications"]),
	}
}

// ParseJSON decodes a JSON document and runs it through Parse.
func ParseJSON(data []byte) (Record, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, err
	}
	return Parse(raw), nil
}

func asMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	default:
		return map[string]any{}
	}
}

// firstString returns the first candidate that is a non-empty string.
func firstString(candidates ...any) string {
	for _, c := range candidates {
		if s, ok := c.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) *bool {
	b, ok := m[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, it := range t {
			out = append(out, it)
		}
		return out, true
	default:
		return nil, false
	}
}

func parseWorkExperience(v any) []WorkExperience {
	items, ok := asSlice(v)
	if !ok {
		return []WorkExperience{}
	}
	out := make([]WorkExperience, 0, len(items))
	for _, it := range items {
		m := asMap(it)
		out = append(out, WorkExperience{
			JobTitle:    stringField(m, "jobTitle"),
			CompanyName: stringField(m, "companyName"),
			Location:    stringField(m, "location"),
			StartDate:   stringField(m, "startDate"),
			EndDate:     stringField(m, "endDate"),
			IsCurrent:   boolField(m, "isCurrent"),
			Description: stringField(m, "description"),
		})
	}
	return out
}

func parseEducation(v any) []Education {
	items, ok := asSlice(v)
	if !ok {
		return []Education{}
	}
	out := make([]Education, 0, len(items))
	for _, it := range items {
		m := asMap(it)
		out = append(out, Education{
			InstitutionName: stringField(m, "institutionName"),
			DegreeOrProgram: stringField(m, "degreeOrProgram"),
			FieldOfStudy:    stringField(m, "fieldOfStudy"),
			StartDate:       stringField(m, "startDate"),
			EndDate:         stringField(m, "endDate"),
			IsCurrent:       boolField(m, "isCurrent"),
		})
	}
	return out
}

// parseStringList accepts an array of strings or a single comma separated
// string. Array elements are kept as given when their trimmed form is
// non-empty; comma separated pieces are trimmed.
func parseStringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, piece := range strings.Split(t, ",") {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
