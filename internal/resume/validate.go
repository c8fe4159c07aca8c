package resume

import "strings"

// Validation messages, in the order the rules are evaluated.
const (
	MsgNameRequired       = "Name is required"
	MsgEmailRequired      = "Email is required"
	MsgExperienceRequired = "At least one work experience is required"
	MsgSkillRequired      = "At least one skill is required"
)

// ValidationResult reports whether a record is complete enough to submit.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the minimum completeness rules. Every rule is evaluated so
// that all problems are reported together.
func Validate(r Record) ValidationResult {
	errs := []string{}

	if strings.TrimSpace(r.PersonalInfo.Name) == "" {
		errs = append(errs, MsgNameRequired)
	}
	if strings.TrimSpace(r.PersonalInfo.Email) == "" {
		errs = append(errs, MsgEmailRequired)
	}
	if len(r.WorkExperience) == 0 {
		errs = append(errs, MsgExperienceRequired)
	}
	if len(r.Skills) == 0 {
		errs = append(errs, MsgSkillRequired)
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
