package resume

// PersonalInfo holds the contact block of a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// WorkExperience is one role in the work history.
type WorkExperience struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	IsCurrent   *bool  `json:"isCurrent,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one entry in the education history.
type Education struct {
	InstitutionName string `json:"institutionName"`
	DegreeOrProgram string `json:"degreeOrProgram"`
	FieldOfStudy    string `json:"fieldOfStudy,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	IsCurrent       *bool  `json:"isCurrent,omitempty"`
}

// Record is the canonical resume shape collected from the chatbot. Every
// slice is non-nil once produced by Parse.
type Record struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Skills         []string         `json:"skills"`
	Education      []Education      `json:"education"`
	Certifications []string         `json:"certifications"`
}
