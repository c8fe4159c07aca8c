package gateway

// Outcome classifies a submission result for callers that map it to
// transport status codes or metrics.
type Outcome string

const (
	OutcomeSaved    Outcome = "saved"
	OutcomeNoData   Outcome = "no_data"
	OutcomeRejected Outcome = "rejected"
	OutcomeNetwork  Outcome = "network"
)

// User-facing failure messages.
const (
	MsgNoData       = "No resume data found"
	MsgSaveFailed   = "Failed to save resume"
	MsgNetworkError = "Network error while saving resume"
)

// Result is the outcome of Submit as reported to the user.
type Result struct {
	Success  bool    `json:"success"`
	ResumeID string  `json:"resumeId,omitempty"`
	Error    string  `json:"error,omitempty"`
	Outcome  Outcome `json:"-"`
}
