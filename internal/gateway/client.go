package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const (
	savePath          = "/functions/v1/botpress-webhook"
	statusComplete    = "complete"
	defaultTimeout    = 15 * time.Second
	maxResponseLength = 1 << 20
)

// Pending is the local pending-record area Submit reads from and clears on success.
type Pending interface {
	Load(ctx context.Context) (resume.Record, bool)
	Clear(ctx context.Context)
}

// Client submits pending resume records to the remote save endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New constructs a Client. A non-positive timeout uses the default.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// submitRequest is the save endpoint body. Certifications are not part of it.
type submitRequest struct {
	UserID         string                  `json:"userId"`
	Title          string                  `json:"title"`
	PersonalInfo   resume.PersonalInfo     `json:"personalInfo"`
	WorkExperience []resume.WorkExperience `json:"workExperience"`
	Skills         []string                `json:"skills"`
	Education      []resume.Education      `json:"education"`
	Status         string                  `json:"status"`
}

type submitResponse struct {
	Success  bool   `json:"success"`
	ResumeID string `json:"resumeId"`
	Error    string `json:"error"`
}

// Submit sends the pending record for userID under title. The pending record
// is cleared only when the endpoint confirms the save; on any failure it is
// kept so the user can retry. Submit makes a single attempt.
func (c *Client) Submit(ctx context.Context, p Pending, userID, title string) Result {
	rec, ok := p.Load(ctx)
	if !ok {
		return Result{Success: false, Error: MsgNoData, Outcome: OutcomeNoData}
	}

	metrics.IncResumeSubmit()
	start := time.Now()
	res := c.post(ctx, userID, title, rec)
	metrics.ObserveResumeSubmitDurationMs(float64(time.Since(start).Milliseconds()))

	if !res.Success {
		metrics.IncResumeSubmitFailed()
		return res
	}
	metrics.IncResumeSubmitSucceeded()
	// The save is confirmed remotely, so the pending record goes even if the
	// caller has gone away.
	p.Clear(context.WithoutCancel(ctx))
	return res
}

func (c *Client) post(ctx context.Context, userID, title string, rec resume.Record) Result {
	body, err := json.Marshal(submitRequest{
		UserID:         userID,
		Title:          title,
		PersonalInfo:   rec.PersonalInfo,
		WorkExperience: rec.WorkExperience,
		Skills:         rec.Skills,
		Education:      rec.Education,
		Status:         statusComplete,
	})
	if err != nil {
		return c.networkFailure(userID, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+savePath, bytes.NewReader(body))
	if err != nil {
		return c.networkFailure(userID, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return c.networkFailure(userID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLength))
	if err != nil {
		return c.networkFailure(userID, fmt.Errorf("read response: %w", err))
	}
	var out submitResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return c.networkFailure(userID, fmt.Errorf("decode response status=%d: %w", resp.StatusCode, err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out.Success {
		telemetry.Info("resume.submit_succeeded", map[string]any{
			"user_id":   userID,
			"resume_id": out.ResumeID,
		})
		return Result{Success: true, ResumeID: out.ResumeID, Outcome: OutcomeSaved}
	}

	msg := out.Error
	if msg == "" {
		msg = MsgSaveFailed
	}
	telemetry.Warn("resume.submit_rejected", map[string]any{
		"user_id": userID,
		"status":  resp.StatusCode,
		"error":   msg,
	})
	return Result{Success: false, Error: msg, Outcome: OutcomeRejected}
}

func (c *Client) networkFailure(userID string, err error) Result {
	telemetry.Error("resume.submit_network_error", map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return Result{Success: false, Error: MsgNetworkError, Outcome: OutcomeNetwork}
}

// DefaultTitle returns the title used when the user does not provide one,
// e.g. "Resume - 3/7/2026".
func DefaultTitle(now time.Time) string {
	return "Resume - " + now.Format("1/2/2006")
}
