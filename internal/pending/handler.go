package pending

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/gateway"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Messages shown to the user by the save flow.
const (
	MsgLoginRequired  = "Please log in to save your resume"
	MsgNoConversation = "Please complete the chatbot conversation first"
	MsgSaved          = "Resume saved successfully!"
	maxTitleLength    = 200
)

// Submitter sends a pending record to the remote save endpoint.
type Submitter interface {
	Submit(ctx context.Context, p gateway.Pending, userID, title string) gateway.Result
}

// Handler serves the pending draft of the calling identity.
type Handler struct {
	Store   Store
	Gateway Submitter
	now     func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(store Store, gw Submitter) *Handler {
	return &Handler{Store: store, Gateway: gw, now: time.Now}
}

// RegisterRoutes attaches draft routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume-draft", h.get)
	rg.GET("/resume-draft/status", h.status)
	rg.POST("/resume-draft/validate", h.validate)
	rg.POST("/resume-draft/save", h.save)
	rg.DELETE("/resume-draft", h.discard)
}

type draftResponse struct {
	Ready  bool          `json:"ready"`
	Resume resume.Record `json:"resume"`
}

type saveRequest struct {
	Title string `json:"title"`
}

type saveResponse struct {
	Success  bool     `json:"success"`
	ResumeID string   `json:"resumeId,omitempty"`
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

func (h *Handler) bridge(c *gin.Context) *Bridge {
	return NewBridge(h.Store, middleware.UserIDFromContext(c))
}

func (h *Handler) get(c *gin.Context) {
	ctx := c.Request.Context()
	b := h.bridge(c)
	rec, ok := b.Load(ctx)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no pending resume", nil)
		return
	}
	respond.OK(c, draftResponse{Ready: b.IsReady(ctx), Resume: rec})
}

func (h *Handler) status(c *gin.Context) {
	respond.OK(c, gin.H{"ready": h.bridge(c).IsReady(c.Request.Context())})
}

func (h *Handler) validate(c *gin.Context) {
	rec, ok := h.bridge(c).Load(c.Request.Context())
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no pending resume", nil)
		return
	}
	respond.OK(c, resume.Validate(rec))
}

// save runs the user-initiated save: identity, presence and completeness are
// checked locally before anything is sent.
func (h *Handler) save(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.JSON(c, http.StatusUnauthorized, saveResponse{Error: MsgLoginRequired})
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	title := strings.TrimSpace(req.Title)
	if len(title) > maxTitleLength {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title is too long", nil)
		return
	}
	if title == "" {
		title = gateway.DefaultTitle(h.now())
	}

	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)
	b := h.bridge(c)

	rec, ok := b.Load(ctx)
	if !ok {
		respond.JSON(c, http.StatusNotFound, saveResponse{Error: MsgNoConversation})
		return
	}
	if v := resume.Validate(rec); !v.Valid {
		respond.JSON(c, http.StatusUnprocessableEntity, saveResponse{
			Error:  "Incomplete data: " + strings.Join(v.Errors, ", "),
			Errors: v.Errors,
		})
		return
	}

	res := h.Gateway.Submit(ctx, b, userID, title)
	if res.ResumeID != "" {
		c.Set("resumeId", res.ResumeID)
	}
	switch res.Outcome {
	case gateway.OutcomeSaved:
		respond.JSON(c, http.StatusCreated, saveResponse{Success: true, ResumeID: res.ResumeID, Message: MsgSaved})
	case gateway.OutcomeNoData:
		respond.JSON(c, http.StatusNotFound, saveResponse{Error: res.Error})
	case gateway.OutcomeRejected:
		respond.JSON(c, http.StatusBadGateway, saveResponse{Error: res.Error})
	default:
		respond.JSON(c, http.StatusServiceUnavailable, saveResponse{Error: res.Error})
	}
}

func (h *Handler) discard(c *gin.Context) {
	h.bridge(c).Clear(c.Request.Context())
	respond.NoContent(c)
}
