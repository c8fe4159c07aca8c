package chatbot

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

const (
	MsgCollected       = "Resume data collected! Click 'Save Resume' to save it."
	MsgProcessingError = "Error processing resume data"
	maxEventSize       = 1 << 20
)

// Handler exposes the widget callback over HTTP.
type Handler struct {
	Collector Collector
}

// NewHandler constructs a Handler.
func NewHandler(collector Collector) *Handler {
	return &Handler{Collector: collector}
}

// RegisterRoutes attaches chatbot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chatbot/events", h.event)
}

type collectedResponse struct {
	Message string        `json:"message"`
	Ready   bool          `json:"ready"`
	Resume  resume.Record `json:"resume"`
}

func (h *Handler) event(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventSize)

	var body any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	data, ok, ignoredType, err := extractResumeData(body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if !ok {
		respond.JSON(c, http.StatusAccepted, gin.H{"ignored": true, "type": ignoredType})
		return
	}

	scope := middleware.UserIDFromContext(c)
	rec, err := h.Collector.HandleResumeData(c.Request.Context(), scope, data)
	if err != nil {
		telemetry.Error("chatbot.collect_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"scope":      scope,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", MsgProcessingError, nil)
		return
	}

	respond.JSON(c, http.StatusCreated, collectedResponse{
		Message: MsgCollected,
		Ready:   true,
		Resume:  rec,
	})
}
