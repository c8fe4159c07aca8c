package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/util"
)

const (
	maxWebhookBody = 1 << 20 // 1MB
	defaultLimit   = 20
	maxLimit       = 50
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterWebhook attaches the save endpoint the builder submits to.
func (h *Handler) RegisterWebhook(rg *gin.RouterGroup) {
	rg.POST("/botpress-webhook", h.save)
}

// RegisterRoutes attaches saved resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/download", h.download)
	rg.DELETE("/resumes/:id", h.delete)
}

type webhookResponse struct {
	Success  bool     `json:"success"`
	ResumeID string   `json:"resumeId,omitempty"`
	Error    string   `json:"error,omitempty"`
	Details  []string `json:"details,omitempty"`
}

func (h *Handler) save(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)

	var body any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		respond.JSON(c, http.StatusBadRequest, webhookResponse{Error: "invalid request body"})
		return
	}

	res, err := h.Svc.Save(c.Request.Context(), middleware.RequestIDFromContext(c), body)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.JSON(c, http.StatusBadRequest, webhookResponse{Error: verr.Error(), Details: verr.Problems})
		case errors.Is(err, ErrInvalidInput):
			respond.JSON(c, http.StatusBadRequest, webhookResponse{Error: err.Error()})
		default:
			respond.JSON(c, http.StatusInternalServerError, webhookResponse{Error: "failed to save resume"})
		}
		return
	}

	c.Set("userId", res.UserID)
	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusCreated, webhookResponse{Success: true, ResumeID: res.ID})
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view saved resumes", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	limit := queryInt(c, "limit", defaultLimit)
	if limit < 0 {
		limit = 0
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]Card, 0, len(items))
	for _, r := range items {
		resp = append(resp, toCard(r))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	res, doc, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, DetailResponse{Card: toCard(res), Document: doc})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	res, rc, err := h.Svc.Open(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	defer rc.Close()

	name, err := util.SanitizeFileName(res.Title + ".json")
	if err != nil {
		name = "resume.json"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", documentContentType)
	if res.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(res.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		h.writeLookupError(c, err)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
