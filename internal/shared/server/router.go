package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/chatbot"
	"resume-builder/internal/pending"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Rate limit groups.
const (
	rateGroupRead  = "READ"
	rateGroupWrite = "WRITE"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config         config.Config
	Verifier       middleware.TokenVerifier
	Health         *health.Service
	DraftHandler   *pending.Handler
	ChatbotHandler *chatbot.Handler
	ResumesHandler *resumes.Handler
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	r.GET("/api/v1/health", func(c *gin.Context) {
		status := deps.Health.Check(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	// Server-to-server save endpoint.
	if deps.ResumesHandler != nil {
		fn := r.Group("/functions/v1", middleware.WebhookKey(deps.Config.WebhookKey))
		deps.ResumesHandler.RegisterWebhook(fn)
	}

	api := r.Group("/api/v1",
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rateRules(),
			DefaultGroup: rateGroupRead,
			GroupFor:     rateGroup,
			Limiter:      deps.RateLimiter,
		}),
	)
	registerMeRoutes(api)
	if deps.DraftHandler != nil {
		deps.DraftHandler.RegisterRoutes(api)
	}
	if deps.ChatbotHandler != nil {
		deps.ChatbotHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}

	return r
}

func rateRules() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		rateGroupRead:  {Rate: 5, Burst: 30},
		rateGroupWrite: {Rate: 0.5, Burst: 5},
	}
}

// rateGroup puts the draft save and chatbot callbacks into the WRITE group.
func rateGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupRead
	}
	path := c.FullPath()
	switch {
	case strings.HasSuffix(path, "/resume-draft/save"), strings.HasSuffix(path, "/chatbot/events"):
		return rateGroupWrite
	default:
		return rateGroupRead
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
