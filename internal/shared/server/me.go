package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type meResponse struct {
	UserID  string `json:"userId"`
	IsGuest bool   `json:"isGuest"`
	Email   string `json:"email,omitempty"`
	// CanSave is false for guests; saving a draft requires a signed-in user.
	CanSave bool `json:"canSave"`
}

func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		guest := middleware.IsGuestFromContext(c)
		respond.OK(c, meResponse{
			UserID:  userID,
			IsGuest: guest,
			Email:   middleware.UserEmailFromContext(c),
			CanSave: !guest,
		})
	})
}
