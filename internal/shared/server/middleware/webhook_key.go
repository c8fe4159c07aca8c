package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// WebhookKey guards server-to-server endpoints with a static bearer key.
// Rejections use the {success,error} body those callers expect.
func WebhookKey(key string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(key))
	return func(c *gin.Context) {
		token, ok := bearerToken(strings.TrimSpace(c.GetHeader("Authorization")))
		if !ok || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			telemetry.Warn("webhook.unauthorized", map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
				"configured": len(expected) > 0,
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
