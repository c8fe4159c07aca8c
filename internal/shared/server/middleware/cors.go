package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsAllowMethods  = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}, ",")
	corsAllowHeaders  = strings.Join([]string{"Content-Type", "Authorization", "X-Guest-Id", "X-Request-Id", "apikey", "x-client-info"}, ", ")
	corsExposeHeaders = strings.Join([]string{"X-Request-Id", "Retry-After", "Content-Disposition"}, ", ")
)

// CORS echoes allowed origins back with credentials and answers preflight
// requests with 204. "*" allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := originMatcher(allowedOrigins)

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && allowed(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originMatcher(allowedOrigins []string) func(string) bool {
	set := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(string) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return func(origin string) bool {
		_, ok := set[origin]
		return ok
	}
}
