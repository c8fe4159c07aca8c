package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
)

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(nil))
	router.OPTIONS("/api/v1/resume-draft", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resume-draft", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier, err := auth.NewHS256("test-secret")
	if err != nil {
		t.Fatalf("NewHS256: %v", err)
	}
	token, err := verifier.Sign(auth.Claims{Sub: "user-42", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name      string
		header    map[string]string
		wantCode  int
		wantUser  string
		wantGuest bool
	}{
		{name: "bearer token", header: map[string]string{"Authorization": "Bearer " + token}, wantCode: http.StatusOK, wantUser: "user-42"},
		{name: "guest header", header: map[string]string{"X-Guest-Id": "g-1"}, wantCode: http.StatusOK, wantUser: "guest:g-1", wantGuest: true},
		{name: "invalid token", header: map[string]string{"Authorization": "Bearer nope"}, wantCode: http.StatusUnauthorized},
		{name: "non bearer scheme", header: map[string]string{"Authorization": "Basic abc"}, wantCode: http.StatusUnauthorized},
		{name: "no identity", header: map[string]string{}, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(verifier))
			var gotUser string
			var gotGuest bool
			router.GET("/whoami", func(c *gin.Context) {
				gotUser = UserIDFromContext(c)
				gotGuest = IsGuestFromContext(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.Code)
			}
			if gotUser != tt.wantUser || gotGuest != tt.wantGuest {
				t.Fatalf("identity = %q guest=%v, want %q guest=%v", gotUser, gotGuest, tt.wantUser, tt.wantGuest)
			}
		})
	}
}
