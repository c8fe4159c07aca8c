package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHS256SignVerify(t *testing.T) {
	h, err := NewHS256("secret")
	if err != nil {
		t.Fatalf("NewHS256: %v", err)
	}

	token, err := h.Sign(Claims{Sub: "user-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := h.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestHS256RejectsBadTokens(t *testing.T) {
	h, _ := NewHS256("secret")
	other, _ := NewHS256("other")

	foreign, _ := other.Sign(Claims{Sub: "user-1"})
	expired, _ := h.Sign(Claims{Sub: "user-1", Iat: 1, Exp: time.Now().Add(-time.Hour).Unix()})
	valid, _ := h.Sign(Claims{Sub: "user-1"})
	tampered := valid[:strings.LastIndex(valid, ".")] + ".AAAA"

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"tampered":     tampered,
		"garbage":      "not-a-jwt",
	} {
		if _, err := h.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewHS256RequiresSecret(t *testing.T) {
	if _, err := NewHS256("  "); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
