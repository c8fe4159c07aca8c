package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWriteIncludesFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("pending.read_failed", map[string]any{
		"scope": "user-1",
		"error": errors.New("boom"),
		"level": "overridden",
	})

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected level warn, got %v", payload["level"])
	}
	if payload["msg"] != "pending.read_failed" {
		t.Fatalf("unexpected msg %v", payload["msg"])
	}
	if payload["error"] != "boom" {
		t.Fatalf("expected error string, got %v", payload["error"])
	}
	if payload["scope"] != "user-1" {
		t.Fatalf("unexpected scope %v", payload["scope"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
}
