package workerproc

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
)

type fakeReconciler struct {
	calls []string
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, userID, resumeID string) (string, error) {
	f.calls = append(f.calls, userID+"/"+resumeID)
	return resumes.StatusComplete, f.err
}

func encode(t *testing.T, msg queue.Message) string {
	t.Helper()
	body, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	return string(body)
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: "  "},
		{name: "bad json", body: "{nope"},
		{name: "missing ids", body: `{"requestId":"r1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMessage(tt.body)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !Unrecoverable(err) {
				t.Fatalf("expected %T to be unrecoverable", err)
			}
		})
	}

	body := encode(t, queue.NewResumeSaved("res-1", "user-1", "req-1", time.Now()))
	msg, meta, err := ParseMessage(body)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.ResumeID != "res-1" || meta.BodyLen != len(body) || len(meta.BodySHA) != 64 {
		t.Fatalf("unexpected parse result %+v %+v", msg, meta)
	}
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()
	body := encode(t, queue.NewResumeSaved("res-1", "user-1", "req-1", time.Now()))

	proc := &fakeReconciler{}
	if err := HandleMessage(ctx, proc, body); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(proc.calls) != 1 || proc.calls[0] != "user-1/res-1" {
		t.Fatalf("unexpected calls %v", proc.calls)
	}

	parsed, _, _ := ParseMessage(body)
	proc = &fakeReconciler{}
	if err := HandleMessage(WithParsedMessage(ctx, parsed), proc, ""); err != nil {
		t.Fatalf("HandleMessage with parsed message: %v", err)
	}
	if len(proc.calls) != 1 {
		t.Fatalf("expected parsed message to be reused")
	}
}

func TestHandleMessageFailures(t *testing.T) {
	ctx := context.Background()
	body := encode(t, queue.NewResumeSaved("res-1", "user-1", "req-1", time.Now()))

	err := HandleMessage(ctx, &fakeReconciler{err: errors.New("db down")}, body)
	var procErr ErrProcess
	if !errors.As(err, &procErr) || procErr.ResumeID != "res-1" {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if Unrecoverable(err) {
		t.Fatalf("transient failure must be retried")
	}

	err = HandleMessage(ctx, &fakeReconciler{err: resumes.ErrNotFound}, body)
	if !Unrecoverable(err) {
		t.Fatalf("deleted resume should be unrecoverable, got %v", err)
	}

	if err := HandleMessage(ctx, nil, body); err == nil {
		t.Fatalf("expected error without a reconciler")
	}
}
