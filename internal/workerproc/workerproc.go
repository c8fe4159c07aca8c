package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
)

// Reconciler re-checks a saved resume after it was stored.
type Reconciler interface {
	Reconcile(ctx context.Context, userID, resumeID string) (string, error)
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingResumeID indicates a message without the resume or user id.
type ErrMissingResumeID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingResumeID) Error() string { return "missing resume id or user id" }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	ResumeID  string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process resume event"
	}
	return "process resume event: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.ResumeID) == "" || strings.TrimSpace(msg.UserID) == "" {
		return msg, meta, ErrMissingResumeID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and processes a message payload.
func HandleMessage(ctx context.Context, proc Reconciler, body string) error {
	if proc == nil {
		return errors.New("resume service not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(msg.ResumeID) == "" || strings.TrimSpace(msg.UserID) == "" {
		return ErrMissingResumeID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	if _, err := proc.Reconcile(ctx, msg.UserID, msg.ResumeID); err != nil {
		return ErrProcess{ResumeID: msg.ResumeID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}

// Unrecoverable reports whether retrying the message can never succeed.
func Unrecoverable(err error) bool {
	var (
		empty   ErrEmptyBody
		decode  ErrDecode
		missing ErrMissingResumeID
	)
	switch {
	case errors.As(err, &empty), errors.As(err, &decode), errors.As(err, &missing):
		return true
	case errors.Is(err, resumes.ErrNotFound):
		// The resume was deleted before the event was processed.
		return true
	default:
		return false
	}
}
