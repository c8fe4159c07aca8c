package resumes

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the resume does not exist for the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError lists the problems found in a save request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Unwrap lets callers match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
