package pending

import "errors"

var (
	// ErrStorageWrite indicates the pending record could not be written.
	ErrStorageWrite = errors.New("pending storage write failed")

	// ErrStorageRead indicates the pending record could not be read or decoded.
	// Reads never surface it to callers; it is only logged.
	ErrStorageRead = errors.New("pending storage read failed")
)
