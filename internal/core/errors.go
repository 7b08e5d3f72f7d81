package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means the upstream inference service could
	// not be reached at all (connection refused, DNS failure).
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendTimeout means the inference call exceeded its allotted
	// wall-clock time.
	ErrBackendTimeout = errors.New("backend timed out")
)

// ValidationError rejects malformed client input before any backend or
// storage resource is committed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, v ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, v...)}
}

// BackendError carries a non-success answer from an upstream inference
// service. Status is the upstream HTTP status (or 500 for local process
// failures), Body the raw error text for diagnostics.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}
