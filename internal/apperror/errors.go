package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure classes the API surfaces.
// Services wrap these with context; the HTTP error handler maps them to
// status codes with errors.Is.
var (
	// ErrValidation: caller supplied empty or invalid input. Not retried.
	ErrValidation = errors.New("validation error")

	// ErrPrecondition: the entity is not in a state that allows the
	// requested transition (e.g. permanently deleting a non-trashed
	// notebook).
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotFound: entity absent or already deleted.
	ErrNotFound = errors.New("not found")

	// ErrStore: the persistent store failed. Opaque cause, safe for the
	// caller to retry manually.
	ErrStore = errors.New("store error")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Store wraps a backend failure, keeping the cause in the chain.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
