// internal/fault/fault.go
package fault

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy shared by every component.
// Handlers map these to HTTP responses with errors.Is; wrapped detail is
// logged server-side, never returned to the caller for internal failures.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrUnavailable    = errors.New("unavailable")
	ErrPartialFailure = errors.New("partial failure")
	ErrInternal       = errors.New("internal error")
)

// Validationf wraps ErrValidation with caller detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps ErrNotFound with caller detail.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Internalf wraps ErrInternal with caller detail.
func Internalf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInternal)...)
}

// Code returns the stable wire code for an error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrPartialFailure):
		return "partial_failure"
	default:
		return "internal_error"
	}
}
