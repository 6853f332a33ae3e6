package lifecycle

import (
	"errors"
	"fmt"
)

// ValidationError rejects a request before any remote call is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a pre-write rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StaleIndexError means a claim could not be located even after one forced
// snapshot refresh. The single retry is built in; callers should surface
// this, not loop.
type StaleIndexError struct {
	ClaimID string
}

func (e *StaleIndexError) Error() string {
	return fmt.Sprintf("claim %s not found in the current snapshot", e.ClaimID)
}

// IsStaleIndex reports whether err is a stale-index failure.
func IsStaleIndex(err error) bool {
	var se *StaleIndexError
	return errors.As(err, &se)
}
