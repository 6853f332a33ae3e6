package store

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failed remote call.
type ErrorKind int

const (
	// KindTransient covers network faults and 5xx answers; retried.
	KindTransient ErrorKind = iota
	// KindRateLimit is a quota rejection; retried, and it opens the
	// process-wide cool-down.
	KindRateLimit
	// KindTerminal covers auth and malformed-request failures; never retried.
	KindTerminal
	// KindNotFound means the table (or addressed range) does not exist.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRateLimit:
		return "rate_limit"
	case KindTerminal:
		return "terminal"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is a classified failure of one remote operation.
type Error struct {
	Kind   ErrorKind
	Op     string // read, append, batch_write, write_cell, delete_rows
	Table  string
	Status int // HTTP status, 0 for transport-level faults
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("store %s %s: %s (status %d): %v", e.Op, e.Table, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("store %s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status code onto an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindRateLimit
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindTransient
	default:
		return KindTerminal
	}
}

// classifyTransport maps a transport-level error onto an error kind. Context
// cancellation is terminal: the caller gave up, retrying is pointless.
func classifyTransport(err error) ErrorKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindTerminal
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}
	// Connection refused/reset and DNS hiccups arrive as *url.Error wrapping
	// *net.OpError, caught above. Anything else gets one retry class anyway.
	return KindTransient
}

// IsRetryable reports whether a failed call may be attempted again.
func IsRetryable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindTransient || se.Kind == KindRateLimit
	}
	return false
}

// IsRateLimited reports whether the remote store rejected the call for quota.
func IsRateLimited(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindRateLimit
}

// IsNotFound reports whether the addressed table or range does not exist.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindNotFound
}
