package store

import "time"

// sleepFunc is swapped out in tests to avoid real backoff delays.
var sleepFunc = time.Sleep

// Policy is the retry policy applied to every remote call. It is a plain
// value injected at construction so the backoff behavior is testable on its
// own.
type Policy struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int

	// BaseDelay is the backoff before the first retry; each further retry
	// doubles it, capped at MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Retryable decides whether a failure is worth another attempt.
	Retryable func(error) bool
}

// DefaultPolicy matches the legacy tool: three attempts, exponential backoff.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		Retryable:   IsRetryable,
	}
}

// Backoff returns the delay before retry number retry (0-based).
func (p Policy) Backoff(retry int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < retry; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
