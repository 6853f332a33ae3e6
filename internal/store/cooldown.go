package store

import (
	"context"
	"sync"
	"time"
)

// Cooldown is the process-wide pause taken after the remote store answers
// with a rate-limit error. Any caller observing such an error trips it; every
// caller checks it before issuing a new request, so one quota rejection does
// not cascade into many.
type Cooldown struct {
	mu     sync.Mutex
	period time.Duration
	until  time.Time

	now func() time.Time // stubbed in tests
}

// NewCooldown creates a cool-down gate with the given pause period.
func NewCooldown(period time.Duration) *Cooldown {
	return &Cooldown{period: period, now: time.Now}
}

// Trip records a rate-limit observation. The gate stays closed for the full
// period from now, even if it was already closed.
func (c *Cooldown) Trip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = c.now().Add(c.period)
}

// Remaining returns how long the gate stays closed, zero if open.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d := c.until.Sub(c.now()); d > 0 {
		return d
	}
	return 0
}

// Wait blocks until the gate opens or the context ends.
func (c *Cooldown) Wait(ctx context.Context) error {
	d := c.Remaining()
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
