package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client wraps a Transport with the read/write discipline every remote call
// needs: proactive pacing, the process-wide cool-down, and bounded retry with
// exponential backoff. Failures come back as classified *Error values; the
// retry budget absorbs transient ones, everything else surfaces immediately.
type Client struct {
	transport Transport
	policy    Policy
	cooldown  *Cooldown
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient builds a client around the given transport. A nil logger disables
// logging.
func NewClient(t Transport, policy Policy, cooldown *Cooldown, limiter *rate.Limiter, logger *zap.Logger) *Client {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if policy.Retryable == nil {
		policy.Retryable = IsRetryable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		transport: t,
		policy:    policy,
		cooldown:  cooldown,
		limiter:   limiter,
		logger:    logger,
	}
}

// ReadTable reads every row of a table, header row first.
func (c *Client) ReadTable(ctx context.Context, table string) ([][]string, error) {
	var values [][]string
	err := c.execute(ctx, "read", table, func(ctx context.Context) error {
		var err error
		values, err = c.transport.ReadTable(ctx, table)
		return err
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Append adds one row after the last data row.
func (c *Client) Append(ctx context.Context, table string, row []string) error {
	return c.execute(ctx, "append", table, func(ctx context.Context) error {
		return c.transport.Append(ctx, table, row)
	})
}

// BatchWrite applies all updates as one request.
func (c *Client) BatchWrite(ctx context.Context, table string, updates []CellUpdate) error {
	return c.execute(ctx, "batch_write", table, func(ctx context.Context) error {
		return c.transport.BatchWrite(ctx, table, updates)
	})
}

// WriteCell applies a single cell update.
func (c *Client) WriteCell(ctx context.Context, table string, update CellUpdate) error {
	return c.execute(ctx, "write_cell", table, func(ctx context.Context) error {
		return c.transport.WriteCell(ctx, table, update)
	})
}

// DeleteRows structurally removes rows, in the order given.
func (c *Client) DeleteRows(ctx context.Context, table string, rows []int) error {
	return c.execute(ctx, "delete_rows", table, func(ctx context.Context) error {
		return c.transport.DeleteRows(ctx, table, rows)
	})
}

// execute runs one logical operation: wait out any active cool-down, take a
// pacing token, issue the call, and retry per policy. A rate-limit answer
// trips the cool-down for every caller in the process.
func (c *Client) execute(ctx context.Context, op, table string, call func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.policy.Backoff(attempt - 1)
			c.logger.Debug("retrying remote call",
				zap.String("op", op),
				zap.String("table", table),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			sleepFunc(backoff)
		}
		if c.cooldown != nil {
			if err := c.cooldown.Wait(ctx); err != nil {
				return err
			}
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := call(ctx)
		if err == nil {
			return nil
		}
		if IsRateLimited(err) {
			c.cooldownTrip()
			c.logger.Warn("remote store rate limited, cooling down",
				zap.String("op", op),
				zap.String("table", table))
		}
		if !c.policy.Retryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("retry budget exhausted after %d attempts: %w", c.policy.MaxAttempts, lastErr)
}

func (c *Client) cooldownTrip() {
	if c.cooldown != nil {
		c.cooldown.Trip()
	}
}
