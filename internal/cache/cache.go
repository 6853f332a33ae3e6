package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ravazquez/claimtrack/internal/model"
	"github.com/ravazquez/claimtrack/internal/store"
)

// Store is the slice of the remote store client the cache needs.
type Store interface {
	ReadTable(ctx context.Context, table string) ([][]string, error)
	Append(ctx context.Context, table string, row []string) error
	BatchWrite(ctx context.Context, table string, updates []store.CellUpdate) error
	WriteCell(ctx context.Context, table string, update store.CellUpdate) error
	DeleteRows(ctx context.Context, table string, rows []int) error
}

// Snapshot is a materialized, versioned copy of one remote table. Rows are
// data rows only (the header row is consumed during materialization) and are
// padded to the schema width, so positional column constants are always in
// range. Row addresses derived from a snapshot are valid only against that
// snapshot's version.
type Snapshot struct {
	Table     string
	Version   int64
	Header    []string
	Rows      [][]string
	FetchedAt time.Time
}

// Cache is the per-table read-through snapshot cache. Reads serve the cached
// snapshot while it is younger than the TTL and refetch otherwise; every
// successful write invalidates the whole table, never patching a snapshot in
// place, because the store's effective state after a write is not guaranteed
// to equal the locally assumed delta.
type Cache struct {
	store     Store
	ttl       time.Duration
	snapshots *gocache.Cache
	version   atomic.Int64
	logger    *zap.Logger
}

// New creates a cache over the given store. A nil logger disables logging.
func New(s Store, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:     s,
		ttl:       ttl,
		snapshots: gocache.New(ttl, 10*time.Minute),
		logger:    logger,
	}
}

// Read returns the current snapshot for the schema's table, refetching if the
// cached one is missing or expired.
func (c *Cache) Read(ctx context.Context, schema model.Schema) (*Snapshot, error) {
	if v, ok := c.snapshots.Get(schema.Table); ok {
		return v.(*Snapshot), nil
	}
	return c.Refresh(ctx, schema)
}

// Refresh drops any cached snapshot and fetches a fresh one.
func (c *Cache) Refresh(ctx context.Context, schema model.Schema) (*Snapshot, error) {
	values, err := c.store.ReadTable(ctx, schema.Table)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", schema.Table, err)
	}

	snap := &Snapshot{
		Table:     schema.Table,
		Version:   c.version.Add(1),
		FetchedAt: time.Now(),
	}
	if len(values) > 0 {
		snap.Header = values[0]
	}
	if len(values) > 1 {
		snap.Rows = make([][]string, 0, len(values)-1)
		for _, raw := range values[1:] {
			snap.Rows = append(snap.Rows, padRow(raw, schema.Width()))
		}
	}

	c.snapshots.Set(schema.Table, snap, c.ttl)
	c.logger.Debug("table snapshot refreshed",
		zap.String("table", schema.Table),
		zap.Int64("version", snap.Version),
		zap.Int("rows", len(snap.Rows)))
	return snap, nil
}

// WriteBatch issues all updates as one request. If the batch call fails it
// falls back to writing each cell individually and aggregates every
// individual failure instead of stopping at the first. The table's snapshot
// is invalidated after any success.
func (c *Cache) WriteBatch(ctx context.Context, table string, updates []store.CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	if err := c.store.BatchWrite(ctx, table, updates); err != nil {
		c.logger.Warn("batch write failed, falling back to per-cell writes",
			zap.String("table", table),
			zap.Int("updates", len(updates)),
			zap.Error(err))

		var combined error
		for _, u := range updates {
			if werr := c.store.WriteCell(ctx, table, u); werr != nil {
				combined = multierr.Append(combined, fmt.Errorf("cell %s: %w", u.Range, werr))
			}
		}
		if combined != nil {
			return fmt.Errorf("write batch %s: %w", table, combined)
		}
	}

	c.Invalidate(table)
	return nil
}

// Append adds one row to the table and invalidates its snapshot.
func (c *Cache) Append(ctx context.Context, table string, row []string) error {
	if err := c.store.Append(ctx, table, row); err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	c.Invalidate(table)
	return nil
}

// DeleteRows removes the given physical rows and invalidates the snapshot.
// Rows must already be in descending order when several come from one
// snapshot.
func (c *Cache) DeleteRows(ctx context.Context, table string, rows []int) error {
	if len(rows) == 0 {
		return nil
	}
	if err := c.store.DeleteRows(ctx, table, rows); err != nil {
		return fmt.Errorf("delete rows %s: %w", table, err)
	}
	c.Invalidate(table)
	return nil
}

// Invalidate drops the cached snapshot so the next read refetches. Partial
// invalidation does not exist: a table is either fully fresh or fully stale.
func (c *Cache) Invalidate(table string) {
	c.snapshots.Delete(table)
}

// padRow extends a raw row with empty cells up to width; columns absent in
// the remote table default to empty rather than erroring. Extra cells beyond
// the declared schema are preserved untouched.
func padRow(raw []string, width int) []string {
	if len(raw) >= width {
		return raw
	}
	row := make([]string, width)
	copy(row, raw)
	return row
}
