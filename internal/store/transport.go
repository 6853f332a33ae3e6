package store

import (
	"context"
	"fmt"
)

// CellUpdate is one positional cell-range write.
type CellUpdate struct {
	// Range is a column-letter+row reference, e.g. "I5".
	Range string
	Value string
}

// Transport executes exactly one remote call per method, with no retry and no
// pacing. Client layers retry, rate limiting and the cool-down on top of it.
type Transport interface {
	// ReadTable returns every row of the table, header row first.
	ReadTable(ctx context.Context, table string) ([][]string, error)

	// Append adds one row after the last data row.
	Append(ctx context.Context, table string, row []string) error

	// BatchWrite applies all updates in a single request.
	BatchWrite(ctx context.Context, table string, updates []CellUpdate) error

	// WriteCell applies a single update; the cache uses it as the fallback
	// when a batch request fails.
	WriteCell(ctx context.Context, table string, update CellUpdate) error

	// DeleteRows structurally removes the given 1-based rows. Rows are
	// submitted in the order given; callers deleting several rows from one
	// snapshot must order them descending.
	DeleteRows(ctx context.Context, table string, rows []int) error
}

// CellRange builds a column-letter+row reference from 1-based coordinates.
func CellRange(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

// ColumnLetter converts a 1-based column number to its letter form
// (1 → A, 27 → AA).
func ColumnLetter(col int) string {
	var s string
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}
