// Package index derives physical row addresses from table snapshots.
//
// A row address is a disposable value: it is valid only against the snapshot
// it was computed from and must be re-resolved after any refresh or
// structural mutation. Refs therefore carry the snapshot version they came
// from, and nothing in this package caches an address beyond one build.
package index

import (
	"errors"
	"sort"
	"strings"

	"github.com/ravazquez/claimtrack/internal/cache"
)

// ErrNotFound means the identifier does not exist in the snapshot the index
// was built from.
var ErrNotFound = errors.New("identifier not found in snapshot")

// headerRows is the number of non-data rows preceding the first data row in
// the backing table.
const headerRows = 1

// Ref is a physical row address in the backing table, tagged with the
// snapshot version it was derived from.
type Ref struct {
	Table   string
	Row     int // 1-based, header row included
	Version int64
}

// Index maps a domain identifier to a physical row address for exactly one
// snapshot.
type Index struct {
	table   string
	version int64
	rows    map[string]int
}

// Build scans a snapshot and indexes it by the identifier in the given
// column. Identifiers are matched trimmed; when duplicates exist the first
// row wins and later rows are ignored.
func Build(snap *cache.Snapshot, column int) *Index {
	ix := &Index{
		table:   snap.Table,
		version: snap.Version,
		rows:    make(map[string]int, len(snap.Rows)),
	}
	for offset, row := range snap.Rows {
		if column >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[column])
		if id == "" {
			continue
		}
		if _, exists := ix.rows[id]; !exists {
			ix.rows[id] = RowAddress(offset)
		}
	}
	return ix
}

// Version returns the snapshot version this index was built from.
func (ix *Index) Version() int64 { return ix.version }

// Locate resolves an identifier to its physical row address.
func (ix *Index) Locate(id string) (Ref, error) {
	row, ok := ix.rows[strings.TrimSpace(id)]
	if !ok {
		return Ref{}, ErrNotFound
	}
	return Ref{Table: ix.table, Row: row, Version: ix.version}, nil
}

// RowAddress converts a snapshot row offset (0-based data row) to the
// physical 1-based address in the backing table.
func RowAddress(offset int) int {
	return offset + headerRows + 1
}

// RowOffset is the inverse of RowAddress: the 0-based snapshot offset for a
// physical row address.
func RowOffset(address int) int {
	return address - headerRows - 1
}

// DeleteOrder returns the rows sorted descending. Deleting low-to-high would
// shift the not-yet-deleted rows upward and corrupt the remaining addresses
// mid-operation, so multi-row deletes from one snapshot must use this order.
func DeleteOrder(rows []int) []int {
	ordered := make([]int, len(rows))
	copy(ordered, rows)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
	return ordered
}
