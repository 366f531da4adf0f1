// Package catalog turns source tables into generation buckets and holds the
// current in-memory snapshot.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// Row-level failures. A row failing with one of these is dropped.
var (
	ErrMissingID   = errors.New("missing id")
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidName = errors.New("name is not non-empty text")
)

const (
	// maxRecordedSkips caps LoadStats.Skips; the counters stay exact.
	maxRecordedSkips = 20
	// maxID keeps ids within a 32-bit int.
	maxID = 1<<31 - 1
)

// Skip describes one dropped row.
type Skip struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// LoadStats summarizes one load.
type LoadStats struct {
	Rows       int    `json:"rows"`
	Loaded     int    `json:"loaded"`
	Skipped    int    `json:"skipped"`
	OutOfRange int    `json:"out_of_range"`
	Duplicates int    `json:"duplicates"`
	Skips      []Skip `json:"skips,omitempty"`
}

// RowResult is the outcome of parsing one row: a record, or the reason it was dropped.
type RowResult struct {
	Line   int
	Record types.Record
	Err    error
}

// OK reports whether the row produced a record.
func (r RowResult) OK() bool {
	return r.Err == nil
}

// Loader builds snapshots from source tables.
type Loader struct {
	ranges  *generation.Table
	columns config.ColumnsConfig
	log     *logger.Logger
}

// NewLoader creates a Loader. A nil log discards output.
func NewLoader(ranges *generation.Table, columns config.ColumnsConfig, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{ranges: ranges, columns: columns, log: log}
}

// columnIndex holds the header positions of the catalog columns; -1 when absent.
type columnIndex struct {
	id, name, owned int
}

// Build parses every row of tbl and groups the surviving records by generation.
// Only a missing id column fails the build; row problems are counted in Stats.
func (l *Loader) Build(tbl *source.Table) (*Snapshot, error) {
	if tbl == nil {
		return nil, source.ErrEmptySource
	}

	cols := columnIndex{
		id:    tbl.Column(l.columns.ID),
		name:  tbl.Column(l.columns.Name),
		owned: tbl.Column(l.columns.Owned),
	}
	if cols.id < 0 {
		return nil, fmt.Errorf("%w %q", source.ErrMissingColumn, l.columns.ID)
	}
	if cols.name < 0 {
		l.log.Warnw("Name column not found, every row will be skipped", "column", l.columns.Name)
	}
	if cols.owned < 0 {
		l.log.Warnw("Owned column not found, every row will be skipped", "column", l.columns.Owned)
	}

	snap := newSnapshot(l.ranges)
	stats := &snap.Stats

	for _, row := range tbl.Rows {
		if row.Blank() {
			continue
		}
		stats.Rows++

		res := l.parseRow(row, cols)
		if !res.OK() {
			stats.Skipped++
			if len(stats.Skips) < maxRecordedSkips {
				stats.Skips = append(stats.Skips, Skip{Line: res.Line, Reason: res.Err.Error()})
			}
			l.log.Debugw("Skipping row", "line", res.Line, "reason", res.Err)
			continue
		}

		r, ok := l.ranges.Locate(res.Record.ID)
		if !ok {
			stats.OutOfRange++
			continue
		}

		if snap.add(r.Key, res.Record) {
			stats.Duplicates++
		}
		stats.Loaded++
	}

	return snap, nil
}

// parseRow coerces one row into a record.
func (l *Loader) parseRow(row types.Row, cols columnIndex) RowResult {
	res := RowResult{Line: row.Line}

	rawID := row.Cell(cols.id)
	if types.IsMissing(rawID) {
		res.Err = ErrMissingID
		return res
	}
	id, ok := types.ToInt64(rawID)
	if !ok || id <= 0 || id > int64(maxID) {
		res.Err = fmt.Errorf("%w: %v", ErrInvalidID, rawID)
		return res
	}

	if cols.name < 0 {
		res.Err = fmt.Errorf("%w %q", source.ErrMissingColumn, l.columns.Name)
		return res
	}
	if cols.owned < 0 {
		res.Err = fmt.Errorf("%w %q", source.ErrMissingColumn, l.columns.Owned)
		return res
	}

	name, ok := types.ToString(row.Cell(cols.name))
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		res.Err = ErrInvalidName
		return res
	}

	res.Record = types.Record{
		ID:    int(id),
		Name:  name,
		Owned: types.ToBool(row.Cell(cols.owned)),
	}
	return res
}
