// Package source reads raw catalog tables from workbooks, CSV files and SQL databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

var (
	// ErrEmptySource is returned when a source has no header row.
	ErrEmptySource = errors.New("source has no header row")
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing column")
)

// Table is a header plus the raw data rows of a source.
type Table struct {
	Header []string
	Rows   []types.Row
}

// Column returns the index of the named header column, or -1.
// An exact match wins; otherwise the first case-insensitive match is used.
func (t *Table) Column(name string) int {
	name = strings.TrimSpace(name)
	fallback := -1
	for i, h := range t.Header {
		if h == name {
			return i
		}
		if fallback < 0 && strings.EqualFold(h, name) {
			fallback = i
		}
	}
	return fallback
}

// Reader produces a Table from one catalog source.
type Reader interface {
	Read(ctx context.Context) (*Table, error)
	// Describe names the source for logs and status output.
	Describe() string
}

// FromConfig returns the Reader for the configured catalog source.
func FromConfig(cfg *config.Config) (Reader, error) {
	switch format := cfg.Catalog.ResolvedFormat(); format {
	case config.FormatXLSX:
		return NewWorkbookFile(cfg.Catalog.Source, cfg.Catalog.Sheet), nil
	case config.FormatCSV:
		return NewCSVFile(cfg.Catalog.Source), nil
	case config.FormatSQL:
		cols := cfg.Catalog.Columns
		return NewDatabaseReader(cfg.Database, []string{cols.ID, cols.Name, cols.Owned}), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// FromUpload returns a Reader for an uploaded file. CSV is chosen by
// extension; anything else is parsed as a workbook.
func FromUpload(filename string, r io.Reader, sheet string) Reader {
	if config.FormatFromPath(filename) == config.FormatCSV {
		return NewCSVStream(filename, r)
	}
	return NewWorkbookStream(filename, r, sheet)
}

// headerCells trims header names and drops a UTF-8 byte order mark.
func headerCells(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}
	return header
}
