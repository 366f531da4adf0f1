package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// CSVReader reads the catalog from comma-separated text with a header line.
type CSVReader struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewCSVFile reads the CSV file at path.
func NewCSVFile(path string) *CSVReader {
	return &CSVReader{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewCSVStream reads CSV text from r, typically an upload. It can be read once.
func NewCSVStream(name string, r io.Reader) *CSVReader {
	return &CSVReader{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// Describe returns the file name.
func (c *CSVReader) Describe() string {
	return c.name
}

// Read parses the whole input. Every field is text; empty fields are missing.
func (c *CSVReader) Read(ctx context.Context) (*Table, error) {
	rc, err := c.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %q: %w", c.name, err)
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv %q: %w", c.name, ErrEmptySource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %q: %w", c.name, err)
	}

	table := &Table{Header: headerCells(header)}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv %q: %w", c.name, err)
		}

		line, _ := r.FieldPos(0)
		cells := make([]interface{}, len(record))
		for i, v := range record {
			if v != "" {
				cells[i] = v
			}
		}
		table.Rows = append(table.Rows, types.Row{Line: line, Cells: cells})
	}

	return table, nil
}
