package source

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// WorkbookReader reads the catalog from an .xlsx workbook.
type WorkbookReader struct {
	name  string
	sheet string
	open  func() (*excelize.File, error)
}

// NewWorkbookFile reads the workbook at path. An empty sheet selects the first sheet.
func NewWorkbookFile(path, sheet string) *WorkbookReader {
	return &WorkbookReader{
		name:  path,
		sheet: sheet,
		open:  func() (*excelize.File, error) { return excelize.OpenFile(path) },
	}
}

// NewWorkbookStream reads a workbook from r, typically an upload. It can be read once.
func NewWorkbookStream(name string, r io.Reader, sheet string) *WorkbookReader {
	return &WorkbookReader{
		name:  name,
		sheet: sheet,
		open:  func() (*excelize.File, error) { return excelize.OpenReader(r) },
	}
}

// Describe returns the workbook name.
func (w *WorkbookReader) Describe() string {
	return w.name
}

// Read opens the workbook and returns the selected sheet as a Table.
func (w *WorkbookReader) Read(ctx context.Context) (*Table, error) {
	f, err := w.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", w.name, err)
	}
	defer f.Close()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %q: %w", w.name, ErrEmptySource)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %q: %w", sheet, w.name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %q sheet %q: %w", w.name, sheet, ErrEmptySource)
	}

	table := &Table{
		Header: headerCells(rows[0]),
		Rows:   make([]types.Row, 0, len(rows)-1),
	}

	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells := make([]interface{}, len(rows[i]))
		for col, raw := range rows[i] {
			cells[col] = workbookCell(f, sheet, col+1, i+1, raw)
		}
		table.Rows = append(table.Rows, types.Row{Line: i + 1, Cells: cells})
	}

	return table, nil
}

// workbookCell converts a raw cell value using the cell's stored type, so a
// number typed into the name column stays a number.
func workbookCell(f *excelize.File, sheet string, col, row int, raw string) interface{} {
	if raw == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return raw
	case excelize.CellTypeError:
		return nil
	default:
		// Unset, number and date cells hold numeric text.
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
		return raw
	}
}
