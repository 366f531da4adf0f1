package source

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newWorkbook builds a workbook whose first sheet holds rows, starting at A1.
func newWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

var workbookRows = [][]interface{}{
	{"Dex Number", "Name", "In Collection Check"},
	{1, "Bulbasaur", true},
	{152, "Chikorita", false},
	{25.0, 42, "yes"},
}

func TestWorkbookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Pokedex.xlsx")
	require.NoError(t, newWorkbook(t, workbookRows).SaveAs(path))

	r := NewWorkbookFile(path, "")
	assert.Equal(t, path, r.Describe())

	tbl, err := r.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Dex Number", "Name", "In Collection Check"}, tbl.Header)
	require.Len(t, tbl.Rows, 3)

	first := tbl.Rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, float64(1), first.Cell(0))
	assert.Equal(t, "Bulbasaur", first.Cell(1))
	assert.Equal(t, true, first.Cell(2))

	assert.Equal(t, false, tbl.Rows[1].Cell(2))

	// Number typed into the name column stays numeric.
	third := tbl.Rows[2]
	assert.Equal(t, float64(25), third.Cell(0))
	assert.Equal(t, float64(42), third.Cell(1))
	assert.Equal(t, "yes", third.Cell(2))
}

func TestWorkbookStream(t *testing.T) {
	buf, err := newWorkbook(t, workbookRows).WriteToBuffer()
	require.NoError(t, err)

	tbl, err := NewWorkbookStream("upload.xlsx", bytes.NewReader(buf.Bytes()), "Sheet1").Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)
}

func TestWorkbookNamedSheet(t *testing.T) {
	f := newWorkbook(t, [][]interface{}{{"ignored"}})
	_, err := f.NewSheet("Dex")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Dex", "A1", &[]interface{}{"Dex Number", "Name"}))
	require.NoError(t, f.SetSheetRow("Dex", "A2", &[]interface{}{4, "Charmander"}))

	path := filepath.Join(t.TempDir(), "sheets.xlsx")
	require.NoError(t, f.SaveAs(path))

	tbl, err := NewWorkbookFile(path, "Dex").Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dex Number", "Name"}, tbl.Header)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Charmander", tbl.Rows[0].Cell(1))
}

func TestWorkbookErrors(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := NewWorkbookStream("broken.xlsx", bytes.NewReader([]byte("not a zip")), "").Read(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open workbook")
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "one.xlsx")
		require.NoError(t, newWorkbook(t, workbookRows).SaveAs(path))

		_, err := NewWorkbookFile(path, "Missing").Read(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read sheet")
	})

	t.Run("empty sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xlsx")
		f := excelize.NewFile()
		defer f.Close()
		require.NoError(t, f.SaveAs(path))

		_, err := NewWorkbookFile(path, "").Read(context.Background())
		assert.ErrorIs(t, err, ErrEmptySource)
	})
}
