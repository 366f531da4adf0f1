// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// Record is one catalog entry.
type Record struct {
	ID    int    `json:"pokedex_number"`
	Name  string `json:"name"`
	Owned bool   `json:"collected"`
}

// Row is one data row of a source table, cells in header order.
// A cell is nil, string, []byte, bool, int64 or float64.
type Row struct {
	Line  int // 1-based position in the source: file line (header is line 1) or SQL result row
	Cells []interface{}
}

// Cell returns the value at index i, or nil when the row is shorter.
func (r Row) Cell(i int) interface{} {
	if i < 0 || i >= len(r.Cells) {
		return nil
	}
	return r.Cells[i]
}

// Blank reports whether every cell of the row is missing.
func (r Row) Blank() bool {
	for _, c := range r.Cells {
		if !IsMissing(c) {
			return false
		}
	}
	return true
}
