// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TableColumns is the fixed width of a normalized extract table.
const TableColumns = 3

// Row is one table row; after normalization it has exactly TableColumns cells.
type Row []string

// Table is a table detected on a PDF page, header row excluded.
type Table struct {
	// Page is the 1-based page the table was detected on (0 when unknown).
	Page int `json:"page" yaml:"page"`

	// Rows holds the cell text row by row.
	Rows []Row `json:"rows" yaml:"rows"`
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Cell returns the text at row i, column j, or "" when out of range.
func (t Table) Cell(i, j int) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if j < 0 || j >= len(row) {
		return ""
	}
	return row[j]
}
