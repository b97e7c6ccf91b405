package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a column-named, string-celled table loaded from a diff report.
// Rows always have exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// LoadCSV reads a CSV file into a Table. The first record is the header.
// Ragged records are tolerated: short rows are padded with empty cells,
// long rows are truncated to the header width.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv %s: missing header row", path)
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		columns[i] = strings.TrimSpace(name)
	}

	t := &Table{Columns: columns, Rows: make([][]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ColumnIndex returns the index of the exactly named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// FindColumn returns the index of the first column whose name contains
// substr case-insensitively, or -1. This is a heuristic lookup: the first
// hit in column order wins even when several columns qualify.
func (t *Table) FindColumn(substr string) int {
	substr = strings.ToLower(substr)
	for i, col := range t.Columns {
		if strings.Contains(strings.ToLower(col), substr) {
			return i
		}
	}
	return -1
}

// Cell returns the value of column col in row, or "" when col is -1 or
// out of range.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Concat appends the rows of b below the rows of a. The result's column
// set is the union of both tables' columns (a's order first); cells for
// columns a row's source table lacks are empty.
func Concat(a, b *Table) *Table {
	columns := make([]string, 0, len(a.Columns)+len(b.Columns))
	columns = append(columns, a.Columns...)

	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		seen[col] = struct{}{}
	}
	for _, col := range b.Columns {
		if _, ok := seen[col]; !ok {
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}

	out := &Table{Columns: columns, Rows: make([][]string, 0, len(a.Rows)+len(b.Rows))}
	out.appendMapped(a)
	out.appendMapped(b)
	return out
}

// appendMapped copies src's rows into t, remapping cells by column name.
func (t *Table) appendMapped(src *Table) {
	indexes := make([]int, len(src.Columns))
	for i, col := range src.Columns {
		indexes[i] = t.ColumnIndex(col)
	}
	for _, srcRow := range src.Rows {
		row := make([]string, len(t.Columns))
		for i, cell := range srcRow {
			if i >= len(indexes) {
				break
			}
			if idx := indexes[i]; idx >= 0 {
				row[idx] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
}

// Filter returns a new table with the same columns holding only the rows
// keep accepts, in the original order. Rows are shared, not copied.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
