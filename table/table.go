// Package table provides the in-memory table model and the read/write
// pipelines that connect it to the QVD byte format.
package table

import (
	"fmt"

	"github.com/arloliu/qvd/errs"
)

// Table is an ordered set of named columns with row-major cells.
//
// Cell values are int, float64, string, or nil. Tables are immutable by
// convention: operations that narrow a table return a new Table sharing the
// underlying cells.
type Table struct {
	columns []string
	rows    [][]any
}

// New creates a table from column names and row-major cells.
//
// Returns:
//   - Table: The created table
//   - error: errs.ErrDuplicateColumn on repeated names, or
//     errs.ErrRowWidthMismatch when a row's cell count differs from the
//     column count
func New(columns []string, rows [][]any) (Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			return Table{}, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf("%w: row %d has %d cells, want %d",
				errs.ErrRowWidthMismatch, i, len(row), len(columns))
		}
	}

	return Table{columns: columns, rows: rows}, nil
}

// Columns returns a copy of the column names in order.
func (t Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// ColumnCount returns the number of columns.
func (t Table) ColumnCount() int {
	return len(t.columns)
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.rows)
}

// Rows returns the row-major cells. The returned slice shares the table's
// cells and must not be modified.
func (t Table) Rows() [][]any {
	return t.rows
}

// Row returns the cells of row r. The slice shares the table's cells.
func (t Table) Row(r int) []any {
	return t.rows[r]
}

// At returns the cell at row r, column c.
func (t Table) At(r, c int) any {
	return t.rows[r][c]
}

// Column returns all cells of the named column in row order.
func (t Table) Column(name string) ([]any, error) {
	c := t.columnIndex(name)
	if c < 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	out := make([]any, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[c]
	}

	return out, nil
}

// Head returns a table with the first n rows, or the whole table when it has
// fewer.
func (t Table) Head(n int) Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}

	return Table{columns: t.columns, rows: t.rows[:n]}
}

// Tail returns a table with the last n rows, or the whole table when it has
// fewer.
func (t Table) Tail(n int) Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}

	return Table{columns: t.columns, rows: t.rows[len(t.rows)-n:]}
}

// Select returns a table narrowed to the named columns, in the given order.
func (t Table) Select(names ...string) (Table, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		c := t.columnIndex(name)
		if c < 0 {
			return Table{}, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
		}
		cols[i] = c
	}

	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		cells := make([]any, len(cols))
		for i, c := range cols {
			cells[i] = row[c]
		}
		rows[r] = cells
	}

	return Table{columns: append([]string(nil), names...), rows: rows}, nil
}

// Equal reports whether both tables have the same column names and
// cell-by-cell equal rows.
func (t Table) Equal(other Table) bool {
	if len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, name := range t.columns {
		if other.columns[i] != name {
			return false
		}
	}
	for r, row := range t.rows {
		for c, cell := range row {
			if other.rows[r][c] != cell {
				return false
			}
		}
	}

	return true
}

func (t Table) columnIndex(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}

	return -1
}
