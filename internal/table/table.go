package table

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrColumnCollision = errors.New("column collision")
	ErrRaggedRow       = errors.New("ragged row")
)

// Table is an immutable in-memory table of string cells. Every transform
// returns a new Table; source tables are never mutated.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a table from a header and rows. Rows must match the header
// width exactly.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrColumnCollision, name)
		}
		index[name] = i
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrRaggedRow, i, len(row), len(columns))
		}
		copied[i] = append([]string(nil), row...)
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// MustNew is New for fixtures that are known valid; it panics on error.
func MustNew(columns []string, rows [][]string) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns a copy of the header in declaration order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row provides named access to the cells of a single row.
type Row struct {
	table *Table
	cells []string
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i]}
}

// Get returns the cell under the named column, or "" if the column is absent.
func (r Row) Get(column string) string {
	i, ok := r.table.index[column]
	if !ok {
		return ""
	}
	return r.cells[i]
}

// Cells returns a copy of the raw row cells in column order.
func (r Row) Cells() []string {
	return append([]string(nil), r.cells...)
}

// Select projects the table onto the named columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		indices[i] = idx
	}
	rows := make([][]string, len(t.rows))
	for ri, row := range t.rows {
		projected := make([]string, len(indices))
		for ci, idx := range indices {
			projected[ci] = row[idx]
		}
		rows[ri] = projected
	}
	return MustNew(columns, rows), nil
}

// Drop removes the named columns. Dropping an absent column is an error so
// stale transform chains fail loudly.
func (t *Table) Drop(columns ...string) (*Table, error) {
	dropped := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		dropped[name] = struct{}{}
	}
	kept := make([]string, 0, len(t.columns)-len(dropped))
	for _, name := range t.columns {
		if _, gone := dropped[name]; !gone {
			kept = append(kept, name)
		}
	}
	return t.Select(kept...)
}

// Rename maps source column names to new names, leaving cells untouched.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	columns := make([]string, len(t.columns))
	for i, name := range t.columns {
		if renamed, ok := mapping[name]; ok {
			columns[i] = renamed
		} else {
			columns[i] = name
		}
	}
	for name := range mapping {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}
	return New(columns, t.rows)
}

// Reorder moves the named columns to the front, keeping the remaining columns
// in their existing relative order.
func (t *Table) Reorder(first ...string) (*Table, error) {
	front := make(map[string]struct{}, len(first))
	for _, name := range first {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		front[name] = struct{}{}
	}
	ordered := append([]string(nil), first...)
	for _, name := range t.columns {
		if _, pinned := front[name]; !pinned {
			ordered = append(ordered, name)
		}
	}
	return t.Select(ordered...)
}

// Filter keeps rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	rows := make([][]string, 0, len(t.rows))
	for _, cells := range t.rows {
		if keep(Row{table: t, cells: cells}) {
			rows = append(rows, cells)
		}
	}
	return MustNew(t.columns, rows)
}

// Map rewrites each row through fn, which receives a copy of the cells and
// returns the replacement cells. The header is unchanged.
func (t *Table) Map(fn func(Row) []string) (*Table, error) {
	rows := make([][]string, len(t.rows))
	for i, cells := range t.rows {
		replaced := fn(Row{table: t, cells: cells})
		if len(replaced) != len(t.columns) {
			return nil, fmt.Errorf("%w: mapped row %d has %d cells, header has %d", ErrRaggedRow, i, len(replaced), len(t.columns))
		}
		rows[i] = replaced
	}
	return MustNew(t.columns, rows), nil
}

// Distinct removes exact duplicate rows, keeping first occurrences in order.
func (t *Table) Distinct() *Table {
	seen := make(map[string]struct{}, len(t.rows))
	rows := make([][]string, 0, len(t.rows))
	for _, cells := range t.rows {
		key := compositeKey(cells)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, cells)
	}
	return MustNew(t.columns, rows)
}

// DistinctBy removes rows whose values under the named columns repeat,
// keeping the first occurrence of each key.
func (t *Table) DistinctBy(columns ...string) (*Table, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		indices[i] = idx
	}
	seen := make(map[string]struct{}, len(t.rows))
	rows := make([][]string, 0, len(t.rows))
	for _, cells := range t.rows {
		parts := make([]string, len(indices))
		for i, idx := range indices {
			parts[i] = cells[idx]
		}
		key := compositeKey(parts)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, cells)
	}
	return MustNew(t.columns, rows), nil
}

// Concat appends the rows of other to t. Both tables must share an identical
// header.
func (t *Table) Concat(other *Table) (*Table, error) {
	if len(t.columns) != len(other.columns) {
		return nil, fmt.Errorf("%w: headers differ in width", ErrColumnCollision)
	}
	for i, name := range t.columns {
		if other.columns[i] != name {
			return nil, fmt.Errorf("%w: header mismatch at %d: %q vs %q", ErrColumnCollision, i, name, other.columns[i])
		}
	}
	rows := make([][]string, 0, len(t.rows)+len(other.rows))
	rows = append(rows, t.rows...)
	rows = append(rows, other.rows...)
	return MustNew(t.columns, rows), nil
}

// Values returns every cell of the named column in row order.
func (t *Table) Values(column string) ([]string, error) {
	idx, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// ValueSet returns the distinct values of the named column.
func (t *Table) ValueSet(column string) (map[string]struct{}, error) {
	values, err := t.Values(column)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set, nil
}

// compositeKey builds a collision-safe key from cell values. Cells are
// length-prefixed so ("ab","c") and ("a","bc") stay distinct.
func compositeKey(cells []string) string {
	size := 0
	for _, c := range cells {
		size += len(c) + 12
	}
	buf := make([]byte, 0, size)
	for _, c := range cells {
		buf = append(buf, byte(len(c)), byte(len(c)>>8), byte(len(c)>>16), byte(len(c)>>24))
		buf = append(buf, c...)
	}
	return string(buf)
}
