package domain

import (
	"fmt"
	"slices"
)

// Table is a set of named columns sharing one index.
// The zero value is an empty table with no rows.
type Table struct {
	index   []string
	names   []string
	columns map[string][]float64
}

// NewTable creates an empty table over the given index.
func NewTable(index []string) *Table {
	return &Table{
		index:   slices.Clone(index),
		columns: make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.index)
}

// Index returns a copy of the row labels.
func (t *Table) Index() []string {
	return slices.Clone(t.index)
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return slices.Clone(t.names)
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q (have %v)", ErrMissingVariable, name, t.names)
	}
	return slices.Clone(col), nil
}

// AddColumn appends a column. The length must match the index and the name
// must be new.
func (t *Table) AddColumn(name string, values []float64) error {
	if t.columns == nil {
		t.columns = make(map[string][]float64)
	}
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf("%w: duplicate column %q", ErrParse, name)
	}
	if len(values) != len(t.index) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.index))
	}
	t.names = append(t.names, name)
	t.columns[name] = slices.Clone(values)
	return nil
}

// Keep drops every row whose mask entry is false.
func (t *Table) Keep(mask []bool) error {
	if len(mask) != len(t.index) {
		return fmt.Errorf("mask has %d entries, table has %d rows", len(mask), len(t.index))
	}
	index := make([]string, 0, len(t.index))
	for i, ok := range mask {
		if ok {
			index = append(index, t.index[i])
		}
	}
	for name, col := range t.columns {
		kept := make([]float64, 0, len(index))
		for i, ok := range mask {
			if ok {
				kept = append(kept, col[i])
			}
		}
		t.columns[name] = kept
	}
	t.index = index
	return nil
}
