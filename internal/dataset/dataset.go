// Package dataset holds the in-memory tabular model the cleaning pipeline
// operates on: an ordered set of named, equal-length columns of nullable
// scalar cells. Row order is preserved by every operation; nothing here
// filters or joins rows.
package dataset

import (
	"fmt"
)

// Column is a named, ordered sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// NullCount returns the number of missing cells.
func (c Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// DistinctNonNull returns the distinct non-null cells in first-appearance
// order. The stable order keeps downstream classification reproducible for
// identical input.
func (c Column) DistinctNonNull() []Value {
	seen := make(map[Value]bool, len(c.Values))
	var out []Value
	for _, v := range c.Values {
		if v.IsNull() || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Dataset is an ordered collection of equal-length columns. Operations that
// add or replace columns enforce the shared row count; none of them reorder
// or drop rows.
type Dataset struct {
	Columns []Column
}

// New builds a dataset from the given columns, rejecting ragged or
// duplicate-named input.
func New(cols ...Column) (*Dataset, error) {
	d := &Dataset{}
	for _, c := range cols {
		if err := d.AppendColumn(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// NumRows returns the shared row count (0 for an empty dataset).
func (d *Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int {
	return len(d.Columns)
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1 if absent.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column. ok is false if it is absent.
func (d *Dataset) Column(name string) (*Column, bool) {
	if i := d.Index(name); i >= 0 {
		return &d.Columns[i], true
	}
	return nil, false
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.Index(name) >= 0
}

// AppendColumn adds a column at the end. The column must match the dataset's
// row count and must not reuse an existing name.
func (d *Dataset) AppendColumn(c Column) error {
	if d.HasColumn(c.Name) {
		return fmt.Errorf("append column: duplicate column %q", c.Name)
	}
	if len(d.Columns) > 0 && c.Len() != d.NumRows() {
		return fmt.Errorf("append column %q: %d rows, dataset has %d", c.Name, c.Len(), d.NumRows())
	}
	d.Columns = append(d.Columns, c)
	return nil
}

// ReplaceColumn swaps the column with the same name in place, keeping its
// position. The replacement must match the dataset's row count.
func (d *Dataset) ReplaceColumn(c Column) error {
	i := d.Index(c.Name)
	if i < 0 {
		return fmt.Errorf("replace column: no column %q", c.Name)
	}
	if c.Len() != d.NumRows() {
		return fmt.Errorf("replace column %q: %d rows, dataset has %d", c.Name, c.Len(), d.NumRows())
	}
	d.Columns[i] = c
	return nil
}

// DropColumns removes the named columns and returns how many were present.
// Missing names are not an error: the caller's goal state already holds.
func (d *Dataset) DropColumns(names ...string) int {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := d.Columns[:0]
	dropped := 0
	for _, c := range d.Columns {
		if drop[c.Name] {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	d.Columns = kept
	return dropped
}
