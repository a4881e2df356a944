// SPDX-License-Identifier: MIT

package table

import "fmt"

// Table is an ordered set of equally long columns.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from cols (kept by reference, not copied).
//
// Errors: ErrEmptyName, ErrDuplicateColumn, ErrLengthMismatch.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Add appends c. The first column fixes the row count.
func (t *Table) Add(c *Column) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if _, dup := t.index[c.Name]; dup {
		return fmt.Errorf("%q: %w", c.Name, ErrDuplicateColumn)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	} else if c.Len() != t.rows {
		return fmt.Errorf("%q has %d rows, want %d: %w", c.Name, c.Len(), t.rows, ErrLengthMismatch)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)

	return nil
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in declaration order. The slice is shared.
func (t *Table) Columns() []*Column { return t.cols }

// Col returns the i-th column.
func (t *Table) Col(i int) *Column { return t.cols[i] }

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}

	return t.cols[i], true
}

// Index returns the declaration position of name, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}

	return -1
}

// Names returns column names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}

	return out
}

// Select returns a table sharing the named columns, in the given order.
// Errors: ErrUnknownColumn.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{index: make(map[string]int, len(names))}
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownColumn)
		}
		if err := out.Add(c); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		out.rows = t.rows
	}

	return out, nil
}

// Without returns a table sharing every column except the named ones.
// Unknown names are ignored.
func (t *Table) Without(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &Table{index: make(map[string]int, len(t.cols)), rows: t.rows}
	for _, c := range t.cols {
		if _, skip := drop[c.Name]; skip {
			continue
		}
		out.index[c.Name] = len(out.cols)
		out.cols = append(out.cols, c)
	}

	return out
}

// Clone deep-copies every column.
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), rows: t.rows}
	for i, c := range t.cols {
		out.index[c.Name] = i
		out.cols = append(out.cols, c.Clone())
	}

	return out
}

// Rename changes a column name in place.
// Errors: ErrUnknownColumn, ErrDuplicateColumn, ErrEmptyName.
func (t *Table) Rename(from, to string) error {
	if to == "" {
		return ErrEmptyName
	}
	i, ok := t.index[from]
	if !ok {
		return fmt.Errorf("%q: %w", from, ErrUnknownColumn)
	}
	if from == to {
		return nil
	}
	if _, dup := t.index[to]; dup {
		return fmt.Errorf("%q: %w", to, ErrDuplicateColumn)
	}
	delete(t.index, from)
	t.index[to] = i
	t.cols[i].Name = to

	return nil
}

// WithPrefix renames every column to prefix+name in place.
func (t *Table) WithPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	for _, n := range t.Names() {
		if err := t.Rename(n, prefix+n); err != nil {
			return err
		}
	}

	return nil
}

// Rows returns a new table made of the given source rows, in order.
// Indices may repeat (resampling).
func (t *Table) Rows(idx []int) *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), rows: len(idx)}
	for ci, c := range t.cols {
		nc := NewLike(c, len(idx))
		for k, i := range idx {
			if c.Kind == KindText {
				nc.Str[k] = c.Str[i]
			} else {
				nc.Num[k] = c.Num[i]
			}
		}
		out.index[c.Name] = ci
		out.cols = append(out.cols, nc)
	}

	return out
}
