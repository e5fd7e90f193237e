// SPDX-License-Identifier: MIT

package design

import (
	"fmt"

	"github.com/katalvlaran/modelmatrix/matrix"
)

// column is a named numeric vector produced while expanding a term.
type column struct {
	name   string
	values []float64
}

// Table is an ordered set of named, equally long numeric columns backed by a
// row-major matrix. A Table may have zero columns; it always knows its height.
type Table struct {
	names []string
	index map[string]int
	data  *matrix.Dense
}

// newTable de-duplicates (and optionally cleans) the column names and packs
// the values.
func newTable(height int, cols []column, clean bool) (*Table, error) {
	raw := make([]string, len(cols))
	vals := make([][]float64, len(cols))
	for k, c := range cols {
		raw[k] = c.name
		vals[k] = c.values
	}
	data, err := matrix.FromColumns(height, vals, matrix.DefaultValidateNaNInf)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "building table: %v", err)
	}

	t := &Table{names: uniqueNames(raw, clean), data: data}
	t.index = make(map[string]int, len(t.names))
	for k, n := range t.names {
		if _, dup := t.index[n]; !dup {
			t.index[n] = k
		}
	}
	return t, nil
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.names) }

// Height returns the number of rows.
func (t *Table) Height() int { return t.data.Rows() }

// Names returns a copy of the column names.
func (t *Table) Names() []string { return append([]string(nil), t.names...) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.ColumnAt(j), true
}

// ColumnAt returns a copy of column j. It panics when j is out of range,
// like a slice index.
func (t *Table) ColumnAt(j int) []float64 {
	v, err := t.data.Column(j)
	if err != nil {
		panic(fmt.Sprintf("design: column %d of %d", j, t.Width()))
	}
	return v
}

// Dense returns a copy of the values as a rows×cols matrix.
func (t *Table) Dense() *matrix.Dense {
	return t.data.Clone().(*matrix.Dense)
}
