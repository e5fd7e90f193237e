// SPDX-License-Identifier: MIT

package frame

import "fmt"

// Frame is an ordered set of equally long columns with unique names.
type Frame struct {
	cols   []*Column
	index  map[string]int
	height int
}

// New builds a frame. Column names must be unique and lengths equal.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{cols: cols, index: make(map[string]int, len(cols))}
	for k, c := range cols {
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name())
		}
		f.index[c.Name()] = k
		if k == 0 {
			f.height = c.Len()
		} else if c.Len() != f.height {
			return nil, fmt.Errorf("%w: %q has %d values, want %d",
				ErrLengthMismatch, c.Name(), c.Len(), f.height)
		}
	}
	return f, nil
}

// MustNew is like New but panics on error. It is meant for literals in
// tests and examples.
func MustNew(cols ...*Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Height returns the number of rows.
func (f *Frame) Height() int { return f.height }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Column looks up a column by name.
func (f *Frame) Column(name string) (*Column, bool) {
	k, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[k], true
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for k, c := range f.cols {
		names[k] = c.Name()
	}
	return names
}
