// SPDX-License-Identifier: MIT

package design

import (
	"github.com/katalvlaran/modelmatrix/frame"
	"github.com/katalvlaran/modelmatrix/matrix"
)

// Source is the tabular data a formula is materialized against.
// *frame.Frame satisfies it.
type Source interface {
	Height() int
	Column(name string) (*frame.Column, bool)
}

var _ Source = (*frame.Frame)(nil)

// lookup returns the named column or ErrMissingColumn.
func lookup(src Source, name string) (*frame.Column, error) {
	c, ok := src.Column(name)
	if !ok {
		return nil, semanticErrorf(ErrMissingColumn, "column %q not found in data", name)
	}
	return c, nil
}

// numeric returns the named column as finite float64 values.
func numeric(src Source, name string) ([]float64, error) {
	c, err := lookup(src, name)
	if err != nil {
		return nil, err
	}
	v, err := c.Floats()
	if err != nil {
		return nil, semanticErrorf(ErrNotNumeric, "column %q has kind %s", name, c.Kind())
	}
	if err = matrix.ValidateFinite(v); err != nil {
		return nil, semanticErrorf(ErrSemantic, "column %q has missing or non-finite values", name)
	}
	return v, nil
}
