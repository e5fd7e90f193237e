// SPDX-License-Identifier: MIT

package modelmatrix

import (
	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/canon"
	"github.com/katalvlaran/modelmatrix/design"
	"github.com/katalvlaran/modelmatrix/parser"
	"github.com/katalvlaran/modelmatrix/pretty"
)

// Compile parses formula and returns its canonical form.
// Errors are *parser.Error values matching parser.ErrParse.
func Compile(formula string) (*ast.ModelSpec, error) {
	spec, err := parser.Parse(formula)
	if err != nil {
		return nil, err
	}
	return canon.Canonicalize(spec), nil
}

// Canonical returns the canonical text of formula.
func Canonical(formula string) (string, error) {
	spec, err := Compile(formula)
	if err != nil {
		return "", err
	}
	return pretty.Spec(spec), nil
}

// Materialize compiles formula and builds the response, fixed-effects and
// random-effects tables over data.
func Materialize(formula string, data design.Source, opts ...Option) (y, x, z *design.Table, err error) {
	spec, err := Compile(formula)
	if err != nil {
		return nil, nil, nil, err
	}
	return design.Materialize(spec, data, buildOptions(opts))
}

// ModelMatrix is the two-table form used by host bindings: the response and
// the fixed-effects design matrix.
func ModelMatrix(formula string, data design.Source, opts ...Option) (y, x *design.Table, err error) {
	y, x, _, err = Materialize(formula, data, opts...)
	return y, x, err
}

// Variables lists the distinct column names formula refers to, sorted.
func Variables(formula string) ([]string, error) {
	spec, err := parser.Parse(formula)
	if err != nil {
		return nil, err
	}
	return ast.Variables(spec), nil
}
