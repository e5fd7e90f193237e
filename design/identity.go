// SPDX-License-Identifier: MIT

package design

import (
	"math"

	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/katalvlaran/modelmatrix/pretty"
)

// evaluator computes the arithmetic subset allowed inside I(...):
// variables, numbers, 1/0, TRUE/FALSE, +, unary and binary -, : and * as
// products, ^, nested I(), and log, exp, sqrt, abs, scale, center.
type evaluator struct {
	src Source
	n   int
}

func (ev evaluator) constant(v float64) []float64 {
	out := make([]float64, ev.n)
	for i := range out {
		out[i] = v
	}
	return out
}

// eval returns one value per row. Non-finite results are rejected by the
// caller when the column is packed into a table.
func (ev evaluator) eval(e ast.Expr) ([]float64, error) {
	switch x := e.(type) {
	case ast.Var:
		return numeric(ev.src, x.Name)

	case ast.Num:
		return ev.constant(x.Value), nil

	case ast.Bool:
		return ev.constant(boolValue(x.Value)), nil

	case ast.Intercept:
		return ev.constant(boolValue(x.Present)), nil

	case ast.Identity:
		return ev.eval(x.Inner)

	case ast.Sum:
		return ev.fold(x.Terms, func(a, b float64) float64 { return a + b })

	case ast.Interaction:
		return ev.product(x.Terms)

	case ast.Prod:
		return ev.product(x.Terms)

	case ast.Pow:
		base, err := ev.eval(x.Base)
		if err != nil {
			return nil, err
		}
		exp, err := ev.eval(x.Exponent)
		if err != nil {
			return nil, err
		}
		for i := range base {
			base[i] = math.Pow(base[i], exp[i])
		}
		return base, nil

	case ast.Func:
		return ev.call(x)
	}
	return nil, semanticErrorf(ErrUnsupported, "%s cannot be evaluated arithmetically", pretty.Expr(e))
}

func (ev evaluator) fold(terms []ast.Expr, op func(a, b float64) float64) ([]float64, error) {
	if len(terms) == 0 {
		return nil, semanticErrorf(ErrSemantic, "empty arithmetic expression")
	}
	acc, err := ev.eval(terms[0])
	if err != nil {
		return nil, err
	}
	for _, t := range terms[1:] {
		v, err := ev.eval(t)
		if err != nil {
			return nil, err
		}
		for i := range acc {
			acc[i] = op(acc[i], v[i])
		}
	}
	return acc, nil
}

// product multiplies factors with the Hadamard kernel.
func (ev evaluator) product(terms []ast.Expr) ([]float64, error) {
	if len(terms) == 0 {
		return nil, semanticErrorf(ErrSemantic, "empty product")
	}
	acc, err := ev.eval(terms[0])
	if err != nil {
		return nil, err
	}
	for _, t := range terms[1:] {
		v, err := ev.eval(t)
		if err != nil {
			return nil, err
		}
		if acc, err = hadamard(acc, v); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (ev evaluator) call(f ast.Func) ([]float64, error) {
	b := ast.LookupBuiltin(f.Name)
	var unary func(float64) float64
	switch b {
	case ast.BuiltinNeg:
	case ast.BuiltinLog:
		unary = math.Log
	case ast.BuiltinExp:
		unary = math.Exp
	case ast.BuiltinSqrt:
		unary = math.Sqrt
	case ast.BuiltinAbs:
		unary = math.Abs
	case ast.BuiltinScale, ast.BuiltinCenter:
	default:
		return nil, semanticErrorf(ErrUnsupported, "function %q cannot be evaluated arithmetically", f.Name)
	}
	if len(f.Args) != 1 {
		return nil, semanticErrorf(ErrSemantic, "%s() takes one argument, got %d", f.Name, len(f.Args))
	}
	v, err := ev.eval(f.Args[0])
	if err != nil {
		return nil, err
	}
	switch {
	case b == ast.BuiltinNeg:
		return negate(v)
	case unary != nil:
		for i := range v {
			v[i] = unary(v[i])
		}
		return v, nil
	}
	return standardize(v, b == ast.BuiltinScale)
}

// negate returns -v.
func negate(v []float64) ([]float64, error) {
	m, err := matrix.FromColumns(len(v), [][]float64{v}, false)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	n, err := matrix.Scale(m, -1)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	return n.(*matrix.Dense).Column(0)
}

// standardize centers v and, when scale is set, divides by its sample
// standard deviation. A constant vector is only centered.
func standardize(v []float64, scale bool) ([]float64, error) {
	m, err := matrix.FromColumns(len(v), [][]float64{v}, matrix.DefaultValidateNaNInf)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "non-finite value: %v", err)
	}
	var out matrix.Matrix
	if scale {
		out, _, _, err = matrix.StandardizeColumns(m)
	} else {
		out, _, err = matrix.CenterColumns(m)
	}
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	return out.(*matrix.Dense).Column(0)
}

// hadamard returns the elementwise product of two equally long vectors.
func hadamard(a, b []float64) ([]float64, error) {
	ma, err := matrix.FromColumns(len(a), [][]float64{a}, false)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	mb, err := matrix.FromColumns(len(b), [][]float64{b}, false)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	p, err := matrix.Hadamard(ma, mb)
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "%v", err)
	}
	return p.(*matrix.Dense).Column(0)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
