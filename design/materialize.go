// SPDX-License-Identifier: MIT

// Package design materializes a model formula against tabular data into the
// response (Y), fixed-effects (X) and random-effects (Z) tables.
//
// Implementation:
//   - Stage 1: canonicalize the spec, so a*b, a/b and (x|g) arrive expanded.
//   - Stage 2: build Y from the response.
//   - Stage 3: expand every top-level RHS term into X and Z columns, in
//     order, optionally on a bounded errgroup.
//   - Stage 4: prepend the intercept unless disabled or removed by "-1"/"0",
//     de-duplicate names with _1, _2, ..., then clean them.
//
// Behavior highlights:
//   - Strings are categorical and coded by Options.Contrast; ints, floats and
//     booleans are numeric.
//   - Interactions take the full cross product of their factors' columns,
//     named by joining them with "_x_".
//   - Documented gaps kept on purpose: a multivariate response keeps its first
//     column, Surv keeps time, trials() keeps successes, unknown functions
//     pass their first argument through, and "-t" for a term t other than 1
//     still materializes t.
//
// Errors:
//   - Every failure matches ErrSemantic; see errors.go for the narrower kinds.
//   - Tables are all-or-nothing: on error no table is returned.
package design

import (
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/canon"
	"github.com/katalvlaran/modelmatrix/frame"
	"github.com/katalvlaran/modelmatrix/pretty"
)

type materializer struct {
	src  Source
	opts Options
	log  *log.Logger
	ev   evaluator
}

// termColumns is what one top-level RHS term contributes.
type termColumns struct {
	fixed, random []column
}

// Materialize builds the Y, X and Z tables for spec over src.
//
// Dpars, autocorrelation terms, aterms and the family header are accepted and
// ignored. spec is not modified.
func Materialize(spec *ast.ModelSpec, src Source, opts Options) (y, x, z *Table, err error) {
	if err = opts.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if spec == nil || src == nil {
		return nil, nil, nil, semanticErrorf(ErrSemantic, "nil spec or data source")
	}
	m := &materializer{src: src, opts: opts, log: opts.logger(), ev: evaluator{src: src, n: src.Height()}}
	spec = canon.Canonicalize(spec)

	yCols, err := m.response(spec.Formula.LHS)
	if err != nil {
		return nil, nil, nil, err
	}

	terms := topTerms(spec.Formula.RHS)
	parts, err := m.terms(terms)
	if err != nil {
		return nil, nil, nil, err
	}

	var fixed, random []column
	if opts.IncludeIntercept && !removesIntercept(terms) {
		fixed = append(fixed, column{name: opts.InterceptName, values: m.ev.constant(1)})
	}
	for _, p := range parts {
		fixed = append(fixed, p.fixed...)
		random = append(random, p.random...)
	}

	n := src.Height()
	if y, err = newTable(n, yCols, opts.CleanNames); err != nil {
		return nil, nil, nil, err
	}
	if x, err = newTable(n, fixed, opts.CleanNames); err != nil {
		return nil, nil, nil, err
	}
	if z, err = newTable(n, random, opts.CleanNames); err != nil {
		return nil, nil, nil, err
	}
	m.log.Printf("materialized %q: Y %dx%d, X %dx%d, Z %dx%d (contrast %s)",
		pretty.Spec(spec), y.Height(), y.Width(), x.Height(), x.Width(), z.Height(), z.Width(), opts.Contrast)

	return y, x, z, nil
}

// topTerms splits the canonical RHS into its summands.
func topTerms(rhs ast.Expr) []ast.Expr {
	switch x := rhs.(type) {
	case nil:
		return nil
	case ast.Sum:
		return x.Terms
	}
	return []ast.Expr{rhs}
}

// removesIntercept reports whether a top-level "0" or "-1" is present.
func removesIntercept(terms []ast.Expr) bool {
	for _, t := range terms {
		if ic, ok := t.(ast.Intercept); ok && !ic.Present {
			return true
		}
		if ast.IsInterceptRemoval(t) {
			return true
		}
	}
	return false
}

// terms expands every top-level term into its own slot, so parallel and
// sequential runs produce identical column order.
func (m *materializer) terms(terms []ast.Expr) ([]termColumns, error) {
	out := make([]termColumns, len(terms))
	if m.opts.Parallel <= 1 || len(terms) < 2 {
		for k, t := range terms {
			fixed, random, err := m.expand(t)
			if err != nil {
				return nil, err
			}
			out[k] = termColumns{fixed, random}
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(m.opts.Parallel)
	for k, t := range terms {
		k, t := k, t
		g.Go(func() error {
			fixed, random, err := m.expand(t)
			if err != nil {
				return err
			}
			out[k] = termColumns{fixed, random}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// expand returns the X and Z columns of one term.
func (m *materializer) expand(e ast.Expr) (fixed, random []column, err error) {
	switch x := e.(type) {
	case ast.Sum:
		for _, t := range x.Terms {
			f, r, err := m.expand(t)
			if err != nil {
				return nil, nil, err
			}
			fixed = append(fixed, f...)
			random = append(random, r...)
		}
		return fixed, random, nil

	case ast.Group:
		random, err = m.groupColumns(x)
		return nil, random, err

	case ast.Intercept:
		// Handled at the top level through Options.IncludeIntercept.
		return nil, nil, nil

	case ast.Var:
		fixed, err = m.variable(x.Name)
		return fixed, nil, err

	case ast.Num:
		return []column{{name: "constant_" + frame.FormatFloat(x.Value), values: m.ev.constant(x.Value)}}, nil, nil

	case ast.Interaction:
		fixed, err = m.interaction(x.Terms)
		return fixed, nil, err

	case ast.Nest:
		// a %in% b: the nested term is the interaction of both sides.
		fixed, err = m.interaction([]ast.Expr{x.Outer, x.Inner})
		return fixed, nil, err

	case ast.Identity:
		v, err := m.ev.eval(x.Inner)
		if err != nil {
			return nil, nil, err
		}
		return []column{{name: pretty.Expr(x), values: v}}, nil, nil

	case ast.Func:
		return m.call(x)

	case ast.Smooth:
		if len(x.Vars) == 0 {
			return nil, nil, semanticErrorf(ErrSemantic, "smooth %s has no variables", x.Kind)
		}
		v, err := numeric(m.src, x.Vars[0])
		if err != nil {
			return nil, nil, err
		}
		name := x.Kind.String()
		for _, s := range x.Vars {
			name += "_" + s
		}
		m.log.Printf("smooth %s: using the raw column of %q", pretty.Expr(x), x.Vars[0])
		return []column{{name: name, values: v}}, nil, nil

	case ast.Pow:
		return nil, nil, semanticErrorf(ErrUnsupported, "%s: wrap powers in I(...)", pretty.Expr(x))

	case ast.Dot:
		return nil, nil, semanticErrorf(ErrUnsupported, "'.' is not supported")
	}
	return nil, nil, semanticErrorf(ErrUnsupported, "term %s", pretty.Expr(e))
}

// variable expands a column reference: numeric columns pass through,
// categorical ones are contrast coded.
func (m *materializer) variable(name string) ([]column, error) {
	c, err := lookup(m.src, name)
	if err != nil {
		return nil, err
	}
	if c.Kind() == frame.String {
		return contrastColumns(m.opts.Contrast, name, c.Strings(), c.Distinct()), nil
	}
	v, err := numeric(m.src, name)
	if err != nil {
		return nil, err
	}
	return []column{{name: name, values: v}}, nil
}

func (m *materializer) call(f ast.Func) (fixed, random []column, err error) {
	switch ast.LookupBuiltin(f.Name) {
	case ast.BuiltinNeg:
		if len(f.Args) != 1 {
			return nil, nil, semanticErrorf(ErrSemantic, "negation takes one term, got %d", len(f.Args))
		}
		if _, ok := f.Args[0].(ast.Intercept); ok || ast.IsInterceptRemoval(f) {
			return nil, nil, nil
		}
		m.log.Printf("term %s: negation of a non-intercept term materializes the term", pretty.Expr(f))
		return m.expand(f.Args[0])

	case ast.BuiltinPoly:
		fixed, err = polyColumns(m.src, f.Args)
		return fixed, nil, err

	case ast.BuiltinLog, ast.BuiltinExp, ast.BuiltinSqrt, ast.BuiltinAbs,
		ast.BuiltinScale, ast.BuiltinCenter:
		v, err := m.ev.call(f)
		if err != nil {
			return nil, nil, err
		}
		return []column{{name: pretty.Expr(f), values: v}}, nil, nil

	case ast.BuiltinIdentity:
		if len(f.Args) != 1 {
			return nil, nil, semanticErrorf(ErrSemantic, "I() takes one argument, got %d", len(f.Args))
		}
		return m.expand(ast.Identity{Inner: f.Args[0]})
	}

	if ast.LookupBuiltin(f.Name).IsAutocor() {
		return nil, nil, nil
	}
	if len(f.Args) == 0 {
		return nil, nil, semanticErrorf(ErrSemantic, "function %q has no arguments", f.Name)
	}
	m.log.Printf("function %q is not implemented, passing its first argument through", f.Name)
	inner, _, err := m.expand(f.Args[0])
	if err != nil {
		return nil, nil, err
	}
	for k := range inner {
		inner[k].name = f.Name + "(" + inner[k].name + ")"
	}
	return inner, nil, nil
}

// interaction crosses the column sets of all factors. An intercept factor is
// the identity; any other factor without columns is an error.
func (m *materializer) interaction(terms []ast.Expr) ([]column, error) {
	var acc []column
	first := true
	for _, t := range terms {
		if ic, ok := t.(ast.Intercept); ok && ic.Present {
			continue
		}
		cols, _, err := m.expand(t)
		if err != nil {
			return nil, err
		}
		if len(cols) == 0 {
			return nil, semanticErrorf(ErrSemantic, "interaction factor %s produces no columns", pretty.Expr(t))
		}
		if first {
			acc, first = cols, false
			continue
		}
		next := make([]column, 0, len(acc)*len(cols))
		for _, a := range acc {
			for _, b := range cols {
				v, err := hadamard(a.values, b.values)
				if err != nil {
					return nil, err
				}
				next = append(next, column{name: a.name + "_x_" + b.name, values: v})
			}
		}
		acc = next
	}
	if first {
		return nil, semanticErrorf(ErrSemantic, "empty interaction")
	}
	return acc, nil
}

// response builds the Y columns.
func (m *materializer) response(r ast.Response) ([]column, error) {
	switch x := r.(type) {
	case nil:
		return nil, nil
	case ast.RespVar:
		if x.Name == "" {
			return nil, nil
		}
		v, err := numeric(m.src, x.Name)
		if err != nil {
			return nil, err
		}
		return []column{{name: x.Name, values: v}}, nil
	case ast.RespMulti:
		if len(x.Names) == 0 {
			return nil, semanticErrorf(ErrSemantic, "empty multivariate response")
		}
		if len(x.Names) > 1 {
			m.log.Printf("multivariate response: keeping %q, dropping %v", x.Names[0], x.Names[1:])
		}
		return m.response(ast.RespVar{Name: x.Names[0]})
	case ast.RespSurv:
		m.log.Printf("survival response: keeping the time component only")
		return m.responseExpr(x.Time)
	case ast.RespFunc:
		if len(x.Args) == 0 {
			return nil, semanticErrorf(ErrSemantic, "response function %q has no arguments", x.Name)
		}
		m.log.Printf("response function %q: keeping its first argument", x.Name)
		return m.responseExpr(x.Args[0])
	case ast.RespBinomialTrials:
		m.log.Printf("binomial response: keeping successes, trials not encoded")
		return m.responseExpr(x.Successes)
	}
	return nil, semanticErrorf(ErrUnsupported, "response %T", r)
}

func (m *materializer) responseExpr(e ast.Expr) ([]column, error) {
	if v, ok := e.(ast.Var); ok {
		return m.response(ast.RespVar{Name: v.Name})
	}
	vals, err := m.ev.eval(e)
	if err != nil {
		return nil, err
	}
	return []column{{name: pretty.Expr(e), values: vals}}, nil
}
