// SPDX-License-Identifier: MIT

package design

import (
	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/pretty"
)

// groupColumns expands a random-effect term into Z columns.
//
// Only chain groupings are handled, and only through their first variable.
// The inner expression decides the columns:
//   - 1                     → ri({g}={level}), one indicator per level;
//   - 0 + v                 → rs({v}|{g}={level}), v where the row is in level;
//   - a sum of 1, 0 and variables → ri columns unless 0 or -1 is present,
//     then rs columns per variable in order.
//
// Any other shape and function groupings such as gr(g, by=x) contribute no
// columns; that is logged, not an error.
func (m *materializer) groupColumns(g ast.Group) ([]column, error) {
	chain, ok := g.Spec.(ast.GroupChain)
	if !ok || chain.First() == "" {
		m.log.Printf("group %s: grouping not supported, no columns", pretty.Expr(g))
		return nil, nil
	}

	intercept, slopes, ok := randomShape(g.Inner)
	if !ok {
		m.log.Printf("group %s: inner shape not supported, no columns", pretty.Expr(g))
		return nil, nil
	}

	name := chain.First()
	gc, ok := m.src.Column(name)
	if !ok {
		return nil, semanticErrorf(ErrMissingColumn, "group variable %q not found", name)
	}
	levels := gc.Distinct()
	rows := gc.Strings()

	var cols []column
	if intercept {
		for _, l := range levels {
			c := column{name: "ri(" + name + "=" + l + ")", values: make([]float64, len(rows))}
			for i, r := range rows {
				if r == l {
					c.values[i] = 1
				}
			}
			cols = append(cols, c)
		}
	}
	for _, s := range slopes {
		x, err := numeric(m.src, s)
		if err != nil {
			return nil, err
		}
		for _, l := range levels {
			c := column{name: "rs(" + s + "|" + name + "=" + l + ")", values: make([]float64, len(rows))}
			for i, r := range rows {
				if r == l {
					c.values[i] = x[i]
				}
			}
			cols = append(cols, c)
		}
	}
	return cols, nil
}

// randomShape classifies a canonical group inner expression.
func randomShape(inner ast.Expr) (intercept bool, slopes []string, ok bool) {
	switch x := inner.(type) {
	case ast.Intercept:
		return x.Present, nil, x.Present
	case ast.Var:
		return true, []string{x.Name}, true
	case ast.Sum:
		intercept = true
		for _, t := range x.Terms {
			switch y := t.(type) {
			case ast.Intercept:
				if !y.Present {
					intercept = false
				}
			case ast.Var:
				slopes = append(slopes, y.Name)
			default:
				if !ast.IsInterceptRemoval(t) {
					return false, nil, false
				}
				intercept = false
			}
		}
		return intercept, slopes, true
	}
	return false, nil, false
}
