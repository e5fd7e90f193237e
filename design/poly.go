// SPDX-License-Identifier: MIT

package design

import (
	"errors"
	"math"
	"strconv"

	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/katalvlaran/modelmatrix/pretty"
)

// polyColumns expands poly(var, degree[, raw[, normalize]]).
//
// Orthogonal columns are named poly_{var}_{k}; raw columns {var}, {var}_2, ...
// The degree must be a positive integer strictly below the number of distinct
// values of var, in both modes.
func polyColumns(src Source, args []ast.Expr) ([]column, error) {
	if len(args) < 2 || len(args) > 4 {
		return nil, semanticErrorf(ErrSemantic, "poly() takes 2 to 4 arguments, got %d", len(args))
	}
	v, ok := args[0].(ast.Var)
	if !ok {
		return nil, semanticErrorf(ErrUnsupported, "poly() variable must be a column name, got %s", pretty.Expr(args[0]))
	}
	d, ok := args[1].(ast.Num)
	if !ok || d.Value < 1 || d.Value != math.Trunc(d.Value) {
		return nil, semanticErrorf(ErrPolyDegree, "degree must be a positive integer, got %s", pretty.Expr(args[1]))
	}
	degree := int(d.Value)
	raw := false
	if len(args) > 2 {
		b, ok := args[2].(ast.Bool)
		if !ok {
			return nil, semanticErrorf(ErrSemantic, "poly() raw flag must be TRUE or FALSE, got %s", pretty.Expr(args[2]))
		}
		raw = b.Value
	}

	x, err := numeric(src, v.Name)
	if err != nil {
		return nil, err
	}
	if unique := distinctCount(x); degree >= unique {
		return nil, semanticErrorf(ErrPolyDegree,
			"'degree' must be less than number of unique points. Got degree=%d, unique points=%d", degree, unique)
	}

	var basis *matrix.Dense
	if raw {
		basis, err = matrix.RawPoly(x, degree)
	} else {
		basis, err = matrix.OrthoPoly(x, degree)
	}
	if errors.Is(err, matrix.ErrRankDeficient) {
		return nil, semanticErrorf(ErrPolyDegree, "poly(%s, %d) basis is numerically singular", v.Name, degree)
	}
	if err != nil {
		return nil, semanticErrorf(ErrSemantic, "poly(%s, %d): %v", v.Name, degree, err)
	}

	cols := make([]column, degree)
	for k := range cols {
		switch {
		case !raw:
			cols[k].name = "poly_" + v.Name + "_" + strconv.Itoa(k+1)
		case k == 0:
			cols[k].name = v.Name
		default:
			cols[k].name = v.Name + "_" + strconv.Itoa(k+1)
		}
		if cols[k].values, err = basis.Column(k); err != nil {
			return nil, semanticErrorf(ErrSemantic, "%v", err)
		}
	}
	return cols, nil
}

func distinctCount(x []float64) int {
	seen := make(map[float64]struct{}, len(x))
	for _, v := range x {
		seen[v] = struct{}{}
	}
	return len(seen)
}
