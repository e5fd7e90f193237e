// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Build polynomial bases for a single numeric variable: raw powers and the
//     orthonormal basis obtained by Gram-Schmidt on centered powers.

package matrix

import "fmt"

const (
	opRawPoly   = "RawPoly"
	opOrthoPoly = "OrthoPoly"
)

// RawPoly returns the n×degree table [x, x², ..., x^degree].
//
// Errors:
//   - ErrInvalidDimensions when degree < 1.
//
// Complexity:
//   - Time O(n*degree), Space O(n*degree).
func RawPoly(x []float64, degree int) (*Dense, error) {
	if degree < 1 {
		return nil, matrixErrorf(opRawPoly, ErrInvalidDimensions)
	}
	n := len(x)
	cols := make([][]float64, degree)
	for d := 0; d < degree; d++ {
		cols[d] = make([]float64, n)
		for i := 0; i < n; i++ {
			if d == 0 {
				cols[d][i] = x[i]
			} else {
				cols[d][i] = cols[d-1][i] * x[i]
			}
		}
	}

	res, err := FromColumns(n, cols, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opRawPoly, err)
	}

	return res, nil
}

// OrthoPoly returns the n×degree orthonormal polynomial basis of x.
//
// Implementation:
//   - Stage 1: build [1, xc, xc², ..., xc^degree] with xc = x - mean(x).
//   - Stage 2: GramSchmidt; column k is the degree-k polynomial orthogonal
//     to every lower degree, with unit Euclidean norm.
//   - Stage 3: drop the constant column.
//
// Behavior highlights:
//   - Each column sums to zero (orthogonal to the constant).
//   - Sign is fixed by a positive leading coefficient: for x = 1..5 the
//     linear column is (-2,-1,0,1,2)/√10.
//
// Errors:
//   - ErrInvalidDimensions (degree < 1), ErrRankDeficient when x has too few
//     distinct values for the requested degree.
//
// Complexity:
//   - Time O(n*degree²), Space O(n*degree).
func OrthoPoly(x []float64, degree int) (*Dense, error) {
	if degree < 1 {
		return nil, matrixErrorf(opOrthoPoly, ErrInvalidDimensions)
	}
	if err := ValidateFinite(x); err != nil {
		return nil, matrixErrorf(opOrthoPoly, err)
	}
	n := len(x)
	mean := ZeroSum
	for _, v := range x {
		mean += v
	}
	if n > 0 {
		mean /= float64(n)
	}

	powers := make([][]float64, degree+1)
	for d := 0; d <= degree; d++ {
		powers[d] = make([]float64, n)
		for i := 0; i < n; i++ {
			if d == 0 {
				powers[d][i] = 1
			} else {
				powers[d][i] = powers[d-1][i] * (x[i] - mean)
			}
		}
	}
	basis, err := FromColumns(n, powers, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opOrthoPoly, err)
	}
	q, err := GramSchmidt(basis, DefaultEpsilon)
	if err != nil {
		return nil, matrixErrorf(opOrthoPoly, fmt.Errorf("degree %d: %w", degree, err))
	}

	out := make([][]float64, degree)
	for d := 1; d <= degree; d++ {
		if out[d-1], err = q.Column(d); err != nil {
			return nil, matrixErrorf(opOrthoPoly, err)
		}
	}
	res, err := FromColumns(n, out, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opOrthoPoly, err)
	}

	return res, nil
}
