// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used on design tables:
// matrix product, transpose, scalar scaling, element-wise product,
// matrix-vector product and Gram-Schmidt orthonormalization. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Notes:
//   - Kernels accept zero-width operands (r×0) since design tables may be empty.
//   - All kernels use central validators and wrap via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opHadamard    = "Hadamard"
	opMatVec      = "MatVec"
	opGramSchmidt = "GramSchmidt"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b). Allocate C(r×c).
//   - Stage 2: Fast-path for *Dense×*Dense uses i→k→j over flat buffers,
//     skipping zero A[i,k]. Fallback uses At with i→j→k.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - Transpose(X) × X is the Gram matrix; for an orthonormal basis it is I.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseZeroOK(aRows, bCols, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(cols, rows, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// alpha = 0 yields an explicit zero matrix with the same shape.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(rows, cols, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range dm.data {
			res.data[idx] = dm.data[idx] * alpha
		}
		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			if err = res.Set(i, j, v*alpha); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
		}
	}

	return res, nil
}

// Hadamard computes the elementwise product (a ⊙ b) with a fresh Dense result.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate Dense(rows, cols).
//   - Stage 2: Fast-path if both *Dense (flat 0..n-1). Else At/Set with i→j loops.
//
// Behavior highlights:
//   - An n×1 ⊙ n×1 product is exactly one interaction column.
//   - The result inherits the numeric policy of a, so a tolerant table stays tolerant.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	policy := DefaultValidateNaNInf
	if da, ok := a.(*Dense); ok {
		policy = da.validateNaNInf
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := newDenseZeroOK(rows, cols, policy)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] * db.data[idx]
			}
			return res, nil
		}
	}

	var av, bv float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if err = res.Set(i, j, av*bv); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var base int
		var acc float64
		for i := 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j := 0; j < d.c; j++ {
				if x[j] != 0 {
					acc += d.data[base+j] * x[j]
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// GramSchmidt returns Q with orthonormal columns spanning the columns of a.
//
// Implementation:
//   - Stage 1: validate a and copy its columns into contiguous vectors.
//   - Stage 2: modified Gram-Schmidt with one re-orthogonalization pass per
//     column ("twice is enough"), normalizing each residual to unit length.
//
// Behavior highlights:
//   - Q[:,k] has a positive component along a[:,k]; the triangular factor has
//     a positive diagonal, so the basis is unique.
//   - A residual norm below eps·max(1, ‖a[:,k]‖) is rank deficiency.
//
// Errors:
//   - ErrNilMatrix, ErrRankDeficient (with the offending column index).
//
// Complexity:
//   - Time O(r*c²), Space O(r*c).
//
// AI-Hints:
//   - Feed centered columns when the raw columns are badly scaled; the span is
//     unchanged but cancellation is smaller.
func GramSchmidt(a Matrix, eps float64) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opGramSchmidt, err)
	}
	rows, cols := a.Rows(), a.Cols()

	// Stage 1: column-major working copy.
	q := make([][]float64, cols)
	var err error
	for j := 0; j < cols; j++ {
		q[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			if q[j][i], err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opGramSchmidt, err)
			}
		}
	}

	// Stage 2: orthonormalize left to right.
	var dot, norm, orig float64
	for k := 0; k < cols; k++ {
		orig = vecNorm(q[k])
		for pass := 0; pass < 2; pass++ {
			for p := 0; p < k; p++ {
				dot = vecDot(q[p], q[k])
				for i := 0; i < rows; i++ {
					q[k][i] -= dot * q[p][i]
				}
			}
		}
		norm = vecNorm(q[k])
		if norm <= eps*math.Max(1, orig) {
			return nil, matrixErrorf(opGramSchmidt, fmt.Errorf("column %d: %w", k, ErrRankDeficient))
		}
		for i := 0; i < rows; i++ {
			q[k][i] /= norm
		}
	}

	res, err := FromColumns(rows, q, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opGramSchmidt, err)
	}

	return res, nil
}

func vecDot(x, y []float64) float64 {
	s := ZeroSum
	for i := range x {
		s += x[i] * y[i]
	}

	return s
}

func vecNorm(x []float64) float64 {
	return math.Sqrt(vecDot(x, x))
}
