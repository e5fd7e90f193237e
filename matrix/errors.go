// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (wrapped with an operation tag) and tests
// check them via errors.Is. Nothing here panics on user-triggered conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping across logs.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/index -> dimension mismatch -> numeric policy -> rank.

var (
	// ErrInvalidDimensions indicates that requested dimensions are out of range
	// (non-positive for NewDense, negative for FromColumns).
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Column/Row) return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Hadamard
	// on different shapes, Mul where a.Cols != b.Rows, or ragged columns.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires
	// finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrRankDeficient is returned by orthogonalization when a column is
	// (numerically) a linear combination of the columns before it.
	ErrRankDeficient = errors.New("matrix: rank deficient columns")
)
