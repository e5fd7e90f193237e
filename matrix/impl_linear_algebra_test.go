// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/stretchr/testify/require"
)

func TestMulFastAndFallback(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustDense(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	want := mustDense(t, [][]float64{{58, 64}, {139, 154}})

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, want, got)

	got, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	requireClose(t, want, got)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	want := mustDense(t, [][]float64{{1, 4}, {2, 5}, {3, 6}})

	got, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireClose(t, want, got)

	got, err = matrix.Transpose(hide{a})
	require.NoError(t, err)
	requireClose(t, want, got)

	// zero-width tables transpose to zero-height ones
	empty, err := matrix.FromColumns(3, nil, true)
	require.NoError(t, err)
	et, err := matrix.Transpose(empty)
	require.NoError(t, err)
	require.Equal(t, 0, et.Rows())
	require.Equal(t, 3, et.Cols())
}

func TestHadamardAndScale(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{2, 0}, {-1, 0.5}})

	got, err := matrix.Hadamard(a, b)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{2, 0}, {-3, 2}}), got)

	got, err = matrix.Hadamard(hide{a}, b)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{2, 0}, {-3, 2}}), got)

	_, err = matrix.Hadamard(a, mustDense(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	got, err = matrix.Scale(a, 2)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{2, 4}, {6, 8}}), got)
}

func TestMatVec(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1}, y)

	y, err = matrix.MatVec(hide{a}, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestGramSchmidtOrthonormal checks QᵀQ = I and the positive-diagonal convention.
func TestGramSchmidtOrthonormal(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 1, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}})
	q, err := matrix.GramSchmidt(a, matrix.DefaultEpsilon)
	require.NoError(t, err)

	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	gram, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), gram)

	// first column is a normalized copy of a's first column
	c0, err := q.Column(0)
	require.NoError(t, err)
	s := 1 / math.Sqrt(3)
	require.InDeltaSlice(t, []float64{s, s, 0, s}, c0, 1e-12)
}

func TestGramSchmidtRankDeficient(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2}, {2, 4}, {3, 6}})
	_, err := matrix.GramSchmidt(a, matrix.DefaultEpsilon)
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
}
