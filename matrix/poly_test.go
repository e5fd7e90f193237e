// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/stretchr/testify/require"
)

func TestRawPoly(t *testing.T) {
	t.Parallel()
	p, err := matrix.RawPoly([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{1, 1, 1}, {2, 4, 8}, {3, 9, 27}}), p)

	_, err = matrix.RawPoly([]float64{1}, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestOrthoPolyFixture pins the basis for x = 1..5.
func TestOrthoPolyFixture(t *testing.T) {
	t.Parallel()
	p, err := matrix.OrthoPoly([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	require.Equal(t, 2, p.Cols())

	c1, err := p.Column(0)
	require.NoError(t, err)
	s10 := math.Sqrt(10)
	require.InDeltaSlice(t, []float64{-2 / s10, -1 / s10, 0, 1 / s10, 2 / s10}, c1, 1e-12)

	c2, err := p.Column(1)
	require.NoError(t, err)
	s14 := math.Sqrt(14)
	require.InDeltaSlice(t, []float64{2 / s14, -1 / s14, -2 / s14, -1 / s14, 2 / s14}, c2, 1e-12)
}

// TestOrthoPolyProperties checks zero column sums and orthonormality.
func TestOrthoPolyProperties(t *testing.T) {
	t.Parallel()
	x := []float64{0.5, 1.7, 2.2, 3.9, 4.1, 6.0, 7.3}
	p, err := matrix.OrthoPoly(x, 3)
	require.NoError(t, err)

	means, err := matrix.ColumnMeans(p)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0, 0}, means, 1e-12)

	pt, err := matrix.Transpose(p)
	require.NoError(t, err)
	gram, err := matrix.Mul(pt, p)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), gram)
}

func TestOrthoPolyTooFewPoints(t *testing.T) {
	t.Parallel()
	_, err := matrix.OrthoPoly([]float64{1, 2, 1, 2}, 2)
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
}
