// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/stretchr/testify/require"
)

func TestColumnStatistics(t *testing.T) {
	t.Parallel()
	x := mustDense(t, [][]float64{{1, 10}, {2, 10}, {3, 10}, {4, 10}})

	means, err := matrix.ColumnMeans(x)
	require.NoError(t, err)
	require.Equal(t, []float64{2.5, 10}, means)

	sds, err := matrix.ColumnStdDevs(hide{x})
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(5.0/3.0), sds[0], 1e-12)
	require.Equal(t, 0.0, sds[1])

	xc, _, err := matrix.CenterColumns(x)
	require.NoError(t, err)
	requireClose(t, mustDense(t, [][]float64{{-1.5, 0}, {-0.5, 0}, {0.5, 0}, {1.5, 0}}), xc)

	z, _, _, err := matrix.StandardizeColumns(x)
	require.NoError(t, err)
	col, err := z.(*matrix.Dense).Column(0)
	require.NoError(t, err)
	s := math.Sqrt(5.0 / 3.0)
	require.InDeltaSlice(t, []float64{-1.5 / s, -0.5 / s, 0.5 / s, 1.5 / s}, col, 1e-12)

	// zero-spread column is centered only
	col, err = z.(*matrix.Dense).Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0}, col)
}

func TestColumnStatisticsEmpty(t *testing.T) {
	t.Parallel()
	empty, err := matrix.FromColumns(0, [][]float64{{}, {}}, true)
	require.NoError(t, err)
	means, err := matrix.ColumnMeans(empty)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, means)

	_, err = matrix.ColumnMeans(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAllClose(t *testing.T) {
	t.Parallel()
	a := mustDense(t, [][]float64{{1, 2}})
	b := mustDense(t, [][]float64{{1, 2 + 1e-13}})
	ok, err := matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, mustDense(t, [][]float64{{1, 3}}), 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
