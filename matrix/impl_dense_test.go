// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for Dense storage.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/modelmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfRange ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestSetRejectsNaNInf checks the default numeric policy.
func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 0}, {0, 2}})
	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

// TestFromColumns covers layout, zero-width tables and ragged input.
func TestFromColumns(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromColumns(3, [][]float64{{1, 2, 3}, {4, 5, 6}}, true)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())
	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 5}, row)
	col, err := m.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, col)

	empty, err := matrix.FromColumns(4, nil, true)
	require.NoError(t, err)
	r, c := empty.Shape()
	require.Equal(t, 4, r)
	require.Equal(t, 0, c)

	_, err = matrix.FromColumns(3, [][]float64{{1, 2}}, true)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.FromColumns(-1, nil, true)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.FromColumns(1, [][]float64{{math.NaN()}}, true)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	tolerant, err := matrix.FromColumns(1, [][]float64{{math.NaN()}}, false)
	require.NoError(t, err)
	v, err := tolerant.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	_, err = m.Column(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Row(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestString(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4.5}})
	require.Equal(t, "[1, 2]\n[3, 4.5]\n", m.String())
}
