// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics behind the centering and scaling transforms
//     of a model formula: column means, sample standard deviations, centered and
//     standardized copies.
//   - Keep tight loops centralized in ew* micro-kernels.
//
// Exposed API:
//   - ColumnMeans(X)     -> means                // Σ_i X[i,j] / r
//   - ColumnStdDevs(X)   -> sds                  // sample sd with r-1 denominator
//   - CenterColumns(X)   -> (Xc, means)          // subtract per-column mean
//   - StandardizeColumns(X) -> (Z, means, sds)   // (X - mean) / sd; sd==0 columns only centered
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Zero-size matrices (0×N or N×0) are treated as no-ops.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opColumnMeans   = "ColumnMeans"
	opColumnStdDevs = "ColumnStdDevs"
	opCenterColumns = "CenterColumns"
	opStandardize   = "StandardizeColumns"
)

// ColumnMeans returns Σ_i X[i,j] / r for every column.
// A 0-row input yields zero means.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	if r == 0 || c == 0 {
		return means, nil
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		var v float64
		var err error
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means[j] += v
			}
		}
	}

	invR := 1.0 / float64(r)
	for j := range means {
		means[j] *= invR
	}

	return means, nil
}

// ColumnStdDevs returns the sample standard deviation of every column,
// sqrt(Σ (x - mean)² / (r-1)). Fewer than two rows yields zeros.
//
// Implementation:
//   - Stage 1: ColumnMeans.
//   - Stage 2: second pass over centered squares (two-pass for stability).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnStdDevs(X Matrix) ([]float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, matrixErrorf(opColumnStdDevs, err)
	}
	r, c := X.Rows(), X.Cols()
	sds := make([]float64, c)
	if r < 2 {
		return sds, nil
	}

	var v, dv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opColumnStdDevs, err)
			}
			dv = v - means[j]
			sds[j] += dv * dv
		}
	}
	for j := range sds {
		sds[j] = math.Sqrt(sds[j] / float64(r-1))
	}

	return sds, nil
}

// CenterColumns subtracts the per-column mean from every element.
//
// Behavior highlights:
//   - Zero-size (0×N or N×0): returns (X, zeroMeans, nil) without allocations.
//
// Returns:
//   - Matrix: centered copy (r×c).
//   - []float64: column means (len=c).
//
// AI-Hints:
//   - Reuse the returned means to un-center later.
func CenterColumns(X Matrix) (Matrix, []float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return X, means, nil
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// StandardizeColumns centers every column and divides it by its sample
// standard deviation. A column with zero spread is only centered.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func StandardizeColumns(X Matrix) (Matrix, []float64, []float64, error) {
	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}
	sds, err := ColumnStdDevs(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return Xc, means, sds, nil
	}

	inv := make([]float64, len(sds))
	for j, sd := range sds {
		inv[j] = 1
		if sd > 0 {
			inv[j] = 1 / sd
		}
	}
	Z, err := ewScaleCols(Xc, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}

	return Z, means, sds, nil
}
