// SPDX-License-Identifier: MIT

// Package matrix is the numeric core behind design tables.
//
// What & Why:
//
//	A design table is a row-major block of float64 cells: one row per
//	observation, one column per named predictor. This package owns that
//	storage (Dense) and the few kernels materialization needs:
//	  - column assembly (FromColumns) and extraction (Column, Row),
//	  - element-wise products for interaction columns (Hadamard),
//	  - orthonormal column bases for orthogonal polynomials (GramSchmidt, OrthoPoly),
//	  - column statistics for centering and scaling (ColumnMeans, ColumnStdDevs, CenterColumns),
//	  - products and transposes for checking those bases (Mul, Transpose, MatVec),
//	  - approximate comparison for tests and callers (AllClose).
//
// Determinism:
//
//	Every kernel walks its input in a fixed i→j order and never iterates maps,
//	so identical inputs give bit-identical outputs.
//
// Errors:
//
//	Kernels return the sentinels from errors.go wrapped with an operation tag
//	("Mul: matrix: dimension mismatch"); match them with errors.Is.
package matrix
