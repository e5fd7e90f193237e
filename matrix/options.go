// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
package matrix

const (
	// DefaultEpsilon is the absolute tolerance below which a residual column
	// norm counts as zero during orthogonalization.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set and
	// column ingestion.
	DefaultValidateNaNInf = true

	// DefaultRTol and DefaultATol are the tolerances AllClose callers use when
	// they have no better estimate.
	DefaultRTol = 1e-9
	DefaultATol = 1e-12
)

// accumulator seeds, named to keep loops free of magic literals
const (
	ZeroSum  = 0.0
	NormZero = 0.0
)
