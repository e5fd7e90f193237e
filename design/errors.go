// SPDX-License-Identifier: MIT

package design

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every materialization failure matches ErrSemantic; the
// narrower sentinels below wrap it so callers may test either level.
var (
	// ErrSemantic is the root of all materialization-time failures.
	ErrSemantic = errors.New("design: semantic error")

	// ErrMissingColumn indicates a formula references a column the data lacks.
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrSemantic)

	// ErrNotNumeric indicates a categorical column was used where numbers are
	// required (poly, I(), random slopes, responses).
	ErrNotNumeric = fmt.Errorf("%w: column is not numeric", ErrSemantic)

	// ErrPolyDegree indicates a degenerate polynomial request.
	ErrPolyDegree = fmt.Errorf("%w: invalid polynomial degree", ErrSemantic)

	// ErrUnsupported indicates an expression shape the materializer does not
	// evaluate (bare powers, ".", nested groups inside I(), ...).
	ErrUnsupported = fmt.Errorf("%w: unsupported expression", ErrSemantic)

	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("design: invalid options")
)

// semanticErrorf wraps one of the sentinels above with a formatted detail.
func semanticErrorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
