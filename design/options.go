// SPDX-License-Identifier: MIT

package design

import (
	"fmt"
	"log"
	"strconv"

	"github.com/katalvlaran/modelmatrix/logutil"
)

// ContrastKind selects how categorical predictors are coded.
type ContrastKind int

const (
	// Treatment drops the alphabetically first level and emits one 0/1
	// indicator per remaining level, named {var}_{level}.
	Treatment ContrastKind = iota
	// Sum codes the first k-1 levels against the last one (coded -1),
	// named {var}_S{level}.
	Sum
	// Helmert contrasts level k against the mean of the levels before it,
	// named {var}_H{k}.
	Helmert
)

var contrastNames = [...]string{Treatment: "treatment", Sum: "sum", Helmert: "helmert"}

func (k ContrastKind) String() string {
	if k >= 0 && int(k) < len(contrastNames) {
		return contrastNames[k]
	}
	return "ContrastKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseContrast maps "treatment", "sum" or "helmert" to a ContrastKind.
func ParseContrast(s string) (ContrastKind, error) {
	for k, n := range contrastNames {
		if n == s {
			return ContrastKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown contrast %q", ErrInvalidOptions, s)
}

// Options configures Materialize.
type Options struct {
	// IncludeIntercept prepends a column of ones to X unless the formula
	// removes it with "-1" or "0 +".
	IncludeIntercept bool
	// InterceptName names that column.
	InterceptName string
	// CleanNames applies CleanName to every output column name.
	CleanNames bool
	// Contrast codes categorical predictors.
	Contrast ContrastKind
	// Parallel > 1 materializes top-level terms concurrently with at most
	// that many in flight. Column order never depends on it.
	Parallel int
	// Logger receives debug output; nil discards.
	Logger *log.Logger
}

var defaultLogger = logutil.GetLogger("[design] ")

// DefaultOptions returns the options used by the root facade.
func DefaultOptions() Options {
	return Options{
		IncludeIntercept: true,
		InterceptName:    "intercept",
		CleanNames:       true,
		Contrast:         Treatment,
		Logger:           defaultLogger,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.IncludeIntercept && o.InterceptName == "" {
		return fmt.Errorf("%w: empty intercept name", ErrInvalidOptions)
	}
	if o.Contrast < Treatment || o.Contrast > Helmert {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Contrast)
	}
	if o.Parallel < 0 {
		return fmt.Errorf("%w: negative parallelism %d", ErrInvalidOptions, o.Parallel)
	}
	return nil
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return logutil.Discard
	}
	return o.Logger
}
