// SPDX-License-Identifier: MIT

package modelmatrix

import (
	"log"

	"github.com/katalvlaran/modelmatrix/design"
)

// Option customizes materialization by mutating design.Options before the
// run begins. Applying N options costs O(N).
type Option func(*design.Options)

// WithoutIntercept drops the intercept column, like writing "- 1".
func WithoutIntercept() Option {
	return func(o *design.Options) { o.IncludeIntercept = false }
}

// WithInterceptName renames the intercept column. Panics on "".
func WithInterceptName(name string) Option {
	if name == "" {
		panic("modelmatrix: WithInterceptName(\"\")")
	}
	return func(o *design.Options) { o.InterceptName = name }
}

// WithRawNames keeps column names as built, without CleanName.
func WithRawNames() Option {
	return func(o *design.Options) { o.CleanNames = false }
}

// WithContrast selects the categorical coding.
func WithContrast(kind design.ContrastKind) Option {
	return func(o *design.Options) { o.Contrast = kind }
}

// WithParallel materializes up to n top-level terms concurrently.
// Panics on negative n.
func WithParallel(n int) Option {
	if n < 0 {
		panic("modelmatrix: WithParallel(negative)")
	}
	return func(o *design.Options) { o.Parallel = n }
}

// WithLogger routes debug output to l. Panics on nil.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("modelmatrix: WithLogger(nil)")
	}
	return func(o *design.Options) { o.Logger = l }
}

// WithOptions replaces the accumulated options wholesale, e.g. with the
// result of config.Config.Options. Later options still apply on top.
func WithOptions(opts design.Options) Option {
	return func(o *design.Options) { *o = opts }
}

func buildOptions(opts []Option) design.Options {
	o := design.DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
