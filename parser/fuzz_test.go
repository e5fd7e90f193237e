package parser_test

import (
	"testing"

	"github.com/katalvlaran/modelmatrix/parser"
	"github.com/katalvlaran/modelmatrix/pretty"
	"github.com/stretchr/testify/require"
)

var fuzzSeeds = []string{
	"y ~ x",
	"y ~ a*b + (1|g) + poly(x, 2)",
	"family = mixture , Surv",
	"y | trunc(lb=0) ~ x + sigma ~ z",
	"(((",
	"~ ~ ~",
	"a %in% | ( , ) ^",
	"I(",
	"(1||)",
	"s(k=)",
}

func FuzzParse(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		spec, err := parser.Parse(src)
		if err != nil {
			return
		}
		// Anything that parses must reparse from its printed form.
		_, err = parser.Parse(pretty.Spec(spec))
		require.NoError(t, err, "source %q printed %q", src, pretty.Spec(spec))
	})
}

func FuzzParseExpr(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		parser.ParseExpr(src)
	})
}

// TestParseExprNeverPanics feeds malformed fragments to both entry points.
func TestParseExprNeverPanics(t *testing.T) {
	t.Parallel()
	for _, src := range fuzzSeeds {
		require.NotPanics(t, func() { _, _ = parser.ParseExpr(src) }, src)
		require.NotPanics(t, func() { _, _ = parser.Parse(src) }, src)
	}
}
