// SPDX-License-Identifier: MIT
package modelmatrix_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/katalvlaran/modelmatrix"
	"github.com/katalvlaran/modelmatrix/design"
	"github.com/katalvlaran/modelmatrix/frame"
	"github.com/katalvlaran/modelmatrix/parser"
	"github.com/stretchr/testify/require"
)

func data() *frame.Frame {
	return frame.MustNew(
		frame.FloatColumn("y", []float64{1, 2, 3, 4}),
		frame.FloatColumn("x", []float64{1, 3, 2, 5}),
		frame.StringColumn("g", []string{"a", "b", "c", "a"}),
	)
}

func TestCompile(t *testing.T) {
	t.Parallel()

	spec, err := modelmatrix.Compile("y ~ x + ar(t)")
	require.NoError(t, err)
	require.Len(t, spec.Autocor, 1)

	_, err = modelmatrix.Compile("y ~ (x")
	require.ErrorIs(t, err, parser.ErrParse)
	require.True(t, parser.IsIncomplete(err))
}

func TestProductAndSlashIdentities(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"y ~ a*b", "y ~ a + b + a:b"},
		{"y ~ a/b", "y ~ a + a:b"},
		{"y ~ a*b*c", "y ~ a + b + c + a:b + a:c + b:c + a:b:c"},
	}
	for _, p := range pairs {
		l, err := modelmatrix.Canonical(p[0])
		require.NoError(t, err)
		r, err := modelmatrix.Canonical(p[1])
		require.NoError(t, err)
		require.Equal(t, r, l, p[0])
	}
}

func TestMaterializeOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	y, x, z, err := modelmatrix.Materialize("y ~ x + g + (1|g)", data(),
		modelmatrix.WithInterceptName("(Intercept)"),
		modelmatrix.WithRawNames(),
		modelmatrix.WithContrast(design.Sum),
		modelmatrix.WithParallel(2),
		modelmatrix.WithLogger(log.New(&buf, "", 0)),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"y"}, y.Names())
	require.Equal(t, []string{"(Intercept)", "x", "g_Sa", "g_Sb"}, x.Names())
	require.Equal(t, []string{"ri(g=a)", "ri(g=b)", "ri(g=c)"}, z.Names())
	require.Contains(t, buf.String(), "materialized")

	_, x, err = modelmatrix.ModelMatrix("y ~ x", data(), modelmatrix.WithoutIntercept())
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, x.Names())

	o := design.DefaultOptions()
	o.Contrast = design.Helmert
	_, x, err = modelmatrix.ModelMatrix("y ~ g", data(), modelmatrix.WithOptions(o), modelmatrix.WithoutIntercept())
	require.NoError(t, err)
	require.Equal(t, []string{"g_h1", "g_h2"}, x.Names())
}

func TestMaterializeErrors(t *testing.T) {
	t.Parallel()

	_, _, err := modelmatrix.ModelMatrix("y ~ ", data())
	require.ErrorIs(t, err, parser.ErrParse)

	_, _, err = modelmatrix.ModelMatrix("y ~ nope", data())
	require.ErrorIs(t, err, design.ErrMissingColumn)
	require.Contains(t, err.Error(), `"nope"`)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { modelmatrix.WithInterceptName("") })
	require.Panics(t, func() { modelmatrix.WithParallel(-1) })
	require.Panics(t, func() { modelmatrix.WithLogger(nil) })
}

func TestVariables(t *testing.T) {
	t.Parallel()

	vars, err := modelmatrix.Variables("cbind(a, b) ~ x*z + (w|g1:g2)")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "g1", "g2", "w", "x", "z"}, vars)

	_, err = modelmatrix.Variables("~ +")
	require.Error(t, err)
}
