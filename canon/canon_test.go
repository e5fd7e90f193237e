package canon_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/canon"
	"github.com/katalvlaran/modelmatrix/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCanon(t *testing.T, src string) *ast.ModelSpec {
	t.Helper()
	spec, err := parser.Parse(src)
	require.NoError(t, err, src)
	return canon.Canonicalize(spec)
}

func requireSameRHS(t *testing.T, a, b string) {
	t.Helper()
	x, y := mustCanon(t, a), mustCanon(t, b)
	if diff := cmp.Diff(y.Formula.RHS, x.Formula.RHS, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("%q vs %q (-want +got):\n%s", a, b, diff)
	}
}

// TestProductExpansion checks a*b ≡ a + b + a:b and the 3-way ordering.
func TestProductExpansion(t *testing.T) {
	t.Parallel()
	requireSameRHS(t, "y ~ a*b", "y ~ a + b + a:b")
	requireSameRHS(t, "y ~ a*b*c", "y ~ a + b + c + a:b + a:c + b:c + a:b:c")
	requireSameRHS(t, "y ~ x + a*b", "y ~ x + a + b + a:b")
}

// TestSlashExpansion checks a/b ≡ a + a:b.
func TestSlashExpansion(t *testing.T) {
	t.Parallel()
	requireSameRHS(t, "y ~ a/b", "y ~ a + a:b")
	requireSameRHS(t, "y ~ x + a/b:c", "y ~ x + a + a:b:c")
}

// TestInKeepsNest leaves %in% structural.
func TestInKeepsNest(t *testing.T) {
	t.Parallel()
	spec := mustCanon(t, "y ~ a %in% (b*c)")
	n, ok := spec.Formula.RHS.(ast.Nest)
	require.True(t, ok)
	assert.Equal(t, ast.NestIn, n.Kind)
	_, isSum := n.Inner.(ast.Sum)
	assert.True(t, isSum, "inner product is expanded")
}

// TestFlattening collapses nested sums and interactions.
func TestFlattening(t *testing.T) {
	t.Parallel()
	requireSameRHS(t, "y ~ (a + (b + c)) + d", "y ~ a + b + c + d")
	spec := mustCanon(t, "y ~ a:(b:c)")
	assert.True(t, ast.Equal(ast.Interaction{Terms: []ast.Expr{
		ast.Var{Name: "a"}, ast.Var{Name: "b"}, ast.Var{Name: "c"},
	}}, spec.Formula.RHS))

	assert.True(t, ast.Equal(ast.Intercept{Present: false}, canon.Expr(ast.Sum{})))
	assert.True(t, ast.Equal(ast.Intercept{Present: true}, canon.Expr(ast.Interaction{})))
	assert.True(t, ast.Equal(ast.Intercept{Present: true}, canon.Expr(ast.Prod{})))
	assert.True(t, ast.Equal(ast.Var{Name: "x"}, canon.Expr(ast.Sum{Terms: []ast.Expr{ast.Var{Name: "x"}}})))
}

// TestGroupNormalization splits bare-variable slopes.
func TestGroupNormalization(t *testing.T) {
	t.Parallel()
	g := ast.GroupChain{Links: []ast.GroupLink{{Name: "g"}}}

	spec := mustCanon(t, "y ~ (1|g)")
	assert.True(t, ast.Equal(ast.Group{Inner: ast.Intercept{Present: true}, Spec: g}, spec.Formula.RHS))

	spec = mustCanon(t, "y ~ x + (days||g)")
	want := ast.Sum{Terms: []ast.Expr{
		ast.Var{Name: "x"},
		ast.Group{Inner: ast.Intercept{Present: true}, Spec: g, Kind: ast.Uncorrelated},
		ast.Group{
			Inner: ast.Sum{Terms: []ast.Expr{ast.Intercept{Present: false}, ast.Var{Name: "days"}}},
			Spec:  g,
			Kind:  ast.Uncorrelated,
		},
	}}
	if diff := cmp.Diff(want, spec.Formula.RHS, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// any other shape stays a single group with a canonical inner expression
	spec = mustCanon(t, "y ~ (a*b|p|g)")
	grp, ok := spec.Formula.RHS.(ast.Group)
	require.True(t, ok)
	assert.Equal(t, "p", grp.ID)
	assert.True(t, ast.Equal(ast.Sum{Terms: []ast.Expr{
		ast.Var{Name: "a"}, ast.Var{Name: "b"},
		ast.Interaction{Terms: []ast.Expr{ast.Var{Name: "a"}, ast.Var{Name: "b"}}},
	}}, grp.Inner))
}

// TestAtermDedup keeps the first aterm of each kind.
func TestAtermDedup(t *testing.T) {
	t.Parallel()
	spec := mustCanon(t, "y | weights(w1), se(s), weights(w2) ~ x")
	require.Len(t, spec.Formula.Aterms, 2)
	assert.Equal(t, ast.AtermWeights, spec.Formula.Aterms[0].Kind)
	assert.True(t, ast.Equal(ast.Var{Name: "w1"}, spec.Formula.Aterms[0].Args[0]))
	assert.Equal(t, ast.AtermSe, spec.Formula.Aterms[1].Kind)
}

// TestAutocorHoisting moves inline calls to the top level.
func TestAutocorHoisting(t *testing.T) {
	t.Parallel()
	spec := mustCanon(t, "y ~ x + ar(time, g) + (1 + cosy(t)|g)")
	require.Len(t, spec.Autocor, 2)
	assert.Equal(t, "ar", spec.Autocor[0].Name)
	assert.True(t, ast.Equal(ast.Var{Name: "time"}, spec.Autocor[0].Args["arg0"]))
	assert.True(t, ast.Equal(ast.Var{Name: "g"}, spec.Autocor[0].Args["arg1"]))
	assert.Equal(t, "cosy", spec.Autocor[1].Name)

	// the user-written intercept inside the group survives
	want := ast.Sum{Terms: []ast.Expr{
		ast.Var{Name: "x"},
		ast.Group{Inner: ast.Intercept{Present: true}, Spec: ast.GroupChain{Links: []ast.GroupLink{{Name: "g"}}}},
	}}
	if diff := cmp.Diff(want, spec.Formula.RHS, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	spec = mustCanon(t, "y ~ ar(time)")
	assert.True(t, ast.Equal(ast.Intercept{Present: true}, spec.Formula.RHS))

	// top-level named autocorrelation terms are preserved ahead of hoisted ones
	spec = mustCanon(t, "y ~ x + ma(t) + ar(p=1)")
	require.Len(t, spec.Autocor, 2)
	assert.Equal(t, "ar", spec.Autocor[0].Name)
	assert.Equal(t, "ma", spec.Autocor[1].Name)
}

// TestDparsCanonicalized expands sugar inside sub-formulas.
func TestDparsCanonicalized(t *testing.T) {
	t.Parallel()
	spec := mustCanon(t, "y ~ x + sigma ~ a*b")
	require.Len(t, spec.Dpars, 1)
	_, ok := spec.Dpars[0].RHS.(ast.Sum)
	assert.True(t, ok)
}

// TestIdempotence applies the rewrite twice over a corpus of formulas.
func TestIdempotence(t *testing.T) {
	t.Parallel()
	corpus := []string{
		"y ~ a*b*c + d/e",
		"y ~ (x|g) + (1|h) + (a*b||k)",
		"y ~ x + ar(time) + (1 + ma(t)|g)",
		"y | weights(w) | weights(v) ~ poly(x, 2) + I(x^2) - 1",
		"y ~ a %in% b + (a + b)^2 + s(z, k=4)",
		"y ~ x + sigma ~ a*b + ar(p=1)",
		"y ~ a:(b + c):d",
		"a*b",
	}
	for _, src := range corpus {
		once := mustCanon(t, src)
		twice := canon.Canonicalize(once)
		if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%q not idempotent (-once +twice):\n%s", src, diff)
		}
	}
}

// TestNoSugarOutsideIdentity checks that products, slashes and nested sums
// are gone from the canonical RHS while I(...) keeps its arithmetic.
func TestNoSugarOutsideIdentity(t *testing.T) {
	t.Parallel()
	spec := mustCanon(t, "y ~ a*(b/c) + I(a*b) + (x + (z + w)):q + (a*b|g)")
	var identities int
	ast.Inspect(spec.Formula.RHS, func(e ast.Expr) bool {
		switch x := e.(type) {
		case ast.Identity:
			identities++
			_, isProd := x.Inner.(ast.Prod)
			assert.True(t, isProd, "I(a*b) must keep its product")
			return false
		case ast.Prod:
			t.Errorf("Prod left in canonical RHS: %#v", x)
		case ast.Nest:
			assert.NotEqual(t, ast.NestSlash, x.Kind)
		case ast.Sum:
			for _, c := range x.Terms {
				_, nested := c.(ast.Sum)
				assert.False(t, nested, "nested Sum in %#v", x)
			}
		case ast.Interaction:
			for _, c := range x.Terms {
				_, nested := c.(ast.Interaction)
				assert.False(t, nested, "nested Interaction in %#v", x)
			}
		}
		return true
	})
	assert.Equal(t, 1, identities)
}

// TestInputNotMutated guards the value semantics of the rewrite.
func TestInputNotMutated(t *testing.T) {
	t.Parallel()
	spec, err := parser.Parse("y ~ a*b + (x|g)")
	require.NoError(t, err)
	before, err := parser.Parse("y ~ a*b + (x|g)")
	require.NoError(t, err)
	_ = canon.Canonicalize(spec)
	if diff := cmp.Diff(before, spec, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("input mutated:\n%s", diff)
	}
}
