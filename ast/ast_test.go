package ast_test

import (
	"testing"

	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/stretchr/testify/assert"
)

// TestEqualStructural checks deep equality across nested variants.
func TestEqualStructural(t *testing.T) {
	t.Parallel()
	a := ast.Sum{Terms: []ast.Expr{
		ast.Var{Name: "x"},
		ast.Group{
			Inner: ast.Intercept{Present: true},
			Spec:  ast.GroupChain{Links: []ast.GroupLink{{Name: "g"}}},
		},
		ast.Smooth{Kind: ast.SmoothS, Vars: []string{"z"}, Args: map[string]ast.Expr{"k": ast.Num{Value: 10}}},
	}}
	b := ast.Sum{Terms: []ast.Expr{
		ast.Var{Name: "x"},
		ast.Group{
			Inner: ast.Intercept{Present: true},
			Spec:  ast.GroupChain{Links: []ast.GroupLink{{Name: "g"}}},
		},
		ast.Smooth{Kind: ast.SmoothS, Vars: []string{"z"}, Args: map[string]ast.Expr{"k": ast.Num{Value: 10}}},
	}}
	assert.True(t, ast.Equal(a, b))

	c := ast.Sum{Terms: []ast.Expr{ast.Var{Name: "x"}, ast.Var{Name: "y"}}}
	assert.False(t, ast.Equal(a, c))
	assert.False(t, ast.Equal(ast.Sum{}, ast.Interaction{}))
	assert.True(t, ast.Equal(ast.Func{Name: "f"}, ast.Func{Name: "f", Args: []ast.Expr{}}))
}

// TestInterceptRemoval recognizes both encodings of "-1".
func TestInterceptRemoval(t *testing.T) {
	t.Parallel()
	assert.True(t, ast.IsInterceptRemoval(ast.Neg(ast.Intercept{Present: true})))
	assert.True(t, ast.IsInterceptRemoval(ast.Neg(ast.Num{Value: 1})))
	assert.False(t, ast.IsInterceptRemoval(ast.Neg(ast.Var{Name: "x"})))
	assert.False(t, ast.IsInterceptRemoval(ast.Intercept{Present: false}))
}

// TestLookupBuiltin covers the closed dispatch table.
func TestLookupBuiltin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ast.BuiltinPoly, ast.LookupBuiltin("poly"))
	assert.Equal(t, ast.BuiltinNeg, ast.LookupBuiltin("NEG"))
	assert.Equal(t, ast.BuiltinUnknown, ast.LookupBuiltin("bs"))
	for _, n := range []string{"ar", "ma", "arma", "cosy", "unstr", "sar", "car", "fcor"} {
		assert.True(t, ast.IsAutocorName(n), n)
	}
	assert.False(t, ast.IsAutocorName("poly"))
}

// TestVariables lists referenced columns in sorted order.
func TestVariables(t *testing.T) {
	t.Parallel()
	spec := &ast.ModelSpec{Formula: ast.Formula{
		LHS: ast.RespVar{Name: "y"},
		RHS: ast.Sum{Terms: []ast.Expr{
			ast.Func{Name: "poly", Args: []ast.Expr{ast.Var{Name: "x"}, ast.Num{Value: 2}}},
			ast.Group{
				Inner: ast.Var{Name: "days"},
				Spec:  ast.GroupChain{Links: []ast.GroupLink{{Name: "subject"}, {Name: "site", Op: ast.OpNest}}},
			},
		}},
	}}
	assert.Equal(t, []string{"days", "site", "subject", "x", "y"}, ast.Variables(spec))
}
