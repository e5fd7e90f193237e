// SPDX-License-Identifier: MIT

// Package canon rewrites a parsed model into canonical normal form.
//
// Rewrite rules:
//   - Prod[a, b, ..., n]  → Sum of all main effects and every k-way interaction (k = 2..n).
//   - Nest{a, b, Slash}   → Sum[a, Interaction[a, b]].
//   - Nest{a, b, In}      → kept, children canonicalized.
//   - Sum / Interaction   → flattened; empty Sum = Intercept(false), empty
//     Interaction = Intercept(true), singletons collapse.
//   - (v|g) for a bare variable v → (1|g) + (0 + v|g), same spec, kind and id.
//   - Aterms              → payloads canonicalized, then de-duplicated by kind (first wins).
//   - I(...)              → kept verbatim.
//   - ar/ma/arma/cosy/unstr/sar/car/fcor calls in the RHS → hoisted into
//     ModelSpec.Autocor with positional args keyed arg0, arg1, ...
//
// Behavior highlights:
//   - Total and pure: never fails, never mutates its input.
//   - Idempotent: Canonicalize(Canonicalize(s)) equals Canonicalize(s).
//   - Hoisting runs before the rewrite rules and removes only the hoisted calls,
//     so user-written intercept literals are preserved.
//
// Complexity:
//   - Linear in tree size except product expansion, which emits 2^n − 1 terms.
package canon

import (
	"strconv"

	"github.com/katalvlaran/modelmatrix/ast"
)

// Canonicalize returns the canonical form of spec.
func Canonicalize(spec *ast.ModelSpec) *ast.ModelSpec {
	if spec == nil {
		return nil
	}
	out := &ast.ModelSpec{
		Family: spec.Family,
		Link:   spec.Link,
		Formula: ast.Formula{
			LHS:    spec.Formula.LHS,
			Aterms: canonAterms(spec.Formula.Aterms),
		},
		Autocor: append([]ast.Autocor(nil), spec.Autocor...),
	}

	rhs, hoisted := Hoist(spec.Formula.RHS)
	out.Formula.RHS = Expr(rhs)
	out.Autocor = append(out.Autocor, hoisted...)

	for _, d := range spec.Dpars {
		out.Dpars = append(out.Dpars, ast.Dpar{Name: d.Name, RHS: Expr(d.RHS)})
	}

	return out
}

// Expr canonicalizes a single expression.
func Expr(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case ast.Prod:
		return Expr(expandProd(x.Terms))

	case ast.Nest:
		if x.Kind == ast.NestSlash {
			return Expr(ast.Sum{Terms: []ast.Expr{
				Expr(x.Outer),
				Expr(ast.Interaction{Terms: []ast.Expr{x.Outer, x.Inner}}),
			}})
		}
		return ast.Nest{Outer: Expr(x.Outer), Inner: Expr(x.Inner), Kind: x.Kind}

	case ast.Sum:
		return collapseSum(flattenSums(mapExpr(x.Terms)))

	case ast.Interaction:
		return collapseInteraction(flattenInteractions(mapExpr(x.Terms)))

	case ast.Pow:
		return ast.Pow{Base: Expr(x.Base), Exponent: Expr(x.Exponent)}

	case ast.Group:
		return canonGroup(x)

	case ast.Identity:
		// I(...) shields arithmetic: a*b inside it is a product, not crossing.
		return x

	case ast.Func:
		return ast.Func{Name: x.Name, Args: mapExpr(x.Args)}

	case ast.Smooth:
		args := make(map[string]ast.Expr, len(x.Args))
		for k, a := range x.Args {
			args[k] = Expr(a)
		}
		return ast.Smooth{Kind: x.Kind, Vars: x.Vars, Args: args}
	}

	// Num, Bool, Str, Var, Intercept, Dot
	return e
}

func mapExpr(list []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, len(list))
	for i, e := range list {
		out[i] = Expr(e)
	}
	return out
}

// expandProd builds the full crossing of terms: main effects first, then all
// 2-way interactions, 3-way interactions and so on, in combination order.
func expandProd(terms []ast.Expr) ast.Expr {
	switch len(terms) {
	case 0:
		return ast.Intercept{Present: true}
	case 1:
		return terms[0]
	}
	out := append([]ast.Expr(nil), terms...)
	for k := 2; k <= len(terms); k++ {
		for _, combo := range combinations(terms, k) {
			out = append(out, ast.Interaction{Terms: combo})
		}
	}
	return ast.Sum{Terms: out}
}

// combinations returns the k-subsets of items in lexicographic index order.
func combinations(items []ast.Expr, k int) [][]ast.Expr {
	var out [][]ast.Expr
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			combo := make([]ast.Expr, k)
			for i, j := range idx {
				combo[i] = items[j]
			}
			out = append(out, combo)
			return
		}
		for i := start; i <= len(items)-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}

func flattenSums(terms []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, 0, len(terms))
	for _, t := range terms {
		if s, ok := t.(ast.Sum); ok {
			out = append(out, flattenSums(s.Terms)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

func flattenInteractions(terms []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, 0, len(terms))
	for _, t := range terms {
		if in, ok := t.(ast.Interaction); ok {
			out = append(out, flattenInteractions(in.Terms)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

func collapseSum(terms []ast.Expr) ast.Expr {
	switch len(terms) {
	case 0:
		return ast.Intercept{Present: false}
	case 1:
		return terms[0]
	}
	return ast.Sum{Terms: terms}
}

func collapseInteraction(terms []ast.Expr) ast.Expr {
	switch len(terms) {
	case 0:
		return ast.Intercept{Present: true}
	case 1:
		return terms[0]
	}
	return ast.Interaction{Terms: terms}
}

// canonGroup normalizes a random-effect term. A bare-variable slope (v|g)
// splits into a random intercept and a zero-intercept random slope.
func canonGroup(g ast.Group) ast.Expr {
	inner := Expr(g.Inner)
	spec := canonGroupSpec(g.Spec)

	if v, ok := inner.(ast.Var); ok {
		return ast.Sum{Terms: []ast.Expr{
			ast.Group{Inner: ast.Intercept{Present: true}, Spec: spec, Kind: g.Kind, ID: g.ID},
			ast.Group{
				Inner: ast.Sum{Terms: []ast.Expr{ast.Intercept{Present: false}, v}},
				Spec:  spec,
				Kind:  g.Kind,
				ID:    g.ID,
			},
		}}
	}
	return ast.Group{Inner: inner, Spec: spec, Kind: g.Kind, ID: g.ID}
}

func canonGroupSpec(s ast.GroupSpec) ast.GroupSpec {
	if f, ok := s.(ast.GroupFunc); ok {
		return ast.GroupFunc{Name: f.Name, Args: mapExpr(f.Args)}
	}
	return s
}

// canonAterms canonicalizes payloads and keeps the first aterm of each kind.
func canonAterms(in []ast.Aterm) []ast.Aterm {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[ast.AtermKind]bool, len(in))
	out := make([]ast.Aterm, 0, len(in))
	for _, a := range in {
		if seen[a.Kind] {
			continue
		}
		seen[a.Kind] = true
		c := ast.Aterm{Kind: a.Kind}
		if a.Args != nil {
			c.Args = mapExpr(a.Args)
		}
		if a.LB != nil {
			c.LB = Expr(a.LB)
		}
		if a.UB != nil {
			c.UB = Expr(a.UB)
		}
		if a.GR != nil {
			c.GR = Expr(a.GR)
		}
		out = append(out, c)
	}
	return out
}

// Hoist extracts inline autocorrelation calls from e.
// It walks Sum, Prod, Interaction, Nest and Group inner expressions; a hoisted
// call is dropped from its container and a container left empty is dropped
// from its own parent. A group whose inner expression is fully hoisted keeps
// a random intercept; an RHS that is fully hoisted becomes Intercept(true).
func Hoist(e ast.Expr) (ast.Expr, []ast.Autocor) {
	var acc []ast.Autocor
	out, gone := hoist(e, &acc)
	if gone {
		out = ast.Intercept{Present: true}
	}
	return out, acc
}

func hoist(e ast.Expr, acc *[]ast.Autocor) (ast.Expr, bool) {
	switch x := e.(type) {
	case ast.Func:
		if !ast.IsAutocorName(x.Name) {
			return e, false
		}
		args := make(map[string]ast.Expr, len(x.Args))
		for i, a := range x.Args {
			args["arg"+strconv.Itoa(i)] = Expr(a)
		}
		*acc = append(*acc, ast.Autocor{Name: x.Name, Args: args})
		return nil, true

	case ast.Sum:
		terms, gone := hoistList(x.Terms, acc)
		return ast.Sum{Terms: terms}, gone
	case ast.Prod:
		terms, gone := hoistList(x.Terms, acc)
		return ast.Prod{Terms: terms}, gone
	case ast.Interaction:
		terms, gone := hoistList(x.Terms, acc)
		return ast.Interaction{Terms: terms}, gone

	case ast.Nest:
		outer, outerGone := hoist(x.Outer, acc)
		inner, innerGone := hoist(x.Inner, acc)
		switch {
		case outerGone && innerGone:
			return nil, true
		case outerGone:
			return inner, false
		case innerGone:
			return outer, false
		}
		return ast.Nest{Outer: outer, Inner: inner, Kind: x.Kind}, false

	case ast.Group:
		inner, gone := hoist(x.Inner, acc)
		if gone {
			inner = ast.Intercept{Present: true}
		}
		return ast.Group{Inner: inner, Spec: x.Spec, Kind: x.Kind, ID: x.ID}, false
	}
	return e, false
}

// hoistList drops hoisted members. The list is gone only when it was
// non-empty and every member was hoisted.
func hoistList(list []ast.Expr, acc *[]ast.Autocor) ([]ast.Expr, bool) {
	out := make([]ast.Expr, 0, len(list))
	for _, t := range list {
		if h, gone := hoist(t, acc); !gone {
			out = append(out, h)
		}
	}
	return out, len(list) > 0 && len(out) == 0
}
