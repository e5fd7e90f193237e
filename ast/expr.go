// SPDX-License-Identifier: MIT

package ast

// Expr is a node of the right-hand-side expression tree.
type Expr interface {
	exprNode()
}

// NestKind distinguishes "a/b" from "b %in% a".
type NestKind int

const (
	NestSlash NestKind = iota // a/b, expanded away by canonicalization
	NestIn                    // a %in% b, kept structurally
)

// GroupKind selects the correlation structure of a random-effect term.
type GroupKind int

const (
	Correlated   GroupKind = iota // (x|g)
	Uncorrelated                  // (x||g)
)

// SmoothKind names the smooth constructor.
type SmoothKind int

const (
	SmoothS  SmoothKind = iota // s(...)
	SmoothT2                   // t2(...)
	SmoothTE                   // te(...)
	SmoothTI                   // ti(...)
)

var smoothNames = [...]string{SmoothS: "s", SmoothT2: "t2", SmoothTE: "te", SmoothTI: "ti"}

// String returns the constructor name as written in formulas.
func (k SmoothKind) String() string {
	if k >= 0 && int(k) < len(smoothNames) {
		return smoothNames[k]
	}
	return "s"
}

// LookupSmooth maps a constructor name to its kind.
func LookupSmooth(name string) (SmoothKind, bool) {
	for k, n := range smoothNames {
		if n == name {
			return SmoothKind(k), true
		}
	}
	return 0, false
}

type (
	// Num is a numeric literal.
	Num struct{ Value float64 }

	// Bool is a boolean literal (TRUE/FALSE).
	Bool struct{ Value bool }

	// Str is a double-quoted string literal.
	Str struct{ Value string }

	// Var is a bare column reference.
	Var struct{ Name string }

	// Sum is "a + b + c" in source order.
	Sum struct{ Terms []Expr }

	// Prod is "a * b", crossing sugar.
	Prod struct{ Terms []Expr }

	// Interaction is "a:b:c".
	Interaction struct{ Terms []Expr }

	// Nest is "outer/inner" or "inner %in% outer" (written left to right as parsed).
	Nest struct {
		Outer Expr
		Inner Expr
		Kind  NestKind
	}

	// Pow is "base^exponent".
	Pow struct {
		Base     Expr
		Exponent Expr
	}

	// Group is a random-effect term "(inner|spec)". ID is empty when absent.
	Group struct {
		Inner Expr
		Spec  GroupSpec
		Kind  GroupKind
		ID    string
	}

	// Smooth is a smooth-term placeholder such as s(x, k=10).
	Smooth struct {
		Kind SmoothKind
		Vars []string
		Args map[string]Expr
	}

	// Func is a general function call. Binary minus is Func{Name: "NEG"}.
	Func struct {
		Name string
		Args []Expr
	}

	// Identity is I(expr), an arithmetic pass-through.
	Identity struct{ Inner Expr }

	// Intercept is an explicit 1 (Present) or 0.
	Intercept struct{ Present bool }

	// Dot is the "." placeholder for all remaining columns.
	Dot struct{}
)

func (Num) exprNode()         {}
func (Bool) exprNode()        {}
func (Str) exprNode()         {}
func (Var) exprNode()         {}
func (Sum) exprNode()         {}
func (Prod) exprNode()        {}
func (Interaction) exprNode() {}
func (Nest) exprNode()        {}
func (Pow) exprNode()         {}
func (Group) exprNode()       {}
func (Smooth) exprNode()      {}
func (Func) exprNode()        {}
func (Identity) exprNode()    {}
func (Intercept) exprNode()   {}
func (Dot) exprNode()         {}

// NegName is the internal function name for a subtracted term.
const NegName = "NEG"

// Neg wraps e in the internal negation call produced for "- e".
func Neg(e Expr) Func {
	return Func{Name: NegName, Args: []Expr{e}}
}

// IsNeg reports whether e is a negation call and returns its operand.
func IsNeg(e Expr) (Expr, bool) {
	f, ok := e.(Func)
	if !ok || f.Name != NegName || len(f.Args) != 1 {
		return nil, false
	}
	return f.Args[0], true
}

// IsInterceptRemoval reports whether e is "-1": NEG applied to an intercept
// literal or to the number 1.
func IsInterceptRemoval(e Expr) bool {
	inner, ok := IsNeg(e)
	if !ok {
		return false
	}
	switch v := inner.(type) {
	case Intercept:
		return v.Present
	case Num:
		return v.Value == 1
	}
	return false
}
