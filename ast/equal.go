// SPDX-License-Identifier: MIT

package ast

// Equal reports structural equality of two expressions.
// Nil and empty argument lists compare equal; maps compare key by key.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Num:
		y, ok := b.(Num)
		return ok && x.Value == y.Value
	case Bool:
		y, ok := b.(Bool)
		return ok && x.Value == y.Value
	case Str:
		y, ok := b.(Str)
		return ok && x.Value == y.Value
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Sum:
		y, ok := b.(Sum)
		return ok && equalList(x.Terms, y.Terms)
	case Prod:
		y, ok := b.(Prod)
		return ok && equalList(x.Terms, y.Terms)
	case Interaction:
		y, ok := b.(Interaction)
		return ok && equalList(x.Terms, y.Terms)
	case Nest:
		y, ok := b.(Nest)
		return ok && x.Kind == y.Kind && Equal(x.Outer, y.Outer) && Equal(x.Inner, y.Inner)
	case Pow:
		y, ok := b.(Pow)
		return ok && Equal(x.Base, y.Base) && Equal(x.Exponent, y.Exponent)
	case Group:
		y, ok := b.(Group)
		return ok && x.Kind == y.Kind && x.ID == y.ID &&
			Equal(x.Inner, y.Inner) && EqualGroupSpec(x.Spec, y.Spec)
	case Smooth:
		y, ok := b.(Smooth)
		return ok && x.Kind == y.Kind && equalStrings(x.Vars, y.Vars) && equalMap(x.Args, y.Args)
	case Func:
		y, ok := b.(Func)
		return ok && x.Name == y.Name && equalList(x.Args, y.Args)
	case Identity:
		y, ok := b.(Identity)
		return ok && Equal(x.Inner, y.Inner)
	case Intercept:
		y, ok := b.(Intercept)
		return ok && x.Present == y.Present
	case Dot:
		_, ok := b.(Dot)
		return ok
	}
	return false
}

// EqualGroupSpec reports structural equality of two grouping specs.
func EqualGroupSpec(a, b GroupSpec) bool {
	switch x := a.(type) {
	case GroupChain:
		y, ok := b.(GroupChain)
		if !ok || len(x.Links) != len(y.Links) {
			return false
		}
		for i := range x.Links {
			if x.Links[i] != y.Links[i] {
				return false
			}
		}
		return true
	case GroupFunc:
		y, ok := b.(GroupFunc)
		return ok && x.Name == y.Name && equalList(x.Args, y.Args)
	}
	return a == nil && b == nil
}

func equalList(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalMap(a, b map[string]Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}
