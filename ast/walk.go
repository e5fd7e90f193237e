// SPDX-License-Identifier: MIT

package ast

import "sort"

// Inspect traverses e in depth-first order, calling f for each node.
// Children are skipped when f returns false. Group specs are not visited.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	switch x := e.(type) {
	case Sum:
		inspectList(x.Terms, f)
	case Prod:
		inspectList(x.Terms, f)
	case Interaction:
		inspectList(x.Terms, f)
	case Nest:
		Inspect(x.Outer, f)
		Inspect(x.Inner, f)
	case Pow:
		Inspect(x.Base, f)
		Inspect(x.Exponent, f)
	case Group:
		Inspect(x.Inner, f)
	case Smooth:
		for _, k := range sortedKeys(x.Args) {
			Inspect(x.Args[k], f)
		}
	case Func:
		inspectList(x.Args, f)
	case Identity:
		Inspect(x.Inner, f)
	}
}

func inspectList(list []Expr, f func(Expr) bool) {
	for _, e := range list {
		Inspect(e, f)
	}
}

// Variables returns the sorted, de-duplicated column names the main formula
// refers to: response columns, right-hand-side variables, smooth variables
// and grouping variables of chain specs.
func Variables(spec *ModelSpec) []string {
	seen := make(map[string]struct{})
	add := func(name string) {
		if name != "" {
			seen[name] = struct{}{}
		}
	}
	visit := func(e Expr) {
		Inspect(e, func(n Expr) bool {
			switch x := n.(type) {
			case Var:
				add(x.Name)
			case Smooth:
				for _, v := range x.Vars {
					add(v)
				}
			case Group:
				if c, ok := x.Spec.(GroupChain); ok {
					for _, l := range c.Links {
						add(l.Name)
					}
				}
			}
			return true
		})
	}

	switch r := spec.Formula.LHS.(type) {
	case RespVar:
		add(r.Name)
	case RespMulti:
		for _, n := range r.Names {
			add(n)
		}
	case RespSurv:
		visit(r.Time)
		visit(r.Event)
		visit(r.Time2)
	case RespFunc:
		for _, a := range r.Args {
			visit(a)
		}
	case RespBinomialTrials:
		visit(r.Successes)
		visit(r.Trials)
	}
	visit(spec.Formula.RHS)

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SortedKeys returns the keys of an argument map in lexical order.
func SortedKeys(m map[string]Expr) []string { return sortedKeys(m) }

func sortedKeys(m map[string]Expr) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
