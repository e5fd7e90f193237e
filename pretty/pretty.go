// SPDX-License-Identifier: MIT

// Package pretty renders syntax trees back to formula text.
//
// The output of an uncolored Printer is accepted by parser.Parse and reprints
// identically: parentheses are emitted exactly where operator precedence
// would otherwise change the tree shape.
//
// Layout:
//   - "lhs | aterm | aterm ~ rhs + dpar ~ rhs + autocor(k=v), family=f(), link=l"
//   - an empty response prints the right-hand side alone.
//   - map-valued arguments (smooth and autocorrelation) print in key order.
//
// AI-Hints:
//   - Color is an injected flag; the package never inspects the terminal.
package pretty

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/modelmatrix/ast"
)

// Printer renders formulas. The zero value prints plain text.
type Printer struct {
	Color bool // wrap tokens in ANSI escapes for terminal display
}

// Spec renders spec with a plain Printer.
func Spec(spec *ast.ModelSpec) string { return Printer{}.Spec(spec) }

// Expr renders e with a plain Printer.
func Expr(e ast.Expr) string { return Printer{}.Expr(e) }

// precedence levels, low to high
const (
	precTop = iota
	precSum
	precProd
	precNest
	precInter
	precPow
	precAtom
)

const (
	ansiReset   = "\x1b[0m"
	ansiVar     = "\x1b[36m" // cyan
	ansiFunc    = "\x1b[33m" // yellow
	ansiLiteral = "\x1b[35m" // magenta
	ansiOp      = "\x1b[1m"  // bold
	ansiGroup   = "\x1b[32m" // green
)

func (p Printer) paint(code, s string) string {
	if !p.Color || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Spec renders a complete model.
func (p Printer) Spec(spec *ast.ModelSpec) string {
	if spec == nil {
		return ""
	}
	var sb strings.Builder

	lhs := p.response(spec.Formula.LHS)
	if lhs != "" {
		sb.WriteString(lhs)
		for _, a := range spec.Formula.Aterms {
			sb.WriteString(" | ")
			sb.WriteString(p.aterm(a))
		}
		sb.WriteString(p.paint(ansiOp, " ~ "))
	}
	sb.WriteString(p.Expr(spec.Formula.RHS))

	for _, d := range spec.Dpars {
		sb.WriteString(" + ")
		sb.WriteString(p.paint(ansiVar, d.Name))
		sb.WriteString(p.paint(ansiOp, " ~ "))
		sb.WriteString(p.Expr(d.RHS))
	}
	for _, ac := range spec.Autocor {
		sb.WriteString(" + ")
		sb.WriteString(p.paint(ansiFunc, ac.Name))
		sb.WriteString("(")
		sb.WriteString(p.namedArgs(ac.Args))
		sb.WriteString(")")
	}

	if spec.Family != nil {
		sb.WriteString(", family=")
		sb.WriteString(p.family(spec.Family))
		if spec.Link != nil {
			sb.WriteString(", link=")
			sb.WriteString(p.paint(ansiFunc, spec.Link.Name))
			if len(spec.Link.Args) > 0 {
				sb.WriteString("(" + p.args(spec.Link.Args) + ")")
			}
		}
	}
	return sb.String()
}

// Expr renders an expression.
func (p Printer) Expr(e ast.Expr) string {
	return p.expr(e, precTop)
}

// expr renders e, parenthesized when its precedence is below min.
func (p Printer) expr(e ast.Expr, min int) string {
	s, prec := p.render(e)
	if prec < min {
		return "(" + s + ")"
	}
	return s
}

func (p Printer) render(e ast.Expr) (string, int) {
	if arg, ok := ast.IsNeg(e); ok {
		return p.paint(ansiOp, "-") + p.expr(arg, precProd), precSum
	}

	switch x := e.(type) {
	case ast.Sum:
		var sb strings.Builder
		for i, t := range x.Terms {
			if arg, ok := ast.IsNeg(t); ok {
				if i > 0 {
					sb.WriteString(p.paint(ansiOp, " - "))
				} else {
					sb.WriteString(p.paint(ansiOp, "-"))
				}
				sb.WriteString(p.expr(arg, precProd))
				continue
			}
			if i > 0 {
				sb.WriteString(p.paint(ansiOp, " + "))
			}
			sb.WriteString(p.expr(t, precProd))
		}
		return sb.String(), precSum

	case ast.Prod:
		return p.join(x.Terms, " * ", precNest), precProd

	case ast.Nest:
		op := " / "
		if x.Kind == ast.NestIn {
			op = " %in% "
		}
		return p.expr(x.Outer, precNest) + p.paint(ansiOp, op) + p.expr(x.Inner, precInter), precNest

	case ast.Interaction:
		return p.join(x.Terms, ":", precPow), precInter

	case ast.Pow:
		exp := ""
		if n, ok := x.Exponent.(ast.Num); ok && n.Value >= 0 {
			exp = p.paint(ansiLiteral, formatNum(n.Value))
		} else {
			exp = "(" + p.Expr(x.Exponent) + ")"
		}
		return p.expr(x.Base, precAtom) + p.paint(ansiOp, "^") + exp, precPow

	case ast.Group:
		sep := "|"
		switch {
		case x.ID != "":
			sep = "|" + x.ID + "|"
		case x.Kind == ast.Uncorrelated:
			sep = "||"
		}
		return p.paint(ansiGroup, "(") + p.Expr(x.Inner) + p.paint(ansiGroup, sep) +
			p.groupSpec(x.Spec) + p.paint(ansiGroup, ")"), precAtom

	case ast.Smooth:
		parts := make([]string, 0, len(x.Vars)+1)
		for _, v := range x.Vars {
			parts = append(parts, p.paint(ansiVar, v))
		}
		if len(x.Args) > 0 {
			parts = append(parts, p.namedArgs(x.Args))
		}
		return p.paint(ansiFunc, x.Kind.String()) + "(" + strings.Join(parts, ", ") + ")", precAtom

	case ast.Func:
		return p.paint(ansiFunc, x.Name) + "(" + p.args(x.Args) + ")", precAtom

	case ast.Identity:
		return p.paint(ansiFunc, "I") + "(" + p.Expr(x.Inner) + ")", precAtom

	case ast.Num:
		return p.paint(ansiLiteral, formatNum(x.Value)), precAtom

	case ast.Bool:
		if x.Value {
			return p.paint(ansiLiteral, "TRUE"), precAtom
		}
		return p.paint(ansiLiteral, "FALSE"), precAtom

	case ast.Str:
		return p.paint(ansiLiteral, quote(x.Value)), precAtom

	case ast.Var:
		return p.paint(ansiVar, x.Name), precAtom

	case ast.Intercept:
		if x.Present {
			return p.paint(ansiLiteral, "1"), precAtom
		}
		return p.paint(ansiLiteral, "0"), precAtom

	case ast.Dot:
		return ".", precAtom
	}
	return "", precAtom
}

func (p Printer) join(terms []ast.Expr, sep string, min int) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = p.expr(t, min)
	}
	return strings.Join(parts, p.paint(ansiOp, sep))
}

func (p Printer) args(list []ast.Expr) string {
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = p.Expr(a)
	}
	return strings.Join(parts, ", ")
}

func (p Printer) namedArgs(m map[string]ast.Expr) string {
	keys := ast.SortedKeys(m)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p.Expr(m[k])
	}
	return strings.Join(parts, ", ")
}

func (p Printer) groupSpec(s ast.GroupSpec) string {
	switch x := s.(type) {
	case ast.GroupChain:
		var sb strings.Builder
		for _, l := range x.Links {
			switch l.Op {
			case ast.OpCross:
				sb.WriteString(":")
			case ast.OpNest:
				sb.WriteString("/")
			case ast.OpSplit:
				sb.WriteString("+")
			}
			sb.WriteString(p.paint(ansiVar, l.Name))
		}
		return sb.String()
	case ast.GroupFunc:
		return p.paint(ansiFunc, x.Name) + "(" + p.args(x.Args) + ")"
	}
	return ""
}

func (p Printer) response(r ast.Response) string {
	switch x := r.(type) {
	case ast.RespVar:
		return p.paint(ansiVar, x.Name)
	case ast.RespMulti:
		names := make([]string, len(x.Names))
		for i, n := range x.Names {
			names[i] = p.paint(ansiVar, n)
		}
		return p.paint(ansiFunc, "cbind") + "(" + strings.Join(names, ", ") + ")"
	case ast.RespSurv:
		args := []ast.Expr{x.Time, x.Event}
		if x.Time2 != nil {
			args = append(args, x.Time2)
		}
		return p.paint(ansiFunc, "Surv") + "(" + p.args(args) + ")"
	case ast.RespFunc:
		return p.paint(ansiFunc, x.Name) + "(" + p.args(x.Args) + ")"
	case ast.RespBinomialTrials:
		return p.Expr(x.Successes) + " | " + p.paint(ansiFunc, "trials") + "(" + p.Expr(x.Trials) + ")"
	}
	return ""
}

func (p Printer) aterm(a ast.Aterm) string {
	name := p.paint(ansiFunc, a.Kind.String())
	switch a.Kind {
	case ast.AtermTrunc:
		var parts []string
		if a.LB != nil {
			parts = append(parts, "lb="+p.Expr(a.LB))
		}
		if a.UB != nil {
			parts = append(parts, "ub="+p.Expr(a.UB))
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	case ast.AtermThres:
		if a.GR != nil {
			return name + "(gr=" + p.Expr(a.GR) + ")"
		}
		return name + "()"
	case ast.AtermMi:
		return name + "()"
	}
	return name + "(" + p.args(a.Args) + ")"
}

func (p Printer) family(f ast.Family) string {
	switch x := f.(type) {
	case ast.FamilyBuiltin:
		// A bare name stays bare: "mixture" and "custom_family" only reparse
		// as builtins without parentheses.
		if x.Args == nil {
			return p.paint(ansiFunc, x.Name)
		}
		return p.paint(ansiFunc, x.Name) + "(" + p.args(x.Args) + ")"
	case ast.FamilyMixture:
		parts := make([]string, len(x.Families))
		for i, m := range x.Families {
			parts[i] = p.family(m)
		}
		return p.paint(ansiFunc, "mixture") + "(" + strings.Join(parts, ", ") + ")"
	case ast.FamilyCustom:
		parts := []string{quote(x.Name)}
		for _, d := range x.Dpars {
			parts = append(parts, quote(d))
		}
		return p.paint(ansiFunc, "custom_family") + "(" + strings.Join(parts, ", ") + ")"
	}
	return ""
}

// formatNum prints the shortest representation that parses back to v.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// quote escapes exactly what the lexer unescapes.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
