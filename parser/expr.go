// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/lexer"
)

// Precedence, low to high:
//
//	sum   := ['-'] prod (('+'|'-') prod)*
//	prod  := nest ('*' nest)*
//	nest  := inter (('/'|'%in%') inter)*
//	inter := pow (':' pow)*
//	pow   := atom ('^' (number | '(' sum ')'))?

func (p *parser) parseSum() (ast.Expr, error) {
	neg := false
	if p.at(lexer.Minus) {
		p.next()
		neg = true
	}
	head, err := p.parseProd()
	if err != nil {
		return nil, err
	}
	if neg {
		head = ast.Neg(head)
	}

	terms := []ast.Expr{head}
	for {
		switch {
		case p.at(lexer.Plus) && !p.atDparAhead() && !p.atAutocorAhead():
			p.next()
		case p.at(lexer.Minus):
			p.next()
			t, err := p.parseProd()
			if err != nil {
				return nil, err
			}
			terms = append(terms, ast.Neg(t))
			continue
		default:
			if len(terms) == 1 {
				return head, nil
			}
			return ast.Sum{Terms: terms}, nil
		}
		t, err := p.parseProd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
}

func (p *parser) parseProd() (ast.Expr, error) {
	first, err := p.parseNest()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Star) {
		return first, nil
	}
	terms := []ast.Expr{first}
	for p.at(lexer.Star) {
		p.next()
		t, err := p.parseNest()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return ast.Prod{Terms: terms}, nil
}

func (p *parser) parseNest() (ast.Expr, error) {
	acc, err := p.parseInter()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Slash) || p.at(lexer.In) {
		kind := ast.NestSlash
		if p.next().Kind == lexer.In {
			kind = ast.NestIn
		}
		rhs, err := p.parseInter()
		if err != nil {
			return nil, err
		}
		acc = ast.Nest{Outer: acc, Inner: rhs, Kind: kind}
	}
	return acc, nil
}

func (p *parser) parseInter() (ast.Expr, error) {
	first, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Colon) {
		return first, nil
	}
	terms := []ast.Expr{first}
	for p.at(lexer.Colon) {
		p.next()
		t, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return ast.Interaction{Terms: terms}, nil
}

func (p *parser) parsePow() (ast.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Caret) {
		return base, nil
	}
	p.next()

	var exp ast.Expr
	switch {
	case p.at(lexer.Number):
		v, err := parseNumber(p.next())
		if err != nil {
			return nil, err
		}
		exp = ast.Num{Value: v}
	case p.at(lexer.LParen):
		p.next()
		err = p.withArgMode(func() error {
			var err error
			if exp, err = p.parseSum(); err != nil {
				return err
			}
			return p.expect(lexer.RParen, "')' closing exponent")
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected("number or '(' after '^'")
	}
	return ast.Pow{Base: base, Exponent: exp}, nil
}

func (p *parser) parseAtom() (ast.Expr, error) {
	t := p.tok()
	switch t.Kind {
	case lexer.Number:
		p.next()
		v, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		if p.termMode && (v == 0 || v == 1) {
			return ast.Intercept{Present: v == 1}, nil
		}
		return ast.Num{Value: v}, nil

	case lexer.String:
		p.next()
		return ast.Str{Value: t.Text}, nil

	case lexer.Dot:
		p.next()
		return ast.Dot{}, nil

	case lexer.LParen:
		return p.parseParen()

	case lexer.Ident:
		return p.parseNamed()
	}

	if t.Kind == lexer.EOF {
		return nil, p.errorf(t, "unexpected end of formula, expected a term")
	}
	return nil, p.unexpected("a term")
}

// parseNamed handles identifiers: booleans, I(...), smooths, calls and variables.
func (p *parser) parseNamed() (ast.Expr, error) {
	t := p.next()
	call := p.at(lexer.LParen)

	switch t.Text {
	case "TRUE", "true":
		if !call {
			return ast.Bool{Value: true}, nil
		}
	case "FALSE", "false":
		if !call {
			return ast.Bool{Value: false}, nil
		}
	}
	if !call {
		return ast.Var{Name: t.Text}, nil
	}

	if t.Text == "I" {
		p.next()
		var inner ast.Expr
		err := p.withArgMode(func() error {
			var err error
			if inner, err = p.parseSum(); err != nil {
				return err
			}
			return p.expect(lexer.RParen, "')' closing I(")
		})
		if err != nil {
			return nil, err
		}
		return ast.Identity{Inner: inner}, nil
	}

	if kind, ok := ast.LookupSmooth(t.Text); ok {
		save := p.pos
		if sm, err := p.parseSmooth(kind); err == nil {
			return sm, nil
		}
		p.pos = save
	}

	args, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return ast.Func{Name: t.Text, Args: args}, nil
}

// parseSmooth parses "(v1, v2, ..., key=value, ...)" after s/t2/te/ti.
// Any other argument shape is rejected so that the caller can fall back to a call.
func (p *parser) parseSmooth(kind ast.SmoothKind) (ast.Expr, error) {
	p.next() // (
	sm := ast.Smooth{Kind: kind, Args: map[string]ast.Expr{}}
	err := p.withArgMode(func() error {
		for !p.at(lexer.RParen) {
			name, err := p.expectIdent()
			if err != nil {
				return err
			}
			if p.at(lexer.Equals) {
				p.next()
				val, err := p.parseSum()
				if err != nil {
					return err
				}
				sm.Args[name.Text] = val
			} else {
				if len(sm.Args) > 0 {
					return p.errorf(name, "smooth variable after named argument")
				}
				sm.Vars = append(sm.Vars, name.Text)
			}
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		return p.expect(lexer.RParen, "')'")
	})
	if err != nil {
		return nil, err
	}
	if len(sm.Vars) == 0 {
		return nil, &Error{Pos: p.tok().Pos, Msg: "smooth needs at least one variable"}
	}
	return sm, nil
}

// parseParen handles "( sum )" and the random-effect forms
// "(inner|spec)", "(inner||spec)" and "(inner|id|spec)".
func (p *parser) parseParen() (ast.Expr, error) {
	open := p.next()
	inner, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	g := ast.Group{Inner: inner}
	switch {
	case p.at(lexer.Pipe):
		p.next()
		if p.at(lexer.Ident) && p.peekN(1).Kind == lexer.Pipe {
			g.ID = p.next().Text
			p.next()
		}
	case p.at(lexer.DoublePipe):
		p.next()
		g.Kind = ast.Uncorrelated
	case p.at(lexer.RParen):
		p.next()
		return inner, nil
	case p.at(lexer.EOF):
		return nil, p.errorf(p.tok(), "unclosed '(' opened at %s", open.Pos)
	default:
		return nil, p.unexpected("')' or '|'")
	}

	if g.Spec, err = p.parseGroupSpec(); err != nil {
		return nil, err
	}
	if p.at(lexer.EOF) {
		return nil, p.errorf(p.tok(), "unclosed '(' opened at %s", open.Pos)
	}
	if err = p.expect(lexer.RParen, "')' closing group term"); err != nil {
		return nil, err
	}
	return g, nil
}

// parseGroupSpec parses "g1 ((':'|'/'|'+') g2)*" or "name(args)".
func (p *parser) parseGroupSpec() (ast.GroupSpec, error) {
	first, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.LParen) {
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return ast.GroupFunc{Name: first.Text, Args: args}, nil
	}

	chain := ast.GroupChain{Links: []ast.GroupLink{{Name: first.Text}}}
	for {
		var op ast.GroupOp
		switch p.tok().Kind {
		case lexer.Colon:
			op = ast.OpCross
		case lexer.Slash:
			op = ast.OpNest
		case lexer.Plus:
			op = ast.OpSplit
		default:
			return chain, nil
		}
		p.next()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		chain.Links = append(chain.Links, ast.GroupLink{Name: name.Text, Op: op})
	}
}
