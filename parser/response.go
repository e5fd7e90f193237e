// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/lexer"
)

// parseResponse parses the left-hand side (without aterms).
func (p *parser) parseResponse() (ast.Response, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.LParen) {
		return ast.RespVar{Name: name.Text}, nil
	}

	switch name.Text {
	case "cbind", "mvbind":
		p.next()
		var multi ast.RespMulti
		for {
			v, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			multi.Names = append(multi.Names, v.Text)
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		if err = p.expect(lexer.RParen, "')' closing "+name.Text+"("); err != nil {
			return nil, err
		}
		if len(multi.Names) < 2 {
			return nil, p.errorf(name, "%s() needs at least two response columns", name.Text)
		}
		return multi, nil

	case "Surv":
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		if len(args) < 2 || len(args) > 3 {
			return nil, p.errorf(name, "Surv() takes 2 or 3 arguments, got %d", len(args))
		}
		s := ast.RespSurv{Time: args[0], Event: args[1]}
		if len(args) == 3 {
			s.Time2 = args[2]
		}
		return s, nil
	}

	args, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return ast.RespFunc{Name: name.Text, Args: args}, nil
}

// parseAterms parses "aterm ((','|'|'|'+') aterm)*".
func (p *parser) parseAterms() ([]ast.Aterm, error) {
	var out []ast.Aterm
	for {
		a, err := p.parseAterm()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		if !p.at(lexer.Comma) && !p.at(lexer.Pipe) && !p.at(lexer.Plus) {
			return out, nil
		}
		p.next()
	}
}

func (p *parser) parseAterm() (ast.Aterm, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.Aterm{}, err
	}
	kind, ok := ast.LookupAterm(name.Text)
	if !ok {
		return ast.Aterm{}, p.errorf(name, "unknown response term %q", name.Text)
	}
	if !p.at(lexer.LParen) {
		return ast.Aterm{}, p.unexpected("'(' after " + name.Text)
	}
	a := ast.Aterm{Kind: kind}

	switch kind {
	case ast.AtermTrunc, ast.AtermThres:
		p.next()
		err = p.withArgMode(func() error {
			for !p.at(lexer.RParen) {
				key, err := p.expectIdent()
				if err != nil {
					return err
				}
				if err = p.expect(lexer.Equals, "'='"); err != nil {
					return err
				}
				val, err := p.parseSum()
				if err != nil {
					return err
				}
				switch {
				case kind == ast.AtermTrunc && key.Text == "lb":
					a.LB = val
				case kind == ast.AtermTrunc && key.Text == "ub":
					a.UB = val
				case kind == ast.AtermThres && key.Text == "gr":
					a.GR = val
				default:
					return p.errorf(key, "unknown argument %q for %s()", key.Text, name.Text)
				}
				if !p.at(lexer.Comma) {
					break
				}
				p.next()
			}
			return p.expect(lexer.RParen, "')' closing "+name.Text+"(")
		})
		return a, err

	case ast.AtermMi:
		p.next()
		return a, p.expect(lexer.RParen, "')' closing mi(")
	}

	args, err := p.parseCallArgs()
	if err != nil {
		return ast.Aterm{}, err
	}
	switch kind {
	case ast.AtermVReal, ast.AtermVInt:
		if len(args) == 0 {
			return ast.Aterm{}, p.errorf(name, "%s() needs at least one argument", name.Text)
		}
	default:
		if len(args) != 1 {
			return ast.Aterm{}, p.errorf(name, "%s() takes exactly one argument, got %d", name.Text, len(args))
		}
	}
	a.Args = args
	return a, nil
}

// parseCallArgs parses "( [name =] expr (, [name =] expr)* [,] )" in argument
// mode. Argument names are accepted and dropped; values keep their position.
func (p *parser) parseCallArgs() ([]ast.Expr, error) {
	open := p.tok()
	if err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	args := []ast.Expr{}
	err := p.withArgMode(func() error {
		for !p.at(lexer.RParen) {
			if p.at(lexer.Ident) && p.peekN(1).Kind == lexer.Equals {
				p.next()
				p.next()
			}
			arg, err := p.parseSum()
			if err != nil {
				return err
			}
			args = append(args, arg)
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		if !p.at(lexer.RParen) {
			if p.at(lexer.EOF) {
				return p.errorf(p.tok(), "unclosed '(' opened at %s", open.Pos)
			}
			return p.unexpected("',' or ')'")
		}
		p.next()
		return nil
	})
	return args, err
}
