// SPDX-License-Identifier: MIT

// Package parser turns formula text into an *ast.ModelSpec.
//
// Implementation:
//   - Stage 1: tokenize with lexer.Lex.
//   - Stage 2: parse an optional leading header "family=..., link=...".
//   - Stage 3: when a top-level '~' is present parse "response ~ rhs" followed
//     by "+ dpar ~ rhs" sub-formulas and "+ autocor(name=value)" terms;
//     otherwise parse an RHS-only formula.
//   - Stage 4: parse an optional trailing header, which overrides the leading one.
//
// Behavior highlights:
//   - The literals 1 and 0 written as formula terms become ast.Intercept;
//     inside function arguments they stay ast.Num.
//   - "a - b" becomes Sum[a, NEG(b)]; a leading "-a" becomes NEG(a).
//   - Every failure is a *Error carrying a line:col position. Parse never panics.
//
// Complexity:
//   - Time O(n) in the number of tokens (bounded look-ahead, one scan for the
//     two-sided decision and at most one backtrack per smooth call).
package parser

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/modelmatrix/ast"
	"github.com/katalvlaran/modelmatrix/lexer"
)

// Parse parses a complete formula.
func Parse(src string) (spec *ast.ModelSpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			spec, err = nil, fmt.Errorf("%w: internal: %v", ErrParse, r)
		}
	}()

	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, fromLexError(err)
	}
	p := &parser{toks: toks, termMode: true}

	return p.parseModel()
}

// ParseExpr parses a bare right-hand-side expression such as "a*b + (1|g)".
func ParseExpr(src string) (e ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, fmt.Errorf("%w: internal: %v", ErrParse, r)
		}
	}()

	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, fromLexError(err)
	}
	p := &parser{toks: toks, termMode: true}
	if e, err = p.parseSum(); err != nil {
		return nil, err
	}
	if err = p.expect(lexer.EOF, "end of expression"); err != nil {
		return nil, err
	}
	return e, nil
}

// parser is the recursive-descent state.
type parser struct {
	toks []lexer.Token
	pos  int
	// termMode converts the literals 1/0 into intercept control.
	termMode bool
}

func (p *parser) tok() lexer.Token { return p.peekN(0) }

func (p *parser) peekN(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *parser) at(k lexer.Kind) bool { return p.tok().Kind == k }

func (p *parser) atIdent(text string) bool {
	t := p.tok()
	return t.Kind == lexer.Ident && t.Text == text
}

func (p *parser) next() lexer.Token {
	t := p.tok()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t lexer.Token, format string, args ...any) error {
	return &Error{Pos: t.Pos, Msg: fmt.Sprintf(format, args...), AtEOF: t.Kind == lexer.EOF}
}

func (p *parser) unexpected(what string) error {
	t := p.tok()
	return p.errorf(t, "expected %s, found %s", what, t)
}

func (p *parser) expect(k lexer.Kind, what string) error {
	if !p.at(k) {
		return p.unexpected(what)
	}
	p.next()
	return nil
}

func (p *parser) expectIdent() (lexer.Token, error) {
	if !p.at(lexer.Ident) {
		return lexer.Token{}, p.unexpected("identifier")
	}
	return p.next(), nil
}

// withArgMode runs fn with 1/0 parsed as plain numbers.
func (p *parser) withArgMode(fn func() error) error {
	saved := p.termMode
	p.termMode = false
	err := fn()
	p.termMode = saved
	return err
}

// header holds a parsed "family=..., link=..." clause.
type header struct {
	family ast.Family
	link   *ast.Link
}

func (p *parser) atHeader() bool {
	return p.atIdent("family") && p.peekN(1).Kind == lexer.Equals
}

func (p *parser) parseModel() (*ast.ModelSpec, error) {
	var lead *header
	if p.atHeader() {
		h, err := p.parseHeader()
		if err != nil {
			return nil, err
		}
		lead = h
		if p.at(lexer.Comma) {
			p.next()
		}
	}

	spec := &ast.ModelSpec{}
	if p.at(lexer.Tilde) {
		p.next() // one-sided "~ rhs"
	}
	if p.hasTilde() {
		lhs, aterms, err := p.parseLHS()
		if err != nil {
			return nil, err
		}
		spec.Formula.LHS = lhs
		spec.Formula.Aterms = aterms
		rhs, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		spec.Formula.RHS = rhs
		if err = p.parseTail(spec); err != nil {
			return nil, err
		}
	} else {
		rhs, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		spec.Formula.LHS = ast.RespVar{}
		spec.Formula.RHS = rhs
		if err = p.parseTail(spec); err != nil {
			return nil, err
		}
	}

	final := lead
	if p.at(lexer.Comma) {
		p.next()
		if !p.atHeader() {
			return nil, p.unexpected("'family=' header")
		}
		h, err := p.parseHeader()
		if err != nil {
			return nil, err
		}
		final = h
	}
	if !p.at(lexer.EOF) {
		return nil, p.unexpected("end of formula")
	}
	if final != nil {
		spec.Family = final.family
		spec.Link = final.link
	}

	return spec, nil
}

// hasTilde reports whether a '~' follows the cursor outside parentheses,
// which selects the two-sided form.
func (p *parser) hasTilde() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
		case lexer.Tilde:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// parseLHS parses "response [| aterms] ~".
func (p *parser) parseLHS() (ast.Response, []ast.Aterm, error) {
	resp, err := p.parseResponse()
	if err != nil {
		return nil, nil, err
	}
	var aterms []ast.Aterm
	if p.at(lexer.Pipe) {
		p.next()
		if aterms, err = p.parseAterms(); err != nil {
			return nil, nil, err
		}
	}
	if err = p.expect(lexer.Tilde, "'~'"); err != nil {
		return nil, nil, err
	}

	// y | trials(n) folds into a binomial response.
	if v, isVar := resp.(ast.RespVar); isVar && len(aterms) == 1 && aterms[0].Kind == ast.AtermTrials {
		return ast.RespBinomialTrials{Successes: ast.Var{Name: v.Name}, Trials: aterms[0].Args[0]}, nil, nil
	}
	return resp, aterms, nil
}

// parseTail consumes "+ dpar ~ rhs" and "+ autocor(...)" terms after the RHS.
func (p *parser) parseTail(spec *ast.ModelSpec) error {
	for p.at(lexer.Plus) {
		switch {
		case p.atDparAhead():
			p.next()
			name := p.next().Text
			p.next() // ~
			rhs, err := p.parseSum()
			if err != nil {
				return err
			}
			spec.Dpars = append(spec.Dpars, ast.Dpar{Name: name, RHS: rhs})
		case p.atAutocorAhead():
			p.next()
			ac, err := p.parseAutocor()
			if err != nil {
				return err
			}
			spec.Autocor = append(spec.Autocor, ac)
		default:
			return p.unexpected("sub-formula or autocorrelation term")
		}
	}
	return nil
}

// atDparAhead matches "+ name ~" with a distributional parameter name.
func (p *parser) atDparAhead() bool {
	name := p.peekN(1)
	return name.Kind == lexer.Ident && ast.IsDparName(name.Text) && p.peekN(2).Kind == lexer.Tilde
}

// atAutocorAhead matches "+ ar(" followed by a named argument or ")".
func (p *parser) atAutocorAhead() bool {
	name := p.peekN(1)
	if name.Kind != lexer.Ident || !ast.IsAutocorName(name.Text) || p.peekN(2).Kind != lexer.LParen {
		return false
	}
	first := p.peekN(3)
	if first.Kind == lexer.RParen {
		return true
	}
	return first.Kind == lexer.Ident && p.peekN(4).Kind == lexer.Equals
}

func (p *parser) parseAutocor() (ast.Autocor, error) {
	name := p.next().Text
	p.next() // (
	ac := ast.Autocor{Name: name, Args: map[string]ast.Expr{}}
	err := p.withArgMode(func() error {
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
			ac.Args[key.Text] = val
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		return p.expect(lexer.RParen, "')' closing "+name+"(")
	})
	return ac, err
}

func (p *parser) parseHeader() (*header, error) {
	p.next() // family
	p.next() // =
	fam, err := p.parseFamily()
	if err != nil {
		return nil, err
	}
	h := &header{family: fam}
	if p.at(lexer.Comma) && p.peekN(1).Kind == lexer.Ident && p.peekN(1).Text == "link" &&
		p.peekN(2).Kind == lexer.Equals {
		p.next()
		p.next()
		p.next()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		link := &ast.Link{Name: name.Text}
		if p.at(lexer.LParen) {
			if link.Args, err = p.parseCallArgs(); err != nil {
				return nil, err
			}
		}
		h.link = link
	}
	return h, nil
}

func (p *parser) parseFamily() (ast.Family, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	switch {
	case name.Text == "mixture" && p.at(lexer.LParen):
		p.next()
		var mix ast.FamilyMixture
		for {
			f, err := p.parseFamily()
			if err != nil {
				return nil, err
			}
			mix.Families = append(mix.Families, f)
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		if err = p.expect(lexer.RParen, "')' closing mixture("); err != nil {
			return nil, err
		}
		if len(mix.Families) < 2 {
			return nil, p.errorf(name, "mixture() needs at least two families")
		}
		return mix, nil

	case name.Text == "custom_family" && p.at(lexer.LParen):
		p.next()
		var cf ast.FamilyCustom
		for i := 0; ; i++ {
			if !p.at(lexer.String) {
				return nil, p.unexpected("string literal")
			}
			s := p.next().Text
			if i == 0 {
				cf.Name = s
			} else {
				cf.Dpars = append(cf.Dpars, s)
			}
			if !p.at(lexer.Comma) {
				break
			}
			p.next()
		}
		if err = p.expect(lexer.RParen, "')' closing custom_family("); err != nil {
			return nil, err
		}
		return cf, nil
	}

	fb := ast.FamilyBuiltin{Name: name.Text}
	if p.at(lexer.LParen) {
		if fb.Args, err = p.parseCallArgs(); err != nil {
			return nil, err
		}
	}
	return fb, nil
}

// parseNumber converts a Number token; the lexer guarantees the syntax.
func parseNumber(t lexer.Token) (float64, error) {
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return 0, &Error{Pos: t.Pos, Msg: "invalid number " + strconv.Quote(t.Text)}
	}
	return v, nil
}
