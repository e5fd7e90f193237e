// SPDX-License-Identifier: MIT

// Package lexer - formula scanner.
//
// Implementation:
//   - Stage 1: skip whitespace while tracking line/column.
//   - Stage 2: dispatch on the current rune (operator table, quote, digit, name).
//   - Stage 3: append the token; stop after emitting EOF.
//
// Behavior highlights:
//   - "%in%" is a single In token; any other use of '%' is an error.
//   - "||" is one DoublePipe token; the parser never needs to re-join pipes.
//   - A '.' starts an identifier when followed by a letter or '_', a number when
//     followed by a digit, and is a Dot token otherwise.
//
// Complexity:
//   - Time O(n) in the input length, Space O(tokens).
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex scans src into a token slice terminated by an EOF token.
// It never panics; malformed input yields a *Error.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out, nil
		}
	}
}

// lexer holds the scanning cursor.
type lexer struct {
	src  string
	off  int // byte offset of the next rune
	line int
	col  int
}

func (l *lexer) pos() Position {
	return Position{Offset: l.off, Line: l.line, Column: l.col}
}

// peek returns the rune at byte offset off+ahead (ahead in bytes), or -1 at end.
func (l *lexer) peekAt(ahead int) rune {
	if l.off+ahead >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off+ahead:])
	return r
}

func (l *lexer) peek() rune { return l.peekAt(0) }

// advance consumes one rune and updates line/column.
func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) errorf(p Position, msg string) error {
	return &Error{Pos: p, Msg: msg}
}

// single-rune operators.
var punct = map[rune]Kind{
	'~': Tilde,
	'+': Plus,
	'-': Minus,
	'*': Star,
	':': Colon,
	'/': Slash,
	'^': Caret,
	'=': Equals,
	',': Comma,
	'(': LParen,
	')': RParen,
}

func (l *lexer) next() (Token, error) {
	for l.off < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
	start := l.pos()
	if l.off >= len(l.src) {
		return Token{Kind: EOF, Pos: start}, nil
	}

	r := l.peek()
	if k, ok := punct[r]; ok {
		l.advance()
		return Token{Kind: k, Text: string(r), Pos: start}, nil
	}

	switch {
	case r == '|':
		l.advance()
		if l.peek() == '|' {
			l.advance()
			return Token{Kind: DoublePipe, Text: "||", Pos: start}, nil
		}
		return Token{Kind: Pipe, Text: "|", Pos: start}, nil

	case r == '%':
		if strings.HasPrefix(l.src[l.off:], "%in%") {
			for i := 0; i < 4; i++ {
				l.advance()
			}
			return Token{Kind: In, Text: "%in%", Pos: start}, nil
		}
		return Token{}, l.errorf(start, "unexpected '%' (only %in% is supported)")

	case r == '"':
		return l.scanString(start)

	case isDigit(r):
		return l.scanNumber(start), nil

	case r == '.':
		nxt := l.peekAt(1)
		if isDigit(nxt) {
			return l.scanNumber(start), nil
		}
		if isNameStart(nxt) {
			return l.scanIdent(start), nil
		}
		l.advance()
		return Token{Kind: Dot, Text: ".", Pos: start}, nil

	case isNameStart(r):
		return l.scanIdent(start), nil
	}

	return Token{}, l.errorf(start, "unexpected character "+quoteRune(r))
}

func (l *lexer) scanIdent(start Position) Token {
	for l.off < len(l.src) {
		r := l.peek()
		if !isNameStart(r) && !isDigit(r) && r != '.' {
			break
		}
		l.advance()
	}
	return Token{Kind: Ident, Text: l.src[start.Offset:l.off], Pos: start}
}

func (l *lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	// exponent only when digits follow, so "2e" stays a number followed by an identifier
	if e := l.peek(); e == 'e' || e == 'E' {
		ahead := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			ahead = 2
		}
		if isDigit(l.peekAt(ahead)) {
			for i := 0; i < ahead; i++ {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return Token{Kind: Number, Text: l.src[start.Offset:l.off], Pos: start}
}

func (l *lexer) scanString(start Position) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.off >= len(l.src) {
			return Token{}, l.errorf(start, "unterminated string literal")
		}
		r := l.advance()
		switch r {
		case '"':
			return Token{Kind: String, Text: sb.String(), Pos: start}, nil
		case '\\':
			if l.off >= len(l.src) {
				return Token{}, l.errorf(start, "unterminated string literal")
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
