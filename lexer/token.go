// SPDX-License-Identifier: MIT

// Package lexer - token model.
//
// Purpose:
//   - Define the closed set of token kinds produced for formula text.
//   - Carry a source Position with every token so that the parser can report
//     "line:col" diagnostics without re-scanning the input.
//
// AI-Hints:
//   - Kind values are stable; the parser switches on them exhaustively.
//   - Token.Text for String tokens is the unescaped literal (quotes removed).
package lexer

import "fmt"

// Kind enumerates lexical token classes.
type Kind int

const (
	EOF        Kind = iota // end of input
	Ident                  // x, np.log, .hidden, cbind
	Number                 // 1, 2.5, 1e-3
	String                 // "text"
	Tilde                  // ~
	Plus                   // +
	Minus                  // -
	Star                   // *
	Colon                  // :
	Slash                  // /
	Caret                  // ^
	Pipe                   // |
	DoublePipe             // ||
	Equals                 // =
	Comma                  // ,
	LParen                 // (
	RParen                 // )
	In                     // %in%
	Dot                    // a lone "."
)

var kindNames = [...]string{
	EOF:        "end of input",
	Ident:      "identifier",
	Number:     "number",
	String:     "string",
	Tilde:      "'~'",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Colon:      "':'",
	Slash:      "'/'",
	Caret:      "'^'",
	Pipe:       "'|'",
	DoublePipe: "'||'",
	Equals:     "'='",
	Comma:      "','",
	LParen:     "'('",
	RParen:     "')'",
	In:         "'%in%'",
	Dot:        "'.'",
}

// String returns a human-readable name used in diagnostics.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a location in the source text.
// Offset is a 0-based byte offset; Line and Column are 1-based (Column counts runes).
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String renders the token for diagnostics, e.g. identifier "x" or '+'.
func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return t.Kind.String()
	}
}
