// SPDX-License-Identifier: MIT

package lexer

import (
	"errors"
	"fmt"
)

// ErrLex is the sentinel matched by every *Error via errors.Is.
var ErrLex = errors.New("lexer: invalid input")

// Error is a lexical error anchored at a source position.
type Error struct {
	Pos Position
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

// Is reports whether target is ErrLex.
func (e *Error) Is(target error) bool { return target == ErrLex }
