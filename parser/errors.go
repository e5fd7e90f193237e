// SPDX-License-Identifier: MIT

package parser

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/modelmatrix/lexer"
)

// ErrParse is the sentinel matched by every *Error via errors.Is.
var ErrParse = errors.New("parser: invalid formula")

// Error is a positioned parse failure.
// AtEOF is set when the input ended before the construct was complete.
type Error struct {
	Pos   lexer.Position
	Msg   string
	AtEOF bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg)
}

// Is reports whether target is ErrParse.
func (e *Error) Is(target error) bool { return target == ErrParse }

// IsIncomplete reports whether err was caused by premature end of input,
// i.e. more text could turn the formula into a valid one.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.AtEOF
}

// fromLexError converts a lexer failure into a parse error at the same spot.
func fromLexError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return &Error{Pos: lerr.Pos, Msg: lerr.Msg, AtEOF: lerr.Msg == "unterminated string literal"}
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}
