package lexer_test

import (
	"testing"

	"github.com/katalvlaran/modelmatrix/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

// TestLexOperators covers every operator token, including the two-character ones.
func TestLexOperators(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex("y ~ a + b - c * d : e / f ^ 2 | g || h = , ( ) %in% .")
	require.NoError(t, err)
	assert.Equal(t, []lexer.Kind{
		lexer.Ident, lexer.Tilde, lexer.Ident, lexer.Plus, lexer.Ident, lexer.Minus,
		lexer.Ident, lexer.Star, lexer.Ident, lexer.Colon, lexer.Ident, lexer.Slash,
		lexer.Ident, lexer.Caret, lexer.Number, lexer.Pipe, lexer.Ident, lexer.DoublePipe,
		lexer.Ident, lexer.Equals, lexer.Comma, lexer.LParen, lexer.RParen, lexer.In,
		lexer.Dot, lexer.EOF,
	}, kinds(toks))
}

// TestLexIdentifiersAndNumbers checks dotted names, leading-dot names and numeric forms.
func TestLexIdentifiersAndNumbers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		src  string
		kind lexer.Kind
		text string
	}{
		{"np.log", lexer.Ident, "np.log"},
		{".hidden", lexer.Ident, ".hidden"},
		{"x_1", lexer.Ident, "x_1"},
		{"42", lexer.Number, "42"},
		{"2.5", lexer.Number, "2.5"},
		{"1e-3", lexer.Number, "1e-3"},
		{".5", lexer.Number, ".5"},
	}
	for _, tc := range cases {
		toks, err := lexer.Lex(tc.src)
		require.NoError(t, err, tc.src)
		require.Len(t, toks, 2, tc.src)
		assert.Equal(t, tc.kind, toks[0].Kind, tc.src)
		assert.Equal(t, tc.text, toks[0].Text, tc.src)
	}
}

// TestLexString verifies unescaping of quoted literals.
func TestLexString(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex(`"a \"b\" c"`)
	require.NoError(t, err)
	assert.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, `a "b" c`, toks[0].Text)
}

// TestLexPositions checks that line and column are tracked across newlines.
func TestLexPositions(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex("y ~\n  x")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, lexer.Position{Offset: 0, Line: 1, Column: 1}, toks[0].Pos)
	assert.Equal(t, lexer.Position{Offset: 2, Line: 1, Column: 3}, toks[1].Pos)
	assert.Equal(t, lexer.Position{Offset: 6, Line: 2, Column: 3}, toks[2].Pos)
}

// TestLexErrors asserts positioned errors for malformed input.
func TestLexErrors(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"y ~ x % z", `y ~ f("abc`, "y ~ x $ z"} {
		_, err := lexer.Lex(src)
		require.Error(t, err, src)
		assert.ErrorIs(t, err, lexer.ErrLex, src)
		var lerr *lexer.Error
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, 1, lerr.Pos.Line)
	}
}
