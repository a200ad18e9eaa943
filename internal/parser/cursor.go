package parser

import "github.com/rill-lang/rill/internal/lexer"

// tokenCursor is an immutable-feeling navigation wrapper over a lexer's
// token stream: Advance moves forward, Peek looks ahead without consuming,
// and Mark/ResetTo rewind to a saved position. No production in this
// package currently calls Mark/ResetTo; lookahead is done with Peek.
type tokenCursor struct {
	lex     *lexer.Lexer
	tokens  []lexer.Token
	index   int
}

// newTokenCursor creates a cursor positioned at the first token.
func newTokenCursor(l *lexer.Lexer) *tokenCursor {
	tokens := make([]lexer.Token, 1, 32)
	tokens[0] = l.NextToken()
	return &tokenCursor{lex: l, tokens: tokens, index: 0}
}

// Current returns the token at the cursor's position.
func (c *tokenCursor) Current() lexer.Token { return c.tokens[c.index] }

// Peek returns the token n positions ahead (Peek(0) == Current()).
func (c *tokenCursor) Peek(n int) lexer.Token {
	target := c.index + n
	for target >= len(c.tokens) {
		c.tokens = append(c.tokens, c.lex.NextToken())
	}
	return c.tokens[target]
}

// Advance moves the cursor forward one token and returns the new current.
func (c *tokenCursor) Advance() lexer.Token {
	if c.index+1 >= len(c.tokens) {
		c.tokens = append(c.tokens, c.lex.NextToken())
	}
	c.index++
	return c.tokens[c.index]
}

// Is reports whether the current token has type tt.
func (c *tokenCursor) Is(tt lexer.TokenType) bool { return c.Current().Type == tt }

// IsAny reports whether the current token's type is one of tts.
func (c *tokenCursor) IsAny(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if c.Is(tt) {
			return true
		}
	}
	return false
}

// mark is a saved cursor index for backtracking via ResetTo.
type mark int

// Mark returns a token usable with ResetTo to rewind the cursor.
func (c *tokenCursor) Mark() mark { return mark(c.index) }

// ResetTo rewinds the cursor to a previously captured Mark.
func (c *tokenCursor) ResetTo(m mark) { c.index = int(m) }

// SkipNewlines advances past any run of NEWLINE tokens.
func (c *tokenCursor) SkipNewlines() {
	for c.Is(lexer.NEWLINE) {
		c.Advance()
	}
}
