// Package parser turns a Rill token stream into an AST.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// Parser is a recursive-descent parser with Pratt-style precedence
// climbing for binary operators, built over a backtracking tokenCursor.
type Parser struct {
	cur     *tokenCursor
	source  string
	file    string
	errors  []*diag.Error
	recover bool
}

// New creates a Parser over source in strict mode (the first error aborts
// parsing by returning it from Parse).
func New(source string) *Parser {
	return newParser(source, false)
}

// NewWithRecovery creates a Parser in recovery mode: errors are recorded
// and parsing resynchronizes at the next safe newline instead of aborting.
func NewWithRecovery(source string) *Parser {
	return newParser(source, true)
}

func newParser(source string, recover bool) *Parser {
	l := lexer.New(source)
	return &Parser{cur: newTokenCursor(l), source: source, recover: recover}
}

// Errors returns all parse errors accumulated so far. Only recovery mode
// records errors here; strict mode returns its first error without
// recording it.
func (p *Parser) Errors() []*diag.Error { return p.errors }

func (p *Parser) loc() *diag.Location {
	return &diag.Location{Source: p.source, File: p.file, Pos: p.cur.Current().Pos}
}

func (p *Parser) errorf(code, format string, args ...any) *diag.Error {
	msg := fmt.Sprintf(format, args...)
	var e *diag.Error
	switch code {
	case diag.CodeUnexpectedToken:
		e = diag.NewUnexpectedToken(p.loc(), "", msg)
	default:
		e = diag.NewInvalidSyntax(p.loc(), msg)
	}
	return e
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *diag.Error) {
	if !p.cur.Is(tt) {
		got := p.cur.Current()
		return got, diag.NewUnexpectedToken(p.loc(), tt.String(), got.Type.String())
	}
	tok := p.cur.Current()
	p.cur.Advance()
	return tok, nil
}

// Parse parses a complete script in strict mode: the first error aborts
// parsing and is returned. ParseWithRecovery is the recovery-mode entry
// point.
func Parse(source string) (*ast.ScriptNode, error) {
	p := New(source)
	script, err := p.parseScript()
	if err != nil {
		return nil, err
	}
	return script, nil
}

// RecoveryResult is the outcome of ParseWithRecovery.
type RecoveryResult struct {
	Script  *ast.ScriptNode
	Errors  []*diag.Error
	Success bool
}

// ParseWithRecovery parses source, recording errors and resynchronizing at
// statement boundaries instead of aborting on the first error.
func ParseWithRecovery(source string) RecoveryResult {
	p := NewWithRecovery(source)
	script, _ := p.parseScript()
	return RecoveryResult{Script: script, Errors: p.errors, Success: len(p.errors) == 0}
}

func (p *Parser) parseScript() (*ast.ScriptNode, *diag.Error) {
	start := p.cur.Current().Pos
	script := &ast.ScriptNode{}

	if p.cur.Is(lexer.FRONTMATTER) {
		fm, err := p.parseFrontmatter()
		if err != nil {
			if !p.recover {
				return nil, err
			}
			p.errors = append(p.errors, err)
		} else {
			script.Frontmatter = fm
		}
	}

	p.cur.SkipNewlines()
	for !p.cur.Is(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			if !p.recover {
				return nil, err
			}
			p.errors = append(p.errors, err)
			stmt = p.synchronize(err)
		}
		script.Statements = append(script.Statements, stmt)
		p.cur.SkipNewlines()
	}

	script.SpanVal = lexer.Span{Start: start, End: p.cur.Current().Pos}
	return script, nil
}

func (p *Parser) parseFrontmatter() (*ast.Frontmatter, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // consume opening ---

	var sb strings.Builder
	// The lexer tokenizes frontmatter content as ordinary tokens; since its
	// YAML body is opaque to the core, we instead re-scan it as raw text by
	// walking the source between the two '---' markers.
	openOffset := start.Offset + 3
	idx := strings.Index(p.source[openOffset:], "\n---")
	if idx < 0 {
		return nil, diag.NewInvalidSyntax(p.loc(), "unterminated frontmatter block")
	}
	sb.WriteString(strings.TrimPrefix(p.source[openOffset:openOffset+idx], "\n"))

	closeOffset := openOffset + idx + 1 // position of closing ---
	rest := p.source[closeOffset+3:]
	// Re-lex from just after the closing delimiter.
	p.cur = newTokenCursor(lexer.New(rest))

	return &ast.Frontmatter{Content: sb.String(), SpanVal: lexer.Span{Start: start}}, nil
}

func (p *Parser) parseStatement() (ast.Statement, *diag.Error) {
	start := p.cur.Current().Pos
	var annotation *ast.Annotation
	if p.cur.Is(lexer.CARET) {
		a, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		annotation = a
		p.cur.SkipNewlines()
	}

	expr, err := p.parsePipeChain()
	if err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{
		Annotation: annotation,
		Expr:       expr,
		SpanVal:    lexer.Span{Start: start, End: p.cur.Current().Pos},
	}, nil
}

func (p *Parser) parseAnnotation() (*ast.Annotation, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // ^
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var entries []*ast.AnnotationEntry
	for !p.cur.Is(lexer.RPAREN) {
		keyTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseArithHead()
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.AnnotationEntry{Key: keyTok.Literal, Value: val, SpanVal: lexer.Span{Start: keyTok.Pos}})
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
		}
	}
	p.cur.Advance() // )
	return &ast.Annotation{Entries: entries, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

// synchronize advances the cursor to the next newline not nested inside a
// bracket/paren/brace, emitting an ErrorNode in place of the failed
// statement, per the recovery rule in spec.md §4.2.
func (p *Parser) synchronize(err *diag.Error) ast.Statement {
	start := p.cur.Current().Pos
	depth := 0
	var sb strings.Builder
	for !p.cur.Is(lexer.EOF) {
		tok := p.cur.Current()
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACE, lexer.LBRACKET:
			depth++
		case lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET:
			if depth > 0 {
				depth--
			}
		case lexer.NEWLINE:
			if depth == 0 {
				p.cur.Advance()
				node := &ast.ErrorNode{Message: err.Message, Text: sb.String(), SpanVal: lexer.Span{Start: start, End: tok.Pos}}
				return node
			}
		}
		sb.WriteString(tok.Literal)
		sb.WriteString(" ")
		p.cur.Advance()
	}
	return &ast.ErrorNode{Message: err.Message, Text: sb.String(), SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}
}

func parseNumberLiteral(tok lexer.Token) (*ast.NumberLiteral, error) {
	clean := strings.ReplaceAll(tok.Literal, "_", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, err
	}
	return &ast.NumberLiteral{Value: f, Literal: tok.Literal, SpanVal: lexer.Span{Start: tok.Pos}}, nil
}
