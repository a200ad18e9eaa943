package parser

import (
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseQuotedString turns the raw (still-escaped, still-interpolated) text
// the lexer captured between quotes into a StringLiteral or, when it
// contains `{expr}` segments, an InterpolatedString. Triple-quoted strings
// forbid interpolation: a `{` inside one is a syntax error here; otherwise
// triple-quoted text is taken verbatim with no escape processing.
func (p *Parser) parseQuotedString(tok lexer.Token, triple bool) (ast.Expression, *diag.Error) {
	p.cur.Advance()
	if triple {
		if strings.Contains(tok.Literal, "{") {
			return nil, diag.NewInvalidSyntax(&diag.Location{Source: p.source, File: p.file, Pos: tok.Pos}, "interpolation is forbidden in triple-quoted strings")
		}
		return &ast.StringLiteral{Value: tok.Literal, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	}

	parts, err := p.splitInterpolation(tok)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 && !parts[0].IsExpr {
		return &ast.StringLiteral{Value: parts[0].Text, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	}
	return &ast.InterpolatedString{Parts: parts, SpanVal: lexer.Span{Start: tok.Pos}}, nil
}

func (p *Parser) splitInterpolation(tok lexer.Token) ([]ast.InterpolationPart, *diag.Error) {
	raw := tok.Literal
	var parts []ast.InterpolationPart
	var lit strings.Builder

	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case ch == '\\' && i+1 < len(raw):
			lit.WriteByte(unescape(raw[i+1]))
			i += 2
		case ch == '{':
			depth := 1
			j := i + 1
			inStr := false
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '"':
					if raw[j-1] != '\\' {
						inStr = !inStr
					}
				case '{':
					if !inStr {
						depth++
					}
				case '}':
					if !inStr {
						depth--
						if depth == 0 {
							continue
						}
					}
				}
				j++
			}
			if depth != 0 {
				return nil, diag.NewInvalidSyntax(p.loc(), "unterminated interpolation in string literal")
			}
			inner := raw[i+1 : j]
			if strings.TrimSpace(inner) == "" {
				return nil, diag.NewInvalidSyntax(p.loc(), "empty interpolation in string literal")
			}
			if lit.Len() > 0 {
				parts = append(parts, ast.InterpolationPart{Text: lit.String()})
				lit.Reset()
			}
			sub := New(inner)
			expr, perr := sub.parsePipeChain()
			if perr != nil {
				return nil, perr
			}
			parts = append(parts, ast.InterpolationPart{IsExpr: true, Expr: expr})
			i = j + 1
		default:
			lit.WriteByte(ch)
			i++
		}
	}
	if lit.Len() > 0 || len(parts) == 0 {
		parts = append(parts, ast.InterpolationPart{Text: lit.String()})
	}
	return parts, nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '"':
		return '"'
	case '\\':
		return '\\'
	default:
		return c
	}
}
