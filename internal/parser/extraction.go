package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseDestructure parses `*<pattern>` on the current pipe value.
func (p *Parser) parseDestructure() (*ast.DestructureExpr, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // *<

	var elems []*ast.PatternElement
	keyed := false
	positional := false
	for !p.cur.Is(lexer.GT) {
		elem, isKeyed, err := p.parsePatternElement()
		if err != nil {
			return nil, err
		}
		if isKeyed {
			keyed = true
		} else {
			positional = true
		}
		if keyed && positional {
			return nil, diag.NewInvalidPattern(p.loc(), "cannot mix positional and keyed elements")
		}
		elems = append(elems, elem)
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
		}
	}
	p.cur.Advance() // >

	d := &ast.DestructureExpr{SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}
	if keyed {
		d.Keyed = &ast.KeyedPattern{Elements: elems}
	} else {
		d.Positional = &ast.PositionalPattern{Elements: elems}
	}
	return d, nil
}

func (p *Parser) parsePatternElement() (*ast.PatternElement, bool, *diag.Error) {
	start := p.cur.Current().Pos

	if p.cur.Is(lexer.UNDERSCORE) {
		p.cur.Advance()
		return &ast.PatternElement{Skip: true, SpanVal: lexer.Span{Start: start}}, false, nil
	}
	if p.cur.Is(lexer.DESTRUCTURE) {
		nested, err := p.parseDestructure()
		if err != nil {
			return nil, false, err
		}
		return &ast.PatternElement{Nested: nested, SpanVal: lexer.Span{Start: start}}, false, nil
	}
	// Keyed form: `key: $var[:type]`.
	if p.cur.Is(lexer.IDENT) && p.cur.Peek(1).Type == lexer.COLON {
		keyTok := p.cur.Current()
		p.cur.Advance()
		p.cur.Advance() // :
		if _, err := p.expect(lexer.DOLLAR); err != nil {
			return nil, false, err
		}
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, false, err
		}
		typeName := ""
		if p.cur.Is(lexer.COLON) {
			p.cur.Advance()
			typeTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, false, err
			}
			typeName = typeTok.Literal
		}
		return &ast.PatternElement{Key: keyTok.Literal, Name: nameTok.Literal, TypeName: typeName, SpanVal: lexer.Span{Start: start}}, true, nil
	}
	// Positional form: `$var`.
	if _, err := p.expect(lexer.DOLLAR); err != nil {
		return nil, false, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, false, err
	}
	return &ast.PatternElement{Name: nameTok.Literal, SpanVal: lexer.Span{Start: start}}, false, nil
}

// parseSlice parses `/<start:stop:step>`. Bounds are parsed above
// relational precedence so the closing `>` is not read as greater-than.
func (p *Parser) parseSlice() (*ast.SliceExpr, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // /<

	s := &ast.SliceExpr{}
	if !p.cur.Is(lexer.COLON) {
		e, err := p.parseBinary(precRelational)
		if err != nil {
			return nil, err
		}
		s.Start = e
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	if !p.cur.Is(lexer.COLON) && !p.cur.Is(lexer.GT) {
		e, err := p.parseBinary(precRelational)
		if err != nil {
			return nil, err
		}
		s.Stop = e
	}
	if p.cur.Is(lexer.COLON) {
		p.cur.Advance()
		if !p.cur.Is(lexer.GT) {
			e, err := p.parseBinary(precRelational)
			if err != nil {
				return nil, err
			}
			s.Step = e
		}
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	s.SpanVal = lexer.Span{Start: start, End: p.cur.Current().Pos}
	return s, nil
}
