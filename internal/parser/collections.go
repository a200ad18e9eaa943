package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseBracketLiteral disambiguates `[e1, e2, ...]` (list) from
// `[key: value, ...]` (dict) by checking whether the first element is an
// identifier or string immediately followed by a colon.
func (p *Parser) parseBracketLiteral() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // [
	p.cur.SkipNewlines()

	if p.cur.Is(lexer.RBRACKET) {
		p.cur.Advance()
		return &ast.ListLiteral{SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
	}

	if p.looksLikeDictEntry() {
		return p.parseDictLiteral(start)
	}
	return p.parseListLiteral(start)
}

func (p *Parser) looksLikeDictEntry() bool {
	tok := p.cur.Current()
	if tok.Type != lexer.IDENT && tok.Type != lexer.STRING {
		return false
	}
	return p.cur.Peek(1).Type == lexer.COLON
}

func (p *Parser) parseListLiteral(start lexer.Position) (*ast.ListLiteral, *diag.Error) {
	var elems []ast.Expression
	for !p.cur.Is(lexer.RBRACKET) {
		p.cur.SkipNewlines()
		e, err := p.parseArithHead()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.cur.SkipNewlines()
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
			p.cur.SkipNewlines()
		}
	}
	p.cur.Advance() // ]
	return &ast.ListLiteral{Elements: elems, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

func (p *Parser) parseDictLiteral(start lexer.Position) (*ast.DictLiteral, *diag.Error) {
	var entries []*ast.DictEntry
	for !p.cur.Is(lexer.RBRACKET) {
		p.cur.SkipNewlines()
		keyTok := p.cur.Current()
		key := keyTok.Literal
		p.cur.Advance()
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseArithHead()
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.DictEntry{Key: key, Value: val, SpanVal: lexer.Span{Start: keyTok.Pos, End: val.Span().End}})
		p.cur.SkipNewlines()
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
			p.cur.SkipNewlines()
		}
	}
	p.cur.Advance() // ]
	return &ast.DictLiteral{Entries: entries, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

// parseIterator parses each/map/fold/filter, all sharing the shape:
// KEYWORD [source ->] |elem[, acc]| body
func (p *Parser) parseIterator() (ast.Expression, *diag.Error) {
	kw := p.cur.Current()
	p.cur.Advance()

	var source ast.Expression
	if !p.cur.Is(lexer.PIPE) {
		var err *diag.Error
		source, err = p.parseArithHead()
		if err != nil {
			return nil, err
		}
		if p.cur.Is(lexer.ARROW) {
			p.cur.Advance()
		}
	}

	elementName, accName, accExpr, body, err := p.parseIteratorClosure(kw.Type)
	if err != nil {
		return nil, err
	}

	ib := ast.IteratorBody{
		Source: source, ElementName: elementName, AccumulatorName: accName, Body: body, Accumulator: accExpr,
		SpanVal: lexer.Span{Start: kw.Pos, End: body.Span().End},
	}

	switch kw.Type {
	case lexer.EACH:
		return &ast.EachExpr{IteratorBody: ib}, nil
	case lexer.MAP:
		return &ast.MapExpr{IteratorBody: ib}, nil
	case lexer.FOLD:
		if accExpr == nil {
			return nil, diag.NewInvalidSyntax(p.loc(), "fold requires an accumulator")
		}
		return &ast.FoldExpr{IteratorBody: ib}, nil
	case lexer.FILTER:
		return &ast.FilterExpr{IteratorBody: ib}, nil
	}
	return nil, diag.NewInvalidSyntax(p.loc(), "unreachable iterator kind")
}

// parseIteratorClosure parses the `|elem[, acc = init]| body` portion
// shared by each/map/fold/filter.
func (p *Parser) parseIteratorClosure(kind lexer.TokenType) (elementName, accName string, acc ast.Expression, body ast.Expression, err *diag.Error) {
	if _, e := p.expect(lexer.PIPE); e != nil {
		return "", "", nil, nil, e
	}
	nameTok, e := p.expect(lexer.IDENT)
	if e != nil {
		return "", "", nil, nil, e
	}
	elementName = nameTok.Literal

	if p.cur.Is(lexer.COMMA) {
		p.cur.Advance()
		accNameTok, e := p.expect(lexer.IDENT)
		if e != nil {
			return "", "", nil, nil, e
		}
		accName = accNameTok.Literal
		if p.cur.Is(lexer.ASSIGN) {
			p.cur.Advance()
			acc, e = p.parseArithHead()
			if e != nil {
				return "", "", nil, nil, e
			}
		}
	}
	if _, e := p.expect(lexer.PIPE); e != nil {
		return "", "", nil, nil, e
	}
	body, e = p.parsePipeChain()
	if e != nil {
		return "", "", nil, nil, e
	}
	return elementName, accName, acc, body, nil
}
