package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

func (p *Parser) parsePrimary() (ast.Expression, *diag.Error) {
	tok := p.cur.Current()
	switch tok.Type {
	case lexer.STRING:
		return p.parseQuotedString(tok, false)
	case lexer.TRIPLE_STRING:
		return p.parseQuotedString(tok, true)
	case lexer.HEREDOC:
		p.cur.Advance()
		return &ast.HeredocLiteral{Value: tok.Literal, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.INT, lexer.FLOAT:
		p.cur.Advance()
		n, err := parseNumberLiteral(tok)
		if err != nil {
			return nil, diag.NewInvalidSyntax(p.loc(), "malformed number literal: "+tok.Literal)
		}
		return n, nil
	case lexer.TRUE:
		p.cur.Advance()
		return &ast.BoolLiteral{Value: true, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.FALSE:
		p.cur.Advance()
		return &ast.BoolLiteral{Value: false, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.NULL:
		p.cur.Advance()
		return &ast.NilLiteral{SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.DOLLAR, lexer.PIPE_VAR:
		return p.parseVariable()
	case lexer.UNDERSCORE:
		p.cur.Advance()
		return &ast.Identifier{Value: "_", SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.LBRACKET:
		return p.parseBracketLiteral()
	case lexer.LPAREN:
		return p.parseParenOrWhile()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.AT:
		return p.parseDoWhile()
	case lexer.PIPE:
		return p.parseClosureLiteral()
	case lexer.EACH, lexer.MAP, lexer.FOLD, lexer.FILTER:
		return p.parseIterator()
	case lexer.DESTRUCTURE:
		return p.parseDestructure()
	case lexer.SLICE_OP:
		return p.parseSlice()
	case lexer.STAR:
		p.cur.Advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.SpreadExpr{Operand: operand, SpanVal: lexer.Span{Start: tok.Pos, End: operand.Span().End}}, nil
	case lexer.COLON:
		p.cur.Advance()
		if p.cur.Is(lexer.QUESTION) {
			p.cur.Advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			return &ast.TypeCheck{TypeName: name.Literal, SpanVal: lexer.Span{Start: tok.Pos}}, nil
		}
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.TypeAssertion{TypeName: name.Literal, SpanVal: lexer.Span{Start: tok.Pos}}, nil
	case lexer.IDENT:
		return p.parseCallOrName()
	case lexer.QUESTION:
		return p.parseBareConditional()
	default:
		return nil, diag.NewUnexpectedToken(p.loc(), "expression", tok.Type.String())
	}
}

// parseVariable parses `$name` or bare `$`, leaving any access-chain suffix
// to be attached by parsePostfixChain.
func (p *Parser) parseVariable() (*ast.Variable, *diag.Error) {
	tok := p.cur.Current()
	name := ""
	if tok.Type == lexer.DOLLAR {
		p.cur.Advance()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		name = nameTok.Literal
	} else {
		p.cur.Advance() // bare $
	}
	return &ast.Variable{Name: name, SpanVal: lexer.Span{Start: tok.Pos}}, nil
}

// parseCallOrName parses `foo(args)`, `ns::foo(args)`, or a bare identifier
// used as a value (e.g. a pattern binding name or a no-call function ref).
func (p *Parser) parseCallOrName() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	first, _ := p.expect(lexer.IDENT)
	namespace := ""
	name := first.Literal
	if p.cur.Is(lexer.COLON_COLON) {
		p.cur.Advance()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		namespace = name
		name = nameTok.Literal
	}
	if p.cur.Is(lexer.LPAREN) {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{
			Target: &ast.HostCallTarget{Namespace: namespace, Name: name, Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}},
			SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos},
		}, nil
	}
	return &ast.Identifier{Value: name, SpanVal: lexer.Span{Start: start}}, nil
}

// parseBareConditional parses `? then ! else` where the condition is the
// incoming pipe value (written standalone, not as `cond ? then`).
func (p *Parser) parseBareConditional() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // ?
	then, err := p.parseArithHead()
	if err != nil {
		return nil, err
	}
	var elseExpr ast.Expression
	if p.cur.Is(lexer.EXCLAIM) {
		p.cur.Advance()
		elseExpr, err = p.parseArithHead()
		if err != nil {
			return nil, err
		}
	}
	return &ast.ConditionalExpr{Then: then, Else: elseExpr, SpanVal: lexer.Span{Start: start}}, nil
}

// parseParenOrWhile disambiguates `(expr)` from `(cond) @ body` by
// lookahead after the closing paren.
func (p *Parser) parseParenOrWhile() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // (
	inner, err := p.parsePipeChain()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if p.cur.Is(lexer.AT) {
		p.cur.Advance()
		body, err := p.parsePipeChain()
		if err != nil {
			return nil, err
		}
		return &ast.WhileLoop{Cond: inner, Body: body, SpanVal: lexer.Span{Start: start, End: body.Span().End}}, nil
	}
	// Also handles the bare conditional form `(cond) -> ? then ! else`,
	// which parses identically to a grouped expression at this point; the
	// '?' is consumed by the surrounding pipe chain / postfix parsing.
	return &ast.GroupedExpr{Inner: inner, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

func (p *Parser) parseDoWhile() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // @
	body, err := p.parsePipeChain()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.QUESTION); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseArithHead()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.DoWhileLoop{Body: body, Cond: cond, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

func (p *Parser) parseBlock() (*ast.Block, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // {
	p.cur.SkipNewlines()
	var stmts []ast.Statement
	for !p.cur.Is(lexer.RBRACE) && !p.cur.Is(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.cur.SkipNewlines()
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}
