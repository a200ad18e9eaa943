package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// precedence levels, lowest to highest, per spec.md §4.2:
// || < && < == != < > <= >= < + - < * / % < unary
const (
	precLowest = iota
	precOrOr
	precAndAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

var binPrecedence = map[lexer.TokenType]int{
	lexer.OR_OR:   precOrOr,
	lexer.AND_AND: precAndAnd,
	lexer.EQ:      precEquality,
	lexer.NEQ:     precEquality,
	lexer.LT:      precRelational,
	lexer.GT:      precRelational,
	lexer.LE:      precRelational,
	lexer.GE:      precRelational,
	lexer.PLUS:    precAdditive,
	lexer.MINUS:   precAdditive,
	lexer.STAR:    precMultiplicative,
	lexer.SLASH:   precMultiplicative,
	lexer.PERCENT: precMultiplicative,
}

var opSymbol = map[lexer.TokenType]string{
	lexer.OR_OR: "||", lexer.AND_AND: "&&", lexer.EQ: "==", lexer.NEQ: "!=",
	lexer.LT: "<", lexer.GT: ">", lexer.LE: "<=", lexer.GE: ">=",
	lexer.PLUS: "+", lexer.MINUS: "-", lexer.STAR: "*", lexer.SLASH: "/", lexer.PERCENT: "%",
}

// parseArithHead parses the arithmetic/logical operand of a pipe chain
// head, via precedence climbing starting at precLowest.
func (p *Parser) parseArithHead() (ast.Expression, *diag.Error) {
	return p.parseBinary(precLowest)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expression, *diag.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binPrecedence[p.cur.Current().Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		opTok := p.cur.Current()
		p.cur.Advance()
		right, err := p.parseBinary(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Left: left, Operator: opSymbol[opTok.Type], Right: right,
			SpanVal: lexer.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, *diag.Error) {
	tok := p.cur.Current()
	if tok.Type == lexer.MINUS || tok.Type == lexer.EXCLAIM {
		p.cur.Advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		sym := "-"
		if tok.Type == lexer.EXCLAIM {
			sym = "!"
		}
		return &ast.UnaryExpression{Operator: sym, Operand: operand, SpanVal: lexer.Span{Start: tok.Pos, End: operand.Span().End}}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and any trailing chain of
// field/index/coalesce/type-assertion/invocation suffixes.
func (p *Parser) parsePostfix() (ast.Expression, *diag.Error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixChain(base)
}

func (p *Parser) parsePostfixChain(base ast.Expression) (ast.Expression, *diag.Error) {
	var chain []ast.AccessStep
	flush := func() {
		if len(chain) == 0 {
			return
		}
		if v, ok := base.(*ast.Variable); ok {
			v.Chain = append(v.Chain, chain...)
		} else {
			base = &ast.AccessChain{Base: base, Chain: chain, SpanVal: base.Span()}
		}
		chain = nil
	}

	for {
		switch p.cur.Current().Type {
		case lexer.DOT:
			start := p.cur.Current().Pos
			p.cur.Advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			chain = append(chain, &ast.FieldAccess{Field: name.Literal, SpanVal: lexer.Span{Start: start}})
		case lexer.OPT_DOT:
			start := p.cur.Current().Pos
			p.cur.Advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			andType := ""
			if p.cur.Is(lexer.AMPERSAND) {
				p.cur.Advance()
				typeTok, err := p.expect(lexer.IDENT)
				if err != nil {
					return nil, err
				}
				andType = typeTok.Literal
			}
			chain = append(chain, &ast.OptionalFieldAccess{Field: name.Literal, AndType: andType, SpanVal: lexer.Span{Start: start}})
		case lexer.QUESTION_QUESTION:
			start := p.cur.Current().Pos
			p.cur.Advance()
			def, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			chain = append(chain, &ast.NullCoalesce{Default: def, SpanVal: lexer.Span{Start: start, End: def.Span().End}})
		case lexer.LBRACKET:
			start := p.cur.Current().Pos
			p.cur.Advance()
			idx, err := p.parseArithHead()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			chain = append(chain, &ast.IndexAccess{Index: idx, SpanVal: lexer.Span{Start: start}})
		case lexer.COLON:
			// expr:type / expr:?type — a postfix, not a chain step. A colon
			// followed by anything else (e.g. the next slice bound) ends
			// the postfix chain.
			flush()
			if next := p.cur.Peek(1).Type; next != lexer.IDENT && next != lexer.QUESTION {
				return base, nil
			}
			start := p.cur.Current().Pos
			p.cur.Advance()
			if p.cur.Is(lexer.QUESTION) {
				p.cur.Advance()
				name, err := p.expect(lexer.IDENT)
				if err != nil {
					return nil, err
				}
				base = &ast.TypeCheck{Operand: base, TypeName: name.Literal, SpanVal: lexer.Span{Start: start}}
				continue
			}
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			base = &ast.TypeAssertion{Operand: base, TypeName: name.Literal, SpanVal: lexer.Span{Start: start}}
		case lexer.LPAREN:
			flush()
			start := p.cur.Current().Pos
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			base = &ast.CallExpression{
				Target:  &ast.InvokeTarget{Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}},
				SpanVal: lexer.Span{Start: base.Span().Start, End: p.cur.Current().Pos},
			}
		default:
			flush()
			return base, nil
		}
	}
}

// parseArgList parses a parenthesized, comma-separated argument list,
// consuming both the opening and closing parens.
func (p *Parser) parseArgList() ([]*ast.Argument, *diag.Error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []*ast.Argument
	for !p.cur.Is(lexer.RPAREN) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArgument() (*ast.Argument, *diag.Error) {
	start := p.cur.Current().Pos
	spread := false
	if p.cur.Is(lexer.STAR) {
		spread = true
		p.cur.Advance()
	}
	name := ""
	if p.cur.Is(lexer.IDENT) && p.cur.Peek(1).Type == lexer.COLON && p.cur.Peek(2).Type != lexer.COLON {
		name = p.cur.Current().Literal
		p.cur.Advance()
		p.cur.Advance()
	}
	val, err := p.parseArithHead()
	if err != nil {
		return nil, err
	}
	return &ast.Argument{Name: name, Value: val, Spread: spread, SpanVal: lexer.Span{Start: start, End: val.Span().End}}, nil
}
