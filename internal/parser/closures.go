package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseClosureLiteral parses `|p1, p2:type = default| body`.
func (p *Parser) parseClosureLiteral() (*ast.ClosureLiteral, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // |

	var params []*ast.ClosureParam
	for !p.cur.Is(lexer.PIPE) {
		param, err := p.parseClosureParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.cur.Is(lexer.COMMA) {
			p.cur.Advance()
		}
	}
	p.cur.Advance() // closing |

	body, err := p.parsePipeChain()
	if err != nil {
		return nil, err
	}
	return &ast.ClosureLiteral{Params: params, Body: body, SpanVal: lexer.Span{Start: start, End: body.Span().End}}, nil
}

func (p *Parser) parseClosureParam() (*ast.ClosureParam, *diag.Error) {
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	param := &ast.ClosureParam{Name: nameTok.Literal, SpanVal: lexer.Span{Start: nameTok.Pos}}
	if p.cur.Is(lexer.COLON) {
		p.cur.Advance()
		typeTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		param.TypeName = typeTok.Literal
	}
	if p.cur.Is(lexer.ASSIGN) {
		p.cur.Advance()
		def, err := p.parseArithHead()
		if err != nil {
			return nil, err
		}
		param.HasDefault = true
		param.Default = def
	}
	return param, nil
}
