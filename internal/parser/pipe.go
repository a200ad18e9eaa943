package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
)

// parsePipeChain parses `arithHead (("->" | ":>") pipeTarget)* terminator?`.
// A trailing capture (":>") is syntactically identical to a mid-chain one,
// per spec.md §4.6 ("a trailing capture is equivalent to an inline
// capture"), so both are folded into Targets; only `break`/`return` become
// the chain's Terminator. When there are no targets and no terminator, the
// head expression is returned directly rather than wrapped in a PipeChain.
func (p *Parser) parsePipeChain() (ast.Expression, *diag.Error) {
	start := p.cur.Current().Pos
	head, err := p.parseArithHead()
	if err != nil {
		return nil, err
	}

	var targets []ast.PipeTarget
	for p.cur.IsAny(lexer.ARROW, lexer.CAPTURE_OP) {
		if p.cur.Is(lexer.CAPTURE_OP) {
			t, err := p.parseCaptureTarget()
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
			continue
		}
		p.cur.Advance() // ->
		t, err := p.parsePipeTarget()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	var term ast.Terminator
	if p.cur.Is(lexer.BREAK) {
		tok := p.cur.Current()
		p.cur.Advance()
		term = &ast.BreakTerminator{SpanVal: lexer.Span{Start: tok.Pos}}
	} else if p.cur.Is(lexer.RETURN) {
		tok := p.cur.Current()
		p.cur.Advance()
		term = &ast.ReturnTerminator{SpanVal: lexer.Span{Start: tok.Pos}}
	}

	if len(targets) == 0 && term == nil {
		return head, nil
	}
	return &ast.PipeChain{
		Head: head, Targets: targets, Terminator: term,
		SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos},
	}, nil
}

func (p *Parser) parseCaptureTarget() (*ast.CaptureTarget, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // :>
	if _, err := p.expect(lexer.DOLLAR); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	typeName := ""
	if p.cur.Is(lexer.COLON) {
		p.cur.Advance()
		typeTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		typeName = typeTok.Literal
	}
	return &ast.CaptureTarget{Name: nameTok.Literal, TypeName: typeName, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

// parsePipeTarget parses the production following an explicit "->".
func (p *Parser) parsePipeTarget() (ast.PipeTarget, *diag.Error) {
	tok := p.cur.Current()
	switch tok.Type {
	case lexer.CLOSURE_CHAIN:
		start := tok.Pos
		p.cur.Advance()
		expr, err := p.parseArithHead()
		if err != nil {
			return nil, err
		}
		return &ast.ClosureChainTarget{Expr: expr, SpanVal: lexer.Span{Start: start, End: expr.Span().End}}, nil
	case lexer.DOT:
		return p.parseMethodCallTarget()
	case lexer.DOLLAR, lexer.PIPE_VAR:
		return p.parseClosureCallOrVariableTarget()
	case lexer.LPAREN:
		start := tok.Pos
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.InvokeTarget{Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
	case lexer.IDENT:
		return p.parseHostCallOrBareNameTarget()
	case lexer.QUESTION:
		c, err := p.parseBareConditional()
		if err != nil {
			return nil, err
		}
		return c.(*ast.ConditionalExpr), nil
	}

	// Any other expression-shaped pipe target (loop, block, string,
	// grouped expr, destructure, slice, spread, type assertion/check)
	// parses as an ordinary primary/postfix expression. One that doesn't
	// already implement PipeTarget (a string or list literal, an arithmetic
	// expression) is wrapped in a GroupedExpr, which evaluates it in a
	// child scope that sees the incoming pipe value as `$`.
	expr, err := p.parseArithHead()
	if err != nil {
		return nil, err
	}
	if pt, ok := expr.(ast.PipeTarget); ok {
		return pt, nil
	}
	return &ast.GroupedExpr{Inner: expr, SpanVal: expr.Span()}, nil
}

func (p *Parser) parseMethodCallTarget() (*ast.MethodCallTarget, *diag.Error) {
	start := p.cur.Current().Pos
	p.cur.Advance() // .
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	var args []*ast.Argument
	if p.cur.Is(lexer.LPAREN) {
		args, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
	}
	return &ast.MethodCallTarget{Method: nameTok.Literal, Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

func (p *Parser) parseClosureCallOrVariableTarget() (ast.PipeTarget, *diag.Error) {
	start := p.cur.Current().Pos
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	// Attach any field/index chain before the call parens, e.g. $obj.path(args).
	for p.cur.IsAny(lexer.DOT, lexer.LBRACKET, lexer.OPT_DOT, lexer.QUESTION_QUESTION) {
		expr, err := p.parsePostfixChain(v)
		if err != nil {
			return nil, err
		}
		if vv, ok := expr.(*ast.Variable); ok {
			v = vv
		}
		break
	}
	var args []*ast.Argument
	if p.cur.Is(lexer.LPAREN) {
		args, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
	} else {
		// A bare variable used as a pipe target with no call parens is
		// still a ClosureCallTarget; it is invoked with zero explicit args.
	}
	return &ast.ClosureCallTarget{Callee: v, Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}

func (p *Parser) parseHostCallOrBareNameTarget() (ast.PipeTarget, *diag.Error) {
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
		return &ast.HostCallTarget{Namespace: namespace, Name: name, Args: args, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
	}
	if namespace != "" {
		return &ast.HostCallTarget{Namespace: namespace, Name: name, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
	}
	return &ast.BareNameTarget{Name: name, SpanVal: lexer.Span{Start: start, End: p.cur.Current().Pos}}, nil
}
