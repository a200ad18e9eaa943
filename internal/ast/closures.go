package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// ClosureParam is one declared parameter of a ClosureLiteral.
type ClosureParam struct {
	Name         string
	TypeName     string // "" means untyped
	HasDefault   bool
	Default      Expression // nil when HasDefault is false
	SpanVal      lexer.Span
}

func (p *ClosureParam) Span() lexer.Span { return p.SpanVal }
func (p *ClosureParam) String() string {
	s := p.Name
	if p.TypeName != "" {
		s += ":" + p.TypeName
	}
	if p.HasDefault {
		s += " = " + p.Default.String()
	}
	return s
}

// ClosureLiteral is `|p1, p2:type = default| body`.
type ClosureLiteral struct {
	Params  []*ClosureParam
	Body    Expression
	SpanVal lexer.Span
}

func (c *ClosureLiteral) expressionNode()  {}
func (c *ClosureLiteral) Span() lexer.Span { return c.SpanVal }
func (c *ClosureLiteral) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.String()
	}
	return "|" + strings.Join(parts, ", ") + "| " + c.Body.String()
}
