package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// PatternElement is one element of a destructure pattern: either a
// positional binding (list pattern) or a keyed binding (dict pattern).
type PatternElement struct {
	// Positional pattern fields.
	Skip    bool            // true for `_`
	Nested  *DestructureExpr // non-nil for a nested `*<...>` pattern
	Name    string          // bound variable name; "" when Skip or Nested

	// Keyed pattern fields (Key != "" marks this as a keyed element).
	Key      string
	TypeName string // "" when untyped

	SpanVal lexer.Span
}

func (p *PatternElement) Span() lexer.Span { return p.SpanVal }
func (p *PatternElement) String() string {
	if p.Key != "" {
		s := p.Key + ": $" + p.Name
		if p.TypeName != "" {
			s += ":" + p.TypeName
		}
		return s
	}
	if p.Skip {
		return "_"
	}
	if p.Nested != nil {
		return p.Nested.String()
	}
	return "$" + p.Name
}

// PositionalPattern is a list-shaped destructure pattern.
type PositionalPattern struct {
	Elements []*PatternElement
}

// KeyedPattern is a dict-shaped destructure pattern.
type KeyedPattern struct {
	Elements []*PatternElement
}

// DestructureExpr is `*<pattern>`, applied to the incoming pipe value.
// Exactly one of Positional/Keyed is non-nil.
type DestructureExpr struct {
	Positional *PositionalPattern
	Keyed      *KeyedPattern
	SpanVal    lexer.Span
}

func (d *DestructureExpr) expressionNode()  {}
func (d *DestructureExpr) pipeTargetNode()  {}
func (d *DestructureExpr) Span() lexer.Span { return d.SpanVal }
func (d *DestructureExpr) String() string {
	var elems []*PatternElement
	if d.Positional != nil {
		elems = d.Positional.Elements
	} else if d.Keyed != nil {
		elems = d.Keyed.Elements
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return "*<" + strings.Join(parts, ", ") + ">"
}

// SliceExpr is `/<start:stop:step>`, applied to a list or string.
type SliceExpr struct {
	Start   Expression // nil when omitted
	Stop    Expression // nil when omitted
	Step    Expression // nil when omitted (defaults to 1)
	SpanVal lexer.Span
}

func (s *SliceExpr) expressionNode()  {}
func (s *SliceExpr) pipeTargetNode()  {}
func (s *SliceExpr) Span() lexer.Span { return s.SpanVal }
func (s *SliceExpr) String() string {
	str := func(e Expression) string {
		if e == nil {
			return ""
		}
		return e.String()
	}
	return "/<" + str(s.Start) + ":" + str(s.Stop) + ":" + str(s.Step) + ">"
}

// SpreadExpr is `*expr`, converting a list/dict into a tuple for argument
// unpacking at the next callable.
type SpreadExpr struct {
	Operand Expression
	SpanVal lexer.Span
}

func (s *SpreadExpr) expressionNode()  {}
func (s *SpreadExpr) pipeTargetNode()  {}
func (s *SpreadExpr) Span() lexer.Span { return s.SpanVal }
func (s *SpreadExpr) String() string   { return "*" + s.Operand.String() }
