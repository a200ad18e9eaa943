package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// StringLiteral is a plain "..." string with no interpolation segments.
type StringLiteral struct {
	Value   string
	SpanVal lexer.Span
}

func (s *StringLiteral) expressionNode()  {}
func (s *StringLiteral) Span() lexer.Span { return s.SpanVal }
func (s *StringLiteral) String() string   { return "\"" + s.Value + "\"" }

// InterpolatedString is a "..." string containing one or more {expr}
// segments, stored as an alternating sequence of literal text and parsed
// sub-expressions.
type InterpolatedString struct {
	Parts   []InterpolationPart
	SpanVal lexer.Span
}

// InterpolationPart is either a literal text chunk or an embedded
// expression; exactly one of Text/Expr is meaningful, per IsExpr.
type InterpolationPart struct {
	IsExpr bool
	Text   string
	Expr   Expression
}

func (s *InterpolatedString) expressionNode()  {}
func (s *InterpolatedString) Span() lexer.Span { return s.SpanVal }
func (s *InterpolatedString) String() string {
	var sb strings.Builder
	sb.WriteString("\"")
	for _, p := range s.Parts {
		if p.IsExpr {
			sb.WriteString("{")
			sb.WriteString(p.Expr.String())
			sb.WriteString("}")
		} else {
			sb.WriteString(p.Text)
		}
	}
	sb.WriteString("\"")
	return sb.String()
}

// HeredocLiteral is a <<TAG ... TAG block. Interpolation is not permitted
// inside heredocs (they are always plain text).
type HeredocLiteral struct {
	Tag     string
	Value   string
	SpanVal lexer.Span
}

func (h *HeredocLiteral) expressionNode()  {}
func (h *HeredocLiteral) Span() lexer.Span { return h.SpanVal }
func (h *HeredocLiteral) String() string   { return "<<" + h.Tag + "\n" + h.Value + "\n" + h.Tag }

// NumberLiteral is an integer or float literal; Rill has one numeric type
// at runtime, so both lex forms parse into the same node.
type NumberLiteral struct {
	Value   float64
	Literal string
	SpanVal lexer.Span
}

func (n *NumberLiteral) expressionNode()  {}
func (n *NumberLiteral) Span() lexer.Span { return n.SpanVal }
func (n *NumberLiteral) String() string   { return n.Literal }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value   bool
	SpanVal lexer.Span
}

func (b *BoolLiteral) expressionNode()  {}
func (b *BoolLiteral) Span() lexer.Span { return b.SpanVal }
func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NilLiteral is `null`.
type NilLiteral struct{ SpanVal lexer.Span }

func (n *NilLiteral) expressionNode()  {}
func (n *NilLiteral) Span() lexer.Span { return n.SpanVal }
func (n *NilLiteral) String() string   { return "null" }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Elements []Expression
	SpanVal  lexer.Span
}

func (l *ListLiteral) expressionNode()  {}
func (l *ListLiteral) Span() lexer.Span { return l.SpanVal }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictEntry is one `key: value` pair inside a DictLiteral.
type DictEntry struct {
	Key     string
	Value   Expression
	SpanVal lexer.Span
}

func (d *DictEntry) Span() lexer.Span { return d.SpanVal }
func (d *DictEntry) String() string   { return d.Key + ": " + d.Value.String() }

// DictLiteral is `[key: value, ...]`.
type DictLiteral struct {
	Entries []*DictEntry
	SpanVal lexer.Span
}

func (d *DictLiteral) expressionNode()  {}
func (d *DictLiteral) Span() lexer.Span { return d.SpanVal }
func (d *DictLiteral) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleLiteral represents an explicit tuple construction produced by
// argument spreading; the parser never emits it directly from literal
// syntax (tuples arise from `*expr` at evaluation time), but it is part of
// the AST surface for spreads that can be statically recognized.
type TupleLiteral struct {
	Elements []Expression
	SpanVal  lexer.Span
}

func (t *TupleLiteral) expressionNode()  {}
func (t *TupleLiteral) Span() lexer.Span { return t.SpanVal }
func (t *TupleLiteral) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Identifier is a bare name, used for function names and pattern bindings.
type Identifier struct {
	Value   string
	SpanVal lexer.Span
}

func (i *Identifier) expressionNode()  {}
func (i *Identifier) Span() lexer.Span { return i.SpanVal }
func (i *Identifier) String() string   { return i.Value }
