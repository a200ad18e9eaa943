package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// Variable is `$name` or bare `$` (the pipe value), optionally followed by
// an access chain of field/index/optional/coalesce steps.
type Variable struct {
	Name    string // "" for bare $
	Chain   []AccessStep
	SpanVal lexer.Span
}

func (v *Variable) expressionNode()  {}
func (v *Variable) Span() lexer.Span { return v.SpanVal }
func (v *Variable) String() string {
	s := "$" + v.Name
	for _, step := range v.Chain {
		s += step.String()
	}
	return s
}

// AccessStep is one link in a Variable's access chain: a field access, an
// index access, an optional-existence check, or a null-coalesce default.
type AccessStep interface {
	Node
	accessStepNode()
}

// FieldAccess is `.field`.
type FieldAccess struct {
	Field   string
	SpanVal lexer.Span
}

func (f *FieldAccess) accessStepNode()  {}
func (f *FieldAccess) Span() lexer.Span { return f.SpanVal }
func (f *FieldAccess) String() string   { return "." + f.Field }

// IndexAccess is `[idx]`.
type IndexAccess struct {
	Index   Expression
	SpanVal lexer.Span
}

func (x *IndexAccess) accessStepNode()  {}
func (x *IndexAccess) Span() lexer.Span { return x.SpanVal }
func (x *IndexAccess) String() string   { return "[" + x.Index.String() + "]" }

// OptionalFieldAccess is `.?field`, optionally combined with a type check
// via `&type`; it yields a boolean rather than the field's value.
type OptionalFieldAccess struct {
	Field   string
	AndType string // "" when no `&type` suffix is present
	SpanVal lexer.Span
}

func (o *OptionalFieldAccess) accessStepNode()  {}
func (o *OptionalFieldAccess) Span() lexer.Span { return o.SpanVal }
func (o *OptionalFieldAccess) String() string {
	s := ".?" + o.Field
	if o.AndType != "" {
		s += "&" + o.AndType
	}
	return s
}

// NullCoalesce is `??default`, substituted when the preceding chain step
// resolved to a missing value.
type NullCoalesce struct {
	Default Expression
	SpanVal lexer.Span
}

func (n *NullCoalesce) accessStepNode()  {}
func (n *NullCoalesce) Span() lexer.Span { return n.SpanVal }
func (n *NullCoalesce) String() string   { return "??" + n.Default.String() }

// AccessChain is a standalone chain applied to an arbitrary base
// expression (e.g. the result of a call), rather than rooted at a $Variable.
type AccessChain struct {
	Base    Expression
	Chain   []AccessStep
	SpanVal lexer.Span
}

func (a *AccessChain) expressionNode()  {}
func (a *AccessChain) Span() lexer.Span { return a.SpanVal }
func (a *AccessChain) String() string {
	var sb strings.Builder
	sb.WriteString(a.Base.String())
	for _, step := range a.Chain {
		sb.WriteString(step.String())
	}
	return sb.String()
}
