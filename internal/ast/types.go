package ast

import "github.com/rill-lang/rill/internal/lexer"

// TypeAssertion is `expr:type` (or bare `:type` acting on $). Returns the
// operand unchanged when its inferred type matches, else raises
// RUNTIME_TYPE_ERROR.
type TypeAssertion struct {
	Operand  Expression // nil means "use the incoming pipe value"
	TypeName string
	SpanVal  lexer.Span
}

func (t *TypeAssertion) expressionNode()  {}
func (t *TypeAssertion) pipeTargetNode()  {}
func (t *TypeAssertion) Span() lexer.Span { return t.SpanVal }
func (t *TypeAssertion) String() string {
	if t.Operand == nil {
		return ":" + t.TypeName
	}
	return t.Operand.String() + ":" + t.TypeName
}

// TypeCheck is `expr:?type` (or bare `:?type`). Returns a boolean.
type TypeCheck struct {
	Operand  Expression // nil means "use the incoming pipe value"
	TypeName string
	SpanVal  lexer.Span
}

func (t *TypeCheck) expressionNode()  {}
func (t *TypeCheck) pipeTargetNode()  {}
func (t *TypeCheck) Span() lexer.Span { return t.SpanVal }
func (t *TypeCheck) String() string {
	if t.Operand == nil {
		return ":?" + t.TypeName
	}
	return t.Operand.String() + ":?" + t.TypeName
}
