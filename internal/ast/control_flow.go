package ast

import "github.com/rill-lang/rill/internal/lexer"

// ConditionalExpr is `cond ? then ! else`. Cond is nil when the condition
// is the bare piped `$` (i.e. written as `-> ? then ! else`).
type ConditionalExpr struct {
	Cond    Expression // nil means "use the incoming pipe value"
	Then    Expression
	Else    Expression // nil when no `! else` clause is present
	SpanVal lexer.Span
}

func (c *ConditionalExpr) expressionNode()  {}
func (c *ConditionalExpr) pipeTargetNode()  {}
func (c *ConditionalExpr) Span() lexer.Span { return c.SpanVal }
func (c *ConditionalExpr) String() string {
	s := "?"
	if c.Cond != nil {
		s = c.Cond.String() + " " + s
	}
	s += " " + c.Then.String()
	if c.Else != nil {
		s += " ! " + c.Else.String()
	}
	return s
}

// WhileLoop is `(cond) @ body`.
type WhileLoop struct {
	Cond    Expression
	Body    Expression
	SpanVal lexer.Span
}

func (w *WhileLoop) expressionNode()  {}
func (w *WhileLoop) pipeTargetNode()  {}
func (w *WhileLoop) Span() lexer.Span { return w.SpanVal }
func (w *WhileLoop) String() string {
	return "(" + w.Cond.String() + ") @ " + w.Body.String()
}

// DoWhileLoop is `@ body ? (cond)`.
type DoWhileLoop struct {
	Body    Expression
	Cond    Expression
	SpanVal lexer.Span
}

func (d *DoWhileLoop) expressionNode()  {}
func (d *DoWhileLoop) pipeTargetNode()  {}
func (d *DoWhileLoop) Span() lexer.Span { return d.SpanVal }
func (d *DoWhileLoop) String() string {
	return "@ " + d.Body.String() + " ? (" + d.Cond.String() + ")"
}

// Block is `{ stmts }`. Each statement runs in its own child scope
// initialized to the block's incoming pipe value; each statement's scope
// is a child of the previous statement's, so a capture in one statement is
// visible to later ones. Captures are not copied into the block scope
// itself.
type Block struct {
	Statements []Statement
	SpanVal    lexer.Span
}

func (b *Block) expressionNode()  {}
func (b *Block) pipeTargetNode()  {}
func (b *Block) Span() lexer.Span { return b.SpanVal }
func (b *Block) String() string {
	s := "{ "
	for i, stmt := range b.Statements {
		if i > 0 {
			s += "; "
		}
		s += stmt.String()
	}
	return s + " }"
}

// GroupedExpr is `( expr )`: runs expr in a fresh child scope.
type GroupedExpr struct {
	Inner   Expression
	SpanVal lexer.Span
}

func (g *GroupedExpr) expressionNode()  {}
func (g *GroupedExpr) pipeTargetNode()  {}
func (g *GroupedExpr) Span() lexer.Span { return g.SpanVal }
func (g *GroupedExpr) String() string   { return "(" + g.Inner.String() + ")" }

// AssertExpr is `assert cond[, message]`.
type AssertExpr struct {
	Cond    Expression
	Message Expression // nil when no message is given
	SpanVal lexer.Span
}

func (a *AssertExpr) expressionNode()  {}
func (a *AssertExpr) pipeTargetNode()  {}
func (a *AssertExpr) Span() lexer.Span { return a.SpanVal }
func (a *AssertExpr) String() string {
	s := "assert " + a.Cond.String()
	if a.Message != nil {
		s += ", " + a.Message.String()
	}
	return s
}

// ErrorExpr is `error message`: always raises RUNTIME_ERROR_RAISED.
type ErrorExpr struct {
	Message Expression
	SpanVal lexer.Span
}

func (e *ErrorExpr) expressionNode()  {}
func (e *ErrorExpr) pipeTargetNode()  {}
func (e *ErrorExpr) Span() lexer.Span { return e.SpanVal }
func (e *ErrorExpr) String() string   { return "error " + e.Message.String() }

// BinaryExpression is an arithmetic/comparison/logical operator expression.
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
	SpanVal  lexer.Span
}

func (b *BinaryExpression) expressionNode()  {}
func (b *BinaryExpression) Span() lexer.Span { return b.SpanVal }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is a prefix operator expression (`-x`, `!x`).
type UnaryExpression struct {
	Operator string
	Operand  Expression
	SpanVal  lexer.Span
}

func (u *UnaryExpression) expressionNode()  {}
func (u *UnaryExpression) Span() lexer.Span { return u.SpanVal }
func (u *UnaryExpression) String() string   { return "(" + u.Operator + u.Operand.String() + ")" }
