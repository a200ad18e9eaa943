// Package ast defines the Abstract Syntax Tree node types for Rill.
package ast

import (
	"bytes"

	"github.com/rill-lang/rill/internal/lexer"
)

// Node is the base interface for all AST nodes. Unlike a single-token-
// rooted grammar, many Rill productions (a pipe chain, a destructure
// pattern) are synthesized from several tokens with no one backing token,
// so nodes carry a Span rather than a TokenLiteral.
type Node interface {
	Span() lexer.Span
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a top-level pipe chain (Rill has no non-expression
// statements; every statement is an ExpressionStatement wrapping a chain).
type Statement interface {
	Node
	statementNode()
}

// ScriptNode is the root of a parsed script.
type ScriptNode struct {
	Frontmatter *Frontmatter // nil when the script has none
	Statements  []Statement
	SpanVal     lexer.Span
}

func (s *ScriptNode) Span() lexer.Span { return s.SpanVal }

func (s *ScriptNode) String() string {
	var out bytes.Buffer
	if s.Frontmatter != nil {
		out.WriteString(s.Frontmatter.String())
		out.WriteString("\n")
	}
	for _, stmt := range s.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Frontmatter is the optional `---\nYAML\n---` block preceding a script.
// Its content is preserved verbatim and never interpreted by the core.
type Frontmatter struct {
	Content string
	SpanVal lexer.Span
}

func (f *Frontmatter) Span() lexer.Span { return f.SpanVal }
func (f *Frontmatter) String() string   { return "---\n" + f.Content + "\n---" }

// ErrorNode stands in for a statement the parser could not parse when
// running in recovery mode.
type ErrorNode struct {
	Message string
	Text    string
	SpanVal lexer.Span
}

func (e *ErrorNode) expressionNode()    {}
func (e *ErrorNode) statementNode()     {}
func (e *ErrorNode) Span() lexer.Span   { return e.SpanVal }
func (e *ErrorNode) String() string     { return "<error: " + e.Message + ">" }

// ExpressionStatement wraps a top-level pipe chain.
type ExpressionStatement struct {
	Annotation *Annotation // nil when the statement carries none
	Expr       Expression
	SpanVal    lexer.Span
}

func (es *ExpressionStatement) statementNode()   {}
func (es *ExpressionStatement) Span() lexer.Span { return es.SpanVal }
func (es *ExpressionStatement) String() string {
	s := ""
	if es.Annotation != nil {
		s += es.Annotation.String() + " "
	}
	if es.Expr != nil {
		s += es.Expr.String()
	}
	return s
}

// Comment is a `#` comment node. The lexer always discards comments, so
// the parser never produces one.
type Comment struct {
	Text    string
	SpanVal lexer.Span
}

func (c *Comment) Span() lexer.Span { return c.SpanVal }
func (c *Comment) String() string   { return "#" + c.Text }
