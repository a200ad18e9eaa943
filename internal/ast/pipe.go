package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// PipeChain is `head (-> target | :> target)* terminator?`. The evaluator
// threads the pipe value through Head then each Target in order.
type PipeChain struct {
	Head       Expression
	Targets    []PipeTarget
	Terminator Terminator // nil when the chain has none
	SpanVal    lexer.Span
}

func (p *PipeChain) expressionNode()  {}
func (p *PipeChain) Span() lexer.Span { return p.SpanVal }
func (p *PipeChain) String() string {
	var sb strings.Builder
	sb.WriteString(p.Head.String())
	for _, t := range p.Targets {
		sb.WriteString(" -> ")
		sb.WriteString(t.String())
	}
	if p.Terminator != nil {
		sb.WriteString(" ")
		sb.WriteString(p.Terminator.String())
	}
	return sb.String()
}

// PipeTarget is one link of a pipe chain after the head.
type PipeTarget interface {
	Node
	pipeTargetNode()
}

// Argument is one call argument, optionally named (`name: expr`).
type Argument struct {
	Name    string // "" for positional
	Value   Expression
	Spread  bool // true for `*expr`
	SpanVal lexer.Span
}

func (a *Argument) Span() lexer.Span { return a.SpanVal }
func (a *Argument) String() string {
	s := a.Value.String()
	if a.Spread {
		s = "*" + s
	}
	if a.Name != "" {
		s = a.Name + ": " + s
	}
	return s
}

func argsString(args []*Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// HostCallTarget is `foo(args)` or `ns::foo(args)`.
type HostCallTarget struct {
	Namespace string // "" when unnamespaced
	Name      string
	Args      []*Argument
	SpanVal   lexer.Span
}

func (h *HostCallTarget) pipeTargetNode() {}
func (h *HostCallTarget) Span() lexer.Span { return h.SpanVal }
func (h *HostCallTarget) String() string {
	name := h.Name
	if h.Namespace != "" {
		name = h.Namespace + "::" + name
	}
	return name + "(" + argsString(h.Args) + ")"
}

// QualifiedName returns the namespaced name as registered in the host
// function table ("ns::name", or just "name").
func (h *HostCallTarget) QualifiedName() string {
	if h.Namespace == "" {
		return h.Name
	}
	return h.Namespace + "::" + h.Name
}

// BareNameTarget is a bare function/closure name used as a pipe target
// with no call parens, e.g. `$xs -> double` where `double` is resolved and
// invoked with the pipe value as its sole argument.
type BareNameTarget struct {
	Name    string
	SpanVal lexer.Span
}

func (b *BareNameTarget) pipeTargetNode() {}
func (b *BareNameTarget) Span() lexer.Span { return b.SpanVal }
func (b *BareNameTarget) String() string   { return b.Name }

// ClosureCallTarget is `$fn(args)` or `$obj.path(args)`: a variable access
// chain that resolves to a callable, then invoked.
type ClosureCallTarget struct {
	Callee  *Variable
	Args    []*Argument
	SpanVal lexer.Span
}

func (c *ClosureCallTarget) pipeTargetNode() {}
func (c *ClosureCallTarget) Span() lexer.Span { return c.SpanVal }
func (c *ClosureCallTarget) String() string {
	return c.Callee.String() + "(" + argsString(c.Args) + ")"
}

// MethodCallTarget is `.m(args)`.
type MethodCallTarget struct {
	Method  string
	Args    []*Argument
	SpanVal lexer.Span
}

func (m *MethodCallTarget) pipeTargetNode() {}
func (m *MethodCallTarget) Span() lexer.Span { return m.SpanVal }
func (m *MethodCallTarget) String() string {
	return "." + m.Method + "(" + argsString(m.Args) + ")"
}

// InvokeTarget is `(args)`: invoke the current pipe value as a callable.
type InvokeTarget struct {
	Args    []*Argument
	SpanVal lexer.Span
}

func (i *InvokeTarget) pipeTargetNode() {}
func (i *InvokeTarget) Span() lexer.Span { return i.SpanVal }
func (i *InvokeTarget) String() string   { return "(" + argsString(i.Args) + ")" }

// CaptureTarget is `:> $name[:type]`, usable mid-chain or at the end of a
// chain. The parser places every capture, trailing ones included, in
// PipeChain.Targets; it never uses a CaptureTarget as the Terminator.
type CaptureTarget struct {
	Name     string
	TypeName string // "" when untyped
	SpanVal  lexer.Span
}

func (c *CaptureTarget) pipeTargetNode() {}
func (c *CaptureTarget) Span() lexer.Span { return c.SpanVal }
func (c *CaptureTarget) String() string {
	s := ":> $" + c.Name
	if c.TypeName != "" {
		s += ":" + c.TypeName
	}
	return s
}

func (c *CaptureTarget) terminatorNode() {}

// ClosureChainTarget is `>> expr`: expr must yield a callable or a list of
// callables, applied in order to the incoming pipe value.
type ClosureChainTarget struct {
	Expr    Expression
	SpanVal lexer.Span
}

func (c *ClosureChainTarget) pipeTargetNode() {}
func (c *ClosureChainTarget) Span() lexer.Span { return c.SpanVal }
func (c *ClosureChainTarget) String() string   { return ">> " + c.Expr.String() }

// Terminator is the optional final element of a pipe chain. The parser
// produces a break or a return here; CaptureTarget also satisfies the
// interface but is always placed in Targets.
type Terminator interface {
	Node
	terminatorNode()
}

// BreakTerminator raises BreakSignal with the chain's current value.
type BreakTerminator struct{ SpanVal lexer.Span }

func (b *BreakTerminator) terminatorNode() {}
func (b *BreakTerminator) Span() lexer.Span { return b.SpanVal }
func (b *BreakTerminator) String() string   { return "break" }

// ReturnTerminator raises ReturnSignal with the chain's current value.
type ReturnTerminator struct{ SpanVal lexer.Span }

func (r *ReturnTerminator) terminatorNode() {}
func (r *ReturnTerminator) Span() lexer.Span { return r.SpanVal }
func (r *ReturnTerminator) String() string   { return "return" }

// CallExpression is a direct (non-piped) call appearing as a primary
// expression, e.g. inside an arithmetic operand: `foo(1, 2) + 1`.
type CallExpression struct {
	Target  PipeTarget
	SpanVal lexer.Span
}

func (c *CallExpression) expressionNode()  {}
func (c *CallExpression) Span() lexer.Span { return c.SpanVal }
func (c *CallExpression) String() string   { return c.Target.String() }
