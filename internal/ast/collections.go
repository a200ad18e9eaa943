package ast

import "github.com/rill-lang/rill/internal/lexer"

// IteratorBody is the shared shape of each/map/fold/filter: an optional
// explicit source (nil means "the incoming pipe value"), a closure-like
// body, and an optional accumulator initializer used by each/fold.
type IteratorBody struct {
	Source          Expression // nil means use the incoming pipe value
	ElementName     string     // bound name for the current element, "" for $
	AccumulatorName string     // bound name for the accumulator parameter, "" when absent
	Body            Expression
	Accumulator     Expression // initializer; nil when no accumulator is declared
	SpanVal         lexer.Span
}

// EachExpr runs Body sequentially over Source, returning a list of results
// (partial on break). The accumulator, if present, is bound under the
// accumulator parameter's name (AccumulatorName); there is no `$@` form.
type EachExpr struct {
	IteratorBody
}

func (e *EachExpr) expressionNode()  {}
func (e *EachExpr) pipeTargetNode()  {}
func (e *EachExpr) Span() lexer.Span { return e.SpanVal }
func (e *EachExpr) String() string   { return "each " + e.Body.String() }

// MapExpr runs Body over Source with bounded concurrency, preserving
// output order. Concurrency is capped by the enclosing statement's `limit`
// annotation, read from the scope at evaluation time rather than the AST.
type MapExpr struct {
	IteratorBody
}

func (m *MapExpr) expressionNode()  {}
func (m *MapExpr) pipeTargetNode()  {}
func (m *MapExpr) Span() lexer.Span { return m.SpanVal }
func (m *MapExpr) String() string   { return "map " + m.Body.String() }

// FoldExpr is a sequential reduction; Accumulator is required.
type FoldExpr struct {
	IteratorBody
}

func (f *FoldExpr) expressionNode()  {}
func (f *FoldExpr) pipeTargetNode()  {}
func (f *FoldExpr) Span() lexer.Span { return f.SpanVal }
func (f *FoldExpr) String() string   { return "fold " + f.Body.String() }

// FilterExpr keeps elements whose Body evaluates to true, preserving order;
// Body must produce a bool.
type FilterExpr struct {
	IteratorBody
}

func (f *FilterExpr) expressionNode()  {}
func (f *FilterExpr) pipeTargetNode()  {}
func (f *FilterExpr) Span() lexer.Span { return f.SpanVal }
func (f *FilterExpr) String() string   { return "filter " + f.Body.String() }
