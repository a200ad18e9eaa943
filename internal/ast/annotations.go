package ast

import (
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// AnnotationEntry is one `key: value` pair inside `^(limit: 10, timeout: 50)`.
type AnnotationEntry struct {
	Key     string
	Value   Expression
	SpanVal lexer.Span
}

func (a *AnnotationEntry) Span() lexer.Span { return a.SpanVal }
func (a *AnnotationEntry) String() string   { return a.Key + ": " + a.Value.String() }

// Annotation is `^(key: value, ...)`, attached to the statement that
// follows it and pushed onto the scope's annotation stack for that one
// statement's evaluation.
type Annotation struct {
	Entries []*AnnotationEntry
	SpanVal lexer.Span
}

func (a *Annotation) Span() lexer.Span { return a.SpanVal }
func (a *Annotation) String() string {
	parts := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		parts[i] = e.String()
	}
	return "^(" + strings.Join(parts, ", ") + ")"
}
