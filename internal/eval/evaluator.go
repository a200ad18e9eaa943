// Package eval implements the tree-walking evaluator that drives a parsed
// script against a runtime.Scope.
package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// Evaluator walks an AST against a root runtime.Scope. Its methods are
// split across this package's files by concern (pipe.go, control_flow.go,
// closures.go, collections.go, extraction.go, variables.go, calls.go,
// signals.go, timeout.go, autoexception.go), all on this one receiver.
//
// Every eval* method returns (value.Value, error). The error is either a
// *diag.Error (a real failure) or one of this package's unexported signal
// types (breakSignal/returnSignal, see signals.go) representing ordinary
// control flow; callers that are a signal's designated boundary must
// check for it with asBreak/asReturn before treating a non-nil error as a
// failure to propagate.
type Evaluator struct {
	source string
	file   string
}

// New creates an Evaluator for error-location rendering against source.
func New(source, file string) *Evaluator {
	return &Evaluator{source: source, file: file}
}

// loc builds a diag.Location anchored at span's start, for error reporting.
func (e *Evaluator) loc(span lexer.Span) *diag.Location {
	end := span.End
	return &diag.Location{Source: e.source, File: e.file, Pos: span.Start, EndPos: &end}
}

// ExecuteScript runs every statement of script in order against root,
// returning the last statement's value. Script-level auto-exception
// scanning happens after each top-level statement. A bare break/return at
// script scope is treated as simply ending the script early with that
// signal's value, since there is no enclosing loop/closure to catch it.
func (e *Evaluator) ExecuteScript(script *ast.ScriptNode, root *runtime.Scope) (value.Value, *diag.Error) {
	var last value.Value = value.NullValue
	for _, stmt := range script.Statements {
		if root.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(stmt.Span()))
		}
		v, err := e.evalStatement(stmt, root)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				return bv, nil
			}
			if rv, ok := asReturn(err); ok {
				return rv, nil
			}
			return nil, err.(*diag.Error)
		}
		last = v
		if aerr := e.scanAutoException(root, v, stmt.Span()); aerr != nil {
			return nil, aerr
		}
	}
	return last, nil
}
