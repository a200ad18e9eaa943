package eval

import (
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// scanAutoException checks a top-level statement's result against the
// scope's configured auto-exception patterns (first match wins), raising
// RUNTIME_AUTO_EXCEPTION when a string result matches one. Non-string
// results never trigger an auto-exception.
func (e *Evaluator) scanAutoException(scope *runtime.Scope, v value.Value, span lexer.Span) *diag.Error {
	sv, ok := v.(value.String)
	if !ok {
		return nil
	}
	for _, re := range scope.AutoExceptions() {
		if re.MatchString(sv.Val) {
			return diag.NewAutoException(e.loc(span), re.String(), sv.Val)
		}
	}
	return nil
}
