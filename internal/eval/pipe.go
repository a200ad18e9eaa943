package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// evalPipeChain threads the pipe value through Head then each Target in
// turn. Targets run against a working child scope whose PipeValue is
// updated after every step; captures (":> $name") write to the chain's
// enclosing scope, per spec.md §4.6's capture-promotion rule.
func (e *Evaluator) evalPipeChain(pc *ast.PipeChain, scope *runtime.Scope) (value.Value, error) {
	cur, err := e.evalExpression(pc.Head, scope)
	if err != nil {
		return nil, err
	}

	work := runtime.CreateChildContext(scope)
	work.PipeValue = cur
	for _, t := range pc.Targets {
		res, err := e.evalPipeTarget(t, work, scope)
		if err != nil {
			return nil, err
		}
		cur = res
		work.PipeValue = cur
	}

	switch pc.Terminator.(type) {
	case *ast.BreakTerminator:
		return nil, breakSignal{value: cur}
	case *ast.ReturnTerminator:
		return nil, returnSignal{value: cur}
	}
	return cur, nil
}

// evalPipeTarget evaluates one pipe-chain target. work is the chain's
// current working scope (its PipeValue is the value flowing into this
// target); enclosing is the scope captures should bind into.
func (e *Evaluator) evalPipeTarget(t ast.PipeTarget, work, enclosing *runtime.Scope) (value.Value, error) {
	switch v := t.(type) {
	case *ast.CaptureTarget:
		tag := value.Tag("")
		if v.TypeName != "" {
			tag = value.Tag(v.TypeName)
		}
		if derr := enclosing.SetVariable(v.Name, work.PipeValue, tag); derr != nil {
			return nil, derr
		}
		return work.PipeValue, nil
	case *ast.HostCallTarget:
		return e.evalHostCallTarget(v, work)
	case *ast.BareNameTarget:
		return e.evalBareNameTarget(v, work)
	case *ast.ClosureCallTarget:
		return e.evalClosureCallTarget(v, work)
	case *ast.MethodCallTarget:
		return e.evalMethodCallTarget(v, work)
	case *ast.InvokeTarget:
		return e.evalInvokeTarget(v, work)
	case *ast.ClosureChainTarget:
		return e.evalClosureChainTarget(v, work)
	case *ast.DestructureExpr:
		return e.evalDestructure(v, work, enclosing)
	default:
		if expr, ok := t.(ast.Expression); ok {
			return e.evalExpression(expr, work)
		}
		return nil, diag.NewInvalidSyntax(e.loc(t.Span()), "unsupported pipe target")
	}
}
