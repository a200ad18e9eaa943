package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// callCallable dispatches a Callable by Kind: Runtime functions run
// in-process with no timeout; Application (host) functions race against
// the scope's timeout; Script closures get a fresh scope off their
// DefiningScope.
func (e *Evaluator) callCallable(fn *value.Callable, args []value.Value, named map[string]value.Value, scope *runtime.Scope, loc *diag.Location, name string) (value.Value, error) {
	switch fn.Kind {
	case value.KindRuntime:
		v, err := fn.RuntimeFn(args)
		if err != nil {
			if derr, ok := err.(*diag.Error); ok {
				return nil, derr
			}
			return nil, diag.NewTypeError(loc, err.Error())
		}
		return v, nil
	case value.KindApplication:
		return e.invokeApplication(fn, args, scope, loc, name)
	case value.KindScript:
		return e.callClosure(fn, args, named, loc)
	default:
		return nil, diag.NewTypeError(loc, "value is not callable")
	}
}

// evalArgs evaluates a call's argument list, splitting into positional
// values and named values; a `*expr` spread argument unpacks a list (into
// positional) or a dict/named tuple (into named) at the splice point.
func (e *Evaluator) evalArgs(argNodes []*ast.Argument, scope *runtime.Scope) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	var named map[string]value.Value
	for _, a := range argNodes {
		v, err := e.evalExpression(a.Value, scope)
		if err != nil {
			return nil, nil, err
		}
		if a.Spread {
			switch x := v.(type) {
			case *value.List:
				positional = append(positional, x.Items...)
			case *value.Dict:
				if named == nil {
					named = map[string]value.Value{}
				}
				for _, k := range x.Keys {
					named[k] = x.Values[k]
				}
			case *value.Tuple:
				if x.IsNamed() {
					if named == nil {
						named = map[string]value.Value{}
					}
					for k, tv := range x.Named {
						named[k] = tv
					}
				} else {
					positional = append(positional, x.Numeric...)
				}
			default:
				return nil, nil, diag.NewTypeError(e.loc(a.Span()), "cannot spread a "+string(value.Infer(v)))
			}
			continue
		}
		if a.Name != "" {
			if named == nil {
				named = map[string]value.Value{}
			}
			named[a.Name] = v
			continue
		}
		positional = append(positional, v)
	}
	return positional, named, nil
}

func (e *Evaluator) evalHostCallTarget(t *ast.HostCallTarget, scope *runtime.Scope) (value.Value, error) {
	name := t.QualifiedName()
	fn, ok := scope.LookupFunction(name)
	if !ok {
		return nil, diag.NewUndefinedFunction(e.loc(t.Span()), name)
	}
	args, named, err := e.evalArgs(t.Args, scope)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 && len(named) == 0 && !fn.IsZeroArity() {
		args = []value.Value{scope.PipeValue}
	}
	return e.callCallable(fn, args, named, scope, e.loc(t.Span()), name)
}

func (e *Evaluator) evalBareNameTarget(t *ast.BareNameTarget, scope *runtime.Scope) (value.Value, error) {
	if fn, ok := scope.LookupFunction(t.Name); ok {
		return e.callCallable(fn, []value.Value{scope.PipeValue}, nil, scope, e.loc(t.Span()), t.Name)
	}
	if v, ok := scope.GetVariable(t.Name); ok {
		if fn, ok := v.(*value.Callable); ok {
			return e.callCallable(fn, []value.Value{scope.PipeValue}, nil, scope, e.loc(t.Span()), t.Name)
		}
	}
	return nil, diag.NewUndefinedFunction(e.loc(t.Span()), t.Name)
}

func (e *Evaluator) evalClosureCallTarget(t *ast.ClosureCallTarget, scope *runtime.Scope) (value.Value, error) {
	base, err := e.resolveVariableBase(t.Callee, scope)
	if err != nil {
		return nil, err
	}
	callee, err := e.applyAccessChain(base, t.Callee.Chain, scope, t.Callee.Span())
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*value.Callable)
	if !ok {
		return nil, diag.NewTypeError(e.loc(t.Span()), "value is not callable")
	}
	args, named, err := e.evalArgs(t.Args, scope)
	if err != nil {
		return nil, err
	}
	return e.callCallable(fn, args, named, scope, e.loc(t.Span()), t.Callee.Name)
}

func (e *Evaluator) evalMethodCallTarget(t *ast.MethodCallTarget, scope *runtime.Scope) (value.Value, error) {
	fn, ok := scope.LookupMethod(t.Method)
	if !ok {
		return nil, diag.NewUndefinedMethod(e.loc(t.Span()), t.Method)
	}
	args, named, err := e.evalArgs(t.Args, scope)
	if err != nil {
		return nil, err
	}
	if d, ok := scope.PipeValue.(*value.Dict); ok {
		callFn := *fn
		callFn.PropertyStyle = true
		callFn.BoundDict = d
		fn = &callFn
	}
	args = append([]value.Value{scope.PipeValue}, args...)
	return e.callCallable(fn, args, named, scope, e.loc(t.Span()), t.Method)
}

func (e *Evaluator) evalInvokeTarget(t *ast.InvokeTarget, scope *runtime.Scope) (value.Value, error) {
	fn, ok := scope.PipeValue.(*value.Callable)
	if !ok {
		return nil, diag.NewTypeError(e.loc(t.Span()), "value is not callable")
	}
	args, named, err := e.evalArgs(t.Args, scope)
	if err != nil {
		return nil, err
	}
	return e.callCallable(fn, args, named, scope, e.loc(t.Span()), "<closure>")
}

func (e *Evaluator) evalClosureChainTarget(t *ast.ClosureChainTarget, scope *runtime.Scope) (value.Value, error) {
	v, err := e.evalExpression(t.Expr, scope)
	if err != nil {
		return nil, err
	}
	var fns []*value.Callable
	switch x := v.(type) {
	case *value.Callable:
		fns = []*value.Callable{x}
	case *value.List:
		for _, item := range x.Items {
			fn, ok := item.(*value.Callable)
			if !ok {
				return nil, diag.NewTypeError(e.loc(t.Span()), "closure chain list must contain only callables")
			}
			fns = append(fns, fn)
		}
	default:
		return nil, diag.NewTypeError(e.loc(t.Span()), "closure chain target must be a callable or list of callables")
	}

	cur := scope.PipeValue
	for _, fn := range fns {
		res, err := e.callCallable(fn, []value.Value{cur}, nil, scope, e.loc(t.Span()), "<closure>")
		if err != nil {
			return nil, err
		}
		cur = res
	}
	return cur, nil
}
