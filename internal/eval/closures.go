package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// evalClosureLiteral builds a Script-kind Callable bound to scope as its
// defining scope, per spec.md's late-binding-via-definingScope rule:
// free variables are resolved when the closure is *called*, not when it
// is created.
func (e *Evaluator) evalClosureLiteral(cl *ast.ClosureLiteral, scope *runtime.Scope) (value.Value, error) {
	params := make([]value.Param, len(cl.Params))
	for i, p := range cl.Params {
		var def value.Value
		if p.HasDefault {
			v, err := e.evalExpression(p.Default, scope)
			if err != nil {
				return nil, err
			}
			def = v
		}
		params[i] = value.Param{Name: p.Name, TypeName: p.TypeName, HasDefault: p.HasDefault, DefaultValue: def}
	}
	return &value.Callable{
		Kind:          value.KindScript,
		Params:        params,
		Body:          cl.Body,
		DefiningScope: scope,
	}, nil
}

// callClosure invokes a Script-kind Callable: a fresh scope parented at
// the closure's DefiningScope (never the caller's scope), with args bound
// to declared params, defaults applied, and a non-zero-length tuple
// unpacked positionally or by name.
func (e *Evaluator) callClosure(fn *value.Callable, args []value.Value, named map[string]value.Value, loc *diag.Location) (value.Value, error) {
	defScope, _ := fn.DefiningScope.(*runtime.Scope)
	if defScope == nil {
		return nil, diag.NewTypeError(loc, "closure has no defining scope")
	}
	call := runtime.CreateChildContext(defScope)

	if fn.PropertyStyle && fn.BoundDict != nil {
		if derr := call.SetVariable("self", fn.BoundDict, value.TagDict); derr != nil {
			return nil, derr
		}
	}

	if len(args) == 1 && len(named) == 0 {
		if t, ok := args[0].(*value.Tuple); ok && len(t.Numeric)+len(t.Named) > 0 {
			if t.IsNamed() {
				args, named = nil, t.Named
			} else {
				args = t.Numeric
			}
		}
	}

	if err := bindParams(call, fn.Params, args, named, loc); err != nil {
		return nil, err
	}

	body, ok := fn.Body.(ast.Expression)
	if !ok {
		return nil, diag.NewTypeError(loc, "closure body is not an expression")
	}
	call.PipeValue = value.NullValue
	if len(args) > 0 {
		call.PipeValue = args[0]
	}

	result, err := e.evalExpression(body, call)
	if err != nil {
		if rv, ok := asReturn(err); ok {
			return rv, nil
		}
		return nil, err
	}
	return result, nil
}

// bindParams binds positional args and named args to fn's declared
// parameters in call, applying declared defaults and pinning each
// parameter's declared type where present.
func bindParams(call *runtime.Scope, params []value.Param, args []value.Value, named map[string]value.Value, loc *diag.Location) error {
	for i, p := range params {
		var v value.Value
		switch {
		case i < len(args):
			v = args[i]
		case named != nil && hasNamed(named, p.Name):
			v = named[p.Name]
		case p.HasDefault:
			v = p.DefaultValue
		default:
			return diag.NewTypeError(loc, "missing required argument \""+p.Name+"\"")
		}
		tag := value.Tag(p.TypeName)
		if p.TypeName != "" && value.Infer(v) != tag {
			return diag.NewTypeError(loc, "argument \""+p.Name+"\" expects type "+p.TypeName)
		}
		if derr := call.SetVariable(p.Name, v, tag); derr != nil {
			return derr
		}
	}
	return nil
}

func hasNamed(named map[string]value.Value, name string) bool {
	_, ok := named[name]
	return ok
}
