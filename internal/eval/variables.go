package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// evalVariable resolves `$name` (or bare `$`, the pipe value), applies its
// access chain, and auto-invokes a zero-arity callable result, since a
// variable naming a no-argument closure is used as a value, not a
// reference to the closure itself.
func (e *Evaluator) evalVariable(v *ast.Variable, scope *runtime.Scope) (value.Value, error) {
	base, err := e.resolveVariableBase(v, scope)
	if err != nil {
		return nil, err
	}
	result, err := e.applyAccessChain(base, v.Chain, scope, v.Span())
	if err != nil {
		return nil, err
	}
	return e.autoInvoke(result, scope, v.Span())
}

// resolveVariableBase resolves the unadorned $name/$ without applying the
// chain or auto-invoking, for use by callers (ClosureCallTarget) that need
// the raw callable.
func (e *Evaluator) resolveVariableBase(v *ast.Variable, scope *runtime.Scope) (value.Value, error) {
	if v.Name == "" {
		return scope.PipeValue, nil
	}
	val, ok := scope.GetVariable(v.Name)
	if !ok {
		return nil, diag.NewUndefinedVariable(e.loc(v.Span()), v.Name)
	}
	return val, nil
}

// autoInvoke calls fn with no arguments when it is a zero-arity Callable;
// any other value passes through unchanged.
func (e *Evaluator) autoInvoke(v value.Value, scope *runtime.Scope, span lexer.Span) (value.Value, error) {
	fn, ok := v.(*value.Callable)
	if !ok || !fn.IsZeroArity() {
		return v, nil
	}
	return e.callCallable(fn, nil, nil, scope, e.loc(span), "<closure>")
}

func (e *Evaluator) applyAccessChain(base value.Value, chain []ast.AccessStep, scope *runtime.Scope, span lexer.Span) (value.Value, error) {
	cur := base
	for i, step := range chain {
		followedByCoalesce := i+1 < len(chain) && isNullCoalesce(chain[i+1])
		switch st := step.(type) {
		case *ast.FieldAccess:
			v, err := e.getField(cur, st.Field, e.loc(st.Span()))
			if err != nil {
				if followedByCoalesce && isPropertyNotFound(err) {
					cur = value.NullValue
					continue
				}
				return nil, err
			}
			cur = v
		case *ast.IndexAccess:
			idx, err := e.evalExpression(st.Index, scope)
			if err != nil {
				return nil, err
			}
			v, err := e.getIndex(cur, idx, e.loc(st.Span()))
			if err != nil {
				if followedByCoalesce && isPropertyNotFound(err) {
					cur = value.NullValue
					continue
				}
				return nil, err
			}
			cur = v
		case *ast.OptionalFieldAccess:
			cur = value.Bool{Val: e.hasField(cur, st.Field, st.AndType)}
		case *ast.NullCoalesce:
			if _, isNull := cur.(value.Null); isNull {
				v, err := e.evalExpression(st.Default, scope)
				if err != nil {
					return nil, err
				}
				cur = v
			}
		default:
			return nil, diag.NewInvalidSyntax(e.loc(span), "unsupported access step")
		}
	}
	return cur, nil
}

func isNullCoalesce(step ast.AccessStep) bool {
	_, ok := step.(*ast.NullCoalesce)
	return ok
}

func isPropertyNotFound(err error) bool {
	derr, ok := err.(*diag.Error)
	return ok && derr.Code == diag.CodePropertyNotFound
}

func (e *Evaluator) getField(v value.Value, field string, loc *diag.Location) (value.Value, error) {
	switch x := v.(type) {
	case *value.Dict:
		fv, ok := x.Get(field)
		if !ok {
			return nil, diag.NewPropertyNotFound(loc, field)
		}
		return fv, nil
	case *value.Tuple:
		if x.IsNamed() {
			fv, ok := x.Named[field]
			if !ok {
				return nil, diag.NewPropertyNotFound(loc, field)
			}
			return fv, nil
		}
	case *value.Iterator:
		fv, ok := x.AsDict().Get(field)
		if !ok {
			return nil, diag.NewPropertyNotFound(loc, field)
		}
		return fv, nil
	}
	return nil, diag.NewTypeError(loc, "value has no field \""+field+"\"")
}

func (e *Evaluator) hasField(v value.Value, field, typeName string) bool {
	fv, err := e.getField(v, field, nil)
	if err != nil {
		return false
	}
	if typeName == "" {
		return true
	}
	return string(value.Infer(fv)) == typeName
}

func (e *Evaluator) getIndex(v, idx value.Value, loc *diag.Location) (value.Value, error) {
	switch x := v.(type) {
	case *value.List:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, diag.NewTypeError(loc, "list index must be a number")
		}
		i := int(n.Val)
		if i < 0 {
			i += len(x.Items)
		}
		if i < 0 || i >= len(x.Items) {
			return nil, diag.NewPropertyNotFound(loc, "index out of range")
		}
		return x.Items[i], nil
	case value.String:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, diag.NewTypeError(loc, "string index must be a number")
		}
		runes := x.Runes()
		i := int(n.Val)
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return nil, diag.NewPropertyNotFound(loc, "index out of range")
		}
		return value.String{Val: string(runes[i])}, nil
	case *value.Dict:
		key, ok := idx.(value.String)
		if !ok {
			return nil, diag.NewTypeError(loc, "dict index must be a string")
		}
		fv, ok := x.Get(key.Val)
		if !ok {
			return nil, diag.NewPropertyNotFound(loc, key.Val)
		}
		return fv, nil
	case *value.Tuple:
		if !x.IsNamed() {
			n, ok := idx.(value.Number)
			if !ok {
				return nil, diag.NewTypeError(loc, "tuple index must be a number")
			}
			i := int(n.Val)
			if i < 0 || i >= len(x.Numeric) {
				return nil, diag.NewPropertyNotFound(loc, "index out of range")
			}
			return x.Numeric[i], nil
		}
	}
	return nil, diag.NewTypeError(loc, "value is not indexable")
}
