package eval

import (
	"errors"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

var errNotPositional = errors.New("positional pattern requires a list or tuple value")

// evalDestructure applies a `*<pattern>` to the incoming pipe value,
// binding names into enclosing (the capture-promotion scope) and
// returning the pipe value unchanged so the chain can continue.
func (e *Evaluator) evalDestructure(d *ast.DestructureExpr, scope, enclosing *runtime.Scope) (value.Value, error) {
	pv := scope.PipeValue
	if d.Positional != nil {
		items, err := asPositional(pv)
		if err != nil {
			return nil, diag.NewInvalidPattern(e.loc(d.Span()), err.Error())
		}
		if len(items) != len(d.Positional.Elements) {
			return nil, diag.NewInvalidPattern(e.loc(d.Span()), "pattern element count does not match value length")
		}
		for i, el := range d.Positional.Elements {
			if err := e.bindPatternElement(el, items[i], enclosing); err != nil {
				return nil, err
			}
		}
		return pv, nil
	}
	if d.Keyed != nil {
		dict, ok := pv.(*value.Dict)
		if !ok {
			return nil, diag.NewInvalidPattern(e.loc(d.Span()), "keyed pattern requires a dict value")
		}
		for _, el := range d.Keyed.Elements {
			fv, ok := dict.Get(el.Key)
			if !ok {
				return nil, diag.NewPropertyNotFound(e.loc(d.Span()), el.Key)
			}
			tag := value.Tag(el.TypeName)
			if el.TypeName != "" && value.Infer(fv) != tag {
				return nil, diag.NewTypeError(e.loc(d.Span()), "key \""+el.Key+"\" does not match declared type "+el.TypeName)
			}
			if derr := enclosing.SetVariable(el.Name, fv, tag); derr != nil {
				return nil, derr
			}
		}
		return pv, nil
	}
	return nil, diag.NewInvalidPattern(e.loc(d.Span()), "destructure pattern has neither positional nor keyed elements")
}

func (e *Evaluator) bindPatternElement(el *ast.PatternElement, v value.Value, enclosing *runtime.Scope) error {
	if el.Skip {
		return nil
	}
	if el.Nested != nil {
		nestedScope := runtime.CreateChildContext(enclosing)
		nestedScope.PipeValue = v
		_, err := e.evalDestructure(el.Nested, nestedScope, enclosing)
		return err
	}
	if derr := enclosing.SetVariable(el.Name, v, ""); derr != nil {
		return derr
	}
	return nil
}

func asPositional(v value.Value) ([]value.Value, error) {
	switch x := v.(type) {
	case *value.List:
		return x.Items, nil
	case *value.Tuple:
		if !x.IsNamed() {
			return x.Numeric, nil
		}
	}
	return nil, errNotPositional
}

// evalSlice applies `/<start:stop:step>` to the incoming pipe value,
// following Python's slicing semantics: negative indices count from the
// end, a negative step reverses direction, and an omitted bound defaults
// to the whole range in the step's direction.
func (e *Evaluator) evalSlice(s *ast.SliceExpr, scope *runtime.Scope) (value.Value, error) {
	step := 1
	if s.Step != nil {
		v, err := e.evalExpression(s.Step, scope)
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, diag.NewTypeError(e.loc(s.Span()), "slice step must be a number")
		}
		step = int(n.Val)
		if step == 0 {
			return nil, diag.NewTypeError(e.loc(s.Span()), "slice step cannot be zero")
		}
	}

	switch x := scope.PipeValue.(type) {
	case *value.List:
		idx, err := sliceIndices(len(x.Items), s, scope, e, step)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for i := idx.start; sliceContinue(i, idx.stop, step); i += step {
			out = append(out, x.Items[i])
		}
		return &value.List{Items: out}, nil
	case value.String:
		runes := x.Runes()
		idx, err := sliceIndices(len(runes), s, scope, e, step)
		if err != nil {
			return nil, err
		}
		var out []rune
		for i := idx.start; sliceContinue(i, idx.stop, step); i += step {
			out = append(out, runes[i])
		}
		return value.String{Val: string(out)}, nil
	default:
		return nil, diag.NewTypeError(e.loc(s.Span()), "slice requires a list or string value")
	}
}

type sliceBounds struct{ start, stop int }

func sliceContinue(i, stop, step int) bool {
	if step > 0 {
		return i < stop
	}
	return i > stop
}

func sliceIndices(length int, s *ast.SliceExpr, scope *runtime.Scope, e *Evaluator, step int) (sliceBounds, error) {
	defaultStart, defaultStop := 0, length
	if step < 0 {
		defaultStart, defaultStop = length-1, -1
	}
	start, err := resolveSliceBound(s.Start, defaultStart, length, step, scope, e)
	if err != nil {
		return sliceBounds{}, err
	}
	stop, err := resolveSliceBound(s.Stop, defaultStop, length, step, scope, e)
	if err != nil {
		return sliceBounds{}, err
	}
	return sliceBounds{start: start, stop: stop}, nil
}

func resolveSliceBound(expr ast.Expression, def, length, step int, scope *runtime.Scope, e *Evaluator) (int, error) {
	if expr == nil {
		return def, nil
	}
	v, err := e.evalExpression(expr, scope)
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return 0, diag.NewTypeError(e.loc(expr.Span()), "slice bound must be a number")
	}
	i := int(n.Val)
	if i < 0 {
		i += length
	}
	lo, hi := 0, length
	if step < 0 {
		lo, hi = -1, length-1
	}
	if i < lo {
		i = lo
	}
	if i > hi {
		i = hi
	}
	return i, nil
}

// evalSpread evaluates `*expr` to a Tuple: a list becomes a positional
// tuple, a dict or named tuple becomes a named tuple; any other type is a
// RUNTIME_TYPE_ERROR.
func (e *Evaluator) evalSpread(s *ast.SpreadExpr, scope *runtime.Scope) (value.Value, error) {
	v, err := e.evalExpression(s.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case *value.List:
		return value.NewPositionalTuple(x.Items), nil
	case *value.Dict:
		return value.NewNamedTuple(x.Keys, x.Values), nil
	case *value.Tuple:
		return x, nil
	default:
		return nil, diag.NewTypeError(e.loc(s.Span()), "cannot spread a "+string(value.Infer(v)))
	}
}

func (e *Evaluator) evalTypeAssertion(t *ast.TypeAssertion, scope *runtime.Scope) (value.Value, error) {
	v, err := e.operandOrPipe(t.Operand, scope)
	if err != nil {
		return nil, err
	}
	if string(value.Infer(v)) != t.TypeName {
		return nil, diag.NewTypeError(e.loc(t.Span()), "expected type "+t.TypeName+", got "+string(value.Infer(v)))
	}
	return v, nil
}

func (e *Evaluator) evalTypeCheck(t *ast.TypeCheck, scope *runtime.Scope) (value.Value, error) {
	v, err := e.operandOrPipe(t.Operand, scope)
	if err != nil {
		return nil, err
	}
	return value.Bool{Val: string(value.Infer(v)) == t.TypeName}, nil
}

func (e *Evaluator) operandOrPipe(operand ast.Expression, scope *runtime.Scope) (value.Value, error) {
	if operand == nil {
		return scope.PipeValue, nil
	}
	return e.evalExpression(operand, scope)
}
