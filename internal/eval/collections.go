package eval

import (
	"sync"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// defaultMapLimit bounds map/filter concurrency absent a `limit`
// annotation.
const defaultMapLimit = 8

// maxIteratorExpansion bounds how many times a lazy Iterator's `next` is
// driven when it is used as an each/map/fold/filter source, since an
// Iterator has no inherent length.
const maxIteratorExpansion = 100000

// sequence materializes v's element sequence for each/map/fold/filter:
// list items in order, a string's Unicode code points (each as a
// one-rune String), a dict's {key, value} pairs in sorted-key order, or an
// Iterator driven via its `next` callable up to maxIteratorExpansion steps;
// an Iterator still not done after that many steps is a
// RUNTIME_LIMIT_EXCEEDED error.
func (e *Evaluator) sequence(v value.Value, scope *runtime.Scope, loc *diag.Location) ([]value.Value, error) {
	switch x := v.(type) {
	case *value.List:
		return x.Items, nil
	case value.String:
		runes := x.Runes()
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String{Val: string(r)}
		}
		return out, nil
	case *value.Dict:
		out := make([]value.Value, 0, len(x.Keys))
		for _, k := range x.Keys {
			fv, _ := x.Get(k)
			out = append(out, value.NewDict(map[string]value.Value{"key": value.String{Val: k}, "value": fv}))
		}
		return out, nil
	case *value.Iterator:
		var out []value.Value
		cur := x
		for i := 0; !cur.Done; i++ {
			if i >= maxIteratorExpansion {
				return nil, diag.NewLimitExceeded(loc, "iterator expansion steps", maxIteratorExpansion)
			}
			out = append(out, cur.Value)
			if cur.Next == nil {
				break
			}
			nv, err := e.callCallable(cur.Next, nil, nil, scope, loc, "<iterator>")
			if err != nil {
				return nil, err
			}
			nit, ok := nv.(*value.Iterator)
			if !ok {
				return nil, diag.NewTypeError(loc, "iterator's next did not return an iterator")
			}
			cur = nit
		}
		return out, nil
	default:
		return nil, diag.NewTypeError(loc, "value is not iterable")
	}
}

func mapLimit(scope *runtime.Scope) int {
	if ann := scope.CurrentAnnotations(); ann != nil {
		if v, ok := ann["limit"]; ok {
			if n, ok := v.(value.Number); ok && n.Val > 0 {
				return int(n.Val)
			}
		}
	}
	return defaultMapLimit
}

func (e *Evaluator) iteratorSource(body ast.IteratorBody, scope *runtime.Scope) (value.Value, error) {
	if body.Source != nil {
		return e.evalExpression(body.Source, scope)
	}
	return scope.PipeValue, nil
}

func (e *Evaluator) bindElement(child *runtime.Scope, body ast.IteratorBody, el, acc value.Value) error {
	child.PipeValue = el
	if body.ElementName != "" {
		if derr := child.SetVariable(body.ElementName, el, ""); derr != nil {
			return derr
		}
	}
	if body.AccumulatorName != "" {
		if derr := child.SetVariable(body.AccumulatorName, acc, ""); derr != nil {
			return derr
		}
	}
	return nil
}

// evalEach runs Body sequentially over Source, collecting a list of
// results; a `break` inside Body ends the loop early with the partial
// list (including the breaking element's value).
func (e *Evaluator) evalEach(n *ast.EachExpr, scope *runtime.Scope) (value.Value, error) {
	src, err := e.iteratorSource(n.IteratorBody, scope)
	if err != nil {
		return nil, err
	}
	elems, err := e.sequence(src, scope, e.loc(n.Span()))
	if err != nil {
		return nil, err
	}

	var acc value.Value = value.NullValue
	if n.Accumulator != nil {
		acc, err = e.evalExpression(n.Accumulator, scope)
		if err != nil {
			return nil, err
		}
	}

	results := make([]value.Value, 0, len(elems))
	for _, el := range elems {
		if scope.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(n.Span()))
		}
		child := runtime.CreateChildContext(scope)
		if err := e.bindElement(child, n.IteratorBody, el, acc); err != nil {
			return nil, err
		}
		v, err := e.evalExpression(n.Body, child)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				results = append(results, bv)
				break
			}
			return nil, err
		}
		results = append(results, v)
		if n.AccumulatorName != "" {
			acc = v
		}
	}
	return &value.List{Items: results}, nil
}

// evalFold is a sequential reduction; the parser guarantees Accumulator is
// non-nil (fold requires one).
func (e *Evaluator) evalFold(n *ast.FoldExpr, scope *runtime.Scope) (value.Value, error) {
	src, err := e.iteratorSource(n.IteratorBody, scope)
	if err != nil {
		return nil, err
	}
	elems, err := e.sequence(src, scope, e.loc(n.Span()))
	if err != nil {
		return nil, err
	}

	acc, err := e.evalExpression(n.Accumulator, scope)
	if err != nil {
		return nil, err
	}

	for _, el := range elems {
		if scope.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(n.Span()))
		}
		child := runtime.CreateChildContext(scope)
		if err := e.bindElement(child, n.IteratorBody, el, acc); err != nil {
			return nil, err
		}
		v, err := e.evalExpression(n.Body, child)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				return bv, nil
			}
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

// runBounded evaluates work for each index 0..n-1 with at most limit
// concurrent goroutines, preserving result order.
func runBounded(n, limit int, work func(i int) (value.Value, error)) ([]value.Value, error) {
	if limit <= 0 {
		limit = 1
	}
	results := make([]value.Value, n)
	errs := make([]error, n)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := work(i)
			results[i] = v
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// evalMap runs Body over Source with bounded concurrency (sized by the
// `limit` annotation), one isolated child scope per element, preserving
// output order.
func (e *Evaluator) evalMap(n *ast.MapExpr, scope *runtime.Scope) (value.Value, error) {
	src, err := e.iteratorSource(n.IteratorBody, scope)
	if err != nil {
		return nil, err
	}
	elems, err := e.sequence(src, scope, e.loc(n.Span()))
	if err != nil {
		return nil, err
	}

	results, err := runBounded(len(elems), mapLimit(scope), func(i int) (value.Value, error) {
		child := runtime.CreateChildContext(scope)
		if err := e.bindElement(child, n.IteratorBody, elems[i], value.NullValue); err != nil {
			return nil, err
		}
		v, err := e.evalExpression(n.Body, child)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				return bv, nil
			}
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return &value.List{Items: results}, nil
}

// evalFilter keeps elements whose Body evaluates to true (any non-bool
// result is a RUNTIME_TYPE_ERROR), running with the
// same bounded concurrency as map but preserving only the surviving
// elements in source order.
func (e *Evaluator) evalFilter(n *ast.FilterExpr, scope *runtime.Scope) (value.Value, error) {
	src, err := e.iteratorSource(n.IteratorBody, scope)
	if err != nil {
		return nil, err
	}
	elems, err := e.sequence(src, scope, e.loc(n.Span()))
	if err != nil {
		return nil, err
	}

	keep, err := runBounded(len(elems), mapLimit(scope), func(i int) (value.Value, error) {
		child := runtime.CreateChildContext(scope)
		if err := e.bindElement(child, n.IteratorBody, elems[i], value.NullValue); err != nil {
			return nil, err
		}
		v, err := e.evalExpression(n.Body, child)
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Bool)
		if !ok {
			return nil, diag.NewTypeError(e.loc(n.Span()), "filter predicate must return a bool")
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	var results []value.Value
	for i, k := range keep {
		if k.(value.Bool).Val {
			results = append(results, elems[i])
		}
	}
	return &value.List{Items: results}, nil
}
