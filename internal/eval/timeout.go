package eval

import (
	"context"
	"time"

	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// invokeApplication races a host (Application-kind) function against the
// scope's timeout, defaulting to scope.TimeoutMs() and overridable by the
// current statement's `timeout` annotation, in milliseconds.
func (e *Evaluator) invokeApplication(fn *value.Callable, args []value.Value, scope *runtime.Scope, loc *diag.Location, name string) (value.Value, error) {
	if scope.Cancel().Cancelled() {
		return nil, diag.NewAborted(loc)
	}
	timeoutMs := scope.TimeoutMs()
	if ann := scope.CurrentAnnotations(); ann != nil {
		if v, ok := ann["timeout"]; ok {
			if n, ok := v.(value.Number); ok && n.Val > 0 {
				timeoutMs = int(n.Val)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	type outcome struct {
		v   value.Value
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn.ApplicationFn(args, scope, loc)
		ch <- outcome{v, err}
	}()

	if scope.Observability().OnHostCall != nil {
		scope.Observability().OnHostCall(name, args)
	}

	select {
	case out := <-ch:
		if scope.Observability().OnFunctionReturn != nil {
			scope.Observability().OnFunctionReturn(name, out.v, out.err)
		}
		if out.err != nil {
			if derr, ok := out.err.(*diag.Error); ok {
				return nil, derr
			}
			return nil, diag.NewTypeError(loc, out.err.Error())
		}
		return out.v, nil
	case <-ctx.Done():
		return nil, diag.NewTimeout(loc, name, timeoutMs)
	}
}
