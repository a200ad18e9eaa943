package eval

import (
	"sync/atomic"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

func TestSequenceList(t *testing.T) {
	ev := New("", "")
	l := &value.List{Items: []value.Value{value.Number{Val: 1}, value.Number{Val: 2}}}
	out, err := ev.sequence(l, runtime.NewRootScope(), nil)
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestSequenceString(t *testing.T) {
	ev := New("", "")
	out, err := ev.sequence(value.String{Val: "ab"}, runtime.NewRootScope(), nil)
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}
	if len(out) != 2 || out[0].(value.String).Val != "a" || out[1].(value.String).Val != "b" {
		t.Fatalf("sequence(string) = %v", out)
	}
}

func TestSequenceDictYieldsKeyValuePairs(t *testing.T) {
	ev := New("", "")
	d := value.NewDict(map[string]value.Value{"b": value.Number{Val: 2}, "a": value.Number{Val: 1}})
	out, err := ev.sequence(d, runtime.NewRootScope(), nil)
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	first := out[0].(*value.Dict)
	if k, _ := first.Get("key"); k.(value.String).Val != "a" {
		t.Fatalf("first pair key = %v, want a", k)
	}
}

func TestSequenceIteratorDrivesNextUntilDone(t *testing.T) {
	ev := New("", "")
	calls := 0
	makeIter := func(v float64, done bool) *value.Iterator {
		it := &value.Iterator{Done: done, Value: value.Number{Val: v}}
		if !done {
			it.Next = &value.Callable{
				Kind: value.KindRuntime,
				RuntimeFn: func(args []value.Value) (value.Value, error) {
					calls++
					if calls >= 2 {
						return &value.Iterator{Done: true}, nil
					}
					return &value.Iterator{
						Done:  false,
						Value: value.Number{Val: v + 1},
						Next: &value.Callable{Kind: value.KindRuntime, RuntimeFn: func(args []value.Value) (value.Value, error) {
							return &value.Iterator{Done: true}, nil
						}},
					}, nil
				},
			}
		}
		return it
	}
	out, err := ev.sequence(makeIter(1, false), runtime.NewRootScope(), nil)
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (1 and 2)", len(out))
	}
}

func TestSequenceRejectsNonIterable(t *testing.T) {
	ev := New("", "")
	_, err := ev.sequence(value.Bool{Val: true}, runtime.NewRootScope(), nil)
	if err == nil {
		t.Fatal("expected a type error for a non-iterable value")
	}
}

func TestRunBoundedPreservesOrder(t *testing.T) {
	results, err := runBounded(10, 3, func(i int) (value.Value, error) {
		return value.Number{Val: float64(i)}, nil
	})
	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}
	for i, v := range results {
		if v.(value.Number).Val != float64(i) {
			t.Fatalf("results[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestRunBoundedCapsConcurrency(t *testing.T) {
	var cur, max int32
	_, err := runBounded(20, 4, func(i int) (value.Value, error) {
		n := atomic.AddInt32(&cur, 1)
		for {
			m := atomic.LoadInt32(&max)
			if n <= m || atomic.CompareAndSwapInt32(&max, m, n) {
				break
			}
		}
		atomic.AddInt32(&cur, -1)
		return value.NullValue, nil
	})
	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}
	if max > 4 {
		t.Fatalf("observed concurrency %d, want <= 4", max)
	}
}

func TestRunBoundedPropagatesError(t *testing.T) {
	boom := diagTypeError()
	_, err := runBounded(5, 2, func(i int) (value.Value, error) {
		if i == 3 {
			return nil, boom
		}
		return value.NullValue, nil
	})
	if err == nil {
		t.Fatal("expected runBounded to surface the work error")
	}
}

func TestBindParamsAppliesDefaults(t *testing.T) {
	scope := runtime.NewRootScope()
	params := []value.Param{{Name: "x", HasDefault: true, DefaultValue: value.Number{Val: 9}}}
	if err := bindParams(scope, params, nil, nil, nil); err != nil {
		t.Fatalf("bindParams error: %v", err)
	}
	v, ok := scope.GetVariable("x")
	if !ok || v.(value.Number).Val != 9 {
		t.Fatalf("x = %v, %v, want 9", v, ok)
	}
}

func TestBindParamsMissingRequiredArgument(t *testing.T) {
	scope := runtime.NewRootScope()
	params := []value.Param{{Name: "x"}}
	if err := bindParams(scope, params, nil, nil, nil); err == nil {
		t.Fatal("expected an error for a missing required argument")
	}
}

func TestBindParamsRejectsTypeMismatch(t *testing.T) {
	scope := runtime.NewRootScope()
	params := []value.Param{{Name: "x", TypeName: "number"}}
	err := bindParams(scope, params, []value.Value{value.String{Val: "oops"}}, nil, nil)
	if err == nil {
		t.Fatal("expected a type error for a mismatched argument type")
	}
}

func TestBindParamsPrefersNamedOverDefault(t *testing.T) {
	scope := runtime.NewRootScope()
	params := []value.Param{{Name: "x", HasDefault: true, DefaultValue: value.Number{Val: 0}}}
	named := map[string]value.Value{"x": value.Number{Val: 7}}
	if err := bindParams(scope, params, nil, named, nil); err != nil {
		t.Fatalf("bindParams error: %v", err)
	}
	v, _ := scope.GetVariable("x")
	if v.(value.Number).Val != 7 {
		t.Fatalf("x = %v, want 7 (named should win over default)", v)
	}
}

func TestEvalDestructurePositionalBindsEachElement(t *testing.T) {
	ev := New("", "")
	scope := runtime.NewRootScope()
	scope.PipeValue = &value.List{Items: []value.Value{value.Number{Val: 1}, value.Number{Val: 2}}}
	d := &ast.DestructureExpr{Positional: &ast.PositionalPattern{Elements: []*ast.PatternElement{
		{Name: "a"}, {Name: "b"},
	}}}
	if _, err := ev.evalDestructure(d, scope, scope); err != nil {
		t.Fatalf("evalDestructure error: %v", err)
	}
	a, _ := scope.GetVariable("a")
	b, _ := scope.GetVariable("b")
	if a.(value.Number).Val != 1 || b.(value.Number).Val != 2 {
		t.Fatalf("a=%v b=%v, want 1 and 2", a, b)
	}
}

func TestEvalDestructurePositionalSkip(t *testing.T) {
	ev := New("", "")
	scope := runtime.NewRootScope()
	scope.PipeValue = &value.List{Items: []value.Value{value.Number{Val: 1}, value.Number{Val: 2}}}
	d := &ast.DestructureExpr{Positional: &ast.PositionalPattern{Elements: []*ast.PatternElement{
		{Skip: true}, {Name: "b"},
	}}}
	if _, err := ev.evalDestructure(d, scope, scope); err != nil {
		t.Fatalf("evalDestructure error: %v", err)
	}
	if _, ok := scope.GetVariable("a"); ok {
		t.Fatal("skipped element must not bind a name")
	}
	b, _ := scope.GetVariable("b")
	if b.(value.Number).Val != 2 {
		t.Fatalf("b = %v, want 2", b)
	}
}

func TestEvalDestructurePositionalCountMismatch(t *testing.T) {
	ev := New("", "")
	scope := runtime.NewRootScope()
	scope.PipeValue = &value.List{Items: []value.Value{value.Number{Val: 1}}}
	d := &ast.DestructureExpr{Positional: &ast.PositionalPattern{Elements: []*ast.PatternElement{
		{Name: "a"}, {Name: "b"},
	}}}
	if _, err := ev.evalDestructure(d, scope, scope); err == nil {
		t.Fatal("expected an error for a pattern/value length mismatch")
	}
}

func TestEvalDestructureKeyedBindsByDictKey(t *testing.T) {
	ev := New("", "")
	scope := runtime.NewRootScope()
	scope.PipeValue = value.NewDict(map[string]value.Value{"x": value.Number{Val: 5}})
	d := &ast.DestructureExpr{Keyed: &ast.KeyedPattern{Elements: []*ast.PatternElement{
		{Key: "x", Name: "x"},
	}}}
	if _, err := ev.evalDestructure(d, scope, scope); err != nil {
		t.Fatalf("evalDestructure error: %v", err)
	}
	v, ok := scope.GetVariable("x")
	if !ok || v.(value.Number).Val != 5 {
		t.Fatalf("x = %v, %v, want 5", v, ok)
	}
}

func TestEvalDestructureKeyedMissingKey(t *testing.T) {
	ev := New("", "")
	scope := runtime.NewRootScope()
	scope.PipeValue = value.NewDict(map[string]value.Value{"x": value.Number{Val: 5}})
	d := &ast.DestructureExpr{Keyed: &ast.KeyedPattern{Elements: []*ast.PatternElement{
		{Key: "missing", Name: "missing"},
	}}}
	if _, err := ev.evalDestructure(d, scope, scope); err == nil {
		t.Fatal("expected an error for a missing dict key")
	}
}

func diagTypeError() error {
	ev := New("", "")
	_, err := ev.sequence(value.Bool{Val: true}, runtime.NewRootScope(), nil)
	return err
}
