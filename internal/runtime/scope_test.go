package runtime

import (
	"testing"

	"github.com/rill-lang/rill/internal/value"
)

func TestSetVariableLocalBinding(t *testing.T) {
	s := NewRootScope()
	if err := s.SetVariable("x", value.Number{Val: 1}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := s.GetVariable("x")
	if !ok || v.(value.Number).Val != 1 {
		t.Fatalf("GetVariable(x) = %v, %v", v, ok)
	}
}

func TestSetVariableRejectsOuterReassignment(t *testing.T) {
	root := NewRootScope()
	if err := root.SetVariable("x", value.Number{Val: 1}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child := CreateChildContext(root)
	err := child.SetVariable("x", value.Number{Val: 2}, "")
	if err == nil {
		t.Fatal("expected RUNTIME_REASSIGN_OUTER, got nil")
	}
	if err.Code != "RUNTIME_REASSIGN_OUTER" {
		t.Fatalf("Code = %q, want RUNTIME_REASSIGN_OUTER", err.Code)
	}
}

func TestSetVariablePinsTypeOnFirstWrite(t *testing.T) {
	s := NewRootScope()
	if err := s.SetVariable("x", value.Number{Val: 1}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.SetVariable("x", value.String{Val: "oops"}, "")
	if err == nil {
		t.Fatal("expected RUNTIME_TYPE_ERROR, got nil")
	}
	if err.Code != "RUNTIME_TYPE_ERROR" {
		t.Fatalf("Code = %q, want RUNTIME_TYPE_ERROR", err.Code)
	}
}

func TestSetVariableSameTypeRebindAllowed(t *testing.T) {
	s := NewRootScope()
	if err := s.SetVariable("x", value.Number{Val: 1}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetVariable("x", value.Number{Val: 2}, ""); err != nil {
		t.Fatalf("same-type rebind should be allowed, got %v", err)
	}
}

func TestChildInheritsPipeValueAndFunctions(t *testing.T) {
	root := NewRootScope()
	root.PipeValue = value.String{Val: "hello"}
	fn := &value.Callable{Kind: value.KindRuntime}
	root.DefineFunction("greet", fn)

	child := CreateChildContext(root)
	if child.PipeValue.(value.String).Val != "hello" {
		t.Fatalf("child PipeValue = %v", child.PipeValue)
	}
	got, ok := child.LookupFunction("greet")
	if !ok || got != fn {
		t.Fatalf("child LookupFunction(greet) = %v, %v", got, ok)
	}
}

func TestHasLocalDoesNotSeeAncestors(t *testing.T) {
	root := NewRootScope()
	_ = root.SetVariable("x", value.Number{Val: 1}, "")
	child := CreateChildContext(root)
	if child.HasLocal("x") {
		t.Fatal("HasLocal should not see ancestor bindings")
	}
	if _, ok := child.GetVariable("x"); !ok {
		t.Fatal("GetVariable should still see ancestor bindings")
	}
}

func TestAnnotationStackPushPop(t *testing.T) {
	s := NewRootScope()
	if s.CurrentAnnotations() != nil {
		t.Fatal("expected empty annotation stack")
	}
	frame := map[string]value.Value{"limit": value.Number{Val: 5}}
	s.PushAnnotations(frame)
	if got := s.CurrentAnnotations(); got["limit"].(value.Number).Val != 5 {
		t.Fatalf("CurrentAnnotations() = %v", got)
	}
	s.PopAnnotations()
	if s.CurrentAnnotations() != nil {
		t.Fatal("expected empty annotation stack after pop")
	}
}

func TestCancellationToken(t *testing.T) {
	tok := NewCancellationToken()
	if tok.Cancelled() {
		t.Fatal("fresh token should not be cancelled")
	}
	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("token should be cancelled after Cancel()")
	}
}
