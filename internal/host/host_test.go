package host

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/value"
)

func noopFn(args []value.Value, _ any, _ any) (value.Value, error) {
	return value.NullValue, nil
}

func TestRegisterQualifiesByNamespace(t *testing.T) {
	r := NewRegistry(false)
	if err := r.Register(FunctionDefinition{Namespace: "text", Name: "shout", Fn: noopFn}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, ok := r.Functions()["text::shout"]; !ok {
		t.Fatal("expected function registered under its qualified name")
	}
}

func TestRegisterBareNameHasNoNamespacePrefix(t *testing.T) {
	r := NewRegistry(false)
	if err := r.Register(FunctionDefinition{Name: "trim", Fn: noopFn}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, ok := r.Functions()["trim"]; !ok {
		t.Fatal("expected bare-named function registered without a namespace prefix")
	}
}

func TestRegisterRejectsNilFn(t *testing.T) {
	r := NewRegistry(false)
	if err := r.Register(FunctionDefinition{Name: "broken"}); err == nil {
		t.Fatal("expected an error for a nil Fn")
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := NewRegistry(false)
	if err := r.Register(FunctionDefinition{Fn: noopFn}); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}

func TestRegisterRejectsDuplicateQualifiedName(t *testing.T) {
	r := NewRegistry(false)
	if err := r.Register(FunctionDefinition{Name: "trim", Fn: noopFn}); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if err := r.Register(FunctionDefinition{Name: "trim", Fn: noopFn}); err == nil {
		t.Fatal("expected an error for a duplicate name")
	}
}

func TestRegisterRequireDescriptionsRejectsBlank(t *testing.T) {
	r := NewRegistry(true)
	if err := r.Register(FunctionDefinition{Name: "trim", Fn: noopFn}); err == nil {
		t.Fatal("expected an error for a missing description when required")
	}
	if err := r.Register(FunctionDefinition{Name: "trim", Description: "trims whitespace", Fn: noopFn}); err != nil {
		t.Fatalf("Register with description error: %v", err)
	}
}

func TestRegisterMethodRejectsDuplicateName(t *testing.T) {
	r := NewRegistry(false)
	if err := r.RegisterMethod(MethodDefinition{Name: "describe", Fn: noopFn}); err != nil {
		t.Fatalf("first RegisterMethod error: %v", err)
	}
	if err := r.RegisterMethod(MethodDefinition{Name: "describe", Fn: noopFn}); err == nil {
		t.Fatal("expected an error for a duplicate method name")
	}
}

func TestRegisterRejectsInvalidReturnType(t *testing.T) {
	r := NewRegistry(false)
	err := r.Register(FunctionDefinition{Name: "bogus", ReturnType: "int", Fn: noopFn})
	if err == nil {
		t.Fatal("expected an error for an invalid return type")
	}
}

func TestRegisterRejectsInvalidParamType(t *testing.T) {
	r := NewRegistry(false)
	err := r.Register(FunctionDefinition{
		Name:   "bogus",
		Params: []value.Param{{Name: "x", TypeName: "int"}},
		Fn:     noopFn,
	})
	if err == nil {
		t.Fatal("expected an error for an invalid parameter type")
	}
}

func TestRegisterAcceptsValidTagsIncludingBlank(t *testing.T) {
	r := NewRegistry(false)
	err := r.Register(FunctionDefinition{
		Name:       "ok",
		ReturnType: "any",
		Params:     []value.Param{{Name: "x", TypeName: ""}, {Name: "y", TypeName: "vector"}},
		Fn:         noopFn,
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
}

func TestRegisterRequireDescriptionsRejectsBlankParamDescription(t *testing.T) {
	r := NewRegistry(true)
	err := r.Register(FunctionDefinition{
		Name:        "add",
		Description: "adds two numbers",
		Params:      []value.Param{{Name: "a", TypeName: "number"}},
		Fn:          noopFn,
	})
	if err == nil {
		t.Fatal("expected an error for a parameter missing its description")
	}
	err = r.Register(FunctionDefinition{
		Name:        "add",
		Description: "adds two numbers",
		Params:      []value.Param{{Name: "a", TypeName: "number", Description: "the addend"}},
		Fn:          noopFn,
	})
	if err != nil {
		t.Fatalf("Register with param description error: %v", err)
	}
}

func TestRegisterMethodRejectsInvalidReturnType(t *testing.T) {
	r := NewRegistry(false)
	err := r.RegisterMethod(MethodDefinition{Name: "bogus", ReturnType: "int", Fn: noopFn})
	if err == nil {
		t.Fatal("expected an error for an invalid method return type")
	}
}

func TestManifestListsSignatureAndDescription(t *testing.T) {
	r := NewRegistry(false)
	_ = r.Register(FunctionDefinition{
		Name:        "add",
		Params:      []value.Param{{Name: "a", TypeName: "number"}, {Name: "b", TypeName: "number"}},
		ReturnType:  "number",
		Description: "adds two numbers",
		Fn:          noopFn,
	})
	m := r.Manifest()
	if !strings.Contains(m, "add(a:number, b:number)") {
		t.Fatalf("Manifest() missing signature: %q", m)
	}
	if !strings.Contains(m, "-> number") || !strings.Contains(m, "adds two numbers") {
		t.Fatalf("Manifest() missing return type/description: %q", m)
	}
}
