// Package host implements Rill's host-function registry: the FFI surface
// an embedder uses to expose Go functionality to scripts as Application-
// kind callables, grounded on the teacher's RegisterFunction contract
// (observed through pkg/dwscript's ffi_registration_test.go and
// ffi_calling_conventions_test.go) but reworked around Rill's closed
// value.Value union instead of the teacher's reflection-based native-type
// signature detection — Rill functions are declared with an explicit
// Param list naming Rill type tags, not inferred from a Go func's
// reflect.Type, since a Go func signature has no way to express Rill's
// dict/tuple/iterator shapes.
package host

import (
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/value"
)

// validReturnTags are the Rill type tags a Param.TypeName or
// FunctionDefinition/MethodDefinition.ReturnType may name, per spec.md §6.
var validReturnTags = map[string]bool{
	"":       true, // untyped/unconstrained
	"string": true,
	"number": true,
	"bool":   true,
	"list":   true,
	"dict":   true,
	"vector": true,
	"any":    true,
}

func validateSignature(qname, returnType string, params []value.Param) error {
	if !validReturnTags[returnType] {
		return fmt.Errorf("host: %q has an invalid return type %q", qname, returnType)
	}
	for _, p := range params {
		if !validReturnTags[p.TypeName] {
			return fmt.Errorf("host: %q parameter %q has an invalid type %q", qname, p.Name, p.TypeName)
		}
	}
	return nil
}

// validateParamDescriptions requires a non-blank Description on every
// parameter when requireDescriptions is set, per spec.md §6.
func validateParamDescriptions(qname string, params []value.Param) error {
	for _, p := range params {
		if strings.TrimSpace(p.Description) == "" {
			return fmt.Errorf("host: %q parameter %q requires a non-empty description", qname, p.Name)
		}
	}
	return nil
}

// FunctionDefinition is what an embedder registers for one host function.
// Namespace groups related functions under a "ns::name" qualified name,
// per spec.md §3's namespacing rule; Namespace == "" registers a bare name.
type FunctionDefinition struct {
	Namespace   string
	Name        string
	Params      []value.Param
	ReturnType  string
	Description string
	Async       bool
	Fn          func(args []value.Value, ctx any, loc any) (value.Value, error)
}

// QualifiedName returns "ns::name", or just "name" when Namespace is "".
func (d FunctionDefinition) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "::" + d.Name
}

// MethodDefinition is a host-registered method, invoked via `.name(args)`
// against whatever value is the current pipe value.
type MethodDefinition struct {
	Name        string
	Params      []value.Param
	ReturnType  string
	Description string
	Async       bool
	Fn          func(args []value.Value, ctx any, loc any) (value.Value, error)
}

// Registry collects function/method definitions before they are installed
// into a runtime.Scope by pkg/rill's CreateRuntimeContext. Keeping
// registration separate from the scope lets an embedder validate the
// whole set (duplicate names, missing descriptions) before any script runs.
type Registry struct {
	requireDescriptions bool
	functions           map[string]*value.Callable
	methods             map[string]*value.Callable
	order               []string
}

// NewRegistry creates an empty Registry. When requireDescriptions is true,
// Register/RegisterMethod reject a definition with an empty Description,
// per spec.md §3's "self-describing FFI" requirement for embedder-facing
// tooling (e.g. generating a manifest of available functions for a host
// UI).
func NewRegistry(requireDescriptions bool) *Registry {
	return &Registry{
		requireDescriptions: requireDescriptions,
		functions:           make(map[string]*value.Callable),
		methods:             make(map[string]*value.Callable),
	}
}

// Register adds a host function definition, rejecting a nil Fn, a name
// collision, or (when the registry requires it) a missing Description.
func (r *Registry) Register(def FunctionDefinition) error {
	if def.Fn == nil {
		return fmt.Errorf("host: function %q has a nil implementation", def.QualifiedName())
	}
	if def.Name == "" {
		return fmt.Errorf("host: function registered with an empty name")
	}
	qname := def.QualifiedName()
	if r.requireDescriptions && strings.TrimSpace(def.Description) == "" {
		return fmt.Errorf("host: function %q requires a non-empty description", qname)
	}
	if r.requireDescriptions {
		if err := validateParamDescriptions(qname, def.Params); err != nil {
			return err
		}
	}
	if err := validateSignature(qname, def.ReturnType, def.Params); err != nil {
		return err
	}
	if _, exists := r.functions[qname]; exists {
		return fmt.Errorf("host: function %q is already registered", qname)
	}
	r.functions[qname] = &value.Callable{
		Kind:          value.KindApplication,
		Params:        def.Params,
		ReturnType:    def.ReturnType,
		Description:   def.Description,
		Async:         def.Async,
		ApplicationFn: def.Fn,
	}
	r.order = append(r.order, qname)
	return nil
}

// RegisterMethod adds a host method definition (invoked via `.name(args)`),
// with the same validation rules as Register.
func (r *Registry) RegisterMethod(def MethodDefinition) error {
	if def.Fn == nil {
		return fmt.Errorf("host: method %q has a nil implementation", def.Name)
	}
	if def.Name == "" {
		return fmt.Errorf("host: method registered with an empty name")
	}
	if r.requireDescriptions && strings.TrimSpace(def.Description) == "" {
		return fmt.Errorf("host: method %q requires a non-empty description", def.Name)
	}
	if r.requireDescriptions {
		if err := validateParamDescriptions(def.Name, def.Params); err != nil {
			return err
		}
	}
	if err := validateSignature(def.Name, def.ReturnType, def.Params); err != nil {
		return err
	}
	if _, exists := r.methods[def.Name]; exists {
		return fmt.Errorf("host: method %q is already registered", def.Name)
	}
	r.methods[def.Name] = &value.Callable{
		Kind:          value.KindApplication,
		Params:        def.Params,
		ReturnType:    def.ReturnType,
		Description:   def.Description,
		Async:         def.Async,
		ApplicationFn: def.Fn,
	}
	return nil
}

// Functions returns the registered function table, keyed by qualified name.
func (r *Registry) Functions() map[string]*value.Callable { return r.functions }

// Methods returns the registered method table, keyed by name.
func (r *Registry) Methods() map[string]*value.Callable { return r.methods }

// Manifest renders a human-readable listing of every registered function's
// signature and description, in registration order — useful for an
// embedder building host-facing documentation or a debug REPL's `:help`.
func (r *Registry) Manifest() string {
	var sb strings.Builder
	for _, qname := range r.order {
		fn := r.functions[qname]
		sb.WriteString(qname)
		sb.WriteString("(")
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.TypeName != "" {
				sb.WriteString(":" + p.TypeName)
			}
		}
		sb.WriteString(")")
		if fn.ReturnType != "" {
			sb.WriteString(" -> " + fn.ReturnType)
		}
		if fn.Description != "" {
			sb.WriteString(" — " + fn.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
