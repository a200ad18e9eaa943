// Package runtime implements Rill's lexical scope chain and the
// per-execution context threaded through the evaluator.
package runtime

import (
	"regexp"
	"sync"

	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/value"
)

// Observability holds optional callbacks an embedder can install via
// CreateRuntimeContext to watch evaluation without altering it.
type Observability struct {
	OnHostCall      func(name string, args []value.Value)
	OnFunctionReturn func(name string, result value.Value, err error)
	OnLogEvent      func(level, message string)
}

// Scope is one lexical scope in the chain: a variable/type frame, the
// current pipe value, and, at the root, the shared function/method tables
// and cross-cutting execution controls. Child scopes share the root's
// tables and controls by pointer; only Variables/Types are ever written
// locally.
//
// Variables may be written only in the scope in which they are first
// created: writing a name that already exists in an ancestor raises
// RUNTIME_REASSIGN_OUTER instead of silently shadowing it, unlike the
// case-insensitive, silently-shadowing Environment this type is modeled on.
type Scope struct {
	parent *Scope

	variables     map[string]value.Value
	variableTypes map[string]value.Tag

	PipeValue value.Value

	// Shared across the whole scope chain from the root.
	shared *sharedContext
}

type sharedContext struct {
	functions map[string]*value.Callable
	methods   map[string]*value.Callable

	annotationStack []map[string]value.Value

	observability Observability

	timeoutMs int
	cancel    *CancellationToken

	autoExceptions []*regexp.Regexp

	mu sync.Mutex
}

// NewRootScope creates a fresh root Scope with no parent.
func NewRootScope() *Scope {
	return &Scope{
		variables:     make(map[string]value.Value),
		variableTypes: make(map[string]value.Tag),
		PipeValue:     value.NullValue,
		shared: &sharedContext{
			functions: make(map[string]*value.Callable),
			methods:   make(map[string]*value.Callable),
			timeoutMs: 30000,
			cancel:    NewCancellationToken(),
		},
	}
}

// CreateChildContext returns a fresh child scope: empty variables/types,
// inheriting the parent's pipe value, annotation-stack top, and all shared
// tables/controls.
func CreateChildContext(parent *Scope) *Scope {
	return &Scope{
		parent:        parent,
		variables:     make(map[string]value.Value),
		variableTypes: make(map[string]value.Tag),
		PipeValue:     parent.PipeValue,
		shared:        parent.shared,
	}
}

// Parent returns s's parent scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// GetVariable walks s and its ancestors until name is found, returning
// value.NullValue (the missing-marker) and false when it is nowhere bound.
func (s *Scope) GetVariable(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.variables[name]; ok {
			return v, true
		}
	}
	return value.NullValue, false
}

// HasLocal reports whether name is bound directly in s (not an ancestor).
func (s *Scope) HasLocal(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// findOwner returns the scope in the chain (s or an ancestor) that already
// binds name, or nil if none does.
func (s *Scope) findOwner(name string) *Scope {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.variables[name]; ok {
			return sc
		}
	}
	return nil
}

// SetVariable implements spec's setVariable: an ancestor binding of name
// is a hard error: RUNTIME_REASSIGN_OUTER. A local binding with a pinned
// type different from typeTag is RUNTIME_TYPE_ERROR. Otherwise name is
// bound (or updated) locally, pinning typeTag on first write.
func (s *Scope) SetVariable(name string, v value.Value, typeTag value.Tag) *diag.Error {
	if owner := s.findOwner(name); owner != nil && owner != s {
		return diag.NewReassignOuter(nil, name)
	}
	if pinned, ok := s.variableTypes[name]; ok {
		want := typeTag
		if want == "" {
			want = value.Infer(v)
		}
		if pinned != want {
			return diag.NewTypeError(nil, "cannot change type of \""+name+"\" from "+string(pinned)+" to "+string(want))
		}
	} else {
		pin := typeTag
		if pin == "" {
			pin = value.Infer(v)
		}
		s.variableTypes[name] = pin
	}
	s.variables[name] = v
	return nil
}

// DefineFunction registers a callable under name in the shared function
// table. Later registrations with the same name replace the prior one.
func (s *Scope) DefineFunction(name string, fn *value.Callable) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.functions[name] = fn
}

// LookupFunction resolves name (possibly namespaced with "::") in the
// shared function table.
func (s *Scope) LookupFunction(name string) (*value.Callable, bool) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	fn, ok := s.shared.functions[name]
	return fn, ok
}

// DefineMethod registers a method callable under name.
func (s *Scope) DefineMethod(name string, fn *value.Callable) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.methods[name] = fn
}

// LookupMethod resolves name in the shared method table.
func (s *Scope) LookupMethod(name string) (*value.Callable, bool) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	fn, ok := s.shared.methods[name]
	return fn, ok
}

// PushAnnotations pushes a new top annotation frame active for the next
// statement's evaluation.
func (s *Scope) PushAnnotations(m map[string]value.Value) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.annotationStack = append(s.shared.annotationStack, m)
}

// PopAnnotations removes the top annotation frame.
func (s *Scope) PopAnnotations() {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	n := len(s.shared.annotationStack)
	if n == 0 {
		return
	}
	s.shared.annotationStack = s.shared.annotationStack[:n-1]
}

// CurrentAnnotations returns the top of the annotation stack, or nil.
func (s *Scope) CurrentAnnotations() map[string]value.Value {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	n := len(s.shared.annotationStack)
	if n == 0 {
		return nil
	}
	return s.shared.annotationStack[n-1]
}

// Observability returns the shared observability hooks.
func (s *Scope) Observability() Observability { return s.shared.observability }

// SetObservability installs the shared observability hooks.
func (s *Scope) SetObservability(o Observability) { s.shared.observability = o }

// TimeoutMs returns the default per-host-call timeout in milliseconds.
func (s *Scope) TimeoutMs() int { return s.shared.timeoutMs }

// SetTimeoutMs sets the default per-host-call timeout.
func (s *Scope) SetTimeoutMs(ms int) { s.shared.timeoutMs = ms }

// Cancel returns the shared cancellation token.
func (s *Scope) Cancel() *CancellationToken { return s.shared.cancel }

// AutoExceptions returns the compiled auto-exception regex list, in
// registration order (first match wins).
func (s *Scope) AutoExceptions() []*regexp.Regexp { return s.shared.autoExceptions }

// SetAutoExceptions installs the compiled auto-exception patterns.
func (s *Scope) SetAutoExceptions(patterns []*regexp.Regexp) { s.shared.autoExceptions = patterns }
