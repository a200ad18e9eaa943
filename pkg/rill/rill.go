// Package rill is the public embedder API: parse a script, build a
// runtime context, and execute. Grounded on the teacher's pkg/dwscript
// engine surface (observed through its ffi_*_test.go files, since no
// non-test pkg/dwscript source survived retrieval) and its functional-
// options idiom used elsewhere in the teacher (internal/bytecode's
// OptimizeOption).
package rill

import (
	"regexp"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/eval"
	"github.com/rill-lang/rill/internal/host"
	"github.com/rill-lang/rill/internal/parser"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// Parse parses source in strict mode: it returns the first syntax error
// encountered, wrapped as a *diag.Error.
func Parse(source string) (*ast.ScriptNode, error) {
	return parser.Parse(source)
}

// RecoveryResult is ParseWithRecovery's result: a best-effort script (with
// *ast.ErrorNode standing in for statements that failed to parse), every
// accumulated error, and whether parsing succeeded with zero errors.
type RecoveryResult struct {
	Script  *ast.ScriptNode
	Errors  []*diag.Error
	Success bool
}

// ParseWithRecovery parses source in recovery mode: a malformed statement
// is resynchronized to the next statement boundary rather than aborting
// the whole parse, so tooling (an editor's live diagnostics) can report
// every error in one pass.
func ParseWithRecovery(source string) RecoveryResult {
	r := parser.ParseWithRecovery(source)
	return RecoveryResult{Script: r.Script, Errors: r.Errors, Success: r.Success}
}

// Context wraps a root runtime.Scope with the source/file pair needed to
// render diagnostics, and is the unit Execute runs a parsed script against.
type Context struct {
	scope  *runtime.Scope
	source string
	file   string
}

// ContextOption configures a Context built by CreateRuntimeContext.
type ContextOption func(*contextConfig)

type contextConfig struct {
	functions           []host.FunctionDefinition
	methods             []host.MethodDefinition
	variables           map[string]value.Value
	timeoutMs           int
	autoExceptions      []string
	requireDescriptions bool
	observability       runtime.Observability
	file                string
}

// WithFunctions registers host functions available to the script as
// "ns::name" or bare-name host calls.
func WithFunctions(defs ...host.FunctionDefinition) ContextOption {
	return func(c *contextConfig) { c.functions = append(c.functions, defs...) }
}

// WithMethods registers host methods, invoked via `.name(args)` against
// the current pipe value.
func WithMethods(defs ...host.MethodDefinition) ContextOption {
	return func(c *contextConfig) { c.methods = append(c.methods, defs...) }
}

// WithVariables pre-binds root-scope variables before the script runs.
func WithVariables(vars map[string]value.Value) ContextOption {
	return func(c *contextConfig) { c.variables = vars }
}

// WithTimeoutMs sets the default per-host-call timeout, overridable per
// statement by a `^(timeout: ms)` annotation.
func WithTimeoutMs(ms int) ContextOption {
	return func(c *contextConfig) { c.timeoutMs = ms }
}

// WithAutoExceptions installs regex patterns that, when a top-level
// statement's string result matches one (first match wins), raise
// RUNTIME_AUTO_EXCEPTION instead of returning the string.
func WithAutoExceptions(patterns ...string) ContextOption {
	return func(c *contextConfig) { c.autoExceptions = append(c.autoExceptions, patterns...) }
}

// WithRequireDescriptions rejects any registered host function/method that
// has no Description, per spec.md §3's self-describing FFI requirement.
func WithRequireDescriptions(require bool) ContextOption {
	return func(c *contextConfig) { c.requireDescriptions = require }
}

// WithObservability installs hooks an embedder can use to watch evaluation
// (host calls, function returns, log events) without altering it.
func WithObservability(o runtime.Observability) ContextOption {
	return func(c *contextConfig) { c.observability = o }
}

// WithFile sets the display filename used in rendered diagnostics.
func WithFile(file string) ContextOption {
	return func(c *contextConfig) { c.file = file }
}

// CreateRuntimeContext builds a Context from the given options: installing
// host functions/methods into the registry, binding initial variables,
// compiling auto-exception patterns, and wiring observability/timeout.
func CreateRuntimeContext(opts ...ContextOption) (*Context, error) {
	cfg := &contextConfig{timeoutMs: 30000}
	for _, opt := range opts {
		opt(cfg)
	}

	reg := host.NewRegistry(cfg.requireDescriptions)
	for _, def := range cfg.functions {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	for _, def := range cfg.methods {
		if err := reg.RegisterMethod(def); err != nil {
			return nil, err
		}
	}

	scope := runtime.NewRootScope()
	for name, fn := range reg.Functions() {
		scope.DefineFunction(name, fn)
	}
	for name, fn := range reg.Methods() {
		scope.DefineMethod(name, fn)
	}
	for name, v := range cfg.variables {
		if err := scope.SetVariable(name, v, value.Infer(v)); err != nil {
			return nil, err
		}
	}
	scope.SetTimeoutMs(cfg.timeoutMs)
	scope.SetObservability(cfg.observability)

	if len(cfg.autoExceptions) > 0 {
		compiled := make([]*regexp.Regexp, 0, len(cfg.autoExceptions))
		for _, pattern := range cfg.autoExceptions {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, re)
		}
		scope.SetAutoExceptions(compiled)
	}

	return &Context{scope: scope, file: cfg.file}, nil
}

// Abort cancels ctx's execution; any in-flight or future statement
// evaluation against ctx returns RUNTIME_ABORTED.
func (c *Context) Abort() { c.scope.Cancel().Cancel() }

// Execute runs script against ctx, returning its final statement's value.
func Execute(ctx *Context, script *ast.ScriptNode, source string) (value.Value, *diag.Error) {
	ctx.source = source
	ev := eval.New(source, ctx.file)
	return ev.ExecuteScript(script, ctx.scope)
}
