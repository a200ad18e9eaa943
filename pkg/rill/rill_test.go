package rill

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/rill-lang/rill/internal/host"
	"github.com/rill-lang/rill/internal/value"
)

func run(t *testing.T, source string, opts ...ContextOption) value.Value {
	t.Helper()
	script, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	ctx, cerr := CreateRuntimeContext(opts...)
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	result, rerr := Execute(ctx, script, source)
	if rerr != nil {
		t.Fatalf("Execute(%q) error: %v", source, rerr.Format())
	}
	return result
}

func TestExecuteArithmeticAndCapture(t *testing.T) {
	result := run(t, "2 + 3 * 4 :> $x\n$x - 1")
	n, ok := result.(value.Number)
	if !ok || n.Val != 13 {
		t.Fatalf("result = %#v, want Number(13)", result)
	}
}

func TestExecuteConditional(t *testing.T) {
	result := run(t, `(5 > 3) -> ? "big" ! "small"`)
	s, ok := result.(value.String)
	if !ok || s.Val != "big" {
		t.Fatalf("result = %#v, want String(big)", result)
	}
}

func TestExecuteWhileLoopNeverRuns(t *testing.T) {
	result := run(t, "(false) @ (1 :> $unused)")
	if result != value.NullValue {
		t.Fatalf("result = %#v, want Null", result)
	}
}

func TestExecuteDoWhileRunsOnce(t *testing.T) {
	result := run(t, "@ (1 + 1) ? (false)")
	n, ok := result.(value.Number)
	if !ok || n.Val != 2 {
		t.Fatalf("result = %#v, want Number(2)", result)
	}
}

func TestExecuteClosureInvoke(t *testing.T) {
	result := run(t, "(|x| $x * 2) :> $double\n$double -> (5)")
	n, ok := result.(value.Number)
	if !ok || n.Val != 10 {
		t.Fatalf("result = %#v, want Number(10)", result)
	}
}

func TestExecuteBlockStatementsAllSeeParentPipeValue(t *testing.T) {
	result := run(t, "5 -> { $ + 1\n$ * 2 }")
	n, ok := result.(value.Number)
	if !ok || n.Val != 10 {
		t.Fatalf("result = %#v, want Number(10) ($ must stay 5 for both statements)", result)
	}
}

func TestExecuteBlockCapturesVisibleToLaterStatements(t *testing.T) {
	result := run(t, "5 -> { $ :> $doubled\n$doubled * 2 }")
	n, ok := result.(value.Number)
	if !ok || n.Val != 10 {
		t.Fatalf("result = %#v, want Number(10)", result)
	}
}

func TestExecuteDivisionByZeroIsTypeError(t *testing.T) {
	script, err := Parse("5 / 0")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, "5 / 0")
	if rerr == nil || rerr.Code != "RUNTIME_TYPE_ERROR" {
		t.Fatalf("rerr = %v, want RUNTIME_TYPE_ERROR", rerr)
	}
}

func TestExecuteModuloByZeroIsTypeError(t *testing.T) {
	script, err := Parse("5 % 0")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, "5 % 0")
	if rerr == nil || rerr.Code != "RUNTIME_TYPE_ERROR" {
		t.Fatalf("rerr = %v, want RUNTIME_TYPE_ERROR", rerr)
	}
}

func TestExecuteConditionalRequiresBool(t *testing.T) {
	script, err := Parse(`5 -> ? "a" ! "b"`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, `5 -> ? "a" ! "b"`)
	if rerr == nil || rerr.Code != "RUNTIME_TYPE_ERROR" {
		t.Fatalf("rerr = %v, want RUNTIME_TYPE_ERROR", rerr)
	}
}

func TestExecuteNullCoalesceSubstitutesOnMissingKey(t *testing.T) {
	result := run(t, `[a: 1].missing ?? "fallback"`)
	s, ok := result.(value.String)
	if !ok || s.Val != "fallback" {
		t.Fatalf("result = %#v, want String(fallback)", result)
	}
}

func TestExecuteDictFieldAccess(t *testing.T) {
	result := run(t, `[a: 1, b: 2].a`)
	n, ok := result.(value.Number)
	if !ok || n.Val != 1 {
		t.Fatalf("result = %#v, want Number(1)", result)
	}
}

func TestExecuteMapAndFilter(t *testing.T) {
	result := run(t, "[1, 2, 3, 4] -> map |x| $x * 2 -> filter |x| $x > 4")
	l, ok := result.(*value.List)
	if !ok {
		t.Fatalf("result = %#v, want *value.List", result)
	}
	var got []float64
	for _, it := range l.Items {
		got = append(got, it.(value.Number).Val)
	}
	want := []float64{6, 8}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExecuteFold(t *testing.T) {
	result := run(t, "[1, 2, 3, 4] -> fold |x, acc = 0| $acc + $x")
	n, ok := result.(value.Number)
	if !ok || n.Val != 10 {
		t.Fatalf("result = %#v, want Number(10)", result)
	}
}

func TestExecuteDestructurePositional(t *testing.T) {
	result := run(t, "[1, 2] -> *<$a, $b>\n$a + $b")
	n, ok := result.(value.Number)
	if !ok || n.Val != 3 {
		t.Fatalf("result = %#v, want Number(3)", result)
	}
}

func TestExecuteSlice(t *testing.T) {
	result := run(t, "[1, 2, 3, 4, 5] -> /<1:4:1>")
	l, ok := result.(*value.List)
	if !ok || len(l.Items) != 3 {
		t.Fatalf("result = %#v, want 3-element list", result)
	}
	if l.Items[0].(value.Number).Val != 2 {
		t.Fatalf("first element = %v, want 2", l.Items[0])
	}
}

func TestExecuteTypeAssertionFailure(t *testing.T) {
	script, err := Parse(`"hello":number`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, `"hello":number`)
	if rerr == nil {
		t.Fatal("expected a RUNTIME_TYPE_ERROR, got nil")
	}
	if rerr.Code != "RUNTIME_TYPE_ERROR" {
		t.Fatalf("Code = %q, want RUNTIME_TYPE_ERROR", rerr.Code)
	}
}

func TestExecuteUndefinedVariable(t *testing.T) {
	script, err := Parse("$nope")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, "$nope")
	if rerr == nil || rerr.Code != "RUNTIME_UNDEFINED_VARIABLE" {
		t.Fatalf("rerr = %v, want RUNTIME_UNDEFINED_VARIABLE", rerr)
	}
}

func TestExecuteHostFunctionAndNamespacing(t *testing.T) {
	shout := host.FunctionDefinition{
		Namespace:   "text",
		Name:        "shout",
		Description: "Uppercases and adds an exclamation mark.",
		Params:      []value.Param{{Name: "s", TypeName: "string"}},
		ReturnType:  "string",
		Fn: func(args []value.Value, _ any, _ any) (value.Value, error) {
			s := args[0].(value.String).Val
			return value.String{Val: strings.ToUpper(s) + "!"}, nil
		},
	}
	result := run(t, `text::shout("hi")`, WithFunctions(shout))
	s, ok := result.(value.String)
	if !ok || s.Val != "HI!" {
		t.Fatalf("result = %#v, want String(HI!)", result)
	}
}

func TestExecuteRequireDescriptionsRejectsBlank(t *testing.T) {
	fn := host.FunctionDefinition{
		Name: "noop",
		Fn:   func(args []value.Value, _ any, _ any) (value.Value, error) { return value.NullValue, nil },
	}
	_, err := CreateRuntimeContext(WithFunctions(fn), WithRequireDescriptions(true))
	if err == nil {
		t.Fatal("expected an error for a missing description")
	}
}

func TestExecuteAutoException(t *testing.T) {
	script, err := Parse(`"error: disk full"`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext(WithAutoExceptions(`^error:`))
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, `"error: disk full"`)
	if rerr == nil || rerr.Code != "RUNTIME_AUTO_EXCEPTION" {
		t.Fatalf("rerr = %v, want RUNTIME_AUTO_EXCEPTION", rerr)
	}
}

func TestExecuteAbortStopsLoop(t *testing.T) {
	source := "(true) @ (1)"
	script, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext()
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	ctx.Abort()
	_, rerr := Execute(ctx, script, source)
	if rerr == nil || rerr.Code != "RUNTIME_ABORTED" {
		t.Fatalf("rerr = %v, want RUNTIME_ABORTED", rerr)
	}
}

func TestParseWithRecoverySurfacesAllErrors(t *testing.T) {
	result := ParseWithRecovery("5 -> ->\n3 -> ->\n")
	if result.Success {
		t.Fatal("expected parse failure")
	}
	snaps.MatchSnapshot(t, "recovery_error_count", len(result.Errors))
}

func TestDiagnosticFormatSnapshot(t *testing.T) {
	script, err := Parse("$missing")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	ctx, cerr := CreateRuntimeContext(WithFile("example.rill"))
	if cerr != nil {
		t.Fatalf("CreateRuntimeContext error: %v", cerr)
	}
	_, rerr := Execute(ctx, script, "$missing")
	if rerr == nil {
		t.Fatal("expected an error")
	}
	snaps.MatchSnapshot(t, "undefined_variable_diagnostic", rerr.Format())
}
