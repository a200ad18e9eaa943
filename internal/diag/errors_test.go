package diag

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/lexer"
)

func TestErrorWithoutLocation(t *testing.T) {
	e := NewUndefinedVariable(nil, "foo")
	if e.Code != CodeUndefinedVariable {
		t.Fatalf("Code = %q, want %q", e.Code, CodeUndefinedVariable)
	}
	if !strings.Contains(e.Error(), "foo") {
		t.Fatalf("Error() = %q, missing variable name", e.Error())
	}
	if e.Format() != "[RUNTIME_UNDEFINED_VARIABLE] "+e.Message {
		t.Fatalf("Format() = %q", e.Format())
	}
}

func TestErrorContextPopulated(t *testing.T) {
	e := NewTimeout(nil, "slowFn", 5000)
	if e.Context["functionName"] != "slowFn" {
		t.Fatalf("Context[functionName] = %v", e.Context["functionName"])
	}
	if e.Context["timeoutMs"] != 5000 {
		t.Fatalf("Context[timeoutMs] = %v", e.Context["timeoutMs"])
	}
}

func TestFormatWithLocationRendersCaret(t *testing.T) {
	src := "let x = 1\nbad syntax here\n"
	loc := &Location{Source: src, File: "test.rill", Pos: lexer.Position{Line: 2, Column: 5, Offset: 15}}
	e := NewInvalidSyntax(loc, "unexpected token")

	out := e.Format()
	if !strings.Contains(out, "test.rill:2:5") {
		t.Fatalf("Format() missing location: %q", out)
	}
	if !strings.Contains(out, "bad syntax here") {
		t.Fatalf("Format() missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("Format() missing caret: %q", out)
	}
}

func TestFormatErrorsNumbersEachEntry(t *testing.T) {
	errs := []*Error{
		NewUndefinedVariable(nil, "a"),
		NewUndefinedFunction(nil, "b"),
	}
	out := FormatErrors(errs)
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("FormatErrors output missing numbering: %q", out)
	}
}

func TestDataIncludesLocationAndContext(t *testing.T) {
	loc := &Location{Pos: lexer.Position{Line: 3, Column: 7}}
	e := NewPropertyNotFound(loc, "missing")
	data := e.Data()
	if data["line"] != 3 || data["column"] != 7 {
		t.Fatalf("Data() location fields wrong: %+v", data)
	}
	if data["key"] != "missing" {
		t.Fatalf("Data()[key] = %v, want missing", data["key"])
	}
}

func TestWithContextChains(t *testing.T) {
	e := New("X", "msg", nil).WithContext("a", 1).WithContext("b", 2)
	if e.Context["a"] != 1 || e.Context["b"] != 2 {
		t.Fatalf("WithContext chaining failed: %+v", e.Context)
	}
}
