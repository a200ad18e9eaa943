package parser

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func mustParse(t *testing.T, source string) *ast.ScriptNode {
	t.Helper()
	script, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	return script
}

func TestParseSimplePipeChain(t *testing.T) {
	script := mustParse(t, `"hello" -> trim -> upper`)
	if len(script.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(script.Statements))
	}
	stmt, ok := script.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ExpressionStatement", script.Statements[0])
	}
	pipe, ok := stmt.Expr.(*ast.PipeChain)
	if !ok {
		t.Fatalf("expr is %T, want *ast.PipeChain", stmt.Expr)
	}
	if len(pipe.Targets) != 2 {
		t.Fatalf("expected 2 pipe targets, got %d", len(pipe.Targets))
	}
}

func TestParseCaptureTarget(t *testing.T) {
	script := mustParse(t, `5 :> $x`)
	stmt := script.Statements[0].(*ast.ExpressionStatement)
	pipe := stmt.Expr.(*ast.PipeChain)
	if _, ok := pipe.Targets[0].(*ast.CaptureTarget); !ok {
		t.Fatalf("target is %T, want *ast.CaptureTarget", pipe.Targets[0])
	}
}

func TestParseConditional(t *testing.T) {
	script := mustParse(t, `true -> ? "yes" ! "no"`)
	stmt := script.Statements[0].(*ast.ExpressionStatement)
	pipe, ok := stmt.Expr.(*ast.PipeChain)
	if !ok {
		t.Fatalf("expr is %T, want *ast.PipeChain", stmt.Expr)
	}
	if _, ok := pipe.Targets[0].(*ast.ConditionalExpr); !ok {
		t.Fatalf("target is %T, want *ast.ConditionalExpr", pipe.Targets[0])
	}
}

func TestParseAnnotation(t *testing.T) {
	script := mustParse(t, "^(limit: 10)\n5 :> $x")
	stmt := script.Statements[0].(*ast.ExpressionStatement)
	if stmt.Annotation == nil {
		t.Fatal("expected annotation on statement")
	}
	if len(stmt.Annotation.Entries) != 1 || stmt.Annotation.Entries[0].Key != "limit" {
		t.Fatalf("unexpected annotation entries: %+v", stmt.Annotation.Entries)
	}
}

func TestParseErrorRecoveryCollectsMultipleErrors(t *testing.T) {
	result := ParseWithRecovery("5 -> ->\n3 -> ->\n")
	if result.Success {
		t.Fatal("expected parse failure")
	}
	if len(result.Errors) < 2 {
		t.Fatalf("expected at least 2 errors, got %d", len(result.Errors))
	}
}

func TestParseStrictModeReturnsFirstError(t *testing.T) {
	_, err := Parse("5 -> ->")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "UNEXPECTED_TOKEN") && !strings.Contains(err.Error(), "INVALID_SYNTAX") {
		t.Logf("error code: %v", err)
	}
}

func TestParseListLiteral(t *testing.T) {
	script := mustParse(t, `[1, 2, 3]`)
	stmt := script.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expr.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("expr is %T, want *ast.ListLiteral", stmt.Expr)
	}
	if len(lit.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(lit.Elements))
	}
}
