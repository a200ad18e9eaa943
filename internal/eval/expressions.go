package eval

import (
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// evalStatement runs one top-level (or block-level) statement: pushing its
// annotation frame, if any, for the duration of evaluating its expression.
func (e *Evaluator) evalStatement(stmt ast.Statement, scope *runtime.Scope) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if s.Annotation != nil {
			frame, err := e.evalAnnotation(s.Annotation, scope)
			if err != nil {
				return nil, err
			}
			scope.PushAnnotations(frame)
			defer scope.PopAnnotations()
		}
		return e.evalExpression(s.Expr, scope)
	case *ast.ErrorNode:
		return nil, diag.NewInvalidSyntax(e.loc(s.Span()), s.Message)
	default:
		return nil, diag.NewInvalidSyntax(e.loc(stmt.Span()), "unsupported statement")
	}
}

func (e *Evaluator) evalAnnotation(ann *ast.Annotation, scope *runtime.Scope) (map[string]value.Value, error) {
	frame := make(map[string]value.Value, len(ann.Entries))
	for _, entry := range ann.Entries {
		v, err := e.evalExpression(entry.Value, scope)
		if err != nil {
			return nil, err
		}
		frame[entry.Key] = v
	}
	return frame, nil
}

// evalExpression is the general expression dispatcher, recursively used
// throughout the evaluator.
func (e *Evaluator) evalExpression(expr ast.Expression, scope *runtime.Scope) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.StringLiteral:
		return value.String{Val: n.Value}, nil
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(n, scope)
	case *ast.HeredocLiteral:
		return value.String{Val: n.Value}, nil
	case *ast.NumberLiteral:
		return value.Number{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return value.Bool{Val: n.Value}, nil
	case *ast.NilLiteral:
		return value.NullValue, nil
	case *ast.ListLiteral:
		return e.evalListLiteral(n, scope)
	case *ast.DictLiteral:
		return e.evalDictLiteral(n, scope)
	case *ast.TupleLiteral:
		return e.evalTupleLiteral(n, scope)
	case *ast.Identifier:
		return value.String{Val: n.Value}, nil
	case *ast.Variable:
		return e.evalVariable(n, scope)
	case *ast.AccessChain:
		base, err := e.evalExpression(n.Base, scope)
		if err != nil {
			return nil, err
		}
		return e.applyAccessChain(base, n.Chain, scope, n.Span())
	case *ast.PipeChain:
		return e.evalPipeChain(n, scope)
	case *ast.CallExpression:
		return e.evalPipeTarget(n.Target, scope, scope)
	case *ast.ClosureLiteral:
		return e.evalClosureLiteral(n, scope)
	case *ast.ConditionalExpr:
		return e.evalConditional(n, scope)
	case *ast.WhileLoop:
		return e.evalWhileLoop(n, scope)
	case *ast.DoWhileLoop:
		return e.evalDoWhileLoop(n, scope)
	case *ast.Block:
		return e.evalBlock(n, scope)
	case *ast.GroupedExpr:
		return e.evalGroupedExpr(n, scope)
	case *ast.AssertExpr:
		return e.evalAssertExpr(n, scope)
	case *ast.ErrorExpr:
		return e.evalErrorExpr(n, scope)
	case *ast.BinaryExpression:
		return e.evalBinary(n, scope)
	case *ast.UnaryExpression:
		return e.evalUnary(n, scope)
	case *ast.EachExpr:
		return e.evalEach(n, scope)
	case *ast.MapExpr:
		return e.evalMap(n, scope)
	case *ast.FoldExpr:
		return e.evalFold(n, scope)
	case *ast.FilterExpr:
		return e.evalFilter(n, scope)
	case *ast.DestructureExpr:
		return e.evalDestructure(n, scope, scope)
	case *ast.SliceExpr:
		return e.evalSlice(n, scope)
	case *ast.SpreadExpr:
		return e.evalSpread(n, scope)
	case *ast.TypeAssertion:
		return e.evalTypeAssertion(n, scope)
	case *ast.TypeCheck:
		return e.evalTypeCheck(n, scope)
	case *ast.ErrorNode:
		return nil, diag.NewInvalidSyntax(e.loc(n.Span()), n.Message)
	default:
		return nil, diag.NewInvalidSyntax(e.loc(expr.Span()), "unsupported expression")
	}
}

func (e *Evaluator) evalInterpolatedString(n *ast.InterpolatedString, scope *runtime.Scope) (value.Value, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		if !part.IsExpr {
			sb.WriteString(part.Text)
			continue
		}
		v, err := e.evalExpression(part.Expr, scope)
		if err != nil {
			return nil, err
		}
		sb.WriteString(v.String())
	}
	return value.String{Val: sb.String()}, nil
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral, scope *runtime.Scope) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := e.evalExpression(el, scope)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &value.List{Items: items}, nil
}

func (e *Evaluator) evalDictLiteral(n *ast.DictLiteral, scope *runtime.Scope) (value.Value, error) {
	m := make(map[string]value.Value, len(n.Entries))
	for _, entry := range n.Entries {
		v, err := e.evalExpression(entry.Value, scope)
		if err != nil {
			return nil, err
		}
		m[entry.Key] = v
	}
	return value.NewDict(m), nil
}

func (e *Evaluator) evalTupleLiteral(n *ast.TupleLiteral, scope *runtime.Scope) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := e.evalExpression(el, scope)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return value.NewPositionalTuple(items), nil
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpression, scope *runtime.Scope) (value.Value, error) {
	left, err := e.evalExpression(n.Left, scope)
	if err != nil {
		return nil, err
	}
	if n.Operator == "&&" {
		if !value.Truthy(left) {
			return value.Bool{Val: false}, nil
		}
		right, err := e.evalExpression(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: value.Truthy(right)}, nil
	}
	if n.Operator == "||" {
		if value.Truthy(left) {
			return value.Bool{Val: true}, nil
		}
		right, err := e.evalExpression(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: value.Truthy(right)}, nil
	}

	right, err := e.evalExpression(n.Right, scope)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return value.Bool{Val: value.DeepEquals(left, right)}, nil
	case "!=":
		return value.Bool{Val: !value.DeepEquals(left, right)}, nil
	}

	lnum, lok := left.(value.Number)
	rnum, rok := right.(value.Number)
	if n.Operator == "+" {
		if lstr, ok := left.(value.String); ok {
			if rstr, ok := right.(value.String); ok {
				return value.String{Val: lstr.Val + rstr.Val}, nil
			}
			return value.String{Val: lstr.Val + right.String()}, nil
		}
		if llist, ok := left.(*value.List); ok {
			if rlist, ok := right.(*value.List); ok {
				items := make([]value.Value, 0, len(llist.Items)+len(rlist.Items))
				items = append(items, llist.Items...)
				items = append(items, rlist.Items...)
				return &value.List{Items: items}, nil
			}
		}
	}
	if !lok || !rok {
		return nil, diag.NewTypeError(e.loc(n.Span()), "operator "+n.Operator+" requires numeric operands")
	}
	switch n.Operator {
	case "+":
		return value.Number{Val: lnum.Val + rnum.Val}, nil
	case "-":
		return value.Number{Val: lnum.Val - rnum.Val}, nil
	case "*":
		return value.Number{Val: lnum.Val * rnum.Val}, nil
	case "/":
		if rnum.Val == 0 {
			return nil, diag.NewTypeError(e.loc(n.Span()), "division by zero")
		}
		return value.Number{Val: lnum.Val / rnum.Val}, nil
	case "%":
		if rnum.Val == 0 {
			return nil, diag.NewTypeError(e.loc(n.Span()), "modulo by zero")
		}
		return value.Number{Val: float64(int64(lnum.Val) % int64(rnum.Val))}, nil
	case "<":
		return value.Bool{Val: lnum.Val < rnum.Val}, nil
	case ">":
		return value.Bool{Val: lnum.Val > rnum.Val}, nil
	case "<=":
		return value.Bool{Val: lnum.Val <= rnum.Val}, nil
	case ">=":
		return value.Bool{Val: lnum.Val >= rnum.Val}, nil
	}
	return nil, diag.NewInvalidSyntax(e.loc(n.Span()), "unknown operator "+n.Operator)
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpression, scope *runtime.Scope) (value.Value, error) {
	v, err := e.evalExpression(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		num, ok := v.(value.Number)
		if !ok {
			return nil, diag.NewTypeError(e.loc(n.Span()), "unary - requires a numeric operand")
		}
		return value.Number{Val: -num.Val}, nil
	case "!":
		return value.Bool{Val: !value.Truthy(v)}, nil
	}
	return nil, diag.NewInvalidSyntax(e.loc(n.Span()), "unknown unary operator "+n.Operator)
}
