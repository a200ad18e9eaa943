package eval

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/runtime"
	"github.com/rill-lang/rill/internal/value"
)

// defaultLoopLimit bounds while/do-while iterations absent a `limit`
// annotation, so a runaway condition fails loudly instead of hanging.
const defaultLoopLimit = 10000

func loopLimit(scope *runtime.Scope) int {
	if ann := scope.CurrentAnnotations(); ann != nil {
		if v, ok := ann["limit"]; ok {
			if n, ok := v.(value.Number); ok && n.Val > 0 {
				return int(n.Val)
			}
		}
	}
	return defaultLoopLimit
}

func (e *Evaluator) evalConditional(c *ast.ConditionalExpr, scope *runtime.Scope) (value.Value, error) {
	var cond value.Value
	if c.Cond != nil {
		v, err := e.evalExpression(c.Cond, scope)
		if err != nil {
			return nil, err
		}
		cond = v
	} else {
		cond = scope.PipeValue
	}
	b, ok := cond.(value.Bool)
	if !ok {
		return nil, diag.NewTypeError(e.loc(c.Span()), "conditional requires a bool, got "+string(value.Infer(cond)))
	}
	if b.Val {
		child := runtime.CreateChildContext(scope)
		child.PipeValue = cond
		return e.evalExpression(c.Then, child)
	}
	if c.Else == nil {
		return value.NullValue, nil
	}
	child := runtime.CreateChildContext(scope)
	child.PipeValue = cond
	return e.evalExpression(c.Else, child)
}

func (e *Evaluator) evalWhileLoop(w *ast.WhileLoop, scope *runtime.Scope) (value.Value, error) {
	limit := loopLimit(scope)
	var last value.Value = value.NullValue
	for i := 0; ; i++ {
		if scope.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(w.Span()))
		}
		if i >= limit {
			return nil, diag.NewLimitExceeded(e.loc(w.Span()), "while loop iterations", limit)
		}
		condScope := runtime.CreateChildContext(scope)
		condScope.PipeValue = last
		cond, err := e.evalExpression(w.Cond, condScope)
		if err != nil {
			return nil, err
		}
		condB, ok := cond.(value.Bool)
		if !ok {
			return nil, diag.NewTypeError(e.loc(w.Span()), "while condition requires a bool, got "+string(value.Infer(cond)))
		}
		if !condB.Val {
			return last, nil
		}
		bodyScope := runtime.CreateChildContext(scope)
		bodyScope.PipeValue = last
		v, err := e.evalExpression(w.Body, bodyScope)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				return bv, nil
			}
			return nil, err
		}
		last = v
	}
}

func (e *Evaluator) evalDoWhileLoop(d *ast.DoWhileLoop, scope *runtime.Scope) (value.Value, error) {
	limit := loopLimit(scope)
	var last value.Value = scope.PipeValue
	for i := 0; ; i++ {
		if scope.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(d.Span()))
		}
		if i >= limit {
			return nil, diag.NewLimitExceeded(e.loc(d.Span()), "do-while loop iterations", limit)
		}
		bodyScope := runtime.CreateChildContext(scope)
		bodyScope.PipeValue = last
		v, err := e.evalExpression(d.Body, bodyScope)
		if err != nil {
			if bv, ok := asBreak(err); ok {
				return bv, nil
			}
			return nil, err
		}
		last = v

		condScope := runtime.CreateChildContext(scope)
		condScope.PipeValue = last
		cond, err := e.evalExpression(d.Cond, condScope)
		if err != nil {
			return nil, err
		}
		condB, ok := cond.(value.Bool)
		if !ok {
			return nil, diag.NewTypeError(e.loc(d.Span()), "do-while condition requires a bool, got "+string(value.Infer(cond)))
		}
		if !condB.Val {
			return last, nil
		}
	}
}

// evalBlock runs each statement in its own fresh child scope, every one
// seeing the block's incoming pipe value rather than its left sibling's
// result — per spec.md, `$` inside a block always refers to what the block
// itself received. Captures still accumulate forward: each statement's
// scope is a child of the previous one (rooted at the block), so a `:>`
// capture in an earlier statement remains visible to a later one.
func (e *Evaluator) evalBlock(b *ast.Block, scope *runtime.Scope) (value.Value, error) {
	block := runtime.CreateChildContext(scope)
	incoming := block.PipeValue
	cur := block
	var last value.Value = incoming
	for _, stmt := range b.Statements {
		if cur.Cancel().Cancelled() {
			return nil, diag.NewAborted(e.loc(stmt.Span()))
		}
		stmtScope := runtime.CreateChildContext(cur)
		stmtScope.PipeValue = incoming
		v, err := e.evalStatement(stmt, stmtScope)
		if err != nil {
			if rv, ok := asReturn(err); ok {
				return rv, nil
			}
			return nil, err
		}
		last = v
		cur = stmtScope
	}
	return last, nil
}

func (e *Evaluator) evalGroupedExpr(g *ast.GroupedExpr, scope *runtime.Scope) (value.Value, error) {
	child := runtime.CreateChildContext(scope)
	return e.evalExpression(g.Inner, child)
}

func (e *Evaluator) evalAssertExpr(a *ast.AssertExpr, scope *runtime.Scope) (value.Value, error) {
	cond, err := e.evalExpression(a.Cond, scope)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(cond) {
		msg := ""
		if a.Message != nil {
			m, err := e.evalExpression(a.Message, scope)
			if err != nil {
				return nil, err
			}
			msg = m.String()
		}
		return nil, diag.NewAssertionFailed(e.loc(a.Span()), msg)
	}
	return cond, nil
}

func (e *Evaluator) evalErrorExpr(n *ast.ErrorExpr, scope *runtime.Scope) (value.Value, error) {
	m, err := e.evalExpression(n.Message, scope)
	if err != nil {
		return nil, err
	}
	return nil, diag.NewErrorRaised(e.loc(n.Span()), m.String())
}
