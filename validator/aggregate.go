package validator

import (
	"fmt"

	"github.com/iso-gql/gqlfront/ast"
)

// checkAggregation implements §4.5 pass 5's aggregation/grouping rules:
// aggregates are forbidden in WHERE/FILTER, nesting one aggregate inside
// another is an error, and a RETURN/SELECT/HAVING list that mixes
// aggregated and non-aggregated expressions requires every
// non-aggregated one to also appear in GROUP BY.
func (c *context) checkAggregation(q *ast.Query) {
	var groupKeys map[string]bool
	hasGroupBy := false

	for _, clause := range q.Clauses {
		if gb, ok := clause.(*ast.GroupByClause); ok {
			hasGroupBy = true
			groupKeys = make(map[string]bool, len(gb.Items))
			for _, item := range gb.Items {
				groupKeys[exprKey(item)] = true
			}
		}
	}

	for _, clause := range q.Clauses {
		switch cl := clause.(type) {
		case *ast.FilterClause:
			forbidAggregate(c, cl.Cond)
		case *ast.ReturnClause:
			c.checkProjectionAggregation(cl.Items, groupKeys, hasGroupBy)
		case *ast.SelectClause:
			c.checkProjectionAggregation(cl.Items, groupKeys, hasGroupBy)
		case *ast.HavingClause:
			checkNestedAggregate(c, cl.Cond)
			checkNonAggregatedAgainstGroup(c, cl.Cond, groupKeys)
		}
	}
}

// checkProjectionAggregation implements §4.5 pass 5's RETURN/SELECT
// rule. Mixing an aggregated and a non-aggregated item with no GROUP BY
// clause at all is `sema.mixed-aggregation` (scenario 5 in §8); mixing
// with a GROUP BY clause present that simply omits the non-aggregated
// item is the narrower `sema.group-by-required`.
func (c *context) checkProjectionAggregation(items []ast.ProjectionItem, groupKeys map[string]bool, hasGroupBy bool) {
	anyAggregate := false

	for _, item := range items {
		if !item.Star && hasAggregate(item.Value) {
			anyAggregate = true
		}
	}

	for _, item := range items {
		if item.Star {
			continue
		}

		checkNestedAggregate(c, item.Value)

		if anyAggregate && !hasAggregate(item.Value) {
			if !hasGroupBy {
				c.error("sema.mixed-aggregation", "aggregated and non-aggregated expressions may not be mixed without GROUP BY", item.Value.Span())
			} else if !groupKeys[exprKey(item.Value)] {
				c.error("sema.group-by-required", "non-aggregated expression must appear in GROUP BY", item.Value.Span())
			}
		}
	}
}

func checkNonAggregatedAgainstGroup(c *context, e ast.Expr, groupKeys map[string]bool) {
	if e == nil || hasAggregate(e) {
		return
	}

	switch n := e.(type) {
	case *ast.Binary:
		checkNonAggregatedAgainstGroup(c, n.Left, groupKeys)
		checkNonAggregatedAgainstGroup(c, n.Right, groupKeys)
	case *ast.Unary:
		checkNonAggregatedAgainstGroup(c, n.Operand, groupKeys)
	case *ast.VarRef, *ast.PropertyAccess:
		if groupKeys == nil || !groupKeys[exprKey(e)] {
			c.error("sema.group-by-required", "non-aggregated expression in HAVING must appear in GROUP BY", e.Span())
		}
	}
}

func forbidAggregate(c *context, e ast.Expr) {
	if e == nil {
		return
	}

	if call, ok := e.(*ast.Call); ok && call.IsAggregate {
		c.error("sema.aggregate-in-where", "aggregate function not allowed in WHERE/FILTER", e.Span())
		return
	}

	walkSubexprs(e, func(sub ast.Expr) { forbidAggregate(c, sub) })
}

func checkNestedAggregate(c *context, e ast.Expr) {
	if e == nil {
		return
	}

	if call, ok := e.(*ast.Call); ok && call.IsAggregate {
		for _, arg := range call.Args {
			if containsAggregate(arg) {
				c.error("sema.nested-aggregate", "aggregate functions may not be nested", arg.Span())
			}
		}
	}

	walkSubexprs(e, func(sub ast.Expr) { checkNestedAggregate(c, sub) })
}

func hasAggregate(e ast.Expr) bool {
	return containsAggregate(e)
}

func containsAggregate(e ast.Expr) bool {
	if e == nil {
		return false
	}

	if call, ok := e.(*ast.Call); ok && call.IsAggregate {
		return true
	}

	found := false
	walkSubexprs(e, func(sub ast.Expr) {
		if containsAggregate(sub) {
			found = true
		}
	})

	return found
}

// walkSubexprs invokes visit on every direct child expression of e,
// without recursing itself — callers recurse by calling back into their
// own walk function, since different passes want different per-node
// behavior (stop early, accumulate, etc.) on top of the same shape.
func walkSubexprs(e ast.Expr, visit func(ast.Expr)) {
	switch n := e.(type) {
	case *ast.PropertyAccess:
		visit(n.Base)
	case *ast.Unary:
		visit(n.Operand)
	case *ast.Binary:
		visit(n.Left)
		visit(n.Right)
	case *ast.Call:
		for _, a := range n.Args {
			visit(a)
		}
	case *ast.CaseExpr:
		if n.Operand != nil {
			visit(n.Operand)
		}

		for _, w := range n.Whens {
			visit(w.Cond)
			visit(w.Result)
		}

		if n.Else != nil {
			visit(n.Else)
		}
	case *ast.Cast:
		visit(n.Operand)
	case *ast.ListLit:
		for _, el := range n.Elements {
			visit(el)
		}
	case *ast.MapLit:
		for _, ent := range n.Entries {
			visit(ent.Value)
		}
	case *ast.RecordLit:
		for _, ent := range n.Fields {
			visit(ent.Value)
		}
	case *ast.Index:
		visit(n.Base)
		visit(n.From)

		if n.To != nil {
			visit(n.To)
		}
	}
}

// exprKey renders a structural signature for e good enough to compare
// "is this RETURN item the same expression as this GROUP BY item" (§4.5
// pass 5) without a general expression-equality facility — the grammar
// being compared here is GROUP BY's own item list, which the parser
// produces as independently-parsed-but-textually-identical expressions.
func exprKey(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.VarRef:
		return "var:" + n.Name
	case *ast.Parameter:
		return "param:" + n.Name
	case *ast.PropertyAccess:
		return exprKey(n.Base) + "." + n.Property
	case *ast.Literal:
		return fmt.Sprintf("lit:%d:%s", n.Kind, n.Text)
	case *ast.Unary:
		return fmt.Sprintf("un:%d:%s", n.Op, exprKey(n.Operand))
	case *ast.Binary:
		return fmt.Sprintf("bin:%d:%s:%s", n.Op, exprKey(n.Left), exprKey(n.Right))
	case *ast.Call:
		key := "call:" + n.Name + "("
		for _, a := range n.Args {
			key += exprKey(a) + ","
		}

		return key + ")"
	default:
		return fmt.Sprintf("expr:%p", e)
	}
}
