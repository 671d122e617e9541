package validator

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/ir"
)

// evalSubquery validates a nested EXISTS/scalar/list subquery (§3's
// Subquery expr variant). It gets its own scope, a child of the
// enclosing scope so correlated references to outer bindings resolve,
// but its own bindings never leak back out (mirrors the composite-query
// isolation rule in §4.4, just one level deeper).
func (c *context) evalSubquery(n *ast.Subquery, outer ir.ScopeID) ir.Type {
	q, ok := n.Query.(*ast.Query)
	if !ok {
		return ir.Basic(ir.Any)
	}

	inner := c.scopes.NewScope(outer)
	c.rootScopes[q] = inner
	c.validateQuery(q, inner)

	switch n.Kind {
	case ast.SubqueryExists:
		return ir.Basic(ir.Boolean)
	case ast.SubqueryList:
		return ir.ListOf(c.subqueryRowType(q, inner))
	default: // SubqueryScalar
		return c.subqueryRowType(q, inner)
	}
}

// subqueryRowType derives the result type of a subquery's single output
// column from its trailing RETURN/SELECT clause, falling back to Any
// when the body has none (e.g. it ends in a mutation action or nothing
// recognizable survived recovery).
func (c *context) subqueryRowType(q *ast.Query, scope ir.ScopeID) ir.Type {
	for i := len(q.Clauses) - 1; i >= 0; i-- {
		switch cl := q.Clauses[i].(type) {
		case *ast.ReturnClause:
			return c.projectionRowType(cl.Items)
		case *ast.SelectClause:
			return c.projectionRowType(cl.Items)
		}
	}

	return ir.Basic(ir.Any)
}

func (c *context) projectionRowType(items []ast.ProjectionItem) ir.Type {
	if len(items) == 1 && !items[0].Star {
		return c.types.Get(int(exprID(items[0].Value)))
	}

	fields := make([]ir.RecordField, 0, len(items))

	for _, it := range items {
		if it.Star {
			continue
		}

		name := exprLabel(it)
		fields = append(fields, ir.RecordField{Name: name, Type: c.types.Get(int(exprID(it.Value)))})
	}

	return ir.RecordOf(fields...)
}

// exprID extracts the ExprID assigned to e by evalExpr, or 0 if e is nil
// or an unrecognized node kind (in which case TypeTable.Get(0) harmlessly
// returns Any — 0 is never assigned by assignID, which starts at 1).
func exprID(e ast.Expr) ast.ExprID {
	switch n := e.(type) {
	case *ast.Literal:
		return n.ID
	case *ast.VarRef:
		return n.ID
	case *ast.Parameter:
		return n.ID
	case *ast.PropertyAccess:
		return n.ID
	case *ast.Unary:
		return n.ID
	case *ast.Binary:
		return n.ID
	case *ast.Call:
		return n.ID
	case *ast.CaseExpr:
		return n.ID
	case *ast.Cast:
		return n.ID
	case *ast.ListLit:
		return n.ID
	case *ast.MapLit:
		return n.ID
	case *ast.RecordLit:
		return n.ID
	case *ast.Index:
		return n.ID
	case *ast.Subquery:
		return n.ID
	default:
		return 0
	}
}

func exprLabel(it ast.ProjectionItem) string {
	if it.Alias != nil {
		return it.Alias.Name
	}

	if v, ok := it.Value.(*ast.VarRef); ok {
		return v.Name
	}

	if p, ok := it.Value.(*ast.PropertyAccess); ok {
		return p.Property
	}

	return ""
}
