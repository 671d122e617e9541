package validator

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/ir"
)

// declare implements §4.5 pass 1's duplicate-binding rule: declaring the
// same name twice in one scope with *compatible* kinds (e.g. rebinding
// the same node variable across two MATCH patterns in the same query,
// which GQL allows as an implicit join) is fine; incompatible kinds are
// a sema.duplicate-binding error. Either way the scope ends up holding
// exactly one binding for the name.
func (c *context) declare(scope ir.ScopeID, b ir.Binding) {
	existing, ok := c.scopes.LookupLocal(scope, b.Name)
	if !ok {
		c.scopes.Declare(scope, b)
		return
	}

	if existing.Kind != b.Kind {
		c.errorLabeled("sema.duplicate-binding",
			b.Name+" is already bound to a different kind in this scope",
			b.DeclaredAt, existing.DeclaredAt, "first bound here")
	}
}

// validateQuery runs the full per-statement pipeline (§4.5 passes 1-7)
// over a linear query body sharing one rolling scope, then records a
// QueryInfo for it (§4.4).
func (c *context) validateQuery(q *ast.Query, scope ir.ScopeID) {
	if q.UseGraph != nil {
		c.evalExpr(q.UseGraph, scope, nil)
	}

	var (
		clauseInfos   []ir.ClauseInfo
		patternLists  []*ast.PatternList
		patternInfos  []*ir.PatternInfo
		deps          = ir.NewVariableDependencyGraph()
		graphPatterns int
	)

	for _, clause := range q.Clauses {
		defines, uses := c.processClause(clause, scope)

		for _, d := range defines {
			deps.AddEdge(d, uses)
		}

		clauseInfos = append(clauseInfos, ir.ClauseInfo{Clause: clause, Defines: defines, Uses: uses})

		switch cl := clause.(type) {
		case *ast.MatchClause:
			graphPatterns++
			patternLists = append(patternLists, cl.Patterns)
			patternInfos = append(patternInfos, c.validatePattern(cl.Patterns, scope))
		}
	}

	c.checkAggregation(q)

	if len(patternLists) > 1 {
		// Disconnectedness is evaluated per-MATCH (§4.5 pass 3); a
		// multi-MATCH query additionally never "joins" patterns across
		// separate MATCH clauses at this layer, so no extra check here
		// beyond what validatePattern already emitted per clause.
		_ = patternLists
	}

	c.queryInfos = append(c.queryInfos, &ir.QueryInfo{
		Query:             q,
		Scope:             scope,
		Clauses:           clauseInfos,
		Patterns:          patternInfos,
		GraphPatternCount: graphPatterns,
		Dependencies:      deps,
	})
}

// processClause declares any bindings clause introduces into scope, then
// evaluates its expressions for resolution/typing, returning the names
// it defines and the names it reads — the building blocks of both
// ClauseInfo and the VariableDependencyGraph (§4.4).
func (c *context) processClause(clause ast.Clause, scope ir.ScopeID) (defines, uses []string) {
	switch cl := clause.(type) {
	case *ast.MatchClause:
		defines = c.declarePatternList(cl.Patterns, scope)
		return defines, nil

	case *ast.FilterClause:
		c.evalExpr(cl.Cond, scope, &uses)
		return nil, uses

	case *ast.LetClause:
		for _, b := range cl.Bindings {
			var u []string

			typ := c.evalExpr(b.Value, scope, &u)
			c.declare(scope, ir.Binding{Name: b.Name.Name, Kind: ir.BindValue, DeclaredAt: b.Name.Span()})
			c.scopes.SetType(scope, b.Name.Name, typ)
			defines = append(defines, b.Name.Name)
			uses = append(uses, u...)
		}

		return defines, uses

	case *ast.ForClause:
		srcType := c.evalExpr(cl.Source, scope, &uses)
		elemType := ir.Basic(ir.Any)

		if srcType.Kind == ir.List && srcType.Elem != nil {
			elemType = *srcType.Elem
		}

		c.declare(scope, ir.Binding{Name: cl.Binding.Name, Kind: ir.BindValue, DeclaredAt: cl.Binding.Span()})
		c.scopes.SetType(scope, cl.Binding.Name, elemType)

		return []string{cl.Binding.Name}, uses

	case *ast.OrderByClause:
		for _, item := range cl.Items {
			c.evalExpr(item.Value, scope, &uses)
		}

		return nil, uses

	case *ast.OffsetClause:
		c.evalExpr(cl.Value, scope, &uses)
		return nil, uses

	case *ast.LimitClause:
		c.evalExpr(cl.Value, scope, &uses)
		return nil, uses

	case *ast.GroupByClause:
		for _, item := range cl.Items {
			c.evalExpr(item, scope, &uses)
		}

		return nil, uses

	case *ast.HavingClause:
		c.evalExpr(cl.Cond, scope, &uses)
		return nil, uses

	case *ast.ReturnClause:
		return c.processProjection(cl.Items, scope)

	case *ast.SelectClause:
		return c.processProjection(cl.Items, scope)

	case *ast.CallClause:
		c.checkCallClause(cl, scope, &uses)

		for _, y := range cl.Yield {
			if y.Alias != nil {
				defines = append(defines, y.Alias.Name)
			} else {
				defines = append(defines, y.Name.Name)
			}
		}

		return defines, uses

	default:
		return nil, nil
	}
}

func (c *context) processProjection(items []ast.ProjectionItem, scope ir.ScopeID) (defines, uses []string) {
	for _, item := range items {
		if item.Star {
			continue
		}

		typ := c.evalExpr(item.Value, scope, &uses)

		if item.Alias != nil {
			c.declare(scope, ir.Binding{Name: item.Alias.Name, Kind: ir.BindValue, DeclaredAt: item.Alias.Span()})
			c.scopes.SetType(scope, item.Alias.Name, typ)
			defines = append(defines, item.Alias.Name)
		}
	}

	return defines, uses
}

// declarePatternList walks every node/edge pattern in pl, declaring a
// binding for each named (non-anonymous) element (§3: "unbound elements
// are anonymous and do not enter the scope"). Returns the declared
// names, for ClauseInfo/dependency-graph bookkeeping.
func (c *context) declarePatternList(pl *ast.PatternList, scope ir.ScopeID) []string {
	if pl == nil {
		return nil
	}

	var defines []string

	for _, factor := range pl.Factors {
		for _, np := range factor.Nodes {
			c.evalLabelExpr(np.Labels)
			c.checkLabels(np.Labels, true, np.Span())

			if np.Props != nil {
				var u []string
				c.evalExpr(np.Props, scope, &u)
			}

			if np.Binding != nil {
				typ := ir.NodeType(labelNames(np.Labels)...)
				c.declare(scope, ir.Binding{Name: np.Binding.Name, Kind: ir.BindNode, DeclaredAt: np.Binding.Span(), Type: &typ})
				defines = append(defines, np.Binding.Name)
			}
		}

		for _, ep := range factor.Edges {
			c.evalLabelExpr(ep.Labels)
			c.checkLabels(ep.Labels, false, ep.Span())

			if ep.Props != nil {
				var u []string
				c.evalExpr(ep.Props, scope, &u)
			}

			if ep.Binding != nil {
				typ := ir.EdgeType(labelNames(ep.Labels)...)
				c.declare(scope, ir.Binding{Name: ep.Binding.Name, Kind: ir.BindEdge, DeclaredAt: ep.Binding.Span(), Type: &typ})
				defines = append(defines, ep.Binding.Name)
			}
		}
	}

	return defines
}

// evalLabelExpr recurses through a label expression purely to keep the
// walk total (label leaves carry no sub-expressions to evaluate).
func (c *context) evalLabelExpr(le ast.LabelExpr) {
	switch l := le.(type) {
	case *ast.LabelAnd:
		c.evalLabelExpr(l.Left)
		c.evalLabelExpr(l.Right)
	case *ast.LabelOr:
		c.evalLabelExpr(l.Left)
		c.evalLabelExpr(l.Right)
	case *ast.LabelNot:
		c.evalLabelExpr(l.Operand)
	}
}
