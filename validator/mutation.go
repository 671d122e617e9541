package validator

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/ir"
)

// validateMutation runs the scope/resolve/type passes over a mutation
// statement's leading MATCH (if any) and WHERE/FILTER, then §4.5 pass
// 7's mutation-specific checks over each modifying action.
func (c *context) validateMutation(m *ast.Mutation, scope ir.ScopeID) {
	if m.UseGraph != nil {
		c.evalExpr(m.UseGraph, scope, nil)
	}

	var patternInfos []*ir.PatternInfo

	if m.Match != nil {
		c.declarePatternList(m.Match.Patterns, scope)
		patternInfos = append(patternInfos, c.validatePattern(m.Match.Patterns, scope))
	}

	if m.Filter != nil {
		c.evalExpr(m.Filter.Cond, scope, nil)
	}

	for _, action := range m.Actions {
		c.validateMutationAction(action, scope)
	}

	c.queryInfos = append(c.queryInfos, &ir.QueryInfo{
		Scope:             scope,
		Patterns:          patternInfos,
		GraphPatternCount: len(patternInfos),
		Dependencies:      ir.NewVariableDependencyGraph(),
	})
}

func (c *context) validateMutationAction(action ast.MutationAction, scope ir.ScopeID) {
	switch a := action.(type) {
	case *ast.SetAction:
		for _, item := range a.Items {
			c.requireElementBase(item.Target, scope, "sema.set-requires-element", "SET target")
			c.evalExpr(item.Target, scope, nil)
			c.evalExpr(item.Value, scope, nil)
		}

	case *ast.RemoveAction:
		for _, target := range a.Targets {
			c.requireElementBase(target, scope, "sema.set-requires-element", "REMOVE target")
			c.evalExpr(target, scope, nil)
		}

	case *ast.DeleteAction:
		for _, target := range a.Targets {
			typ := c.evalExpr(target, scope, nil)

			if _, isProp := target.(*ast.PropertyAccess); isProp {
				c.error("sema.delete-non-element", "DELETE operand must be a node, edge, or path, not a property", target.Span())
				continue
			}

			if !typ.IsAny() && !typ.IsNodeType() && !typ.IsEdgeType() && !typ.IsPathType() {
				c.error("sema.delete-non-element", "DELETE operand must resolve to a node, edge, or path", target.Span())
			}
		}

	case *ast.InsertAction:
		c.checkInsertPattern(a.Patterns)
		c.declarePatternList(a.Patterns, scope)
	}
}

// requireElementBase implements §4.5 pass 7's "SET of a property
// requires the base to be Node/Edge" rule, and its REMOVE analogue.
func (c *context) requireElementBase(target *ast.PropertyAccess, scope ir.ScopeID, code, what string) {
	if target == nil {
		return
	}

	ref, ok := target.Base.(*ast.VarRef)
	if !ok {
		return
	}

	b, ok := c.scopes.Lookup(scope, ref.Name)
	if !ok {
		return // already reported as undefined-variable by evalExpr
	}

	if b.Kind != ir.BindNode && b.Kind != ir.BindEdge {
		c.error(code, what+" "+ref.Name+" must be a node or edge", target.Span())
	}
}

// checkInsertPattern implements §4.5 pass 7's "INSERT patterns may not
// use empty property maps {} inside an element filler" rule.
func (c *context) checkInsertPattern(pl *ast.PatternList) {
	if pl == nil {
		return
	}

	for _, factor := range pl.Factors {
		for _, np := range factor.Nodes {
			if np.Props != nil && len(np.Props.Entries) == 0 {
				c.error("parse.empty-property-map", "INSERT element filler may not be an empty property map", np.Props.Span())
			}
		}

		for _, ep := range factor.Edges {
			if ep.Props != nil && len(ep.Props.Entries) == 0 {
				c.error("parse.empty-property-map", "INSERT element filler may not be an empty property map", ep.Props.Span())
			}
		}
	}
}
