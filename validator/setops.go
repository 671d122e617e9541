package validator

import (
	"fmt"

	"github.com/iso-gql/gqlfront/ast"
)

// checkSetOperations implements §4.5 pass 8: every UNION/EXCEPT/
// INTERSECT's two branches must project the same column count with
// pairwise compatible types. Runs after every statement has been through
// passes 1-7 (so every projection expression already has a recorded
// type), over the whole program rather than per-statement since a
// CompositeQuery's Left/Right were validated independently in
// validateTopLevel's own recursion.
func (c *context) checkSetOperations(program *ast.Program) {
	for _, stmt := range program.Statements {
		c.checkSetOperationsIn(stmt)
	}
}

func (c *context) checkSetOperationsIn(stmt ast.Statement) {
	cq, ok := stmt.(*ast.CompositeQuery)
	if !ok {
		return
	}

	c.checkSetOperationsIn(cq.Left)
	c.checkSetOperationsIn(cq.Right)

	leftItems, leftOK := leafProjection(cq.Left)
	rightItems, rightOK := leafProjection(cq.Right)

	if !leftOK || !rightOK {
		return
	}

	if hasStar(leftItems) || hasStar(rightItems) {
		return
	}

	if len(leftItems) != len(rightItems) {
		c.error("sema.type-mismatch",
			fmt.Sprintf("set operation branches have different column counts (%d vs %d)", len(leftItems), len(rightItems)),
			cq.Span())

		return
	}

	for i := range leftItems {
		lt := c.types.Get(int(exprID(leftItems[i].Value)))
		rt := c.types.Get(int(exprID(rightItems[i].Value)))

		if !lt.IsCompatibleWith(rt) {
			c.error("sema.type-mismatch",
				fmt.Sprintf("set operation column %d has incompatible types %s and %s", i+1, lt.Name(), rt.Name()),
				cq.Span())
		}
	}
}

// leafProjection finds the RETURN/SELECT item list that determines
// stmt's output columns: directly for a Query, or (for a nested
// CompositeQuery chain) the left-most branch's, since by construction
// every branch in the chain was already checked pairwise against its
// neighbor.
func leafProjection(stmt ast.Statement) ([]ast.ProjectionItem, bool) {
	switch s := stmt.(type) {
	case *ast.Query:
		for i := len(s.Clauses) - 1; i >= 0; i-- {
			switch cl := s.Clauses[i].(type) {
			case *ast.ReturnClause:
				return cl.Items, true
			case *ast.SelectClause:
				return cl.Items, true
			}
		}

		return nil, false

	case *ast.CompositeQuery:
		return leafProjection(s.Left)

	default:
		return nil, false
	}
}

func hasStar(items []ast.ProjectionItem) bool {
	for _, it := range items {
		if it.Star {
			return true
		}
	}

	return false
}
