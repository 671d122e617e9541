package validator

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/ir"
)

// validatePattern implements §4.5 pass 3: quantifier bound checking and
// the PatternInfo connectivity analysis ("Pattern connectivity... is
// computed but disconnectedness is only a warning — ISO permits
// disconnected patterns").
func (c *context) validatePattern(pl *ast.PatternList, scope ir.ScopeID) *ir.PatternInfo {
	if pl == nil {
		return &ir.PatternInfo{IsFullyConnected: true}
	}

	for _, factor := range pl.Factors {
		for _, ep := range factor.Edges {
			c.checkQuantifier(ep.Quantifier)
		}
	}

	uf := newUnionFind()
	bound := make([]string, 0)

	for i, factor := range pl.Factors {
		uf.add(i)

		names := factorBoundNames(factor)
		bound = append(bound, names...)

		for _, name := range names {
			if j, ok := firstFactorWithName(pl.Factors[:i], name); ok {
				uf.union(i, j)
			}
		}
	}

	components := uf.componentCount(len(pl.Factors))
	info := &ir.PatternInfo{
		Pattern:          pl,
		ComponentCount:   components,
		IsFullyConnected: components <= 1,
		BoundNames:       bound,
	}

	if !info.IsFullyConnected {
		c.warn("sema.disconnected-pattern", "pattern is not fully connected", pl.Span())
	}

	return info
}

// checkQuantifier enforces §4.5 pass 3's "quantifier bounds m <= n".
func (c *context) checkQuantifier(q *ast.Quantifier) {
	if q == nil {
		return
	}

	if q.Max != -1 && q.Min > q.Max {
		c.error("sema.type-mismatch", "quantifier lower bound exceeds upper bound", q.Span())
	}
}

func factorBoundNames(f *ast.PathFactor) []string {
	var names []string

	for _, np := range f.Nodes {
		if np.Binding != nil {
			names = append(names, np.Binding.Name)
		}
	}

	for _, ep := range f.Edges {
		if ep.Binding != nil {
			names = append(names, ep.Binding.Name)
		}
	}

	return names
}

func firstFactorWithName(factors []*ast.PathFactor, name string) (int, bool) {
	for i, f := range factors {
		for _, n := range factorBoundNames(f) {
			if n == name {
				return i, true
			}
		}
	}

	return 0, false
}

// unionFind is a minimal disjoint-set structure for the pattern
// connectivity analysis; factors that share a bound name end up in the
// same component.
type unionFind struct {
	parent map[int]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[int]int)}
}

func (u *unionFind) add(x int) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
}

func (u *unionFind) find(x int) int {
	u.add(x)

	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}

	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (u *unionFind) componentCount(n int) int {
	roots := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		roots[u.find(i)] = true
	}

	return len(roots)
}
