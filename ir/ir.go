package ir

import (
	"github.com/iso-gql/gqlfront/ast"
)

// IR is the validator's success output: the AST plus the derived scope
// tree, type table, and per-query analyses that tooling (a planner, an
// IDE) consumes without re-walking the AST itself (§3 "IR").
type IR struct {
	Program    *ast.Program
	Scopes     *ScopeTree
	Types      *TypeTable
	Queries    []*QueryInfo
	RootScopes map[ast.Statement]ScopeID
}

// QueryInfo is a derived, per-query analysis view: the clause sequence
// annotated with def/use sets, plus pattern/dependency analyses (§3
// "QueryInfo / PatternInfo / VariableDependencyGraph: derived analyses
// for tooling").
type QueryInfo struct {
	Query             *ast.Query
	Scope             ScopeID
	Clauses           []ClauseInfo
	Patterns          []*PatternInfo
	GraphPatternCount int
	Dependencies      *VariableDependencyGraph
}

// ClauseInfo records, for one clause, the variables it defines and the
// variables it references — the building block of the "clause sequence
// with def/use sets" analysis spec.md §3 names.
type ClauseInfo struct {
	Clause ast.Clause
	Defines []string
	Uses    []string
}

// PatternInfo is the derived connectivity analysis for one MATCH/INSERT
// pattern list (§4.5 pass 3: "Pattern connectivity (PatternInfo.
// is_fully_connected) is computed but disconnectedness is only a
// warning").
type PatternInfo struct {
	Pattern          *ast.PatternList
	ComponentCount   int
	IsFullyConnected bool
	BoundNames       []string
}

// VariableDependencyGraph records def-use edges between a query's
// bindings, e.g. `LET y = x + 1` creates an edge y -> x. Edges are
// keyed by the defining name; each entry lists the names it reads.
type VariableDependencyGraph struct {
	Edges map[string][]string
}

// NewVariableDependencyGraph returns an empty graph.
func NewVariableDependencyGraph() *VariableDependencyGraph {
	return &VariableDependencyGraph{Edges: make(map[string][]string)}
}

// AddEdge records that `defines` depends on `uses`, skipping self-edges
// and duplicate entries.
func (g *VariableDependencyGraph) AddEdge(defines string, uses []string) {
	if len(uses) == 0 {
		return
	}

	existing := g.Edges[defines]

	for _, u := range uses {
		if u == defines {
			continue
		}

		dup := false

		for _, e := range existing {
			if e == u {
				dup = true
				break
			}
		}

		if !dup {
			existing = append(existing, u)
		}
	}

	g.Edges[defines] = existing
}
