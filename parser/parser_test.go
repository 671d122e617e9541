package parser_test

import (
	"testing"

	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/parser"
)

func mustOneStatement(t *testing.T, source string) ast.Statement {
	t.Helper()

	res := parser.Parse(source)
	if res.Program == nil {
		t.Fatalf("Parse(%q) returned a nil Program", source)
	}

	if len(res.Program.Statements) != 1 {
		t.Fatalf("Parse(%q) produced %d statements, want 1 (diagnostics: %v)",
			source, len(res.Program.Statements), res.Diagnostics)
	}

	return res.Program.Statements[0]
}

func TestParse_SimpleMatchReturn(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "MATCH (n:Person) RETURN n.name")

	q, ok := stmt.(*ast.Query)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.Query", stmt)
	}

	if len(q.Clauses) != 2 {
		t.Fatalf("got %d clauses, want 2 (MATCH, RETURN)", len(q.Clauses))
	}

	match, ok := q.Clauses[0].(*ast.MatchClause)
	if !ok {
		t.Fatalf("clause 0 type = %T, want *ast.MatchClause", q.Clauses[0])
	}

	if len(match.Patterns.Factors) != 1 || len(match.Patterns.Factors[0].Nodes) != 1 {
		t.Fatalf("unexpected pattern shape: %+v", match.Patterns)
	}

	node := match.Patterns.Factors[0].Nodes[0]
	if node.Binding == nil || node.Binding.Name != "n" {
		t.Fatalf("node binding = %+v, want n", node.Binding)
	}

	label, ok := node.Labels.(*ast.LabelName)
	if !ok || label.Name != "Person" {
		t.Fatalf("node labels = %+v, want LabelName(Person)", node.Labels)
	}

	ret, ok := q.Clauses[1].(*ast.ReturnClause)
	if !ok {
		t.Fatalf("clause 1 type = %T, want *ast.ReturnClause", q.Clauses[1])
	}

	if len(ret.Items) != 1 {
		t.Fatalf("RETURN items = %d, want 1", len(ret.Items))
	}

	prop, ok := ret.Items[0].Value.(*ast.PropertyAccess)
	if !ok || prop.Property != "name" {
		t.Fatalf("RETURN item = %+v, want n.name", ret.Items[0].Value)
	}
}

func TestParse_MatchSetIsOneMutationStatement(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "MATCH (n) SET n.age = 30")

	mut, ok := stmt.(*ast.Mutation)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.Mutation", stmt)
	}

	if mut.Match == nil {
		t.Fatalf("Mutation.Match is nil, want the MATCH clause folded in")
	}

	if len(mut.Actions) != 1 {
		t.Fatalf("Mutation.Actions = %d, want 1", len(mut.Actions))
	}

	set, ok := mut.Actions[0].(*ast.SetAction)
	if !ok {
		t.Fatalf("action type = %T, want *ast.SetAction", mut.Actions[0])
	}

	if len(set.Items) != 1 || set.Items[0].Target == nil || set.Items[0].Target.Property != "age" {
		t.Fatalf("SET items = %+v, want one item targeting .age", set.Items)
	}
}

func TestParse_OptionalMatchVsOptionalCall(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "OPTIONAL MATCH (n) RETURN n")

	q, ok := stmt.(*ast.Query)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.Query", stmt)
	}

	match, ok := q.Clauses[0].(*ast.MatchClause)
	if !ok || !match.Optional {
		t.Fatalf("expected an Optional MatchClause, got %+v", q.Clauses[0])
	}

	stmt = mustOneStatement(t, "CALL db.labels() YIELD label RETURN label")

	q, ok = stmt.(*ast.Query)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.Query", stmt)
	}

	call, ok := q.Clauses[0].(*ast.CallClause)
	if !ok {
		t.Fatalf("clause 0 type = %T, want *ast.CallClause", q.Clauses[0])
	}

	if call.Procedure == nil || call.Procedure.Name != "db.labels" {
		t.Fatalf("call.Procedure = %+v, want db.labels", call.Procedure)
	}

	if len(call.Yield) != 1 || call.Yield[0].Name.Name != "label" {
		t.Fatalf("call.Yield = %+v, want [label]", call.Yield)
	}

	// OPTIONAL CALL is an optional procedure statement, not an optional
	// MATCH in disguise (§4.3).
	stmt = mustOneStatement(t, "OPTIONAL CALL db.labels() YIELD label RETURN label")

	q, ok = stmt.(*ast.Query)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.Query", stmt)
	}

	call, ok = q.Clauses[0].(*ast.CallClause)
	if !ok {
		t.Fatalf("clause 0 type = %T, want *ast.CallClause", q.Clauses[0])
	}

	if !call.Optional {
		t.Fatalf("OPTIONAL CALL did not set CallClause.Optional, got %+v", call)
	}

	if call.Procedure == nil || call.Procedure.Name != "db.labels" {
		t.Fatalf("call.Procedure = %+v, want db.labels", call.Procedure)
	}
}

func TestParse_AggregateDetectedLexically(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "MATCH (n:Person) RETURN COUNT(DISTINCT n.name) AS total")

	q := stmt.(*ast.Query)
	ret := q.Clauses[1].(*ast.ReturnClause)
	call, ok := ret.Items[0].Value.(*ast.Call)

	if !ok {
		t.Fatalf("projection value type = %T, want *ast.Call", ret.Items[0].Value)
	}

	if !call.IsAggregate || !call.Distinct || call.Name != "COUNT" {
		t.Fatalf("call = %+v, want aggregate DISTINCT COUNT", call)
	}

	if ret.Items[0].Alias == nil || ret.Items[0].Alias.Name != "total" {
		t.Fatalf("alias = %+v, want total", ret.Items[0].Alias)
	}
}

func TestParse_VariableLengthPath(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "MATCH (a)-[:KNOWS*1..3]->(b) RETURN b")

	q := stmt.(*ast.Query)
	match := q.Clauses[0].(*ast.MatchClause)
	factor := match.Patterns.Factors[0]

	if len(factor.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(factor.Edges))
	}

	edge := factor.Edges[0]
	if edge.Direction != ast.DirOutgoing {
		t.Fatalf("edge direction = %v, want DirOutgoing", edge.Direction)
	}

	if edge.Quantifier == nil || edge.Quantifier.Min != 1 || edge.Quantifier.Max != 3 {
		t.Fatalf("quantifier = %+v, want {1,3}", edge.Quantifier)
	}
}

func TestParse_UnionOfTwoQueries(t *testing.T) {
	t.Parallel()

	res := parser.Parse("MATCH (n:A) RETURN n.id UNION MATCH (n:B) RETURN n.id")
	if len(res.Program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1 composite statement", len(res.Program.Statements))
	}

	comp, ok := res.Program.Statements[0].(*ast.CompositeQuery)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.CompositeQuery", res.Program.Statements[0])
	}

	if comp.Op != ast.SetUnion {
		t.Fatalf("Op = %v, want SetUnion", comp.Op)
	}

	if _, ok := comp.Left.(*ast.Query); !ok {
		t.Fatalf("Left type = %T, want *ast.Query", comp.Left)
	}

	if _, ok := comp.Right.(*ast.Query); !ok {
		t.Fatalf("Right type = %T, want *ast.Query", comp.Right)
	}
}

func TestParse_CreateGraphWithTypeSpec(t *testing.T) {
	t.Parallel()

	stmt := mustOneStatement(t, "CREATE GRAPH social { (:Person {name: STRING}), [:KNOWS {since: INTEGER}] }")

	cat, ok := stmt.(*ast.CatalogStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.CatalogStatement", stmt)
	}

	if cat.Op != ast.CatalogCreate || cat.Object != ast.CatalogGraph || cat.Name.Name != "social" {
		t.Fatalf("catalog statement = %+v, want CREATE GRAPH social", cat)
	}

	if cat.GraphType == nil || len(cat.GraphType.NodeTypes) != 1 || len(cat.GraphType.EdgeTypes) != 1 {
		t.Fatalf("GraphType = %+v, want one node type and one edge type", cat.GraphType)
	}

	if cat.GraphType.NodeTypes[0].Labels[0] != "Person" {
		t.Fatalf("node type labels = %v, want [Person]", cat.GraphType.NodeTypes[0].Labels)
	}
}

func TestParse_StartCommitRollback(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]ast.TransactionKind{
		"START TRANSACTION": ast.TxStart,
		"COMMIT":            ast.TxCommit,
		"ROLLBACK":          ast.TxRollback,
	} {
		stmt := mustOneStatement(t, input)

		tx, ok := stmt.(*ast.TransactionStatement)
		if !ok {
			t.Fatalf("Parse(%q) statement type = %T, want *ast.TransactionStatement", input, stmt)
		}

		if tx.Kind != want {
			t.Errorf("Parse(%q).Kind = %v, want %v", input, tx.Kind, want)
		}
	}
}

func TestParse_UnrecognizedTokenRecoversWithoutHanging(t *testing.T) {
	t.Parallel()

	res := parser.Parse(") ) ) MATCH (n) RETURN n")
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic for leading garbage tokens")
	}

	var sawReturn bool

	for _, stmt := range res.Program.Statements {
		if q, ok := stmt.(*ast.Query); ok {
			for _, c := range q.Clauses {
				if _, ok := c.(*ast.ReturnClause); ok {
					sawReturn = true
				}
			}
		}
	}

	if !sawReturn {
		t.Fatalf("parser did not recover to the trailing MATCH/RETURN statement, got %+v", res.Program.Statements)
	}
}

func TestParse_RecursionLimitOnDeeplyNestedExpression(t *testing.T) {
	t.Parallel()

	source := "MATCH (n) RETURN "
	for i := 0; i < 2000; i++ {
		source += "NOT "
	}

	source += "n.flag"

	res := parser.Parse(source)

	var sawLimit bool

	for _, d := range res.Diagnostics {
		if d.Code == "parse.recursion-limit" {
			sawLimit = true
		}
	}

	if !sawLimit {
		t.Fatalf("expected parse.recursion-limit diagnostic for 2000-deep NOT chain")
	}
}
