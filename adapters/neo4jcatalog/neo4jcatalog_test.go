//nolint:testpackage
package neo4jcatalog

import (
	"context"
	"os"
	"testing"

	"github.com/iso-gql/gqlfront/ir"
)

func TestNeo4jTypeToIR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want ir.Kind
	}{
		{"Integer", ir.Int},
		{"Long", ir.Int},
		{"Float", ir.Float},
		{"Double", ir.Float},
		{"String", ir.String},
		{"Boolean", ir.Boolean},
		{"Date", ir.Date},
		{"LocalTime", ir.Time},
		{"DateTime", ir.Timestamp},
		{"LocalDateTime", ir.Timestamp},
		{"Duration", ir.Duration},
		{"PointCartesian", ir.Any},
		{"", ir.Any},
	}

	for _, tt := range tests {
		if got := neo4jTypeToIR(tt.name).Kind; got != tt.want {
			t.Errorf("neo4jTypeToIR(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFirstString(t *testing.T) {
	t.Parallel()

	// firstString reads straight from the column value, not a live
	// *neo4j.Record, so the []any/string shapes the schema procedures
	// actually return are covered without a driver in the loop.
	if got := firstString([]any{"String", "Integer"}); got != "String" {
		t.Errorf("firstString(list) = %q, want %q", got, "String")
	}

	if got := firstString("String"); got != "String" {
		t.Errorf("firstString(scalar) = %q, want %q", got, "String")
	}

	if got := firstString(nil); got != "" {
		t.Errorf("firstString(nil) = %q, want empty", got)
	}

	if got := firstString([]any{}); got != "" {
		t.Errorf("firstString(empty list) = %q, want empty", got)
	}
}

func TestToElementMetas_GroupsByLabelPreservingOrder(t *testing.T) {
	t.Parallel()

	props := []typeProperty{
		{label: "Person", propertyName: "name", propertyType: "String", mandatory: true},
		{label: "Company", propertyName: "founded", propertyType: "Integer"},
		{label: "Person", propertyName: "age", propertyType: "Integer"},
	}

	metas := toElementMetas(props)

	if len(metas) != 2 {
		t.Fatalf("len(metas) = %d, want 2", len(metas))
	}

	if metas[0].Label != "Person" {
		t.Errorf("metas[0].Label = %q, want first-seen label %q", metas[0].Label, "Person")
	}

	if metas[1].Label != "Company" {
		t.Errorf("metas[1].Label = %q, want %q", metas[1].Label, "Company")
	}

	if len(metas[0].Properties) != 2 {
		t.Fatalf("Person should have 2 properties, got %d", len(metas[0].Properties))
	}

	if !metas[0].Properties[0].Required {
		t.Error("Person.name should be mandatory")
	}
}

// TestNew_RequiresLiveDatabase documents that constructing a real
// Provider needs a reachable Neo4j instance; set NEO4J_TEST_URI to run
// it, mirroring dialects/cypher's SCAF_NEO4J_URI-gated integration test.
func TestNew_RequiresLiveDatabase(t *testing.T) {
	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		t.Skip("NEO4J_TEST_URI not set, skipping integration test")
	}

	p, err := New(context.Background(), uri, os.Getenv("NEO4J_TEST_USER"), os.Getenv("NEO4J_TEST_PASS"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	defer func() { _ = p.Close(context.Background()) }()
}
