package ir_test

import (
	"testing"

	"github.com/iso-gql/gqlfront/ir"
)

func TestType_IsCompatibleWith_Widening(t *testing.T) {
	t.Parallel()

	intT := ir.Basic(ir.Int)
	floatT := ir.Basic(ir.Float)

	if !intT.IsCompatibleWith(floatT) {
		t.Error("Int should be compatible with Float (widening)")
	}

	if !floatT.IsCompatibleWith(intT) {
		t.Error("Float should be compatible with Int (widening)")
	}
}

func TestType_IsCompatibleWith_AnyAndNull(t *testing.T) {
	t.Parallel()

	str := ir.Basic(ir.String)
	any := ir.Basic(ir.Any)
	null := ir.Basic(ir.Null)

	if !str.IsCompatibleWith(any) || !any.IsCompatibleWith(str) {
		t.Error("Any should be compatible with anything")
	}

	if !str.IsCompatibleWith(null) || !null.IsCompatibleWith(str) {
		t.Error("Null should be compatible with anything")
	}
}

func TestType_IsCompatibleWith_NodeEdgeIgnoresLabels(t *testing.T) {
	t.Parallel()

	person := ir.NodeType("Person")
	company := ir.NodeType("Company")

	if !person.IsCompatibleWith(company) {
		t.Error("Node types should be compatible regardless of differing labels")
	}

	knows := ir.EdgeType("Knows")
	worksAt := ir.EdgeType("WorksAt")

	if !knows.IsCompatibleWith(worksAt) {
		t.Error("Edge types should be compatible regardless of differing labels")
	}
}

func TestType_IsCompatibleWith_IncompatibleKinds(t *testing.T) {
	t.Parallel()

	str := ir.Basic(ir.String)
	boolT := ir.Basic(ir.Boolean)

	if str.IsCompatibleWith(boolT) {
		t.Error("String and Boolean should not be compatible")
	}
}

func TestType_IsCompatibleWith_Union(t *testing.T) {
	t.Parallel()

	u := ir.UnionOf(ir.Basic(ir.Int), ir.Basic(ir.String))

	if !u.IsCompatibleWith(ir.Basic(ir.Int)) {
		t.Error("Union should be compatible with a member's type")
	}

	if u.IsCompatibleWith(ir.Basic(ir.Boolean)) {
		t.Error("Union should not be compatible with a non-member type")
	}

	// Symmetric: checking from the other side too.
	if !ir.Basic(ir.String).IsCompatibleWith(u) {
		t.Error("Union compatibility should be symmetric")
	}
}

func TestType_SameShape(t *testing.T) {
	t.Parallel()

	a := ir.NodeType("Person", "Employee")
	b := ir.NodeType("Person", "Employee")
	c := ir.NodeType("Person")

	if !a.SameShape(b) {
		t.Error("identical labeled node types should have the same shape")
	}

	if a.SameShape(c) {
		t.Error("node types with different label sets should not have the same shape")
	}

	// SameShape is strict about widening, unlike IsCompatibleWith.
	if ir.Basic(ir.Int).SameShape(ir.Basic(ir.Float)) {
		t.Error("Int and Float should not have the same shape despite being compatible")
	}
}

func TestType_SameShape_List(t *testing.T) {
	t.Parallel()

	listInt := ir.ListOf(ir.Basic(ir.Int))
	listIntAgain := ir.ListOf(ir.Basic(ir.Int))
	listStr := ir.ListOf(ir.Basic(ir.String))

	if !listInt.SameShape(listIntAgain) {
		t.Error("lists of the same element type should have the same shape")
	}

	if listInt.SameShape(listStr) {
		t.Error("lists of different element types should not have the same shape")
	}
}

func TestType_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  ir.Type
		want string
	}{
		{ir.Basic(ir.Int), "Int"},
		{ir.NodeType(), "Node"},
		{ir.NodeType("Person"), "Node:Person"},
		{ir.EdgeType("Knows", "Follows"), "Edge:Knows|Follows"},
		{ir.ListOf(ir.Basic(ir.String)), "List<String>"},
		{ir.Basic(ir.Any), "Any"},
	}

	for _, tt := range tests {
		if got := tt.typ.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
