package catalog_test

import (
	"testing"

	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

func TestElementTypeMeta_Property_Direct(t *testing.T) {
	t.Parallel()

	snap := catalog.NewStaticSchemaSnapshot(
		[]catalog.ElementTypeMeta{
			{Label: "Person", Properties: []catalog.PropertyMeta{{Name: "name", Type: ir.Basic(ir.String)}}},
		},
		nil,
	)

	person, ok := snap.NodeType("Person")
	if !ok {
		t.Fatal("expected Person node type to be found")
	}

	prop, ok := person.Property("name")
	if !ok {
		t.Fatal("expected to find direct property name")
	}

	if prop.Type.Kind != ir.String {
		t.Errorf("prop.Type = %v, want String", prop.Type)
	}
}

func TestElementTypeMeta_Property_InheritedFromParent(t *testing.T) {
	t.Parallel()

	snap := catalog.NewStaticSchemaSnapshot(
		[]catalog.ElementTypeMeta{
			{Label: "Entity", Properties: []catalog.PropertyMeta{{Name: "id", Type: ir.Basic(ir.String)}}},
			{Label: "Person", Parents: []string{"Entity"}, Properties: []catalog.PropertyMeta{{Name: "name", Type: ir.Basic(ir.String)}}},
		},
		nil,
	)

	person, ok := snap.NodeType("Person")
	if !ok {
		t.Fatal("expected Person node type to be found")
	}

	if _, ok := person.Property("name"); !ok {
		t.Error("expected Person to have its own 'name' property")
	}

	if _, ok := person.Property("id"); !ok {
		t.Error("expected Person to inherit 'id' from Entity")
	}

	if _, ok := person.Property("missing"); ok {
		t.Error("expected lookup of an undeclared property to fail")
	}
}

func TestElementTypeMeta_Property_FirstDeclaredParentWins(t *testing.T) {
	t.Parallel()

	// Both parents declare "label"; Person lists A before B, so A's
	// value must win.
	snap := catalog.NewStaticSchemaSnapshot(
		[]catalog.ElementTypeMeta{
			{Label: "A", Properties: []catalog.PropertyMeta{{Name: "label", Type: ir.Basic(ir.String)}}},
			{Label: "B", Properties: []catalog.PropertyMeta{{Name: "label", Type: ir.Basic(ir.Int)}}},
			{Label: "Person", Parents: []string{"A", "B"}},
		},
		nil,
	)

	person, _ := snap.NodeType("Person")

	prop, ok := person.Property("label")
	if !ok {
		t.Fatal("expected to find 'label' via parent walk")
	}

	if prop.Type.Kind != ir.String {
		t.Errorf("prop.Type = %v, want String (A's declaration should win over B's)", prop.Type)
	}
}

func TestElementTypeMeta_Property_CyclicParentsDoNotHang(t *testing.T) {
	t.Parallel()

	snap := catalog.NewStaticSchemaSnapshot(
		[]catalog.ElementTypeMeta{
			{Label: "A", Parents: []string{"B"}},
			{Label: "B", Parents: []string{"A"}},
		},
		nil,
	)

	a, _ := snap.NodeType("A")

	if _, ok := a.Property("nonexistent"); ok {
		t.Error("expected lookup to fail cleanly, not loop forever, on a parent cycle")
	}
}

func TestCallableSignature_Accepts(t *testing.T) {
	t.Parallel()

	sig := catalog.CallableSignature{
		Name:   "length",
		Kind:   catalog.CallableFunction,
		Params: []catalog.Param{{Name: "s", Type: ir.Basic(ir.String)}},
		Returns: ir.Basic(ir.Int),
	}

	if !sig.Accepts([]ir.Type{ir.Basic(ir.String)}) {
		t.Error("expected exact-type argument to be accepted")
	}

	if sig.Accepts([]ir.Type{ir.Basic(ir.Boolean)}) {
		t.Error("expected mismatched-type argument to be rejected")
	}

	if sig.Accepts([]ir.Type{ir.Basic(ir.String), ir.Basic(ir.String)}) {
		t.Error("expected wrong arity to be rejected")
	}
}

func TestCallableSignature_Accepts_Widening(t *testing.T) {
	t.Parallel()

	sig := catalog.CallableSignature{
		Params:  []catalog.Param{{Name: "x", Type: ir.Basic(ir.Float)}},
		Returns: ir.Basic(ir.Float),
	}

	if !sig.Accepts([]ir.Type{ir.Basic(ir.Int)}) {
		t.Error("expected Int argument to widen to a Float parameter")
	}
}

func TestCallableSignature_Accepts_Variadic(t *testing.T) {
	t.Parallel()

	sig := catalog.CallableSignature{
		Name:     "coalesce",
		Variadic: true,
		Params:   []catalog.Param{{Name: "v", Type: ir.Basic(ir.Any)}},
		Returns:  ir.Basic(ir.Any),
	}

	if !sig.Accepts([]ir.Type{ir.Basic(ir.Int), ir.Basic(ir.String), ir.Basic(ir.Boolean)}) {
		t.Error("expected a variadic signature to accept more arguments than declared params")
	}

	if !sig.Accepts(nil) {
		t.Error("expected a variadic signature with a single param to accept zero arguments")
	}
}

func TestCatalogError(t *testing.T) {
	t.Parallel()

	base := catalog.ErrGraphNotFound
	err := &catalog.CatalogError{GraphRef: "social", Err: base}

	if got := err.Error(); got == "" {
		t.Error("expected a non-empty error message")
	}

	if unwrapped := err.Unwrap(); unwrapped != base {
		t.Error("expected Unwrap to return the wrapped sentinel error")
	}
}
