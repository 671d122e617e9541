package validator_test

import (
	"testing"

	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/validator"
)

func TestParseAndValidate_SimpleMatchReturn(t *testing.T) {
	t.Parallel()

	_, _, outcome := validator.ParseAndValidate("MATCH (n) RETURN n", validator.New())

	if !outcome.IsSuccess() {
		t.Fatalf("expected success, got diagnostics: %v", outcome.Diagnostics)
	}

	if outcome.IR == nil {
		t.Fatal("expected a populated IR on success")
	}
}

func TestParseAndValidate_UndefinedVariableIsError(t *testing.T) {
	t.Parallel()

	_, _, outcome := validator.ParseAndValidate("MATCH (n) RETURN m", validator.New())

	if outcome.IsSuccess() {
		t.Fatal("expected referencing an undefined variable to fail validation")
	}
}

func TestParseAndValidate_ParseFailureShortCircuitsValidation(t *testing.T) {
	t.Parallel()

	_, diags, outcome := validator.ParseAndValidate("MATCH (n RETURN n", validator.New())

	if len(diags) == 0 {
		t.Fatal("expected parse diagnostics for unbalanced parentheses")
	}

	if outcome.IsSuccess() {
		t.Fatal("expected a parse failure to also fail the overall outcome")
	}
}

func TestSemanticValidator_LenientInferenceDefaultsUnknownPropertyToAny(t *testing.T) {
	t.Parallel()

	provider := newEmptyGraphProvider()

	v := validator.New().
		WithMetadataProvider(provider).
		WithConfig(validator.ValidationConfig{MetadataValidation: true})

	_, _, outcome := validator.ParseAndValidate("MATCH (n:Person) RETURN n.unknownProp", v)

	if !outcome.IsSuccess() {
		t.Errorf("lenient policy should not fail on an unresolved property, got: %v", outcome.Diagnostics)
	}
}

func TestSemanticValidator_StrictInferenceRejectsUnresolvedProperty(t *testing.T) {
	t.Parallel()

	provider := newEmptyGraphProvider()

	v := validator.New().
		WithMetadataProvider(provider).
		WithInferencePolicy(validator.Strict).
		WithConfig(validator.ValidationConfig{MetadataValidation: true})

	_, _, outcome := validator.ParseAndValidate("MATCH (n:Person) RETURN n.unknownProp", v)

	if outcome.IsSuccess() {
		t.Error("strict policy should reject a property that metadata cannot resolve")
	}
}

func TestSemanticValidator_WithConfig_StrictModeSetsPolicy(t *testing.T) {
	t.Parallel()

	provider := newEmptyGraphProvider()

	v := validator.New().
		WithMetadataProvider(provider).
		WithConfig(validator.ValidationConfig{StrictMode: true, MetadataValidation: true})

	_, _, outcome := validator.ParseAndValidate("MATCH (n:Person) RETURN n.unknownProp", v)

	if outcome.IsSuccess() {
		t.Error("ValidationConfig.StrictMode should be equivalent to WithInferencePolicy(Strict)")
	}
}

func TestParseAndValidate_MixedAggregationWithoutGroupByIsError(t *testing.T) {
	t.Parallel()

	_, diags, outcome := validator.ParseAndValidate("MATCH (n:Person) RETURN COUNT(n), n.name", validator.New())

	if outcome.IsSuccess() {
		t.Fatal("expected mixing an aggregate and a non-aggregate with no GROUP BY to fail")
	}

	found := false
	for _, d := range diags {
		if d.Code == "sema.mixed-aggregation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sema.mixed-aggregation diagnostic, got: %v", diags)
	}
}

func TestParseAndValidate_DisconnectedPatternIsWarningOnly(t *testing.T) {
	t.Parallel()

	_, diags, outcome := validator.ParseAndValidate("MATCH (a:Person), (b:Company) RETURN a, b", validator.New())

	if !outcome.IsSuccess() {
		t.Fatalf("a disconnected pattern should only warn, got: %v", diags)
	}

	found := false
	for _, d := range diags {
		if d.Code == "sema.disconnected-pattern" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sema.disconnected-pattern warning, got: %v", diags)
	}
}

func TestParseAndValidate_StatementSeparatedScopesDoNotLeak(t *testing.T) {
	t.Parallel()

	_, _, outcome := validator.ParseAndValidate("MATCH (v) RETURN v; MATCH (n) RETURN v", validator.New())

	if outcome.IsSuccess() {
		t.Fatal("expected a binding from one `;`-separated statement not to be visible in the next")
	}
}

func TestParseAndValidate_UnionBranchesDoNotShareScope(t *testing.T) {
	t.Parallel()

	_, _, outcome := validator.ParseAndValidate(
		"MATCH (v) RETURN v UNION MATCH (n) RETURN v",
		validator.New(),
	)

	if outcome.IsSuccess() {
		t.Fatal("expected a binding from one UNION branch not to be visible in the other")
	}
}

// stubProvider is a minimal catalog.MetadataProvider with an empty
// schema, for exercising the metadata-aware validation paths without
// pulling in memcatalog's YAML machinery.
type stubProvider struct {
	snapshot *catalog.StaticSchemaSnapshot
}

func newEmptyGraphProvider() *stubProvider {
	return &stubProvider{
		snapshot: catalog.NewStaticSchemaSnapshot(
			[]catalog.ElementTypeMeta{{Label: "Person"}},
			nil,
		),
	}
}

func (p *stubProvider) GetSchemaSnapshot(string, string) (catalog.SchemaSnapshot, *catalog.CatalogError) {
	return p.snapshot, nil
}

func (p *stubProvider) GetCallable(string, catalog.CallableKind) (catalog.CallableSignature, bool) {
	return catalog.CallableSignature{}, false
}
