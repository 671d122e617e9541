package validator

import (
	gql "github.com/iso-gql/gqlfront/diag"
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

// context is the one mutable state all eight passes share for the
// duration of a single Validate call (§4.5: "Multi-pass, but passes
// share one mutable validator context"). It is never retained past
// Validate's return.
type context struct {
	v *SemanticValidator

	scopes     *ir.ScopeTree
	types      *ir.TypeTable
	diags      []gql.Diagnostic
	nextExprID int
	queryInfos []*ir.QueryInfo
	rootScopes map[ast.Statement]ir.ScopeID

	depth int
}

func newContext(v *SemanticValidator, program *ast.Program) *context {
	return &context{
		v:          v,
		scopes:     ir.NewScopeTree(),
		types:      ir.NewTypeTable(),
		rootScopes: make(map[ast.Statement]ir.ScopeID, len(program.Statements)),
	}
}

func (c *context) error(code, msg string, span gql.Span) {
	c.diags = append(c.diags, gql.NewDiagnostic(code, msg, span))
}

func (c *context) errorLabeled(code, msg string, span gql.Span, label gql.Span, note string) {
	d := gql.NewDiagnostic(code, msg, span)
	d = d.WithLabel(label, note)
	c.diags = append(c.diags, d)
}

func (c *context) warn(code, msg string, span gql.Span) {
	c.diags = append(c.diags, gql.NewWarning(code, msg, span))
}

// assignID hands out the next stable ExprID (§4.4/§3: "Assigned by the
// validator's scope-analysis pass, not the parser; zero until then").
func (c *context) assignID() ast.ExprID {
	c.nextExprID++
	return ast.ExprID(c.nextExprID)
}

// enterDepth/exitDepth guard recursive expr/pattern walks the same way
// the parser's recursion counter does (§5), since a hand-built AST
// (tests, tooling) isn't bounded by the parser's own guard.
func (c *context) enterDepth(span gql.Span) bool {
	c.depth++
	if c.depth > c.v.config.MaxExprDepth {
		c.error("parse.recursion-limit", "maximum expression nesting depth exceeded during validation", span)
		return false
	}

	return true
}

func (c *context) exitDepth() { c.depth-- }

// validateTopLevel runs every pass over one top-level (or composite)
// statement, per the §4.5 per-statement state machine: Fresh ->
// ScopesBuilt -> Resolved -> Typed -> Checked -> Emitted. A composite
// statement recurses into each branch, which gets its own independent
// scope (§4.4: "UNION/EXCEPT/INTERSECT branches each have independent
// scopes" — the ;-separated top-level isolation falls out of this too,
// since each top-level Statement reaches here with parent = ir.NoScope).
func (c *context) validateTopLevel(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompositeQuery:
		c.validateTopLevel(s.Left)
		c.validateTopLevel(s.Right)
	default:
		c.validateStatement(stmt, ir.NoScope)
	}
}

// validateStatement runs the per-statement pipeline for one non-composite
// statement, declaring its root scope as a child of parent (NoScope for
// a genuine top-level statement; a real scope id for an inline procedure
// body or subquery that should see outer bindings).
func (c *context) validateStatement(stmt ast.Statement, parent ir.ScopeID) {
	scope := c.scopes.NewScope(parent)
	c.rootScopes[stmt] = scope

	switch s := stmt.(type) {
	case *ast.Query:
		c.validateQuery(s, scope)
	case *ast.Mutation:
		c.validateMutation(s, scope)
	case *ast.SessionStatement, *ast.TransactionStatement, *ast.CatalogStatement, *ast.Empty, *ast.Bad:
		// No bindings, patterns, or expressions worth a full pipeline;
		// catalog DDL's own shape (GraphTypeSpec property decls) has no
		// scope/type semantics to check against a running query.
	}
}

// metadataSnapshot fetches the schema snapshot for graphRef (possibly
// empty, meaning "the default/ambient graph") from the configured
// provider, returning ok=false if no provider is configured or the
// provider reports an error.
func (c *context) metadataSnapshot(graphRef string, span gql.Span) (catalog.SchemaSnapshot, bool) {
	if c.v.provider == nil {
		return nil, false
	}

	snap, err := c.v.provider.GetSchemaSnapshot(graphRef, "")
	if err != nil {
		c.warn("sema.unknown-label", "metadata unavailable: "+err.Error(), span)
		return nil, false
	}

	return snap, true
}
