// Package validator implements the multi-pass semantic validator (§4.5):
// scope analysis, reference resolution, pattern validation, type
// inference, aggregation/grouping checks, callable validation, mutation
// validation, and set-operation compatibility, all sharing one mutable
// validator context per validate() call.
//
// Grounded on analysis/rules.go's Rule/DefaultRules() pass-list shape and
// dialects/cypher/analyzer.go's variableBinding/queryContext walk (both
// deleted from the tree — see DESIGN.md; their shape is what this
// package generalizes from one Cypher dialect's ad hoc analyzer into a
// full GQL validator over the hand-written parser's AST).
package validator

import (
	"go.uber.org/zap"

	gql "github.com/iso-gql/gqlfront/diag"
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
	"github.com/iso-gql/gqlfront/parser"
)

// InferencePolicy controls what happens when a property reference can't
// be resolved against metadata (§4.5 "Inference policy"). Default is
// Lenient.
type InferencePolicy int

const (
	// Lenient silently falls back to ir.Any when metadata is missing or
	// a provider wasn't supplied at all.
	Lenient InferencePolicy = iota
	// Strict emits sema.unknown-property when metadata cannot resolve a
	// property reference.
	Strict
)

// ValidationConfig bundles the validator's tunables (§6:
// ".with_config(ValidationConfig{strict_mode, metadata_validation, ...})").
type ValidationConfig struct {
	// StrictMode is a convenience alias for InferencePolicy: true sets
	// Strict, false sets Lenient. WithConfig applies this before
	// WithInferencePolicy is consulted, so a later WithInferencePolicy
	// call still wins if both are used.
	StrictMode bool
	// MetadataValidation, when true, checks MATCH/INSERT pattern labels
	// against the schema snapshot (sema.unknown-label) whenever a
	// metadata provider is supplied. When false (or no provider),
	// unknown labels are never flagged — labels are opaque strings.
	MetadataValidation bool
	// MaxExprDepth bounds recursive expression/pattern walks during
	// validation, mirroring the parser's recursion-limit guard (§5) so
	// a pathologically deep (but syntactically valid, e.g. from a
	// hand-built AST) tree can't blow the validator's stack either.
	MaxExprDepth int
}

const defaultMaxExprDepth = 512

// SemanticValidator is the fluent-configured entry point (§6): construct,
// chain .With* calls, then call Validate.
type SemanticValidator struct {
	provider catalog.MetadataProvider
	policy   InferencePolicy
	config   ValidationConfig
	logger   *zap.Logger
}

// New returns a SemanticValidator with lenient inference, no metadata
// provider, and a no-op logger.
func New() *SemanticValidator {
	return &SemanticValidator{
		policy: Lenient,
		config: ValidationConfig{MaxExprDepth: defaultMaxExprDepth},
		logger: zap.NewNop(),
	}
}

// WithMetadataProvider sets the catalog the validator queries for
// property/label/callable resolution (§6: ".with_metadata_provider(&p)").
// The validator borrows p only for the duration of Validate; it is never
// retained afterward.
func (v *SemanticValidator) WithMetadataProvider(p catalog.MetadataProvider) *SemanticValidator {
	v.provider = p
	return v
}

// WithInferencePolicy sets strict vs lenient metadata-miss handling
// (§6: ".with_inference_policy(strict|lenient)").
func (v *SemanticValidator) WithInferencePolicy(policy InferencePolicy) *SemanticValidator {
	v.policy = policy
	return v
}

// WithConfig applies cfg, filling in MaxExprDepth with the default if the
// caller left it zero (§6: ".with_config(ValidationConfig{...})").
func (v *SemanticValidator) WithConfig(cfg ValidationConfig) *SemanticValidator {
	if cfg.MaxExprDepth <= 0 {
		cfg.MaxExprDepth = defaultMaxExprDepth
	}

	v.config = cfg
	if cfg.StrictMode {
		v.policy = Strict
	}

	return v
}

// WithLogger attaches a zap.Logger the validator uses to log the start
// and end of each Validate call at debug level. A nil or omitted logger
// defaults to zap.NewNop(), so this never changes validation results,
// only observability.
func (v *SemanticValidator) WithLogger(logger *zap.Logger) *SemanticValidator {
	if logger == nil {
		logger = zap.NewNop()
	}

	v.logger = logger

	return v
}

// Outcome is the validator's contract output: `validate(program,
// metadata?) -> {ir?, diagnostics}` (§4.5). IR is populated whenever the
// scope and type tables built up enough internal consistency to be
// useful, even alongside error diagnostics; callers check IsSuccess
// before relying on it (§4.5 "Failure semantics").
type Outcome struct {
	IR          *ir.IR
	Diagnostics []gql.Diagnostic
}

// IsSuccess reports whether no error-severity diagnostic was produced.
func (o Outcome) IsSuccess() bool {
	for _, d := range o.Diagnostics {
		if d.Severity == gql.SeverityError {
			return false
		}
	}

	return true
}

// Validate runs all eight passes over program, sharing one mutable
// validator context across them (§4.5). It never panics: every fallible
// step records a diagnostic and continues with the remaining
// statements/passes.
func (v *SemanticValidator) Validate(program *ast.Program) Outcome {
	v.logger.Debug("validate: start", zap.Int("statements", len(program.Statements)))

	c := newContext(v, program)

	for _, stmt := range program.Statements {
		c.validateTopLevel(stmt)
	}

	c.checkSetOperations(program)

	v.logger.Debug("validate: done",
		zap.Int("diagnostics", len(c.diags)),
		zap.Int("queries", len(c.queryInfos)),
	)

	result := &ir.IR{
		Program:    program,
		Scopes:     c.scopes,
		Types:      c.types,
		Queries:    c.queryInfos,
		RootScopes: c.rootScopes,
	}

	return Outcome{IR: result, Diagnostics: c.diags}
}

// ParseAndValidate parses source and validates it in one call (§6:
// "parse_and_validate(source, metadata?) -> ValidationOutcome"). A thin
// wrapper kept here (rather than only in gql.go) so validator-only
// callers don't need to import the parser package themselves.
func ParseAndValidate(source string, v *SemanticValidator) (program *ast.Program, diags []gql.Diagnostic, outcome Outcome) {
	pr := parser.Parse(source)

	if v == nil {
		v = New()
	}

	if pr.Program == nil {
		return nil, pr.Diagnostics, Outcome{Diagnostics: pr.Diagnostics}
	}

	outcome = v.Validate(pr.Program)
	outcome.Diagnostics = append(append([]gql.Diagnostic(nil), pr.Diagnostics...), outcome.Diagnostics...)

	return pr.Program, outcome.Diagnostics, outcome
}
