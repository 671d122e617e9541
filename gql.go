// Package gql is the ISO GQL front-end compiler's top-level API: the
// lexer -> parser -> semantic validator pipeline (§2). Tokenize, Parse,
// and ParseAndValidate are thin compositions over the token/lexer/
// parser/ir/validator subpackages (§6's "three functions + one
// validator object" contract), grounded on cmd/scaf/main.go's style of
// wiring subpackages together rather than owning logic itself.
package gql

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/ir"
	"github.com/iso-gql/gqlfront/lexer"
	"github.com/iso-gql/gqlfront/parser"
	"github.com/iso-gql/gqlfront/token"
	"github.com/iso-gql/gqlfront/validator"
)

// LexResult is tokenize(source)'s contract output (§6).
type LexResult struct {
	Tokens      []token.Token
	Diagnostics []Diagnostic
}

// Tokenize lexes source into a token stream plus recovery diagnostics
// (§4.2). Deterministic, total, single-pass.
func Tokenize(source string) LexResult {
	r := lexer.Tokenize(source)
	return LexResult{Tokens: r.Tokens, Diagnostics: r.Diagnostics}
}

// ParseResult is parse(source)'s contract output (§6). Ast is non-nil
// whenever at least one statement was recognized (§4.3).
type ParseResult struct {
	AST         *ast.Program
	Diagnostics []Diagnostic
}

// Parse tokenizes and parses source with the hand-written predictive
// parser (§4.3), concatenating lexer and parser diagnostics in source
// order.
func Parse(source string) ParseResult {
	r := parser.Parse(source)
	return ParseResult{AST: r.Program, Diagnostics: r.Diagnostics}
}

// ValidationOutcome is parse_and_validate(source, metadata?)'s contract
// output (§6): the parsed AST (if any), the validated IR (if the
// scope/type tables were internally consistent enough to be useful), and
// every diagnostic from all three stages in source order.
type ValidationOutcome struct {
	AST         *ast.Program
	IR          *ir.IR
	Diagnostics []Diagnostic
}

// IsSuccess reports whether no error-severity diagnostic was produced
// across any of the three stages.
func (o ValidationOutcome) IsSuccess() bool {
	for _, d := range o.Diagnostics {
		if d.Severity == SeverityError {
			return false
		}
	}

	return true
}

// ParseAndValidate parses source, then runs v (or a default lenient
// SemanticValidator if v is nil) over the result (§6). Diagnostics from
// all three stages are concatenated lexer -> parser -> validator.
func ParseAndValidate(source string, v *validator.SemanticValidator) ValidationOutcome {
	pr := parser.Parse(source)

	if pr.Program == nil {
		return ValidationOutcome{Diagnostics: pr.Diagnostics}
	}

	if v == nil {
		v = validator.New()
	}

	out := v.Validate(pr.Program)

	diags := append([]Diagnostic(nil), pr.Diagnostics...)
	diags = append(diags, out.Diagnostics...)

	return ValidationOutcome{AST: pr.Program, IR: out.IR, Diagnostics: diags}
}
