package gql

import "github.com/iso-gql/gqlfront/diag"

// Severity classifies a Diagnostic. Warnings never suppress success;
// only Error severity flips Outcome.IsSuccess to false.
type Severity = diag.Severity

const (
	SeverityError   = diag.SeverityError
	SeverityWarning = diag.SeverityWarning
	SeverityInfo    = diag.SeverityInfo
)

// Label attaches a secondary span and a short note to a Diagnostic, the
// way a compiler underlines a second location ("previous binding here").
type Label = diag.Label

// Diagnostic is a value record describing why some input was rejected or
// deserves a warning. It owns no AST node, only spans; stages append to a
// source-order-sorted slice, there is no global error state.
type Diagnostic = diag.Diagnostic

// NewDiagnostic builds an error-severity Diagnostic with no labels.
func NewDiagnostic(code, message string, span Span) Diagnostic {
	return diag.NewDiagnostic(code, message, span)
}

// NewWarning builds a warning-severity Diagnostic.
func NewWarning(code, message string, span Span) Diagnostic {
	return diag.NewWarning(code, message, span)
}

// Outcome bundles the diagnostics produced by a pipeline stage (or the
// whole lexer/parser/validator run) with the success-check helpers hosts
// actually want, instead of making every caller re-filter a flat slice.
type Outcome = diag.Outcome
