// Package ast defines the GQL abstract syntax tree: an immutable tree of
// tagged-union variants (not a class hierarchy — see spec §3 and the
// "tagged variants over inheritance" design note). Every node carries a
// Span; there are no back-references to tokens or parent nodes, so trees
// can be moved, cloned, or serialized without fix-ups.
//
// Grounded on rlch-scaf/ast.go's Node/CompletableNode interfaces and its
// per-node Pos/EndPos/Span() shape, generalized from participle
// struct-tag-driven nodes (`parser:"..."` fields) to plain fields filled
// in by a hand-written parser, per the spec's mandate for a predictive
// recursive-descent parser rather than a grammar-engine-built one.
package ast

import gql "github.com/iso-gql/gqlfront/diag"

// Node is implemented by every AST type.
type Node interface {
	Span() gql.Span
}

// Recoverable is implemented by node kinds that may stand in for a
// failed sub-rule: the parser builds one of these instead of returning
// no node at all, recording what it expected and what it skipped,
// exactly as rlch-scaf's Recovered/RecoveredSpan/SkippedTokens fields do
// (here promoted to a first-class node type instead of bolted-on fields,
// since here any node kind can fail to parse, not just a closed set of
// clause-level rules).
type Recoverable interface {
	Node
	Recovered() bool
}

// Bad is a placeholder node inserted at a sub-rule recovery point (a
// missing `)`, `}`, `]`, or an unrecognized statement). It implements
// Statement, Expr, and Pattern so the parser can return one wherever any
// of those is expected and the parent can keep building a partial tree.
type Bad struct {
	SpanValue gql.Span
	Expected  string // what the parser wanted, for diagnostic text
	Skipped   []string
}

func (b *Bad) Span() gql.Span    { return b.SpanValue }
func (b *Bad) Recovered() bool   { return true }
func (*Bad) isStatement()        {}
func (*Bad) isExpr()             {}
func (*Bad) isPattern()          {}
func (*Bad) isLabelExpr()        {}
func (*Bad) isPathFactorElement(){}

// Program is the top-level node: an ordered sequence of statements,
// optionally `;`-separated. Each statement gets a fresh root scope (§4.4:
// "variables do not leak across statements").
type Program struct {
	SpanValue  gql.Span
	Statements []Statement
}

func (p *Program) Span() gql.Span { return p.SpanValue }

// Statement is the closed union {Query, Mutation, Session, Transaction,
// Catalog, Empty} (§3), plus the Bad recovery placeholder.
type Statement interface {
	Node
	isStatement()
}

// Ident is a raw identifier reference: name plus the span it was written
// at. Resolution against a scope happens in the validator (§4.5 pass 2),
// never at parse time — "every named reference carries its raw
// identifier text and span; resolution happens later" (§3 invariant).
type Ident struct {
	Name      string
	SpanValue gql.Span
}

func (i Ident) Span() gql.Span { return i.SpanValue }

// Empty is the statement produced by a bare `;` with nothing before it.
type Empty struct {
	SpanValue gql.Span
}

func (e *Empty) Span() gql.Span { return e.SpanValue }
func (*Empty) isStatement()     {}
