package ast

import gql "github.com/iso-gql/gqlfront/diag"

// Expr is the closed union of expression node kinds (§3): literals,
// variable references, property access, function/aggregate calls, CASE,
// CAST, list/map/record constructors, and subqueries.
type Expr interface {
	Node
	isExpr()
}

// ExprID uniquely identifies an expression node within one parse, so the
// validator's TypeTable can key on a stable id rather than a pointer
// (§4.4: "TypeTable entries are keyed by stable ExprId assigned during
// validation"). Assigned by the validator's scope-analysis pass, not the
// parser; zero until then.
type ExprID int

// Literal is a scalar literal token lifted into the AST: integer, float,
// string, boolean, null, or a temporal literal whose body is preserved
// verbatim (value validation deferred, per the Design Notes).
type Literal struct {
	SpanValue gql.Span
	Kind      LiteralKind
	Text      string // raw lexeme, including quotes/keyword for temporal kinds
}

// LiteralKind enumerates the literal kinds a Literal node may carry.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralDate
	LiteralTime
	LiteralTimestamp
	LiteralDuration
)

func (l *Literal) Span() gql.Span { return l.SpanValue }
func (*Literal) isExpr()          {}

// VarRef is a reference to a bound variable, parameter, or graph name.
type VarRef struct {
	SpanValue gql.Span
	Name      string
	ID        ExprID
}

func (v *VarRef) Span() gql.Span { return v.SpanValue }
func (*VarRef) isExpr()          {}

// Parameter is a reference to a `$name` query parameter.
type Parameter struct {
	SpanValue gql.Span
	Name      string
	ID        ExprID
}

func (p *Parameter) Span() gql.Span { return p.SpanValue }
func (*Parameter) isExpr()          {}

// PropertyAccess is `base.Property` (§4.5 pass 4: base's kind is looked
// up in scope; if Node/Edge and a metadata provider is available, its
// property type is queried).
type PropertyAccess struct {
	SpanValue gql.Span
	Base      Expr
	Property  string
	ID        ExprID
}

func (p *PropertyAccess) Span() gql.Span { return p.SpanValue }
func (*PropertyAccess) isExpr()          {}

// Unary is a prefix operator: `-x`, `NOT x`.
type Unary struct {
	SpanValue gql.Span
	Op        UnaryOp
	Operand   Expr
	ID        ExprID
}

type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	// UnaryIsNull/UnaryIsNotNull represent the postfix `x IS NULL` / `x IS
	// NOT NULL` forms; Operand is the left-hand expression being tested.
	UnaryIsNull
	UnaryIsNotNull
)

func (u *Unary) Span() gql.Span { return u.SpanValue }
func (*Unary) isExpr()          {}

// Binary is an infix operator application: arithmetic, comparison, `IN`,
// logical `AND/OR/XOR`, string `||`, or the `::` type-annotation operator.
type Binary struct {
	SpanValue gql.Span
	Op        BinaryOp
	Left      Expr
	Right     Expr
	ID        ExprID
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpIn
	OpAnd
	OpOr
	OpXor
	OpConcat   // ||
	OpTypeCast // ::
)

func (b *Binary) Span() gql.Span { return b.SpanValue }
func (*Binary) isExpr()          {}

// Call is a function, aggregate, or procedure-call expression. IsAggregate
// is set structurally at parse time by recognizing a known aggregate name
// (plus optional DISTINCT and `*` argument), per §4.3: "Aggregation is
// detected lexically... and recorded on the expression node" — this lets
// the validator detect mixed aggregation without re-parsing (§3 invariant).
type Call struct {
	SpanValue   gql.Span
	Name        string
	Args        []Expr
	Distinct    bool
	Star        bool // COUNT(*)
	IsAggregate bool
	ID          ExprID
}

func (c *Call) Span() gql.Span { return c.SpanValue }
func (*Call) isExpr()          {}

// CaseExpr is a CASE expression. If Operand is non-nil this is the
// "simple" CASE form (`CASE x WHEN v THEN ...`); otherwise each
// WhenClause.Cond is a standalone boolean condition.
type CaseExpr struct {
	SpanValue gql.Span
	Operand   Expr
	Whens     []WhenClause
	Else      Expr
	ID        ExprID
}

type WhenClause struct {
	Cond   Expr
	Result Expr
}

func (c *CaseExpr) Span() gql.Span { return c.SpanValue }
func (*CaseExpr) isExpr()          {}

// Cast is `CAST(x AS T)`. The result type is T unconditionally at
// inference time; cast feasibility is a separate validator check
// (§4.5 pass 4).
type Cast struct {
	SpanValue gql.Span
	Operand   Expr
	Target    TypeRef
	ID        ExprID
}

func (c *Cast) Span() gql.Span { return c.SpanValue }
func (*Cast) isExpr()          {}

// TypeRef names a type in source (as written after AS, ::, or in a
// type-reference production): a base keyword (STRING, INTEGER, ...) with
// optional LIST OF / parameterization.
type TypeRef struct {
	SpanValue gql.Span
	Name      string
	ListOf    *TypeRef
}

func (t TypeRef) Span() gql.Span { return t.SpanValue }

// ListLit, MapLit, RecordLit are the list/map/record constructor
// expressions (§3).
type ListLit struct {
	SpanValue gql.Span
	Elements  []Expr
	ID        ExprID
}

func (l *ListLit) Span() gql.Span { return l.SpanValue }
func (*ListLit) isExpr()          {}

type MapEntry struct {
	Key   string
	Value Expr
}

type MapLit struct {
	SpanValue gql.Span
	Entries   []MapEntry
	ID        ExprID
}

func (m *MapLit) Span() gql.Span { return m.SpanValue }
func (*MapLit) isExpr()          {}

type RecordLit struct {
	SpanValue gql.Span
	Fields    []MapEntry
	ID        ExprID
}

func (r *RecordLit) Span() gql.Span { return r.SpanValue }
func (*RecordLit) isExpr()          {}

// Index is `list[expr]` or `list[from..to]` slicing.
type Index struct {
	SpanValue gql.Span
	Base      Expr
	From      Expr
	To        Expr // non-nil only for a slice `[from..to]`
	ID        ExprID
}

func (i *Index) Span() gql.Span { return i.SpanValue }
func (*Index) isExpr()          {}

// SubqueryKind classifies a subquery expression: EXISTS (boolean),
// scalar (must return exactly one row/column), or list (collects rows
// into a list value).
type SubqueryKind int

const (
	SubqueryExists SubqueryKind = iota
	SubqueryScalar
	SubqueryList
)

// Subquery wraps a nested query used as an expression.
type Subquery struct {
	SpanValue gql.Span
	Kind      SubqueryKind
	Query     Node // *Query, kept as Node to avoid an import cycle with stmt.go's Query
	ID        ExprID
}

func (s *Subquery) Span() gql.Span { return s.SpanValue }
func (*Subquery) isExpr()          {}
