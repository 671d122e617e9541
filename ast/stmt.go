package ast

import gql "github.com/iso-gql/gqlfront/diag"

// Query is the Statement variant composed from an ordered sequence of
// primitive clauses (MATCH, LET, FOR, WHERE/FILTER, ORDER BY,
// OFFSET/SKIP, LIMIT, GROUP BY, HAVING, RETURN, SELECT, CALL) sharing one
// rolling scope (§4.4: "A linear query introduces bindings from each
// primitive statement into a rolling scope visible to subsequent clauses
// in the same query"). UseGraph is non-nil for a focused query
// (`USE <graph> ...`).
type Query struct {
	SpanValue gql.Span
	UseGraph  Expr
	Clauses   []Clause
}

func (q *Query) Span() gql.Span { return q.SpanValue }
func (*Query) isStatement()     {}

// CompositeQuery is a UNION/EXCEPT/INTERSECT of two statements, each with
// an independent scope (§4.4: "UNION/EXCEPT/INTERSECT branches each have
// independent scopes").
type CompositeQuery struct {
	SpanValue gql.Span
	Op        SetOp
	All       bool // UNION ALL vs UNION (distinct)
	Left      Statement
	Right     Statement
}

type SetOp int

const (
	SetUnion SetOp = iota
	SetExcept
	SetIntersect
)

func (c *CompositeQuery) Span() gql.Span { return c.SpanValue }
func (*CompositeQuery) isStatement()     {}

// Clause is the closed union of primitive query clauses.
type Clause interface {
	Node
	isClause()
}

type MatchClause struct {
	SpanValue gql.Span
	Optional  bool
	Patterns  *PatternList
}

func (m *MatchClause) Span() gql.Span { return m.SpanValue }
func (*MatchClause) isClause()        {}

// FilterClause covers both WHERE and FILTER, which share grammar and
// semantics in this profile; Keyword records which spelling was used,
// purely for diagnostic text.
type FilterClause struct {
	SpanValue gql.Span
	Keyword   string
	Cond      Expr
}

func (f *FilterClause) Span() gql.Span { return f.SpanValue }
func (*FilterClause) isClause()        {}

type LetBinding struct {
	Name  Ident
	Value Expr
}

type LetClause struct {
	SpanValue gql.Span
	Bindings  []LetBinding
}

func (l *LetClause) Span() gql.Span { return l.SpanValue }
func (*LetClause) isClause()        {}

type ForClause struct {
	SpanValue gql.Span
	Binding   Ident
	Source    Expr
}

func (f *ForClause) Span() gql.Span { return f.SpanValue }
func (*ForClause) isClause()        {}

type OrderItem struct {
	Value Expr
	Desc  bool
}

type OrderByClause struct {
	SpanValue gql.Span
	Items     []OrderItem
}

func (o *OrderByClause) Span() gql.Span { return o.SpanValue }
func (*OrderByClause) isClause()        {}

type OffsetClause struct {
	SpanValue gql.Span
	Value     Expr
}

func (o *OffsetClause) Span() gql.Span { return o.SpanValue }
func (*OffsetClause) isClause()        {}

type LimitClause struct {
	SpanValue gql.Span
	Value     Expr
}

func (l *LimitClause) Span() gql.Span { return l.SpanValue }
func (*LimitClause) isClause()        {}

type GroupByClause struct {
	SpanValue gql.Span
	Items     []Expr
}

func (g *GroupByClause) Span() gql.Span { return g.SpanValue }
func (*GroupByClause) isClause()        {}

type HavingClause struct {
	SpanValue gql.Span
	Cond      Expr
}

func (h *HavingClause) Span() gql.Span { return h.SpanValue }
func (*HavingClause) isClause()        {}

// ProjectionItem is one column of a RETURN/SELECT list: `expr [AS alias]`
// or the bare `*` wildcard.
type ProjectionItem struct {
	Star  bool
	Value Expr
	Alias *Ident
}

type ReturnClause struct {
	SpanValue gql.Span
	Distinct  bool
	Items     []ProjectionItem
}

func (r *ReturnClause) Span() gql.Span { return r.SpanValue }
func (*ReturnClause) isClause()        {}

type SelectClause struct {
	SpanValue gql.Span
	Distinct  bool
	Items     []ProjectionItem
}

func (s *SelectClause) Span() gql.Span { return s.SpanValue }
func (*SelectClause) isClause()        {}

// YieldItem is one `name [AS alias]` entry of a procedure's YIELD clause.
type YieldItem struct {
	Name  Ident
	Alias *Ident
}

// CallClause invokes a procedure, either by name (Procedure non-nil) or
// as an inline procedure body `CALL (v1,...) { subquery }` (InlineBody
// non-nil). Optional marks `OPTIONAL CALL`, distinct from `OPTIONAL
// MATCH` per the dispatch disambiguation in §4.3.
type CallClause struct {
	SpanValue  gql.Span
	Optional   bool
	Procedure  *Call
	InlineVars []Ident
	InlineBody *Query
	Yield      []YieldItem
}

func (c *CallClause) Span() gql.Span { return c.SpanValue }
func (*CallClause) isClause()        {}

// Mutation is the Statement variant for a MATCH (optional) plus one or
// more modifying sub-steps — SET, REMOVE, INSERT, DELETE/DETACH DELETE —
// parsed and represented as a single statement per §4.3's dispatch rule
// ("MATCH ... SET|REMOVE|DELETE|DETACH DELETE -> a single mutation
// statement containing the MATCH as a query sub-step, not two
// statements").
type Mutation struct {
	SpanValue gql.Span
	UseGraph  Expr
	Match     *MatchClause  // nil for an ambient mutation with no leading MATCH
	Filter    *FilterClause // WHERE/FILTER narrowing the preceding MATCH, if any
	Actions   []MutationAction
}

func (m *Mutation) Span() gql.Span { return m.SpanValue }
func (*Mutation) isStatement()     {}

// MutationAction is the closed union of modifying sub-steps.
type MutationAction interface {
	Node
	isMutationAction()
}

type SetItem struct {
	Target *PropertyAccess
	Value  Expr
}

type SetAction struct {
	SpanValue gql.Span
	Items     []SetItem
}

func (s *SetAction) Span() gql.Span { return s.SpanValue }
func (*SetAction) isMutationAction() {}

type RemoveAction struct {
	SpanValue gql.Span
	Targets   []*PropertyAccess
}

func (r *RemoveAction) Span() gql.Span  { return r.SpanValue }
func (*RemoveAction) isMutationAction() {}

// DeleteAction's operands must resolve to Node/Edge/Path bindings, not
// properties (§4.5 pass 7); that check belongs to the validator, not the
// AST, so Targets is plain Expr here.
type DeleteAction struct {
	SpanValue gql.Span
	Detach    bool
	Targets   []Expr
}

func (d *DeleteAction) Span() gql.Span  { return d.SpanValue }
func (*DeleteAction) isMutationAction() {}

type InsertAction struct {
	SpanValue gql.Span
	Patterns  *PatternList
}

func (i *InsertAction) Span() gql.Span  { return i.SpanValue }
func (*InsertAction) isMutationAction() {}

// SessionStatement covers a bare `SESSION ...` directive (e.g. graph/
// schema selection for the remainder of a session). This profile treats
// it as an opaque directive with an optional graph-ref expression.
type SessionStatement struct {
	SpanValue gql.Span
	GraphRef  Expr
}

func (s *SessionStatement) Span() gql.Span { return s.SpanValue }
func (*SessionStatement) isStatement()     {}

// TransactionStatement covers START TRANSACTION / COMMIT / ROLLBACK.
type TransactionStatement struct {
	SpanValue gql.Span
	Kind      TransactionKind
}

type TransactionKind int

const (
	TxStart TransactionKind = iota
	TxCommit
	TxRollback
)

func (t *TransactionStatement) Span() gql.Span { return t.SpanValue }
func (*TransactionStatement) isStatement()     {}

// CatalogStatement is CREATE/DROP/ALTER of a GRAPH, SCHEMA, or PROCEDURE.
type CatalogStatement struct {
	SpanValue  gql.Span
	Op         CatalogOp
	Object     CatalogObject
	Name       Ident
	GraphType  *GraphTypeSpec // populated for CREATE GRAPH ... (type spec)
}

type CatalogOp int

const (
	CatalogCreate CatalogOp = iota
	CatalogDrop
	CatalogAlter
)

type CatalogObject int

const (
	CatalogGraph CatalogObject = iota
	CatalogSchema
	CatalogProcedure
)

func (c *CatalogStatement) Span() gql.Span { return c.SpanValue }
func (*CatalogStatement) isStatement()     {}

// GraphTypeSpec is a graph-type specification attached to CREATE GRAPH:
// the node/edge type declarations that make up the graph's schema.
type GraphTypeSpec struct {
	SpanValue gql.Span
	NodeTypes []ElementTypeDecl
	EdgeTypes []ElementTypeDecl
}

func (g *GraphTypeSpec) Span() gql.Span { return g.SpanValue }

// ElementTypeDecl declares one node or edge type: its label set and
// property signatures.
type ElementTypeDecl struct {
	SpanValue gql.Span
	Labels    []string
	Parents   []string // parent types this type inherits properties from, in declaration order
	Props     []PropertyDecl
}

func (e ElementTypeDecl) Span() gql.Span { return e.SpanValue }

type PropertyDecl struct {
	Name     string
	Type     TypeRef
	Required bool
}
