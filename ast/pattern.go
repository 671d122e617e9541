package ast

import gql "github.com/iso-gql/gqlfront/diag"

// PatternList is a non-empty, comma-separated sequence of path factors
// (§4.3: "a pattern is a non-empty sequence of path factors separated by
// `,`"). MATCH's connectivity check (§4.5 pass 3) walks this list.
type PatternList struct {
	SpanValue gql.Span
	Factors   []*PathFactor
}

func (p *PatternList) Span() gql.Span { return p.SpanValue }

// PathFactor is a node pattern optionally followed by
// (edge-pattern node-pattern)* — a single connected chain.
type PathFactor struct {
	SpanValue gql.Span
	Nodes     []*NodePattern // len(Nodes) == len(Edges)+1
	Edges     []*EdgePattern
}

func (p *PathFactor) Span() gql.Span   { return p.SpanValue }
func (*PathFactor) isPathFactorElement() {}

// NodePattern is `(binding? labelExpr? propertyFiller?)`. An unbound
// node (Binding == nil) is anonymous and never enters scope (§3 invariant).
type NodePattern struct {
	SpanValue gql.Span
	Binding   *Ident
	Labels    LabelExpr // nil if unlabeled
	Props     *MapLit   // property filler, nil if absent
}

func (n *NodePattern) Span() gql.Span { return n.SpanValue }

// EdgeDirection is the arrow direction of an edge pattern.
type EdgeDirection int

const (
	DirOutgoing EdgeDirection = iota // -[...]->
	DirIncoming                      // <-[...]-
	DirEither                        // -[...]-
)

// EdgePattern is `-[binding? labelExpr? quantifier? propertyFiller?]->`
// (direction varies; see EdgeDirection).
type EdgePattern struct {
	SpanValue  gql.Span
	Binding    *Ident
	Labels     LabelExpr
	Props      *MapLit
	Direction  EdgeDirection
	Quantifier *Quantifier // nil if the edge is unquantified
}

func (e *EdgePattern) Span() gql.Span { return e.SpanValue }

// Quantifier is an edge length range: `*`, `*<n>`, `*<m>..<n>`, `*<m>..`,
// `*..<n>`. Min defaults to 0, Max == -1 means unbounded. §4.5 pass 3
// checks Min <= Max when both are bounded.
type Quantifier struct {
	SpanValue gql.Span
	Min       int
	Max       int // -1 = unbounded
}

func (q *Quantifier) Span() gql.Span { return q.SpanValue }

// LabelExpr is the closed union for label-expression nodes: a leaf label
// name, or a conjunction/disjunction/negation of sub-expressions, with
// parser-enforced precedence `! > & > |` (§4.3).
type LabelExpr interface {
	Node
	isLabelExpr()
}

type LabelName struct {
	SpanValue gql.Span
	Name      string
}

func (l *LabelName) Span() gql.Span { return l.SpanValue }
func (*LabelName) isLabelExpr()     {}

type LabelAnd struct {
	SpanValue gql.Span
	Left      LabelExpr
	Right     LabelExpr
}

func (l *LabelAnd) Span() gql.Span { return l.SpanValue }
func (*LabelAnd) isLabelExpr()     {}

type LabelOr struct {
	SpanValue gql.Span
	Left      LabelExpr
	Right     LabelExpr
}

func (l *LabelOr) Span() gql.Span { return l.SpanValue }
func (*LabelOr) isLabelExpr()     {}

type LabelNot struct {
	SpanValue gql.Span
	Operand   LabelExpr
}

func (l *LabelNot) Span() gql.Span { return l.SpanValue }
func (*LabelNot) isLabelExpr()     {}
