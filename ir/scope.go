// Scopes, bindings, and the type table: the validator's output data
// model per §4.4. Grounded on dialects/cypher/analyzer.go's
// variableBinding/queryContext walk (deleted from the tree, see
// DESIGN.md — its shape is adapted here into a general scope arena
// instead of one dialect's ad hoc map) and spec.md §4.4's nesting rules.
package ir

import gql "github.com/iso-gql/gqlfront/diag"

// ScopeID indexes a Scope within a ScopeTree's arena. Parent references
// are indices, not pointers, so the tree has no cyclic ownership (§9
// design note: "Scopes as an arena of nodes keyed by ScopeId").
type ScopeID int

// NoScope is the sentinel ScopeID that refers to no scope: a root
// scope's Parent, or a field that has not been assigned yet.
const NoScope ScopeID = -1

// BindingKind classifies what a name is bound to.
type BindingKind int

const (
	BindNode BindingKind = iota
	BindEdge
	BindPath
	BindValue
	BindGraph
	BindBindingTable
	BindParameter
	BindYieldOutput
)

func (k BindingKind) String() string {
	switch k {
	case BindNode:
		return "Node"
	case BindEdge:
		return "Edge"
	case BindPath:
		return "Path"
	case BindValue:
		return "Value"
	case BindGraph:
		return "Graph"
	case BindBindingTable:
		return "BindingTable"
	case BindParameter:
		return "Parameter"
	case BindYieldOutput:
		return "YieldOutput"
	default:
		return "Unknown"
	}
}

// Binding associates a declared identifier with its kind, declaration
// span, and (once inference runs) its type.
type Binding struct {
	Name        string
	Kind        BindingKind
	DeclaredAt  gql.Span
	Type        *Type // nil until type inference assigns one
}

// Scope holds the bindings declared directly within it, plus a parent
// link for upward lookup. Bindings is an ordered slice (not a map) so
// diagnostics iterate and report in declaration order (§9 design note).
type Scope struct {
	ID       ScopeID
	Parent   ScopeID // NoScope for a root scope
	Names    map[string]int // name -> index into Bindings
	Bindings []Binding
}

// ScopeTree is the arena of all scopes produced by one validation run.
type ScopeTree struct {
	scopes []*Scope
}

// NewScopeTree returns an empty tree; callers build it up via NewScope.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{}
}

// NewScope allocates a fresh scope with the given parent (NoScope for a
// root) and returns its ID.
func (t *ScopeTree) NewScope(parent ScopeID) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, &Scope{ID: id, Parent: parent, Names: make(map[string]int)})

	return id
}

// Scope returns the scope for id. Panics on an out-of-range id, which
// would indicate a validator bug (ids are assigned only by NewScope).
func (t *ScopeTree) Scope(id ScopeID) *Scope {
	return t.scopes[id]
}

// Scopes returns every scope in allocation order, for tooling that wants
// to walk the whole tree (e.g. an IDE's outline view).
func (t *ScopeTree) Scopes() []*Scope {
	return t.scopes
}

// Declare adds a binding directly to scope id, returning false if a
// binding of that name already exists in *this* scope (shadowing an
// outer scope's binding is fine and handled by the caller separately;
// this only guards same-scope duplicates per §4.5 pass 1).
func (t *ScopeTree) Declare(id ScopeID, b Binding) bool {
	s := t.scopes[id]
	if _, exists := s.Names[b.Name]; exists {
		return false
	}

	s.Names[b.Name] = len(s.Bindings)
	s.Bindings = append(s.Bindings, b)

	return true
}

// Lookup resolves name starting at scope id and walking up through
// parents, returning the nearest Binding found.
func (t *ScopeTree) Lookup(id ScopeID, name string) (Binding, bool) {
	for id != NoScope {
		s := t.scopes[id]
		if idx, ok := s.Names[name]; ok {
			return s.Bindings[idx], true
		}

		id = s.Parent
	}

	return Binding{}, false
}

// LookupLocal resolves name only within scope id itself, not its
// ancestors — used by duplicate-binding checks.
func (t *ScopeTree) LookupLocal(id ScopeID, name string) (Binding, bool) {
	s := t.scopes[id]
	if idx, ok := s.Names[name]; ok {
		return s.Bindings[idx], true
	}

	return Binding{}, false
}

// SetType updates the stored type of an existing binding, used once
// type inference (§4.5 pass 4) determines a Value binding's type.
func (t *ScopeTree) SetType(id ScopeID, name string, typ Type) {
	s := t.scopes[id]

	idx, ok := s.Names[name]
	if !ok {
		return
	}

	s.Bindings[idx].Type = &typ
}

// TypeTable maps each expression's stable ExprID to its inferred Type
// (§4.4: "TypeTable entries are keyed by stable ExprId assigned during
// validation"). Unresolved expressions map to Any, not absent — callers
// may rely on Get always succeeding.
type TypeTable struct {
	entries map[int]Type
}

// NewTypeTable returns an empty table.
func NewTypeTable() *TypeTable {
	return &TypeTable{entries: make(map[int]Type)}
}

// Set records the inferred type for id.
func (t *TypeTable) Set(id int, typ Type) {
	t.entries[id] = typ
}

// Get returns the type recorded for id, or Any if none was recorded.
func (t *TypeTable) Get(id int) Type {
	if typ, ok := t.entries[id]; ok {
		return typ
	}

	return Basic(Any)
}

// Len reports how many expressions have a recorded type.
func (t *TypeTable) Len() int {
	return len(t.entries)
}
