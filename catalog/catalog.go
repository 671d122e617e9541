// Package catalog defines the MetadataProvider capability the validator
// consumes (§6): schema snapshots for property/label lookups and
// callable signatures for function/procedure validation. The core never
// owns a catalog; it borrows one for the duration of a single
// validate() call (§1 non-goal: "concrete metadata storage: the
// validator consumes a MetadataProvider interface supplied by the
// host").
package catalog

import (
	"errors"
	"fmt"

	"github.com/iso-gql/gqlfront/ir"
)

// CatalogError is returned by a MetadataProvider when it cannot resolve
// a graph reference or version, the way dialect.go's ErrUnknownDialect/
// ErrNoTransactionSupport are plain sentinel errors wrapped with
// fmt.Errorf("%w", ...) rather than a bespoke error hierarchy.
type CatalogError struct {
	GraphRef string
	Version  string
	Err      error
}

// ErrGraphNotFound is the sentinel wrapped by a provider that has no
// schema for the requested graph reference.
var ErrGraphNotFound = errors.New("catalog: graph not found")

func (e *CatalogError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("catalog: graph %q version %q: %v", e.GraphRef, e.Version, e.Err)
	}

	return fmt.Sprintf("catalog: graph %q: %v", e.GraphRef, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// PropertyMeta describes one declared property of a node or edge type.
type PropertyMeta struct {
	Name     string
	Type     ir.Type
	Required bool
}

// ConstraintKind classifies a structural constraint on an element type.
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
)

// Constraint names a constraint and the properties it covers.
type Constraint struct {
	Kind       ConstraintKind
	Properties []string
}

// ElementTypeMeta is the shared shape behind NodeTypeMeta/EdgeTypeMeta:
// a label, its own properties, an ordered list of parent type names
// (inheritance walks these in declaration order, first hit wins, per
// §6), and any structural constraints.
type ElementTypeMeta struct {
	Label       string
	Properties  []PropertyMeta
	Parents     []string
	Constraints []Constraint

	// resolve looks up a parent ElementTypeMeta by name; supplied by the
	// owning SchemaSnapshot so Property can walk the inheritance chain
	// without the meta itself holding a back-reference to the snapshot.
	resolve func(name string) (ElementTypeMeta, bool)
}

// Property looks up a property by name on this type, walking Parents in
// declaration order (first hit wins) if not found directly (§6: "a
// property lookup walks parents in declaration order; first hit wins").
func (m ElementTypeMeta) Property(name string) (PropertyMeta, bool) {
	for _, p := range m.Properties {
		if p.Name == name {
			return p, true
		}
	}

	if m.resolve == nil {
		return PropertyMeta{}, false
	}

	seen := map[string]bool{m.Label: true}

	return m.lookupParents(name, seen)
}

func (m ElementTypeMeta) lookupParents(name string, seen map[string]bool) (PropertyMeta, bool) {
	for _, parentName := range m.Parents {
		if seen[parentName] {
			continue
		}

		seen[parentName] = true

		parent, ok := m.resolve(parentName)
		if !ok {
			continue
		}

		for _, p := range parent.Properties {
			if p.Name == name {
				return p, true
			}
		}

		if hit, ok := parent.lookupParents(name, seen); ok {
			return hit, true
		}
	}

	return PropertyMeta{}, false
}

// NodeTypeMeta and EdgeTypeMeta are thin aliases distinguishing which
// half of SchemaSnapshot a meta came from; both share ElementTypeMeta's
// shape per §6 ("each meta exposes properties... and constraints").
type NodeTypeMeta = ElementTypeMeta
type EdgeTypeMeta = ElementTypeMeta

// SchemaSnapshot is a point-in-time view of one graph's node/edge type
// declarations (§6). Implementations are expected to be immutable once
// returned by GetSchemaSnapshot.
type SchemaSnapshot interface {
	NodeType(name string) (NodeTypeMeta, bool)
	EdgeType(name string) (EdgeTypeMeta, bool)
}

// StaticSchemaSnapshot is the straightforward map-backed SchemaSnapshot
// implementation adapters build; it wires each ElementTypeMeta's
// resolve callback to itself so Property's inheritance walk works.
type StaticSchemaSnapshot struct {
	Nodes map[string]NodeTypeMeta
	Edges map[string]EdgeTypeMeta
}

// NewStaticSchemaSnapshot builds a snapshot from node/edge type lists,
// wiring each meta's parent-resolution callback.
func NewStaticSchemaSnapshot(nodes, edges []ElementTypeMeta) *StaticSchemaSnapshot {
	s := &StaticSchemaSnapshot{
		Nodes: make(map[string]NodeTypeMeta, len(nodes)),
		Edges: make(map[string]EdgeTypeMeta, len(edges)),
	}

	for _, n := range nodes {
		n.resolve = s.NodeType
		s.Nodes[n.Label] = n
	}

	for _, e := range edges {
		e.resolve = s.EdgeType
		s.Edges[e.Label] = e
	}

	return s
}

func (s *StaticSchemaSnapshot) NodeType(name string) (NodeTypeMeta, bool) {
	m, ok := s.Nodes[name]
	return m, ok
}

func (s *StaticSchemaSnapshot) EdgeType(name string) (EdgeTypeMeta, bool) {
	m, ok := s.Edges[name]
	return m, ok
}

// CallableKind classifies what get_callable is resolving (§6: "kind ∈
// {Function, AggregateFunction, Procedure}").
type CallableKind int

const (
	CallableFunction CallableKind = iota
	CallableAggregateFunction
	CallableProcedure
)

// Param describes one parameter of a CallableSignature.
type Param struct {
	Name string
	Type ir.Type
}

// YieldColumn names one output column a procedure's YIELD clause may
// reference (§6: "YIELD names must be columns declared by the
// procedure's return signature").
type YieldColumn struct {
	Name string
	Type ir.Type
}

// CallableSignature describes one overload of a function/aggregate/
// procedure the validator can check a call against: arity, parameter
// types (for widening/Any/Null matching, §4.5 pass 4), and its result.
type CallableSignature struct {
	Name       string
	Kind       CallableKind
	Params     []Param
	Variadic   bool // Params[len-1] may repeat, e.g. COALESCE
	Returns    ir.Type
	YieldCols  []YieldColumn // Procedure only
}

// Accepts reports whether this signature's parameter list can be called
// with the given argument types, under §4.5 pass 4's widening rules
// (Int widens to Float; Any matches anything; Null matches anything).
func (sig CallableSignature) Accepts(args []ir.Type) bool {
	if sig.Variadic {
		if len(args) < len(sig.Params)-1 {
			return false
		}
	} else if len(args) != len(sig.Params) {
		return false
	}

	for i, arg := range args {
		var param ir.Type

		switch {
		case i < len(sig.Params):
			param = sig.Params[i].Type
		case sig.Variadic:
			param = sig.Params[len(sig.Params)-1].Type
		default:
			return false
		}

		if !paramAccepts(param, arg) {
			return false
		}
	}

	return true
}

func paramAccepts(param, arg ir.Type) bool {
	if param.IsAny() || arg.IsAny() || arg.IsNull() {
		return true
	}

	if param.Kind == arg.Kind {
		return true
	}

	if param.Kind == ir.Float && arg.Kind == ir.Int {
		return true
	}

	return false
}

// MetadataProvider is the capability the host supplies to the validator
// (§6). The core borrows it for one validate() call and never retains
// or mutates it; it must be safe for the host to share across goroutines
// externally, though the core itself calls it synchronously and never
// concurrently (§5).
type MetadataProvider interface {
	GetSchemaSnapshot(graphRef string, version string) (SchemaSnapshot, *CatalogError)
	GetCallable(name string, kind CallableKind) (CallableSignature, bool)
}
