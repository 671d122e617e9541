// Package ir defines the validator's output data model: the scope tree,
// the expression type table, and the derived analyses (QueryInfo,
// PatternInfo, VariableDependencyGraph) that tooling consumes (§4.4).
package ir

import "strings"

// Kind is the closed set of GQL value kinds a Type can carry (§3's
// `Type ∈ {Int, Float, ..., Any}` enumeration), grounded directly on
// original_source/src/ir/type_table.rs's `Type` enum.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Boolean
	Date
	Time
	Timestamp
	Duration
	Node
	Edge
	Path
	List
	Record
	Union
	Null
	Any
)

// RecordField is one named field of a Record type.
type RecordField struct {
	Name string
	Type Type
}

// Type is a GQL value type. Most kinds carry no payload; List carries an
// element Type, Record a field list, Union a member list, and Node/Edge
// an optional label set (nil means "unlabeled", not "no labels
// possible" — see IsCompatibleWith).
type Type struct {
	Kind    Kind
	Labels  []string // Node/Edge only; nil = unlabeled
	Elem    *Type    // List only
	Fields  []RecordField
	Members []Type
}

func Basic(k Kind) Type { return Type{Kind: k} }

func NodeType(labels ...string) Type { return Type{Kind: Node, Labels: labels} }
func EdgeType(labels ...string) Type { return Type{Kind: Edge, Labels: labels} }

func ListOf(elem Type) Type { return Type{Kind: List, Elem: &elem} }

func RecordOf(fields ...RecordField) Type { return Type{Kind: Record, Fields: fields} }

func UnionOf(members ...Type) Type { return Type{Kind: Union, Members: members} }

func (t Type) IsNumeric() bool    { return t.Kind == Int || t.Kind == Float }
func (t Type) IsBoolean() bool    { return t.Kind == Boolean }
func (t Type) IsStringType() bool { return t.Kind == String }
func (t Type) IsNodeType() bool   { return t.Kind == Node }
func (t Type) IsEdgeType() bool   { return t.Kind == Edge }
func (t Type) IsPathType() bool   { return t.Kind == Path }
func (t Type) IsListType() bool   { return t.Kind == List }
func (t Type) IsNull() bool       { return t.Kind == Null }
func (t Type) IsAny() bool        { return t.Kind == Any }

// IsComparable reports whether t may appear on either side of `<, <=, >,
// >=` (§4.5 pass 4 "Comparisons and logicals → Boolean").
func (t Type) IsComparable() bool {
	switch t.Kind {
	case Int, Float, String, Boolean, Date, Time, Timestamp, Duration:
		return true
	default:
		return false
	}
}

// IsCompatibleWith decides assignment/comparison compatibility (used by
// §4.5 pass 8's UNION/EXCEPT/INTERSECT column check and pass 4's cast
// feasibility). Grounded on type_table.rs's `is_compatible_with`: same
// kind, Any on either side, Int/Float widening, Null on either side, and
// same-kind Node/Edge (regardless of differing labels) are all
// compatible.
func (t Type) IsCompatibleWith(other Type) bool {
	if t.equalShape(other) {
		return true
	}

	if t.Kind == Any || other.Kind == Any {
		return true
	}

	if (t.Kind == Int && other.Kind == Float) || (t.Kind == Float && other.Kind == Int) {
		return true
	}

	if t.Kind == Null || other.Kind == Null {
		return true
	}

	if t.Kind == Union {
		for _, m := range t.Members {
			if m.IsCompatibleWith(other) {
				return true
			}
		}

		return false
	}

	if other.Kind == Union {
		return other.IsCompatibleWith(t)
	}

	if t.Kind == Node && other.Kind == Node {
		return true
	}

	if t.Kind == Edge && other.Kind == Edge {
		return true
	}

	return false
}

// SameShape reports whether t and other are the exact same type (same
// kind, same Node/Edge labels, same List element) — stricter than
// IsCompatibleWith, which also allows widening. Record field lists and
// Union member lists are not compared: any two Records, or any two
// Unions, have the same shape.
func (t Type) SameShape(other Type) bool {
	return t.equalShape(other)
}

func (t Type) equalShape(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case List:
		if t.Elem == nil || other.Elem == nil {
			return t.Elem == other.Elem
		}

		return t.Elem.equalShape(*other.Elem)
	case Node, Edge:
		return sameLabels(t.Labels, other.Labels)
	default:
		return true
	}
}

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Name renders a human-readable type name for diagnostics, e.g.
// "List<Node:Person>".
func (t Type) Name() string {
	switch t.Kind {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case Timestamp:
		return "Timestamp"
	case Duration:
		return "Duration"
	case Node:
		if len(t.Labels) == 0 {
			return "Node"
		}

		return "Node:" + strings.Join(t.Labels, "|")
	case Edge:
		if len(t.Labels) == 0 {
			return "Edge"
		}

		return "Edge:" + strings.Join(t.Labels, "|")
	case Path:
		return "Path"
	case List:
		if t.Elem == nil {
			return "List<Any>"
		}

		return "List<" + t.Elem.Name() + ">"
	case Record:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ": " + f.Type.Name()
		}

		return "Record<" + strings.Join(parts, ", ") + ">"
	case Union:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.Name()
		}

		return "Union<" + strings.Join(parts, ", ") + ">"
	case Null:
		return "Null"
	default:
		return "Any"
	}
}
