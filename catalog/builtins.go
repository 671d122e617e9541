package catalog

import (
	"strings"

	"github.com/iso-gql/gqlfront/ir"
)

// builtinFunctions and builtinAggregates are always available without a
// provider (§6: "built-in signatures are always available without a
// provider"). Grounded on the aggregate-name set the lexical detector in
// parser/expr.go recognizes, extended with the scalar functions the
// GLOSSARY and §4.5's type-inference rules name explicitly (CAST,
// arithmetic, and the aggregate result-type table).
var builtinAggregates = buildAggregates()

var builtinFunctions = buildFunctions()

func buildAggregates() map[string]CallableSignature {
	any := ir.Basic(ir.Any)

	return map[string]CallableSignature{
		"COUNT":       {Name: "COUNT", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: ir.Basic(ir.Int)},
		"SUM":         {Name: "SUM", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: any},
		"MIN":         {Name: "MIN", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: any},
		"MAX":         {Name: "MAX", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: any},
		"AVG":         {Name: "AVG", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: ir.Basic(ir.Float)},
		"COLLECT":     {Name: "COLLECT", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: ir.ListOf(any)},
		"STDDEV_SAMP": {Name: "STDDEV_SAMP", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: ir.Basic(ir.Float)},
		"STDDEV_POP":  {Name: "STDDEV_POP", Kind: CallableAggregateFunction, Params: []Param{{Name: "arg", Type: any}}, Returns: ir.Basic(ir.Float)},
	}
}

func buildFunctions() map[string]CallableSignature {
	any := ir.Basic(ir.Any)
	str := ir.Basic(ir.String)
	i := ir.Basic(ir.Int)
	f := ir.Basic(ir.Float)
	b := ir.Basic(ir.Boolean)

	return map[string]CallableSignature{
		"UPPER":      {Name: "UPPER", Kind: CallableFunction, Params: []Param{{Name: "s", Type: str}}, Returns: str},
		"LOWER":      {Name: "LOWER", Kind: CallableFunction, Params: []Param{{Name: "s", Type: str}}, Returns: str},
		"TRIM":       {Name: "TRIM", Kind: CallableFunction, Params: []Param{{Name: "s", Type: str}}, Returns: str},
		"CHAR_LENGTH": {Name: "CHAR_LENGTH", Kind: CallableFunction, Params: []Param{{Name: "s", Type: str}}, Returns: i},
		"SIZE":       {Name: "SIZE", Kind: CallableFunction, Params: []Param{{Name: "list", Type: any}}, Returns: i},
		"ABS":        {Name: "ABS", Kind: CallableFunction, Params: []Param{{Name: "n", Type: f}}, Returns: f},
		"CEIL":       {Name: "CEIL", Kind: CallableFunction, Params: []Param{{Name: "n", Type: f}}, Returns: i},
		"FLOOR":      {Name: "FLOOR", Kind: CallableFunction, Params: []Param{{Name: "n", Type: f}}, Returns: i},
		"COALESCE":   {Name: "COALESCE", Kind: CallableFunction, Params: []Param{{Name: "v", Type: any}}, Variadic: true, Returns: any},
		"ID":         {Name: "ID", Kind: CallableFunction, Params: []Param{{Name: "elem", Type: any}}, Returns: i},
		"LABELS":     {Name: "LABELS", Kind: CallableFunction, Params: []Param{{Name: "n", Type: ir.NodeType()}}, Returns: ir.ListOf(str)},
		"TYPE":       {Name: "TYPE", Kind: CallableFunction, Params: []Param{{Name: "e", Type: ir.EdgeType()}}, Returns: str},
		"EXISTS":     {Name: "EXISTS", Kind: CallableFunction, Params: []Param{{Name: "v", Type: any}}, Returns: b},
	}
}

// BuiltinAggregateSignature looks up a built-in aggregate function by
// name, in any casing.
func BuiltinAggregateSignature(name string) (CallableSignature, bool) {
	sig, ok := builtinAggregates[strings.ToUpper(name)]
	return sig, ok
}

// BuiltinFunctionSignature looks up a built-in scalar function by name,
// in any casing.
func BuiltinFunctionSignature(name string) (CallableSignature, bool) {
	sig, ok := builtinFunctions[strings.ToUpper(name)]
	return sig, ok
}

// IsBuiltinAggregateName reports whether name (any casing) names a
// built-in aggregate, mirroring parser/expr.go's aggregateNames set so
// the validator and parser agree on what counts as an aggregate.
func IsBuiltinAggregateName(name string) bool {
	_, ok := builtinAggregates[strings.ToUpper(name)]
	return ok
}
