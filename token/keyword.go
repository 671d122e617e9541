package token

import "strings"

// keywordMap is the case-insensitive keyword table. Grounded directly on
// original_source/src/lexer/keywords.rs's KEYWORD_MAP, extended with the
// session/transaction/catalog keywords the statement dispatch table in
// the parser needs. Built once; the table is a process-wide immutable
// constant, never mutated after init.
var keywordMap = map[string]Kind{
	"MATCH": Match, "WHERE": Where, "RETURN": Return, "CREATE": Create,
	"DELETE": Delete, "INSERT": Insert, "SET": Set, "REMOVE": Remove,
	"WITH": With, "CALL": Call, "YIELD": Yield, "UNION": Union,
	"INTERSECT": Intersect, "EXCEPT": Except, "OTHERWISE": Otherwise,
	"OPTIONAL": Optional, "USE": Use, "AT": At, "NEXT": Next, "FINISH": Finish,
	"LET": Let, "FOR": For, "FILTER": Filter, "ORDER": Order, "BY": By,
	"ASC": Asc, "ASCENDING": Ascending, "DESC": Desc, "DESCENDING": Descending,
	"SKIP": Skip, "LIMIT": Limit, "OFFSET": Offset, "SELECT": Select,
	"DISTINCT": Distinct, "GROUP": Group, "HAVING": Having, "AS": As,
	"FROM": From, "WHEN": When, "THEN": Then, "ELSE": Else, "END": End,
	"CASE": Case, "IF": If, "CAST": Cast,

	"AND": And, "OR": Or, "NOT": Not, "XOR": Xor, "IS": Is, "IN": In,

	"ANY": Any, "ALL": All, "SOME": Some, "EXISTS": Exists,

	"GRAPH": Graph, "NODE": Node, "EDGE": Edge, "PATH": Path,
	"RELATIONSHIP": Relationship, "WALK": Walk, "TRAIL": Trail,
	"ACYCLIC": Acyclic, "SIMPLE": Simple,

	"SCHEMA": Schema, "CATALOG": Catalog, "DROP": Drop, "ALTER": Alter,
	"PROPERTY": Property, "LABEL": Label,

	"DATE": Date, "TIME": Time, "TIMESTAMP": Timestamp, "DURATION": Duration,

	"TRUE": True, "FALSE": False,

	"NULL": Null, "UNKNOWN": Unknown,

	"STRING": StringType, "INTEGER": Integer, "FLOAT": Float,
	"BOOLEAN": Boolean, "LIST": List, "RECORD": Record,

	"DETACH": Detach, "NODETACH": Nodetach,

	"SESSION": Session, "START": Start, "TRANSACTION": Transaction,
	"COMMIT": Commit, "ROLLBACK": Rollback, "PROCEDURE": Procedure,
	"TABLE": Table, "VALUE": Value, "TYPE": Type, "OF": Of,
}

// LookupKeyword looks up name (case-insensitive, ISO mandates this) and
// returns its Kind, or ok=false if name is a regular identifier.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywordMap[strings.ToUpper(name)]
	return k, ok
}

// IsKeywordName reports whether name is a keyword under any casing.
func IsKeywordName(name string) bool {
	_, ok := LookupKeyword(name)
	return ok
}

// Class classifies a keyword kind by how the parser may treat it in
// identifier position. The lexer is oblivious to this; only the parser
// consults it (§4.3: "the classification is consulted by the parser, not
// the lexer").
type Class int

const (
	// Reserved keywords are never identifiers unless delimited
	// (backtick-quoted).
	Reserved Class = iota
	// PreReserved ("future-reserved") words are accepted as identifiers
	// with an optional warning.
	PreReserved
	// NonReserved keywords are acceptable as identifiers wherever an
	// identifier is expected, with no warning.
	NonReserved
)

// nonReserved lists the keywords the grammar accepts as plain
// identifiers in identifier position — the exact set spec.md names as
// an example (GRAPH, TABLE, VALUE, NODE, EDGE), generalized to the
// other type-name and structural-noun keywords that play the same role
// in the ISO grammar.
var nonReserved = map[Kind]bool{
	Graph: true, Table: true, Value: true, Node: true, Edge: true,
	Path: true, Relationship: true, Schema: true, Catalog: true,
	Property: true, Label: true, Procedure: true, Type: true, Of: true,
	StringType: true, Integer: true, Float: true, Boolean: true,
	List: true, Record: true, Date: true, Time: true, Timestamp: true,
	Duration: true, At: true, Next: true, Finish: true, Otherwise: true,
	Nodetach: true, Unknown: true, Ascending: true, Descending: true,
}

// preReserved lists future-reserved path-mode keywords: legal identifiers
// today, but the parser may warn since a future grammar revision could
// reserve them.
var preReserved = map[Kind]bool{
	Walk: true, Trail: true, Acyclic: true, Simple: true,
}

// ClassOf returns the identifier-position classification of keyword kind
// k. Non-keyword kinds classify as Reserved (the conservative default);
// callers should guard with IsKeyword first if that distinction matters.
func ClassOf(k Kind) Class {
	if nonReserved[k] {
		return NonReserved
	}

	if preReserved[k] {
		return PreReserved
	}

	return Reserved
}
