// Package token defines the closed set of lexical token kinds for GQL
// source, and the case-insensitive keyword table the lexer consults to
// classify identifiers.
package token

import "github.com/alecthomas/participle/v2/lexer"

// Kind is a closed tagged union identifying what a Token is: a keyword,
// punctuator, literal, identifier, or one of the two sentinel kinds
// (Comment, Eof). It is defined in terms of participle's lexer.TokenType
// so kinds share participle's token-type space; the parser's bounded
// lookahead indexes the lexer's token slice, not a lexer.PeekingLexer.
type Kind = lexer.TokenType

// Eof is always the last token the lexer produces, with a zero-width
// span at the end of source.
const Eof Kind = lexer.EOF

// Comment is never emitted into a token stream; comments are stripped by
// the lexer. The kind exists only so diagnostics and tests can name it.
const Comment Kind = -(iota + 2)

// Structural and literal kinds.
const (
	Ident       Kind = iota - 100 // regular [A-Za-z_][A-Za-z0-9_]*
	DelimitedIdent                // `backtick quoted`
	Parameter                     // $name
	IntegerLit
	FloatLit
	StringLit
	DateLit
	TimeLit
	TimestampLit
	DurationLit
)

// Punctuators. Multi-character operators are lexed longest-match first.
const (
	Dot Kind = iota - 200 // .
	Comma
	Semi
	Colon
	ColonColon // ::
	DotDot     // ..
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Eq         // =
	Neq        // != or <>
	Lt
	Gt
	Le
	Ge
	Arrow      // ->
	LArrow     // <-
	PipePipe   // || (string concat)
	Pipe       // | (label disjunction)
	Amp        // & (label conjunction)
	Bang       // ! (label negation)
	TildeArrow // ~>
	ArrowTilde // <~
	Question
	Dollar
)

// Keyword kinds, grounded on original_source/src/lexer/keywords.rs's
// KEYWORD_MAP, extended with the session/transaction and catalog-DDL
// keywords the statement dispatch table in §4.3 requires.
const (
	Match Kind = iota - 400
	Where
	Return
	Create
	Delete
	Insert
	Set
	Remove
	With
	Call
	Yield
	Union
	Intersect
	Except
	Otherwise
	Optional
	Use
	At
	Next
	Finish
	Let
	For
	Filter
	Order
	By
	Asc
	Ascending
	Desc
	Descending
	Skip
	Limit
	Offset
	Select
	Distinct
	Group
	Having
	As
	From
	When
	Then
	Else
	End
	Case
	If
	Cast
	And
	Or
	Not
	Xor
	Is
	In
	Any
	All
	Some
	Exists
	Graph
	Node
	Edge
	Path
	Relationship
	Walk
	Trail
	Acyclic
	Simple
	Schema
	Catalog
	Drop
	Alter
	Property
	Label
	Date
	Time
	Timestamp
	Duration
	True
	False
	Null
	Unknown
	StringType
	Integer
	Float
	Boolean
	List
	Record
	Detach
	Nodetach
	Session
	Start
	Transaction
	Commit
	Rollback
	Procedure
	Table
	Value
	Type
	Of
)

// names gives every Kind a stable display name, used by String and by
// parser diagnostics ("expected RETURN, found ...").
var names = map[Kind]string{
	Eof: "Eof", Comment: "Comment",
	Ident: "Ident", DelimitedIdent: "DelimitedIdent", Parameter: "Parameter",
	IntegerLit: "IntegerLit", FloatLit: "FloatLit", StringLit: "StringLit",
	DateLit: "DateLit", TimeLit: "TimeLit", TimestampLit: "TimestampLit", DurationLit: "DurationLit",
	Dot: ".", Comma: ",", Semi: ";", Colon: ":", ColonColon: "::", DotDot: "..",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^",
	Eq: "=", Neq: "<>", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	Arrow: "->", LArrow: "<-", PipePipe: "||", Pipe: "|", Amp: "&", Bang: "!",
	TildeArrow: "~>", ArrowTilde: "<~", Question: "?", Dollar: "$",
	Match: "MATCH", Where: "WHERE", Return: "RETURN", Create: "CREATE", Delete: "DELETE",
	Insert: "INSERT", Set: "SET", Remove: "REMOVE", With: "WITH", Call: "CALL",
	Yield: "YIELD", Union: "UNION", Intersect: "INTERSECT", Except: "EXCEPT",
	Otherwise: "OTHERWISE", Optional: "OPTIONAL", Use: "USE", At: "AT", Next: "NEXT",
	Finish: "FINISH", Let: "LET", For: "FOR", Filter: "FILTER", Order: "ORDER", By: "BY",
	Asc: "ASC", Ascending: "ASCENDING", Desc: "DESC", Descending: "DESCENDING",
	Skip: "SKIP", Limit: "LIMIT", Offset: "OFFSET", Select: "SELECT", Distinct: "DISTINCT",
	Group: "GROUP", Having: "HAVING", As: "AS", From: "FROM", When: "WHEN", Then: "THEN",
	Else: "ELSE", End: "END", Case: "CASE", If: "IF", Cast: "CAST",
	And: "AND", Or: "OR", Not: "NOT", Xor: "XOR", Is: "IS", In: "IN",
	Any: "ANY", All: "ALL", Some: "SOME", Exists: "EXISTS",
	Graph: "GRAPH", Node: "NODE", Edge: "EDGE", Path: "PATH", Relationship: "RELATIONSHIP",
	Walk: "WALK", Trail: "TRAIL", Acyclic: "ACYCLIC", Simple: "SIMPLE",
	Schema: "SCHEMA", Catalog: "CATALOG", Drop: "DROP", Alter: "ALTER",
	Property: "PROPERTY", Label: "LABEL",
	Date: "DATE", Time: "TIME", Timestamp: "TIMESTAMP", Duration: "DURATION",
	True: "TRUE", False: "FALSE", Null: "NULL", Unknown: "UNKNOWN",
	StringType: "STRING", Integer: "INTEGER", Float: "FLOAT", Boolean: "BOOLEAN",
	List: "LIST", Record: "RECORD", Detach: "DETACH", Nodetach: "NODETACH",
	Session: "SESSION", Start: "START", Transaction: "TRANSACTION",
	Commit: "COMMIT", Rollback: "ROLLBACK", Procedure: "PROCEDURE",
	Table: "TABLE", Value: "VALUE", Type: "TYPE", Of: "OF",
}

// KindName returns the stable display name for k.
func KindName(k Kind) string {
	if k == Eof {
		return "Eof"
	}

	if name, ok := names[k]; ok {
		return name
	}

	return "Unknown"
}

// firstKeyword and lastKeyword bound the contiguous keyword range
// declared in the const block above (Match..Of); IsKeyword uses them
// instead of a membership table since the range is dense.
const (
	firstKeyword = Match
	lastKeyword  = Of
)

// IsKeyword reports whether k is one of the GQL keyword kinds (as
// opposed to a punctuator, literal, or identifier kind).
func IsKeyword(k Kind) bool {
	return k >= firstKeyword && k <= lastKeyword
}
