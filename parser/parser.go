// Package parser implements a hand-written predictive recursive-descent
// parser for GQL: tokens in, an AST out, with bounded lookahead and two
// combined error-recovery strategies (anchor synchronization and partial
// nodes). There is no backtracking — grammar rules are chosen
// deterministically from a token window (§4.3).
//
// The navigation primitives (peek/peek_kind/peek_nth/advance/at/at_any/
// is_eof/consume/expect/match_keyword) are grounded directly on
// original_source/src/parser/primitives.rs, down to the
// "out-of-bounds peek_nth returns the last token" and "consume never
// emits a diagnostic, expect always does on mismatch" behaviors. The
// surrounding state-machine style (a struct walking a token slice with
// scan-one-construct-per-method organization) follows rlch-scaf's
// lexer.go/parser.go texture, generalized from a participle-grammar
// parser to a hand-written one.
package parser

import (
	gql "github.com/iso-gql/gqlfront/diag"
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/lexer"
	"github.com/iso-gql/gqlfront/token"
)

// defaultMaxDepth bounds recursive-descent nesting (expressions,
// patterns, inline procedure bodies) to guard against stack exhaustion
// on adversarial deeply-nested input (§5: "default >= 256").
const defaultMaxDepth = 256

// Result is the parser's contract output: `parse(tokens, source) ->
// {ast?, diagnostics}`.
type Result struct {
	Program     *ast.Program
	Diagnostics []gql.Diagnostic
}

// Parse tokenizes and parses source in one call, per §6's `parse(source)`
// top-level contract.
func Parse(source string) Result {
	lexRes := lexer.Tokenize(source)
	p := newParser(lexRes.Tokens, source)
	prog := p.parseProgram()

	diags := append([]gql.Diagnostic(nil), lexRes.Diagnostics...)
	diags = append(diags, p.diags...)

	return Result{Program: prog, Diagnostics: diags}
}

// ParseTokens parses an already-lexed token stream, for callers (tests,
// tools) that tokenized separately.
func ParseTokens(tokens []token.Token, source string) Result {
	p := newParser(tokens, source)
	prog := p.parseProgram()

	return Result{Program: prog, Diagnostics: p.diags}
}

type parser struct {
	tokens   []token.Token
	source   string
	current  int
	diags    []gql.Diagnostic
	maxDepth int
	depth    int
}

func newParser(tokens []token.Token, source string) *parser {
	if len(tokens) == 0 {
		// The lexer contract guarantees this never happens, but a parser
		// used directly on a hand-built slice (tests) must still not panic.
		tokens = []token.Token{{Kind: token.Eof}}
	}

	return &parser{tokens: tokens, source: source, maxDepth: defaultMaxDepth}
}

// peek returns the current token without consuming it. Never fails: past
// the end of the stream it returns the last token, which is always Eof.
func (p *parser) peek() token.Token {
	if p.current < len(p.tokens) {
		return p.tokens[p.current]
	}

	return p.tokens[len(p.tokens)-1]
}

func (p *parser) peekKind() token.Kind {
	return p.peek().Kind
}

// peekNth looks ahead n tokens without consuming. Out of bounds clamps
// to the last token (Eof).
func (p *parser) peekNth(n int) token.Token {
	idx := p.current + n
	if idx < 0 {
		idx = 0
	}

	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[idx]
}

// advance consumes the current token and returns it. Does not advance
// past the final (Eof) token.
func (p *parser) advance() token.Token {
	tok := p.peek()
	if p.current+1 < len(p.tokens) {
		p.current++
	}

	return tok
}

func (p *parser) at(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *parser) atAny(kinds ...token.Kind) bool {
	cur := p.peekKind()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}

	return false
}

func (p *parser) isEOF() bool {
	return p.at(token.Eof)
}

// consume consumes the current token if it matches kind. Returns ok=false
// without emitting a diagnostic on mismatch — callers that want a
// diagnostic should use expect instead.
func (p *parser) consume(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}

	return token.Token{}, false
}

// expect consumes the current token, expecting kind; on mismatch it
// emits a parse.expected-token diagnostic and returns ok=false without
// advancing.
func (p *parser) expect(kind token.Kind, context string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}

	p.expectedToken(kind, context)

	return token.Token{}, false
}

// expectClose is expect specialized for a closing delimiter (`)`, `}`,
// `]`): on mismatch it emits parse.unclosed-delimiter rather than the
// generic parse.expected-token, since an unclosed delimiter is its own
// diagnostic kind in the §7 taxonomy.
func (p *parser) expectClose(kind token.Kind, context string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}

	msg := "expected " + token.KindName(kind)
	if context != "" {
		msg += " " + context
	}

	found := p.peek()
	msg += ", found " + token.KindName(found.Kind)
	p.diags = append(p.diags, gql.NewDiagnostic("parse.unclosed-delimiter", msg, found.Span))

	return token.Token{}, false
}

// matchKeyword optionally consumes keyword kind; never emits a
// diagnostic.
func (p *parser) matchKeyword(kind token.Kind) (token.Token, bool) {
	return p.consume(kind)
}

func (p *parser) expectedToken(kind token.Kind, context string) {
	msg := "expected " + token.KindName(kind)
	if context != "" {
		msg += " " + context
	}

	found := p.peek()
	msg += ", found " + token.KindName(found.Kind)

	p.diags = append(p.diags, gql.NewDiagnostic("parse.expected-token", msg, found.Span))
}

func (p *parser) errorAt(code, msg string, span gql.Span) {
	p.diags = append(p.diags, gql.NewDiagnostic(code, msg, span))
}

// enterDepth increments the recursion counter and reports whether the
// caller may proceed; on exceeding maxDepth it emits a fatal
// parse.recursion-limit diagnostic. Callers must pair with exitDepth via
// defer.
func (p *parser) enterDepth() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorAt("parse.recursion-limit", "maximum nesting depth exceeded", p.peek().Span)
		return false
	}

	return true
}

func (p *parser) exitDepth() {
	p.depth--
}

func (p *parser) spanFrom(start int) gql.Span {
	return gql.NewSpan(start, p.prevEnd())
}

// prevEnd returns the end offset of the most recently consumed token.
func (p *parser) prevEnd() int {
	if p.current == 0 {
		return p.peek().Span.Start
	}

	return p.tokens[p.current-1].Span.End
}
