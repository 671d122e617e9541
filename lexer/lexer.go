// Package lexer turns GQL source text into a token stream plus
// diagnostics. Tokenize is deterministic, total, and single-pass: it
// never returns an empty token list (Eof is always last) and never
// panics on malformed input, recovering instead by emitting a
// diagnostic and continuing.
//
// The scanning style is grounded on rlch-scaf's lexer.go: a lexerState
// walking a string by rune with byte-offset tracking, a
// token(kind, start) helper that slices the source, and per-construct
// scan* methods. Unlike the teacher, tokens here carry a gql.Span
// (byte offsets) rather than a participle lexer.Position, since the
// data model specifies spans as the primitive, with line/column
// derived on demand (see Locate in this package).
package lexer

import (
	"strings"
	"unicode/utf8"

	gql "github.com/iso-gql/gqlfront/diag"
	"github.com/iso-gql/gqlfront/token"
)

// Result is the lexer's contract output: `tokenize(source) -> {tokens,
// diagnostics}`.
type Result struct {
	Tokens      []token.Token
	Diagnostics []gql.Diagnostic
}

// Tokenize lexes source into a token stream. The returned slice always
// ends with exactly one Eof token whose span is [len(source), len(source)).
func Tokenize(source string) Result {
	l := &lexerState{input: source}

	var toks []token.Token

	for {
		tok, diag, done := l.next()
		if diag != nil {
			l.diags = append(l.diags, *diag)
		}

		if tok != nil {
			toks = append(toks, *tok)
		}

		if done {
			break
		}
	}

	return Result{Tokens: toks, Diagnostics: l.diags}
}

type lexerState struct {
	input string
	// offset is a byte offset into input; it is what every Span records.
	offset int
	diags  []gql.Diagnostic
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

func (l *lexerState) peekAt(n int) rune {
	off := l.offset
	for i := 0; i < n && off < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}

	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	return r
}

func (l *lexerState) match(s string) bool {
	return strings.HasPrefix(l.input[l.offset:], s)
}

func (l *lexerState) span(start int) gql.Span {
	return gql.NewSpan(start, l.offset)
}

func (l *lexerState) tok(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Span: l.span(start), Text: l.input[start:l.offset]}
}

// next produces the next token (or nil with a diagnostic-only step for
// stripped whitespace/comments), and reports done=true once Eof has been
// emitted.
func (l *lexerState) next() (*token.Token, *gql.Diagnostic, bool) {
	if l.eof() {
		t := token.Token{Kind: token.Eof, Span: gql.NewSpan(len(l.input), len(l.input))}
		return &t, nil, true
	}

	start := l.offset
	r := l.peek()

	if isSpace(r) {
		for !l.eof() && isSpace(l.peek()) {
			l.advance()
		}

		return nil, nil, false
	}

	if r == '/' && l.peekAt(1) == '/' {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

		return nil, nil, false
	}

	if r == '/' && l.peekAt(1) == '*' {
		return l.scanBlockComment(start)
	}

	if r == '`' {
		return l.scanDelimitedIdent(start)
	}

	if r == '\'' {
		return l.scanString(start)
	}

	if r == '$' {
		return l.scanParameter(start)
	}

	if isDigit(r) {
		return l.scanNumber(start)
	}

	if isIdentStart(r) {
		return l.scanIdentOrKeyword(start)
	}

	if tok, ok := l.scanMultiCharOp(start); ok {
		return &tok, nil, false
	}

	if kind, ok := singleCharKind(r); ok {
		l.advance()
		t := l.tok(kind, start)

		return &t, nil, false
	}

	l.advance()
	diag := gql.NewDiagnostic("lex.unrecognized-char", "unrecognized character", l.span(start))

	return nil, &diag, false
}

func (l *lexerState) scanBlockComment(start int) (*token.Token, *gql.Diagnostic, bool) {
	l.advance() // /
	l.advance() // *

	depth := 1
	for !l.eof() && depth > 0 {
		if l.match("/*") {
			l.advance()
			l.advance()
			depth++

			continue
		}

		if l.match("*/") {
			l.advance()
			l.advance()
			depth--

			continue
		}

		l.advance()
	}

	if depth > 0 {
		diag := gql.NewDiagnostic("lex.unterminated-comment", "unterminated block comment", l.span(start))
		return nil, &diag, false
	}

	return nil, nil, false
}

func (l *lexerState) scanDelimitedIdent(start int) (*token.Token, *gql.Diagnostic, bool) {
	l.advance() // opening `

	for !l.eof() {
		if l.peek() == '`' {
			l.advance()
			t := l.tok(token.DelimitedIdent, start)

			return &t, nil, false
		}

		if l.peek() == '\n' {
			break
		}

		l.advance()
	}

	t := l.tok(token.DelimitedIdent, start)
	diag := gql.NewDiagnostic("lex.unterminated-string", "unterminated delimited identifier", l.span(start))

	return &t, &diag, false
}

func (l *lexerState) scanString(start int) (*token.Token, *gql.Diagnostic, bool) {
	l.advance() // opening '

	var invalidEscape *gql.Diagnostic

	for !l.eof() {
		ch := l.peek()

		if ch == '\\' {
			escStart := l.offset
			l.advance() // backslash

			if l.eof() {
				break
			}

			esc := l.peek()
			switch esc {
			case '\\', '\'', '"', 'n', 'r', 't':
				l.advance()
			case 'u':
				l.advance()

				if l.peek() == '{' {
					l.advance()
					for !l.eof() && l.peek() != '}' {
						l.advance()
					}

					if l.peek() == '}' {
						l.advance()
					}
				}
			default:
				l.advance()

				if invalidEscape == nil {
					d := gql.NewDiagnostic("lex.invalid-escape", "invalid escape sequence", l.span(escStart))
					invalidEscape = &d
				}
			}

			continue
		}

		if ch == '\'' {
			l.advance()
			t := l.tok(token.StringLit, start)

			return &t, invalidEscape, false
		}

		if ch == '\n' {
			break
		}

		l.advance()
	}

	t := l.tok(token.StringLit, start)
	diag := gql.NewDiagnostic("lex.unterminated-string", "unterminated string literal", l.span(start))

	return &t, &diag, false
}

func (l *lexerState) scanParameter(start int) (*token.Token, *gql.Diagnostic, bool) {
	l.advance() // $

	if !isIdentStart(l.peek()) {
		diag := gql.NewDiagnostic("lex.unrecognized-char", "expected identifier after '$'", l.span(start))
		t := l.tok(token.Parameter, start)

		return &t, &diag, false
	}

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	t := l.tok(token.Parameter, start)

	return &t, nil, false
}

func (l *lexerState) scanIdentOrKeyword(start int) (*token.Token, *gql.Diagnostic, bool) {
	l.advance()

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	text := l.input[start:l.offset]

	if kind, ok := token.LookupKeyword(text); ok {
		if temporal, isTemporal := temporalKind(kind); isTemporal {
			return l.maybeScanTemporalLiteral(start, kind, temporal)
		}

		t := l.tok(kind, start)

		return &t, nil, false
	}

	t := l.tok(token.Ident, start)

	return &t, nil, false
}

// temporalKind maps the DATE/TIME/TIMESTAMP/DURATION keyword kind to its
// literal kind, used when that keyword is immediately followed by a
// quoted literal body (§4.2: "keywords DATE/TIME/TIMESTAMP/DURATION
// followed by a single-quoted literal body").
func temporalKind(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.Date:
		return token.DateLit, true
	case token.Time:
		return token.TimeLit, true
	case token.Timestamp:
		return token.TimestampLit, true
	case token.Duration:
		return token.DurationLit, true
	default:
		return 0, false
	}
}

// maybeScanTemporalLiteral looks past optional whitespace for a quoted
// body; if found, the keyword and the string body fuse into one
// temporal-literal token whose text is preserved verbatim (value
// validation is deferred, per the Design Notes' open question). If no
// quote follows, the keyword is returned plain — it is being used as a
// type name, e.g. `CAST(x AS DATE)`.
func (l *lexerState) maybeScanTemporalLiteral(start int, keywordKind, literalKind token.Kind) (*token.Token, *gql.Diagnostic, bool) {
	save := l.offset

	for !l.eof() && isSpace(l.peek()) {
		l.advance()
	}

	if l.peek() != '\'' {
		l.offset = save
		t := l.tok(keywordKind, start)

		return &t, nil, false
	}

	strTok, diag, _ := l.scanString(l.offset)
	if strTok == nil {
		l.offset = save
		t := l.tok(keywordKind, start)

		return &t, nil, false
	}

	t := token.Token{Kind: literalKind, Span: l.span(start), Text: l.input[start:l.offset]}

	return &t, diag, false
}

func (l *lexerState) scanNumber(start int) (*token.Token, *gql.Diagnostic, bool) {
	kind := token.IntegerLit

	var leadingUnderscore, trailingUnderscore bool

	l.scanDigitRun(&trailingUnderscore)

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = token.FloatLit

		l.advance() // .

		l.scanDigitRun(&trailingUnderscore)
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		kind = token.FloatLit

		l.advance()

		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}

		l.scanDigitRun(&trailingUnderscore)
	}

	text := l.input[start:l.offset]
	leadingUnderscore = strings.HasPrefix(text, "_")

	t := l.tok(kind, start)

	if leadingUnderscore || trailingUnderscore {
		diag := gql.NewDiagnostic("lex.invalid-number", "leading or trailing '_' digit separator", l.span(start))
		return &t, &diag, false
	}

	return &t, nil, false
}

// scanDigitRun consumes a run of digits and '_' separators, recording in
// *trailing whether the run ended on a separator (an error per §4.2).
func (l *lexerState) scanDigitRun(trailing *bool) {
	sawDigit := false

	for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
		if l.peek() == '_' {
			*trailing = sawDigit && !isDigit(l.peekAt(1))
		} else {
			sawDigit = true
		}

		l.advance()
	}
}

func (l *lexerState) scanMultiCharOp(start int) (token.Token, bool) {
	ops := []struct {
		text string
		kind token.Kind
	}{
		{"->", token.Arrow}, {"<-", token.LArrow}, {"<>", token.Neq},
		{"!=", token.Neq}, {"<=", token.Le}, {">=", token.Ge},
		{"||", token.PipePipe}, {"::", token.ColonColon}, {"..", token.DotDot},
		{"<~", token.ArrowTilde}, {"~>", token.TildeArrow},
	}

	for _, op := range ops {
		if l.match(op.text) {
			for range len(op.text) {
				l.advance()
			}

			return l.tok(op.kind, start), true
		}
	}

	return token.Token{}, false
}

func singleCharKind(r rune) (token.Kind, bool) {
	switch r {
	case '.':
		return token.Dot, true
	case ',':
		return token.Comma, true
	case ';':
		return token.Semi, true
	case ':':
		return token.Colon, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '/':
		return token.Slash, true
	case '%':
		return token.Percent, true
	case '^':
		return token.Caret, true
	case '=':
		return token.Eq, true
	case '<':
		return token.Lt, true
	case '>':
		return token.Gt, true
	case '|':
		return token.Pipe, true
	case '&':
		return token.Amp, true
	case '!':
		return token.Bang, true
	case '?':
		return token.Question, true
	case '$':
		return token.Dollar, true
	default:
		return 0, false
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
