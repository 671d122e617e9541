package token

import gql "github.com/iso-gql/gqlfront/diag"

// Token is `{ kind, span, text }` per the data model: a closed tagged
// union over keyword/punctuator/literal/identifier kinds, plus Comment
// (never emitted) and Eof (always last, zero-width span at end of
// source).
type Token struct {
	Kind Kind
	Span gql.Span
	Text string
}

// IsEOF reports whether t is the terminal Eof token.
func (t Token) IsEOF() bool {
	return t.Kind == Eof
}

// String renders t for diagnostics and test failure output.
func (t Token) String() string {
	if t.Kind == Eof {
		return "<eof>"
	}

	return KindName(t.Kind) + " " + t.Text
}
