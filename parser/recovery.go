package parser

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/token"
)

// statementStartKinds are the leading keywords the anchor-synchronization
// recovery strategy resyncs on (§4.3 "anchor synchronization": skip
// tokens until a statement-starting keyword or `;` or EOF, then resume).
var statementStartKinds = map[token.Kind]bool{
	token.Match: true, token.Optional: true, token.Use: true,
	token.Set: true, token.Remove: true, token.Insert: true,
	token.Delete: true, token.Detach: true,
	token.Create: true, token.Drop: true, token.Alter: true,
	token.Session: true, token.Start: true, token.Commit: true, token.Rollback: true,
	token.Call: true, token.Let: true, token.For: true, token.Filter: true,
	token.Return: true, token.Select: true,
}

// synchronize implements anchor synchronization: it records a diagnostic
// (if msg is non-empty) and skips tokens until a statement-starting
// keyword, `;`, or EOF, so the caller can resume at the next statement.
func (p *parser) synchronize(code, msg string) {
	start := p.peek().Span

	if msg != "" {
		p.errorAt(code, msg, start)
	}

	for !p.isEOF() && !p.at(token.Semi) && !statementStartKinds[p.peekKind()] {
		p.advance()
	}
}

// badNode builds a Bad placeholder node spanning from start to the
// current position, recording what was expected and what tokens were
// skipped to get here. Used at sub-rule recovery points — a missing
// closing `)`/`}`/`]` — so the parent can keep building a partial tree
// instead of abandoning it (§4.3 "partial nodes").
func (p *parser) badNode(expected string, start int) *ast.Bad {
	return &ast.Bad{SpanValue: p.spanFrom(start), Expected: expected}
}

// recoverToDelimiter skips tokens until one of the given closing
// delimiter kinds (or `;`/EOF) is reached, consuming the delimiter if
// found. Used after emitting a parse.unclosed-delimiter diagnostic so a
// single bad token inside `(...)`/`{...}`/`[...]` doesn't desynchronize
// the rest of the statement.
func (p *parser) recoverToDelimiter(kinds ...token.Kind) {
	for !p.isEOF() && !p.at(token.Semi) {
		for _, k := range kinds {
			if p.at(k) {
				p.advance()
				return
			}
		}

		p.advance()
	}
}
