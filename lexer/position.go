package lexer

import participlelexer "github.com/alecthomas/participle/v2/lexer"

// Locate derives a 1-based line/column for a byte offset into source, on
// demand. The Span data model keeps only byte offsets on the hot path;
// this is for diagnostic rendering by a host, not for anything the
// lexer/parser/validator consult internally.
//
// The return type is participle's lexer.Position, reusing its
// Filename/Offset/Line/Column shape rather than inventing a parallel one
// — the same type rlch-scaf's lexerState builds via its pos() method.
func Locate(source string, offset int) participlelexer.Position {
	if offset > len(source) {
		offset = len(source)
	}

	line, col := 1, 1

	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return participlelexer.Position{Offset: offset, Line: line, Column: col}
}
