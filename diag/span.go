// Package diag holds the source-span and diagnostic value records shared
// by every stage of the pipeline (lexer, parser, validator) and by the
// root package's public API. It is a leaf package deliberately: giving
// Span/Diagnostic their own import path lets token/ast/lexer/parser/
// validator depend on them without depending on the root package, which
// in turn is free to depend on all of them.
package diag

import "fmt"

// Span is a half-open byte range [Start, End) into a source string.
// Every token, AST node, and diagnostic label carries one. Spans refer to
// positions, never to AST node pointers, so trees stay free of back-edges.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span, clamping End down to Start if given out of order.
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}

	return Span{Start: start, End: end}
}

// Zero reports whether the span has zero width, as the Eof token's does.
func (s Span) Zero() bool {
	return s.Start == s.End
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether the byte offset off falls within s.
func (s Span) ContainsOffset(off int) bool {
	return s.Start <= off && off < s.End
}

// Overlaps reports whether s and other share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Cover returns the minimum span enclosing both s and other. Used by the
// parser to compute a parent node's span as the union of its surviving
// children after error recovery drops a sibling.
func (s Span) Cover(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End
	if other.End > end {
		end = other.End
	}

	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Slice returns the substring of source covered by s. Callers must ensure
// s was derived from source; out-of-range spans are clamped rather than
// causing a panic, since diagnostics must never crash a caller.
func (s Span) Slice(source string) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}

	if end > len(source) {
		end = len(source)
	}

	if start > end {
		start = end
	}

	return source[start:end]
}
