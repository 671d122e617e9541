package gql

import "github.com/iso-gql/gqlfront/diag"

// Span is a half-open byte range [Start, End) into a source string. It is
// a re-export of diag.Span so that callers of the root package never need
// to import diag directly for the common case.
type Span = diag.Span

// NewSpan builds a Span, clamping End down to Start if given out of order.
func NewSpan(start, end int) Span {
	return diag.NewSpan(start, end)
}
