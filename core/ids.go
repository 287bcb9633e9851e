package core

import "fmt"

// SyntaxID is the interned id of a syntactic category.
// Ids are dense and owned by the grammar layer that interned them.
type SyntaxID int32

// PredicateID is the interned id of a semantic predicate (usually a word or
// lemma paired with a category).
type PredicateID int32

// VarID names a head-passing variable inside a syntactic category.
type VarID int32

// NoSyntax marks the absence of a syntactic category.
const NoSyntax SyntaxID = -1

// Span is a contiguous inclusive range of word indices.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end].
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of words covered by the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Contains reports whether o lies inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Valid reports whether the span is well-formed for a sentence of n words.
func (s Span) Valid(n int) bool {
	return 0 <= s.Start && s.Start <= s.End && s.End < n
}

// String returns a string representation of the Span.
func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)", s.Start, s.End)
}
