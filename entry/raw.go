package entry

import (
	"slices"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/grammar"
)

// Raw exposes an entry's packed fields for persistence.
type Raw struct {
	Syntax      core.SyntaxID
	UniqueVars  []core.VarID
	RootUnary   grammar.UnaryRule
	LeftUnary   grammar.UnaryRule
	RightUnary  grammar.UnaryRule
	Assignments []uint64
	Unfilled    []uint64
	Filled      []uint64

	Terminal   bool
	Span       core.Span
	Lexicon    grammar.LexiconEntry
	Trigger    []string
	Left       Ref
	Right      Ref
	Combinator grammar.Combinator
}

// Raw returns a copy of the entry's packed representation.
func (e *ChartEntry) Raw() Raw {
	return Raw{
		Syntax:      e.syntax,
		UniqueVars:  slices.Clone(e.uniqueVars),
		RootUnary:   e.rootUnary,
		LeftUnary:   e.leftUnary,
		RightUnary:  e.rightUnary,
		Assignments: slices.Clone(e.assignments),
		Unfilled:    slices.Clone(e.unfilled),
		Filled:      slices.Clone(e.filled),
		Terminal:    e.terminal,
		Span:        e.span,
		Lexicon:     e.lexicon,
		Trigger:     slices.Clone(e.trigger),
		Left:        e.left,
		Right:       e.right,
		Combinator:  e.combinator,
	}
}

// FromRaw rebuilds an entry from its packed representation. The head hash is
// recomputed.
func FromRaw(r Raw) *ChartEntry {
	e := &ChartEntry{
		syntax:      r.Syntax,
		uniqueVars:  slices.Clone(r.UniqueVars),
		rootUnary:   r.RootUnary,
		leftUnary:   r.LeftUnary,
		rightUnary:  r.RightUnary,
		assignments: slices.Clone(r.Assignments),
		unfilled:    slices.Clone(r.Unfilled),
		filled:      slices.Clone(r.Filled),
		terminal:    r.Terminal,
		span:        r.Span,
		lexicon:     r.Lexicon,
		trigger:     slices.Clone(r.Trigger),
		left:        r.Left,
		right:       r.Right,
		combinator:  r.Combinator,
	}
	slices.Sort(e.assignments)
	slices.Sort(e.unfilled)
	e.headHash = headHash(e.syntax, e.assignments, e.unfilled)
	return e
}
