// Package entry defines ChartEntry, the immutable record of one partial
// derivation stored in a chart cell.
package entry

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/packed"
)

// Ref points at an entry stored in another chart cell.
type Ref struct {
	Span  core.Span
	Index int
}

// State is the grammar state of a derivation: its category, variable
// bindings and dependencies.
type State struct {
	Syntax      core.SyntaxID
	UniqueVars  []core.VarID
	Assignments []packed.Assignment
	Unfilled    []packed.Unfilled
	Filled      []packed.Filled
}

// ChartEntry is one partial derivation. It is never mutated after
// construction; applying a rule produces a new entry.
//
// Assignments and unfilled dependencies are kept sorted by packed value, so
// equivalence and hashing do not depend on the order a combinator produced
// them in.
type ChartEntry struct {
	syntax     core.SyntaxID
	uniqueVars []core.VarID

	rootUnary  grammar.UnaryRule
	leftUnary  grammar.UnaryRule
	rightUnary grammar.UnaryRule

	assignments []uint64
	unfilled    []uint64
	filled      []uint64
	headHash    uint64

	terminal bool

	// terminal backpointers
	span    core.Span
	lexicon grammar.LexiconEntry
	trigger []string

	// binary backpointers
	left       Ref
	right      Ref
	combinator grammar.Combinator
}

// NewTerminal creates an entry produced by a lexicon lookup over span.
func NewTerminal(st State, lex grammar.LexiconEntry, trigger []string, span core.Span) (*ChartEntry, error) {
	e, err := newEntry(st)
	if err != nil {
		return nil, err
	}
	e.terminal = true
	e.span = span
	e.lexicon = lex
	e.trigger = slices.Clone(trigger)
	return e, nil
}

// NewBinary creates an entry produced by combining the entries at left and
// right. leftUnary and rightUnary, when non-nil, were applied to the
// respective child before combination.
func NewBinary(st State, left, right Ref, leftUnary, rightUnary grammar.UnaryRule, comb grammar.Combinator) (*ChartEntry, error) {
	e, err := newEntry(st)
	if err != nil {
		return nil, err
	}
	e.left = left
	e.right = right
	e.leftUnary = leftUnary
	e.rightUnary = rightUnary
	e.combinator = comb
	e.span = core.NewSpan(left.Span.Start, right.Span.End)
	return e, nil
}

// ApplyRootUnary returns a copy of e rewritten by rule into state st.
// Backpointers are shared with e.
func (e *ChartEntry) ApplyRootUnary(rule grammar.UnaryRule, st State) (*ChartEntry, error) {
	n, err := newEntry(st)
	if err != nil {
		return nil, err
	}
	n.rootUnary = rule
	n.leftUnary = e.leftUnary
	n.rightUnary = e.rightUnary
	n.terminal = e.terminal
	n.span = e.span
	n.lexicon = e.lexicon
	n.trigger = e.trigger
	n.left = e.left
	n.right = e.right
	n.combinator = e.combinator
	return n, nil
}

func newEntry(st State) (*ChartEntry, error) {
	assignments, err := packed.Assignments(st.Assignments)
	if err != nil {
		return nil, err
	}
	unfilled, err := packed.UnfilledDeps(st.Unfilled)
	if err != nil {
		return nil, err
	}
	filled, err := packed.FilledDeps(st.Filled)
	if err != nil {
		return nil, err
	}
	slices.Sort(assignments)
	slices.Sort(unfilled)

	e := &ChartEntry{
		syntax:      st.Syntax,
		uniqueVars:  slices.Clone(st.UniqueVars),
		assignments: assignments,
		unfilled:    unfilled,
		filled:      filled,
	}
	e.headHash = headHash(e.syntax, e.assignments, e.unfilled)
	return e, nil
}

func headHash(syntax core.SyntaxID, assignments, unfilled []uint64) uint64 {
	buf := make([]byte, 0, 8*(2+len(assignments)+len(unfilled)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(syntax))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(assignments)))
	for _, v := range assignments {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	for _, v := range unfilled {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	return xxhash.Sum64(buf)
}

// Syntax returns the entry's category, after any root unary rule.
func (e *ChartEntry) Syntax() core.SyntaxID { return e.syntax }

// UniqueVars returns the head-passing variables used for relabeling.
func (e *ChartEntry) UniqueVars() []core.VarID { return e.uniqueVars }

// RootUnary returns the unary rule applied at this entry, or nil.
func (e *ChartEntry) RootUnary() grammar.UnaryRule { return e.rootUnary }

// LeftUnary returns the unary rule applied to the left child, or nil.
func (e *ChartEntry) LeftUnary() grammar.UnaryRule { return e.leftUnary }

// RightUnary returns the unary rule applied to the right child, or nil.
func (e *ChartEntry) RightUnary() grammar.UnaryRule { return e.rightUnary }

// HeadHash is a hash over syntax, assignments and unfilled dependencies.
// Equivalent entries have equal hashes.
func (e *ChartEntry) HeadHash() uint64 { return e.headHash }

// IsTerminal reports whether the entry came from a lexicon lookup.
func (e *ChartEntry) IsTerminal() bool { return e.terminal }

// Span returns the words the entry covers.
func (e *ChartEntry) Span() core.Span { return e.span }

// Lexicon returns the lexicon entry of a terminal entry, or nil.
func (e *ChartEntry) Lexicon() grammar.LexiconEntry { return e.lexicon }

// Trigger returns the words that triggered the lexicon entry.
func (e *ChartEntry) Trigger() []string { return e.trigger }

// Left returns the left backpointer of a binary entry.
func (e *ChartEntry) Left() Ref { return e.left }

// Right returns the right backpointer of a binary entry.
func (e *ChartEntry) Right() Ref { return e.right }

// Combinator returns the combinator of a binary entry, or nil.
func (e *ChartEntry) Combinator() grammar.Combinator { return e.combinator }

// Assignments decodes the variable assignments.
func (e *ChartEntry) Assignments() []packed.Assignment {
	out := make([]packed.Assignment, len(e.assignments))
	for i, v := range e.assignments {
		out[i] = packed.DecodeAssignment(v)
	}
	return out
}

// UnfilledDeps decodes the unfilled dependencies.
func (e *ChartEntry) UnfilledDeps() []packed.Unfilled {
	out := make([]packed.Unfilled, len(e.unfilled))
	for i, v := range e.unfilled {
		out[i] = packed.DecodeUnfilled(v)
	}
	return out
}

// FilledDeps decodes the dependencies filled at this node.
func (e *ChartEntry) FilledDeps() []packed.Filled {
	out := make([]packed.Filled, len(e.filled))
	for i, v := range e.filled {
		out[i] = packed.DecodeFilled(v)
	}
	return out
}

// Equivalent reports whether a and b are interchangeable for the rest of the
// derivation: same category, same assignment set and same unfilled
// dependency set. Both sets compare full packed values, ignoring order.
func Equivalent(a, b *ChartEntry) bool {
	if a.headHash != b.headHash || a.syntax != b.syntax {
		return false
	}
	return slices.Equal(a.unfilled, b.unfilled) && slices.Equal(a.assignments, b.assignments)
}
