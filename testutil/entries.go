package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/packed"
)

// Assign builds an assignment.
func Assign(v core.VarID, pred core.PredicateID, pos int) packed.Assignment {
	return packed.Assignment{Var: v, Predicate: pred, Position: pos}
}

// Dep builds an unfilled dependency.
func Dep(pred core.PredicateID, pos, arg int, obj core.VarID) packed.Unfilled {
	return packed.Unfilled{SubjectPredicate: pred, SubjectPosition: pos, Arg: arg, ObjectVar: obj}
}

// Terminal builds a terminal entry over [start, end] using DefaultLexicon.
func Terminal(tb testing.TB, syntax core.SyntaxID, start, end int, as ...packed.Assignment) *entry.ChartEntry {
	tb.Helper()
	st := entry.State{Syntax: syntax, Assignments: as}
	e, err := entry.NewTerminal(st, DefaultLexicon, []string{"w"}, core.NewSpan(start, end))
	require.NoError(tb, err)
	return e
}

// TerminalState builds a terminal entry from a full state.
func TerminalState(tb testing.TB, st entry.State, start, end int) *entry.ChartEntry {
	tb.Helper()
	e, err := entry.NewTerminal(st, DefaultLexicon, []string{"w"}, core.NewSpan(start, end))
	require.NoError(tb, err)
	return e
}

// Binary builds a binary entry combined with ForwardApplication.
func Binary(tb testing.TB, syntax core.SyntaxID, left, right entry.Ref, as ...packed.Assignment) *entry.ChartEntry {
	tb.Helper()
	st := entry.State{Syntax: syntax, Assignments: as}
	e, err := entry.NewBinary(st, left, right, nil, nil, ForwardApplication)
	require.NoError(tb, err)
	return e
}

// Ref builds a backpointer.
func Ref(start, end, index int) entry.Ref {
	return entry.Ref{Span: core.NewSpan(start, end), Index: index}
}
