package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/packed"
)

type lex struct{ id int32 }

func (l lex) ID() int32             { return l.id }
func (l lex) Words() []string       { return []string{"dogs"} }
func (l lex) Syntax() core.SyntaxID { return 1 }

type unary struct{ id int32 }

func (u unary) ID() int32             { return u.id }
func (u unary) Name() string          { return "N->NP" }
func (u unary) Input() core.SyntaxID  { return 1 }
func (u unary) Result() core.SyntaxID { return 2 }

type comb struct{}

func (comb) ID() int32    { return 0 }
func (comb) Name() string { return ">" }

func state(syntax core.SyntaxID, assignments []packed.Assignment, unfilled []packed.Unfilled) State {
	return State{Syntax: syntax, Assignments: assignments, Unfilled: unfilled}
}

func TestNewTerminal(t *testing.T) {
	st := State{
		Syntax:      1,
		UniqueVars:  []core.VarID{0},
		Assignments: []packed.Assignment{{Var: 0, Predicate: 5, Position: 0}},
		Filled:      []packed.Filled{{SubjectPredicate: 5, Arg: 1, ObjectPredicate: 6, ObjectPosition: 1}},
	}
	e, err := NewTerminal(st, lex{id: 3}, []string{"dogs"}, core.NewSpan(0, 0))
	require.NoError(t, err)

	assert.True(t, e.IsTerminal())
	assert.Equal(t, core.SyntaxID(1), e.Syntax())
	assert.Equal(t, core.NewSpan(0, 0), e.Span())
	assert.Equal(t, []string{"dogs"}, e.Trigger())
	assert.Equal(t, int32(3), e.Lexicon().ID())
	assert.Equal(t, st.Assignments, e.Assignments())
	assert.Equal(t, st.Filled, e.FilledDeps())
	assert.Empty(t, e.UnfilledDeps())
	assert.Nil(t, e.Combinator())
}

func TestNewTerminal_Overflow(t *testing.T) {
	st := state(1, []packed.Assignment{{Var: packed.MaxVar + 1}}, nil)
	_, err := NewTerminal(st, lex{}, nil, core.NewSpan(0, 0))
	assert.ErrorIs(t, err, packed.ErrFieldOverflow)
}

func TestNewBinary(t *testing.T) {
	left := Ref{Span: core.NewSpan(0, 0), Index: 2}
	right := Ref{Span: core.NewSpan(1, 2), Index: 0}
	e, err := NewBinary(state(3, nil, nil), left, right, unary{id: 1}, nil, comb{})
	require.NoError(t, err)

	assert.False(t, e.IsTerminal())
	assert.Equal(t, core.NewSpan(0, 2), e.Span())
	assert.Equal(t, left, e.Left())
	assert.Equal(t, right, e.Right())
	assert.Equal(t, ">", e.Combinator().Name())
	assert.NotNil(t, e.LeftUnary())
	assert.Nil(t, e.RightUnary())
	assert.Nil(t, e.Lexicon())
}

func TestApplyRootUnary(t *testing.T) {
	e, err := NewTerminal(state(1, nil, nil), lex{}, []string{"dogs"}, core.NewSpan(0, 0))
	require.NoError(t, err)

	n, err := e.ApplyRootUnary(unary{id: 4}, state(2, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, core.SyntaxID(1), e.Syntax(), "original entry is unchanged")
	assert.Nil(t, e.RootUnary())
	assert.Equal(t, core.SyntaxID(2), n.Syntax())
	assert.Equal(t, int32(4), n.RootUnary().ID())
	assert.True(t, n.IsTerminal())
	assert.Equal(t, e.Span(), n.Span())
	assert.NotEqual(t, e.HeadHash(), n.HeadHash())
}

func TestEquivalent(t *testing.T) {
	a1 := packed.Assignment{Var: 0, Predicate: 5, Position: 0}
	a2 := packed.Assignment{Var: 1, Predicate: 6, Position: 1}
	u1 := packed.Unfilled{SubjectPredicate: 5, SubjectPosition: 0, Arg: 1, ObjectVar: 1}
	u2 := packed.Unfilled{SubjectPredicate: 5, SubjectPosition: 0, Arg: 2, ObjectVar: 2}

	mk := func(st State) *ChartEntry {
		e, err := NewTerminal(st, lex{}, nil, core.NewSpan(0, 1))
		require.NoError(t, err)
		return e
	}

	base := mk(state(1, []packed.Assignment{a1, a2}, []packed.Unfilled{u1, u2}))

	t.Run("order insensitive", func(t *testing.T) {
		other := mk(state(1, []packed.Assignment{a2, a1}, []packed.Unfilled{u2, u1}))
		assert.True(t, Equivalent(base, other))
		assert.Equal(t, base.HeadHash(), other.HeadHash())
	})

	t.Run("different syntax", func(t *testing.T) {
		other := mk(state(2, []packed.Assignment{a1, a2}, []packed.Unfilled{u1, u2}))
		assert.False(t, Equivalent(base, other))
	})

	t.Run("different assignment position", func(t *testing.T) {
		moved := a2
		moved.Position = 3
		other := mk(state(1, []packed.Assignment{a1, moved}, []packed.Unfilled{u1, u2}))
		assert.False(t, Equivalent(base, other))
	})

	t.Run("different unfilled set", func(t *testing.T) {
		other := mk(state(1, []packed.Assignment{a1, a2}, []packed.Unfilled{u1}))
		assert.False(t, Equivalent(base, other))
	})

	t.Run("filled deps ignored", func(t *testing.T) {
		st := state(1, []packed.Assignment{a1, a2}, []packed.Unfilled{u1, u2})
		st.Filled = []packed.Filled{{SubjectPredicate: 1, ObjectPredicate: 2}}
		assert.True(t, Equivalent(base, mk(st)))
	})
}

func TestRaw(t *testing.T) {
	st := state(4,
		[]packed.Assignment{{Var: 1, Predicate: 9, Position: 2}, {Var: 0, Predicate: 3, Position: 1}},
		[]packed.Unfilled{{SubjectPredicate: 9, SubjectPosition: 2, Arg: 1, ObjectVar: 0}},
	)
	left := Ref{Span: core.NewSpan(0, 1), Index: 1}
	right := Ref{Span: core.NewSpan(2, 2), Index: 0}
	e, err := NewBinary(st, left, right, nil, unary{id: 2}, comb{})
	require.NoError(t, err)

	r := FromRaw(e.Raw())
	assert.True(t, Equivalent(e, r))
	assert.Equal(t, e.HeadHash(), r.HeadHash())
	assert.Equal(t, e.Left(), r.Left())
	assert.Equal(t, e.Right(), r.Right())
	assert.Equal(t, e.Span(), r.Span())
	assert.Equal(t, e.Assignments(), r.Assignments())
}
