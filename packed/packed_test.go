package packed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignment(t *testing.T) {
	a := Assignment{Var: 3, Predicate: 12345, Position: 17}
	v, err := EncodeAssignment(a)
	require.NoError(t, err)
	assert.Equal(t, a, DecodeAssignment(v))

	limits := Assignment{Var: MaxVar, Predicate: MaxPredicate, Position: MaxPosition}
	v, err = EncodeAssignment(limits)
	require.NoError(t, err)
	assert.Equal(t, limits, DecodeAssignment(v))
}

func TestUnfilled(t *testing.T) {
	u := Unfilled{SubjectPredicate: 7, SubjectPosition: 2, Arg: 1, ObjectVar: 4}
	v, err := EncodeUnfilled(u)
	require.NoError(t, err)
	assert.Equal(t, u, DecodeUnfilled(v))
}

func TestFilled(t *testing.T) {
	f := Filled{
		SubjectPredicate: MaxPredicate,
		SubjectPosition:  MaxPosition,
		Arg:              MaxArg,
		ObjectPredicate:  MaxPredicate,
		ObjectPosition:   MaxPosition,
	}
	v, err := EncodeFilled(f)
	require.NoError(t, err)
	assert.Equal(t, f, DecodeFilled(v))

	f = Filled{SubjectPredicate: 1, SubjectPosition: 0, Arg: 2, ObjectPredicate: 9, ObjectPosition: 5}
	v, err = EncodeFilled(f)
	require.NoError(t, err)
	assert.Equal(t, f, DecodeFilled(v))
}

func TestOverflow(t *testing.T) {
	_, err := EncodeAssignment(Assignment{Var: MaxVar + 1})
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = EncodeUnfilled(Unfilled{Arg: MaxArg + 1})
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = EncodeFilled(Filled{ObjectPosition: -1})
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = Assignments([]Assignment{{Predicate: 1}, {Predicate: MaxPredicate + 1}})
	assert.ErrorIs(t, err, ErrFieldOverflow)
}

func TestSlices(t *testing.T) {
	as := []Assignment{{Var: 0, Predicate: 1, Position: 0}, {Var: 1, Predicate: 2, Position: 1}}
	vs, err := Assignments(as)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, as[1], DecodeAssignment(vs[1]))

	us, err := UnfilledDeps(nil)
	require.NoError(t, err)
	assert.Empty(t, us)

	fs, err := FilledDeps([]Filled{{SubjectPredicate: 3, Arg: 1, ObjectPredicate: 4, ObjectPosition: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, DecodeFilled(fs[0]).ObjectPosition)
}
