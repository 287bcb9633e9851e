package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	s := NewSpan(1, 3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "(1,3)", s.String())

	assert.True(t, s.Contains(NewSpan(1, 1)))
	assert.True(t, s.Contains(NewSpan(2, 3)))
	assert.False(t, s.Contains(NewSpan(0, 2)))

	assert.True(t, s.Valid(4))
	assert.False(t, s.Valid(3))
	assert.False(t, NewSpan(2, 1).Valid(4))
	assert.False(t, NewSpan(-1, 1).Valid(4))
}
