package grammar

import (
	"testing"

	"github.com/hupe1980/ccgchart/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rule struct {
	id   int32
	name string
}

func (r *rule) ID() int32             { return r.id }
func (r *rule) Name() string          { return r.name }
func (r *rule) Input() core.SyntaxID  { return 0 }
func (r *rule) Result() core.SyntaxID { return 1 }

func TestMapRegistry(t *testing.T) {
	reg := NewMapRegistry()
	fa := &rule{id: 1, name: ">"}

	require.NoError(t, reg.AddCombinator(fa))
	require.NoError(t, reg.AddCombinator(fa))
	assert.Error(t, reg.AddCombinator(&rule{id: 1, name: "<"}))

	c, ok := reg.Combinator(1)
	require.True(t, ok)
	assert.Equal(t, ">", c.Name())

	_, ok = reg.Combinator(2)
	assert.False(t, ok)

	require.NoError(t, reg.AddUnaryRule(&rule{id: 7, name: "N->NP"}))
	u, ok := reg.UnaryRule(7)
	require.True(t, ok)
	assert.Equal(t, core.SyntaxID(1), u.Result())

	_, ok = reg.LexiconEntry(0)
	assert.False(t, ok)
}

func TestPlaceholder(t *testing.T) {
	var reg Registry = Placeholder{}

	c, ok := reg.Combinator(3)
	require.True(t, ok)
	assert.Equal(t, "combinator#3", c.Name())
	assert.Equal(t, int32(3), c.ID())

	u, ok := reg.UnaryRule(4)
	require.True(t, ok)
	assert.Equal(t, core.NoSyntax, u.Result())

	l, ok := reg.LexiconEntry(5)
	require.True(t, ok)
	assert.Nil(t, l.Words())
}
