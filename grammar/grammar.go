// Package grammar declares the contracts of the grammar collaborators a chart
// stores references to.
//
// The chart never evaluates rules. It only keeps references so that decoded
// parses can report which combinator, unary rule or lexicon entry produced a
// node, and so that snapshots can persist those references by id.
package grammar

import (
	"fmt"
	"sync"

	"github.com/hupe1980/ccgchart/core"
)

// Combinator combines the derivations of two adjacent spans.
type Combinator interface {
	ID() int32
	Name() string
}

// UnaryRule rewrites a span's category without combination.
type UnaryRule interface {
	ID() int32
	Name() string
	// Input is the category the rule consumes.
	Input() core.SyntaxID
	// Result is the category the rule produces.
	Result() core.SyntaxID
}

// LexiconEntry is the lexicon item a terminal chart entry was looked up from.
type LexiconEntry interface {
	ID() int32
	Words() []string
	Syntax() core.SyntaxID
}

// Registry resolves persisted ids back to rule references.
type Registry interface {
	Combinator(id int32) (Combinator, bool)
	UnaryRule(id int32) (UnaryRule, bool)
	LexiconEntry(id int32) (LexiconEntry, bool)
}

// MapRegistry is a Registry backed by maps. Safe for concurrent use.
type MapRegistry struct {
	mu          sync.RWMutex
	combinators map[int32]Combinator
	unary       map[int32]UnaryRule
	lexicon     map[int32]LexiconEntry
}

// NewMapRegistry creates an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{
		combinators: make(map[int32]Combinator),
		unary:       make(map[int32]UnaryRule),
		lexicon:     make(map[int32]LexiconEntry),
	}
}

// AddCombinator registers c. Registering a different value under a used id fails.
func (r *MapRegistry) AddCombinator(c Combinator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.combinators[c.ID()]; ok && old != c {
		return fmt.Errorf("grammar: duplicate combinator id %d", c.ID())
	}
	r.combinators[c.ID()] = c
	return nil
}

// AddUnaryRule registers u.
func (r *MapRegistry) AddUnaryRule(u UnaryRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.unary[u.ID()]; ok && old != u {
		return fmt.Errorf("grammar: duplicate unary rule id %d", u.ID())
	}
	r.unary[u.ID()] = u
	return nil
}

// AddLexiconEntry registers l.
func (r *MapRegistry) AddLexiconEntry(l LexiconEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.lexicon[l.ID()]; ok && old != l {
		return fmt.Errorf("grammar: duplicate lexicon entry id %d", l.ID())
	}
	r.lexicon[l.ID()] = l
	return nil
}

// Combinator implements Registry.
func (r *MapRegistry) Combinator(id int32) (Combinator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.combinators[id]
	return c, ok
}

// UnaryRule implements Registry.
func (r *MapRegistry) UnaryRule(id int32) (UnaryRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.unary[id]
	return u, ok
}

// LexiconEntry implements Registry.
func (r *MapRegistry) LexiconEntry(id int32) (LexiconEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lexicon[id]
	return l, ok
}
