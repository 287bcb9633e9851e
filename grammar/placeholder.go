package grammar

import (
	"fmt"

	"github.com/hupe1980/ccgchart/core"
)

// Placeholder is a Registry that fabricates opaque references for any id.
//
// It lets tools inspect a stored chart without the grammar that produced it.
// Unary rules resolved this way report NoSyntax for Input and Result.
type Placeholder struct{}

type placeholderRule struct {
	kind string
	id   int32
}

func (p placeholderRule) ID() int32             { return p.id }
func (p placeholderRule) Name() string          { return fmt.Sprintf("%s#%d", p.kind, p.id) }
func (p placeholderRule) Input() core.SyntaxID  { return core.NoSyntax }
func (p placeholderRule) Result() core.SyntaxID { return core.NoSyntax }
func (p placeholderRule) Words() []string       { return nil }
func (p placeholderRule) Syntax() core.SyntaxID { return core.NoSyntax }

// Combinator implements Registry.
func (Placeholder) Combinator(id int32) (Combinator, bool) {
	return placeholderRule{kind: "combinator", id: id}, true
}

// UnaryRule implements Registry.
func (Placeholder) UnaryRule(id int32) (UnaryRule, bool) {
	return placeholderRule{kind: "unary", id: id}, true
}

// LexiconEntry implements Registry.
func (Placeholder) LexiconEntry(id int32) (LexiconEntry, bool) {
	return placeholderRule{kind: "lexicon", id: id}, true
}
