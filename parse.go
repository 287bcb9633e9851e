package ccgchart

import (
	"strconv"
	"strings"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/cost"
	"github.com/hupe1980/ccgchart/dict"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/packed"
)

// Parse is a decoded derivation tree.
//
// A node is a terminal (Lexicon set), a binary combination (Left and Right
// set) or a unary rewrite (Child set). Probability is the node's local
// probability; the probability of a subtree is the product over its nodes.
type Parse struct {
	Syntax      core.SyntaxID
	Span        core.Span
	Probability float64

	// terminal
	Lexicon     grammar.LexiconEntry
	Words       []string
	PosTags     []string
	Trigger     []string
	Assignments []packed.Assignment

	// binary
	Combinator  grammar.Combinator
	Left, Right *Parse
	FilledDeps  []packed.Filled

	// unary
	Unary grammar.UnaryRule
	Child *Parse
}

// IsTerminal reports whether p is a leaf.
func (p *Parse) IsTerminal() bool { return p.Left == nil && p.Child == nil }

// IsUnary reports whether p is a unary rewrite of Child.
func (p *Parse) IsUnary() bool { return p.Child != nil }

// Children returns the direct subtrees of p, left to right.
func (p *Parse) Children() []*Parse {
	switch {
	case p.Child != nil:
		return []*Parse{p.Child}
	case p.Left != nil:
		return []*Parse{p.Left, p.Right}
	}
	return nil
}

// SubtreeProbability returns the product of local probabilities in p.
func (p *Parse) SubtreeProbability() float64 {
	prob := p.Probability
	for _, child := range p.Children() {
		prob *= child.SubtreeProbability()
	}
	return prob
}

// Yield returns the words covered by p.
func (p *Parse) Yield() []string {
	if p.IsTerminal() {
		return p.Words
	}
	var words []string
	for _, child := range p.Children() {
		words = append(words, child.Yield()...)
	}
	return words
}

// AllFilledDeps returns the dependencies filled anywhere in p.
func (p *Parse) AllFilledDeps() []packed.Filled {
	deps := append([]packed.Filled(nil), p.FilledDeps...)
	for _, child := range p.Children() {
		deps = append(deps, child.AllFilledDeps()...)
	}
	return deps
}

// Brackets returns the labeled spans of p in pre-order. Categories of a unary
// chain over one span are merged into one bracket. The result can be passed
// to cost.NewSyntacticAgreement.
func (p *Parse) Brackets() []cost.Bracket {
	var out []cost.Bracket
	seen := make(map[core.Span]int)
	var walk func(*Parse)
	walk = func(n *Parse) {
		if i, ok := seen[n.Span]; ok {
			out[i].Syntax = append(out[i].Syntax, n.Syntax)
		} else {
			seen[n.Span] = len(out)
			out = append(out, cost.Bracket{Span: n.Span, Syntax: []core.SyntaxID{n.Syntax}})
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(p)
	return out
}

// String renders p as a bracketed tree labeled with category ids.
func (p *Parse) String() string {
	return p.Format(nil)
}

// Format renders p as a bracketed tree, naming categories through syntax when
// it is non-nil.
func (p *Parse) Format(syntax *dict.Dictionary[string]) string {
	var sb strings.Builder
	p.format(&sb, syntax)
	return sb.String()
}

func (p *Parse) format(sb *strings.Builder, syntax *dict.Dictionary[string]) {
	sb.WriteByte('(')
	sb.WriteString(syntaxName(p.Syntax, syntax))
	if p.IsTerminal() {
		for _, w := range p.Words {
			sb.WriteByte(' ')
			sb.WriteString(w)
		}
	}
	for _, child := range p.Children() {
		sb.WriteByte(' ')
		child.format(sb, syntax)
	}
	sb.WriteByte(')')
}

func syntaxName(id core.SyntaxID, syntax *dict.Dictionary[string]) string {
	if syntax != nil {
		if name, ok := syntax.Value(int(id)); ok {
			return name
		}
	}
	return "#" + strconv.Itoa(int(id))
}
