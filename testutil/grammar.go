package testutil

import (
	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/grammar"
)

// Lexicon is a toy grammar.LexiconEntry.
type Lexicon struct {
	Id  int32
	Ws  []string
	Cat core.SyntaxID
}

func (l *Lexicon) ID() int32             { return l.Id }
func (l *Lexicon) Words() []string       { return l.Ws }
func (l *Lexicon) Syntax() core.SyntaxID { return l.Cat }

// Combinator is a toy grammar.Combinator.
type Combinator struct {
	Id int32
	N  string
}

func (c *Combinator) ID() int32    { return c.Id }
func (c *Combinator) Name() string { return c.N }

// Unary is a toy grammar.UnaryRule.
type Unary struct {
	Id  int32
	N   string
	In  core.SyntaxID
	Out core.SyntaxID
}

func (u *Unary) ID() int32             { return u.Id }
func (u *Unary) Name() string          { return u.N }
func (u *Unary) Input() core.SyntaxID  { return u.In }
func (u *Unary) Result() core.SyntaxID { return u.Out }

// Shared toy rules.
var (
	ForwardApplication  = &Combinator{Id: 0, N: ">"}
	BackwardApplication = &Combinator{Id: 1, N: "<"}
	TypeRaise           = &Unary{Id: 0, N: "N->NP", In: 0, Out: 1}
	DefaultLexicon      = &Lexicon{Id: 0, Ws: []string{"<unk>"}, Cat: 0}
)

// Registry returns a registry holding the shared toy rules plus extra.
func Registry(extra ...any) *grammar.MapRegistry {
	reg := grammar.NewMapRegistry()
	_ = reg.AddCombinator(ForwardApplication)
	_ = reg.AddCombinator(BackwardApplication)
	_ = reg.AddUnaryRule(TypeRaise)
	_ = reg.AddLexiconEntry(DefaultLexicon)
	for _, x := range extra {
		switch v := x.(type) {
		case grammar.LexiconEntry:
			_ = reg.AddLexiconEntry(v)
		case grammar.UnaryRule:
			_ = reg.AddUnaryRule(v)
		case grammar.Combinator:
			_ = reg.AddCombinator(v)
		}
	}
	return reg
}
