package driver

import (
	"context"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
)

// Item is a stored entry together with its location.
type Item struct {
	Ref         entry.Ref
	Entry       *entry.ChartEntry
	Probability float64
}

// CKY is a Proposer that looks up lexical entries for short spans and
// combines every pair of adjacent sub-span entries.
type CKY struct {
	// Lexicon returns the lexical candidates of a span. May be nil.
	Lexicon func(c *ccgchart.Chart, span core.Span) []Candidate
	// Combine returns the candidates derived from two adjacent entries.
	// May be nil.
	Combine func(left, right Item) []Candidate
	// MaxLexiconSpan is the longest span looked up in the lexicon.
	// Zero means 1. Fill runs the terminal hook before spans longer than
	// one word, so it never sees multi-word lexical entries.
	MaxLexiconSpan int
}

// Propose implements Proposer.
func (g *CKY) Propose(ctx context.Context, c *ccgchart.Chart, span core.Span) ([]Candidate, error) {
	var out []Candidate

	maxLex := g.MaxLexiconSpan
	if maxLex <= 0 {
		maxLex = 1
	}
	if g.Lexicon != nil && span.Len() <= maxLex {
		out = append(out, g.Lexicon(c, span)...)
	}
	if g.Combine == nil {
		return out, nil
	}

	for split := span.Start; split < span.End; split++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		left, err := items(c, core.NewSpan(span.Start, split))
		if err != nil {
			return nil, err
		}
		if len(left) == 0 {
			continue
		}
		right, err := items(c, core.NewSpan(split+1, span.End))
		if err != nil {
			return nil, err
		}
		for _, l := range left {
			for _, r := range right {
				out = append(out, g.Combine(l, r)...)
			}
		}
	}
	return out, nil
}

func items(c *ccgchart.Chart, span core.Span) ([]Item, error) {
	entries, err := c.Entries(span.Start, span.End)
	if err != nil {
		return nil, err
	}
	probs, err := c.Probabilities(span.Start, span.End)
	if err != nil {
		return nil, err
	}
	out := make([]Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Ref: entry.Ref{Span: span, Index: i}, Entry: e, Probability: probs[i]}
	}
	return out, nil
}
