package driver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/cost"
	"github.com/hupe1980/ccgchart/dict"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/testutil"
)

const (
	np core.SyntaxID = 1
	vp core.SyntaxID = 2
	s  core.SyntaxID = 3
)

func newChart(t *testing.T, words []string, policy ccgchart.Policy, opts ...ccgchart.Option) *ccgchart.Chart {
	t.Helper()
	tags := make([]string, len(words))
	for i := range tags {
		tags[i] = "NN"
	}
	c, err := ccgchart.New(ccgchart.NewSentence(words, tags, nil, nil), policy, opts...)
	require.NoError(t, err)
	return c
}

// sentenceGrammar knows "dogs" (NP) and "bark" (S\NP) and one rule,
// NP S\NP => S.
func sentenceGrammar(t *testing.T) *CKY {
	return &CKY{
		Lexicon: func(c *ccgchart.Chart, span core.Span) []Candidate {
			pos := span.Start
			switch c.Words()[pos] {
			case "dogs":
				return []Candidate{{testutil.Terminal(t, np, pos, pos, testutil.Assign(0, 10, pos)), 0.6}}
			case "bark":
				return []Candidate{{testutil.Terminal(t, vp, pos, pos, testutil.Assign(0, 11, pos)), 0.7}}
			}
			return nil
		},
		Combine: func(left, right Item) []Candidate {
			if left.Entry.Syntax() != np || right.Entry.Syntax() != vp {
				return nil
			}
			e, err := entry.NewBinary(entry.State{
				Syntax:      s,
				Assignments: right.Entry.Assignments(),
			}, left.Ref, right.Ref, nil, nil, testutil.BackwardApplication)
			require.NoError(t, err)
			return []Candidate{{e, left.Probability * right.Probability}}
		},
	}
}

// ambiguousGrammar gives every word two categories and combines any pair.
func ambiguousGrammar(t *testing.T) *CKY {
	return &CKY{
		Lexicon: func(_ *ccgchart.Chart, span core.Span) []Candidate {
			pos := span.Start
			return []Candidate{
				{testutil.Terminal(t, 0, pos, pos, testutil.Assign(0, core.PredicateID(pos), pos)), 0.5},
				{testutil.Terminal(t, 1, pos, pos, testutil.Assign(0, core.PredicateID(pos+100), pos)), 0.25},
			}
		},
		Combine: func(left, right Item) []Candidate {
			syntax := (left.Entry.Syntax() + right.Entry.Syntax()) % 3
			head := left.Entry.Assignments()[0]
			e := testutil.Binary(t, syntax, left.Ref, right.Ref, head)
			return []Candidate{{e, left.Probability * right.Probability * 0.5}}
		},
	}
}

func TestFill(t *testing.T) {
	c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan())

	stats, err := Fill(context.Background(), c, sentenceGrammar(t))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Proposed)
	assert.Equal(t, 3, stats.Stored)
	assert.Equal(t, 3, stats.Entries)

	p, err := c.DecodeBest(0, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, s, p.Syntax)
	assert.Equal(t, []string{"dogs", "bark"}, p.Yield())
	assert.InDelta(t, 0.42, p.SubtreeProbability(), 1e-12)
}

func TestFill_FinalizesEverySpan(t *testing.T) {
	for _, policy := range []ccgchart.Policy{ccgchart.ApproxHashBucket(), ccgchart.ApproxSorted()} {
		t.Run(policy.Name(), func(t *testing.T) {
			c := newChart(t, []string{"a", "b", "c", "d"}, policy)
			_, err := Fill(context.Background(), c, ambiguousGrammar(t))
			require.NoError(t, err)

			for i := 0; i < 4; i++ {
				for j := i; j < 4; j++ {
					assert.True(t, c.IsFinalized(i, j))
				}
			}
			n, err := c.EntryCount(0, 3)
			require.NoError(t, err)
			assert.Positive(t, n)
		})
	}
}

func TestFill_ParallelMatchesSerial(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f"}
	for _, policy := range []ccgchart.Policy{ccgchart.Beam(3), ccgchart.ExactScan(), ccgchart.ApproxSorted()} {
		t.Run(policy.Name(), func(t *testing.T) {
			serial := newChart(t, words, policy)
			_, err := Fill(context.Background(), serial, ambiguousGrammar(t))
			require.NoError(t, err)

			parallel := newChart(t, words, policy)
			_, err = Fill(context.Background(), parallel, ambiguousGrammar(t), WithWorkers(4))
			require.NoError(t, err)

			assert.Equal(t, serial.TotalEntryCount(), parallel.TotalEntryCount())
			for i := range words {
				for j := i; j < len(words); j++ {
					sp, err := serial.Probabilities(i, j)
					require.NoError(t, err)
					pp, err := parallel.Probabilities(i, j)
					require.NoError(t, err)
					assert.Equal(t, sp, pp, "span (%d,%d)", i, j)
				}
			}
		})
	}
}

// dropSyntax is a cost whose terminal hook removes one category from the
// single-word spans.
type dropSyntax struct {
	syntax core.SyntaxID
	calls  int
}

func (d *dropSyntax) Apply(*entry.ChartEntry, core.Span, cost.Context) float64 { return 0 }

func (d *dropSyntax) ApplyToTerminals(s cost.SpanFilterer) error {
	d.calls++
	for i := 0; i < s.Size(); i++ {
		err := s.FilterSpan(i, i, func(e *entry.ChartEntry, _ float64) bool {
			return e.Syntax() != d.syntax
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func TestFill_TerminalHook(t *testing.T) {
	t.Run("Filters", func(t *testing.T) {
		hook := &dropSyntax{syntax: np}
		c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan(), ccgchart.WithCost(hook))
		stats, err := Fill(context.Background(), c, sentenceGrammar(t))
		require.NoError(t, err)
		assert.Equal(t, 1, hook.calls)
		assert.Equal(t, 1, stats.Entries)

		n, err := c.EntryCount(0, 1)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("MultiWordLexicalEntries", func(t *testing.T) {
		g := sentenceGrammar(t)
		words := g.Lexicon
		g.MaxLexiconSpan = 2
		g.Lexicon = func(c *ccgchart.Chart, span core.Span) []Candidate {
			if span.Len() == 2 {
				return []Candidate{{testutil.Terminal(t, np, span.Start, span.End), 0.5}}
			}
			return words(c, span)
		}

		hook := &dropSyntax{syntax: np}
		c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan(), ccgchart.WithCost(hook))
		_, err := Fill(context.Background(), c, g)
		require.NoError(t, err)
		assert.Equal(t, 1, hook.calls)

		// the hook ran before the two-word span was filled
		entries, err := c.Entries(0, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, np, entries[0].Syntax())
		assert.True(t, entries[0].IsTerminal())
	})

	t.Run("Agreement", func(t *testing.T) {
		gold, err := cost.NewSyntacticAgreement(2, []cost.Bracket{
			{Span: core.NewSpan(0, 0), Syntax: []core.SyntaxID{np}},
			{Span: core.NewSpan(1, 1), Syntax: []core.SyntaxID{vp}},
			{Span: core.NewSpan(0, 1), Syntax: []core.SyntaxID{s}},
		})
		require.NoError(t, err)

		c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan(), ccgchart.WithCost(gold))
		_, err = Fill(context.Background(), c, sentenceGrammar(t))
		require.NoError(t, err)

		p, err := c.DecodeBest(0, 1)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, s, p.Syntax)
	})
}

func TestFill_MaxChartSize(t *testing.T) {
	c := newChart(t, []string{"a", "b", "c"}, ccgchart.Append())
	stats, err := Fill(context.Background(), c, ambiguousGrammar(t), WithMaxChartSize(4))
	assert.ErrorIs(t, err, ErrChartTooLarge)
	assert.Equal(t, 6, stats.Entries)
}

func TestFill_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan())
	_, err := Fill(ctx, c, sentenceGrammar(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.TotalEntryCount())
}

func TestFill_ProposerError(t *testing.T) {
	boom := errors.New("boom")
	c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan())

	_, err := Fill(context.Background(), c, ProposerFunc(func(context.Context, *ccgchart.Chart, core.Span) ([]Candidate, error) {
		return nil, boom
	}), WithWorkers(2))
	assert.ErrorIs(t, err, boom)
}

func TestFill_Rejections(t *testing.T) {
	c := newChart(t, []string{"dogs"}, ccgchart.ExactScan())
	stats, err := Fill(context.Background(), c, ProposerFunc(func(_ context.Context, _ *ccgchart.Chart, span core.Span) ([]Candidate, error) {
		return []Candidate{
			{testutil.Terminal(t, np, 0, 0), 0},
			{testutil.Terminal(t, np, 0, 0), 0.5},
			{testutil.Terminal(t, np, 0, 0), 0.25},
		}, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Proposed)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Stored)
	assert.Equal(t, 1, stats.Entries)
}

func TestFill_Options(t *testing.T) {
	var buf bytes.Buffer
	logger := ccgchart.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	syntax := dict.New("N", "NP", `S\NP`, "S")

	var seen *dict.Dictionary[string]
	named := cost.CostFunc(func(_ *entry.ChartEntry, _ core.Span, ctx cost.Context) float64 {
		seen = ctx.Syntax
		return 0
	})

	c := newChart(t, []string{"dogs", "bark"}, ccgchart.ExactScan(), ccgchart.WithCost(named))
	_, err := Fill(context.Background(), c, sentenceGrammar(t), WithLogger(logger), WithSyntaxDictionary(syntax))
	require.NoError(t, err)

	assert.Same(t, syntax, seen)
	assert.Contains(t, buf.String(), `"msg":"span length filled"`)
	assert.Contains(t, buf.String(), `"length":2`)
}
