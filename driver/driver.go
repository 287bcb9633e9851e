package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
)

// ErrChartTooLarge is returned when the chart grows past WithMaxChartSize.
var ErrChartTooLarge = errors.New("chart exceeds maximum size")

// Candidate is an entry proposed for a span.
type Candidate struct {
	Entry       *entry.ChartEntry
	Probability float64
}

// Proposer produces the candidates of one span. All strictly shorter spans
// are finalized when Propose is called. Propose may be called concurrently
// for different spans of the same length.
type Proposer interface {
	Propose(ctx context.Context, c *ccgchart.Chart, span core.Span) ([]Candidate, error)
}

// ProposerFunc adapts a function to Proposer.
type ProposerFunc func(ctx context.Context, c *ccgchart.Chart, span core.Span) ([]Candidate, error)

// Propose implements Proposer.
func (f ProposerFunc) Propose(ctx context.Context, c *ccgchart.Chart, span core.Span) ([]Candidate, error) {
	return f(ctx, c, span)
}

// Stats summarizes a Fill.
type Stats struct {
	Proposed int
	Stored   int
	Rejected int
	Entries  int
	Duration time.Duration
}

// Fill populates c shortest spans first. Every span of one length is
// proposed, inserted and finalized before the next length starts, and the
// chart's terminal hook runs once, after the single-word spans. Longer spans
// mix lexical entries with combinations, so multi-word lexical entries (see
// CKY.MaxLexiconSpan) are added after the hook and only pass through the
// cost's per-entry Apply.
//
// With WithWorkers(n > 1), spans of the same length are filled concurrently;
// the chart's cost and metrics collector must then be safe for concurrent
// use. Cancellation is checked between spans.
func Fill(ctx context.Context, c *ccgchart.Chart, p Proposer, optFns ...Option) (Stats, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	t0 := time.Now()
	n := c.Size()
	perSpan := make([]Stats, n)

	var stats Stats
	for length := 1; length <= n; length++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		spans := n - length + 1
		clear(perSpan[:spans])

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.workers)
		for start := 0; start < spans; start++ {
			span := core.NewSpan(start, start+length-1)
			st := &perSpan[start]
			g.Go(func() error {
				return fillSpan(gctx, c, p, span, opts, st)
			})
		}
		if err := g.Wait(); err != nil {
			return stats, err
		}

		for _, st := range perSpan[:spans] {
			stats.Proposed += st.Proposed
			stats.Stored += st.Stored
			stats.Rejected += st.Rejected
		}

		if length == 1 {
			if err := c.ApplyTerminalHook(); err != nil {
				return stats, fmt.Errorf("terminal hook: %w", err)
			}
		}

		stats.Entries = c.TotalEntryCount()
		opts.logger.Debug("span length filled",
			"length", length,
			"spans", spans,
			"entries", stats.Entries,
		)
		if opts.maxChartSize > 0 && stats.Entries > opts.maxChartSize {
			return stats, fmt.Errorf("%w: %d entries after length %d", ErrChartTooLarge, stats.Entries, length)
		}
	}

	stats.Duration = time.Since(t0)
	return stats, nil
}

func fillSpan(ctx context.Context, c *ccgchart.Chart, p Proposer, span core.Span, opts options, st *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cands, err := p.Propose(ctx, c, span)
	if err != nil {
		return fmt.Errorf("propose %v: %w", span, err)
	}
	for _, cand := range cands {
		outcome, err := c.AddEntry(cand.Entry, cand.Probability, span.Start, span.End, opts.syntax)
		if err != nil {
			return err
		}
		st.Proposed++
		switch {
		case outcome == ccgchart.Rejected:
			st.Rejected++
		case outcome.Stored():
			st.Stored++
		}
	}
	return c.FinalizeSpan(span.Start, span.End)
}
