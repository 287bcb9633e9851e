// Package cost defines how a chart scores and filters candidate entries.
//
// A Cost returns an additive log-cost for an entry at a span. The chart
// multiplies the entry's probability by exp(cost); a cost of -Inf rejects the
// entry. Boolean filters are costs restricted to {0, -Inf}.
package cost

import (
	"math"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/dict"
	"github.com/hupe1980/ccgchart/entry"
)

// Reject is the cost of a rejected entry.
var Reject = math.Inf(-1)

// Context is the sentence-level information available to a cost.
type Context struct {
	SentenceLength int
	// Syntax is the category dictionary of the grammar, borrowed from the
	// caller. It may be nil.
	Syntax *dict.Dictionary[string]
}

// Cost scores an entry proposed at span.
type Cost interface {
	Apply(e *entry.ChartEntry, span core.Span, c Context) float64
}

// Filter accepts or rejects an entry proposed at span.
type Filter interface {
	Accept(e *entry.ChartEntry, span core.Span, c Context) bool
}

// CostFunc adapts a function to Cost.
type CostFunc func(e *entry.ChartEntry, span core.Span, c Context) float64

// Apply implements Cost.
func (f CostFunc) Apply(e *entry.ChartEntry, span core.Span, c Context) float64 {
	return f(e, span, c)
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(e *entry.ChartEntry, span core.Span, c Context) bool

// Accept implements Filter.
func (f FilterFunc) Accept(e *entry.ChartEntry, span core.Span, c Context) bool {
	return f(e, span, c)
}

type filterCost struct {
	f Filter
}

// FromFilter turns f into a Cost returning 0 on accept and -Inf on reject.
// Terminal hooks implemented by f are preserved.
func FromFilter(f Filter) Cost {
	return filterCost{f: f}
}

func (fc filterCost) Apply(e *entry.ChartEntry, span core.Span, c Context) float64 {
	if fc.f.Accept(e, span, c) {
		return 0
	}
	return Reject
}

func (fc filterCost) ApplyToTerminals(s SpanFilterer) error {
	if h, ok := fc.f.(TerminalHook); ok {
		return h.ApplyToTerminals(s)
	}
	return nil
}

// Zero is the cost that accepts everything unchanged.
var Zero Cost = CostFunc(func(*entry.ChartEntry, core.Span, Context) float64 { return 0 })

// Accepts reports whether cost does not reject.
func Accepts(cost float64) bool {
	return !math.IsNaN(cost) && !math.IsInf(cost, -1)
}

// SpanFilterer is the part of a chart a terminal hook may modify.
type SpanFilterer interface {
	Size() int
	// FilterSpan keeps only the entries of span for which keep returns true.
	FilterSpan(start, end int, keep func(e *entry.ChartEntry, prob float64) bool) error
}

// TerminalHook is implemented by costs that restrict the terminal layer once,
// after lexicon lookup and before any combination.
type TerminalHook interface {
	ApplyToTerminals(s SpanFilterer) error
}
