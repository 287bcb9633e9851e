package ccgchart

import (
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/cost"
	"github.com/hupe1980/ccgchart/dict"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/internal/bitset"
	"github.com/hupe1980/ccgchart/packed"
)

// maxSentenceLength is the longest sentence whose word positions fit the
// packed encoding.
const maxSentenceLength = packed.MaxPosition + 1

// Chart is a span-indexed table of partial derivations.
//
// A chart is filled by an outer driver, shortest spans first. Writes to one
// span must not run concurrently, but distinct spans may be filled from
// different goroutines once the spans they read are finalized (see package
// driver). Reads are safe concurrently with writes to other spans.
type Chart struct {
	sentence Sentence
	n        int
	policy   Policy

	// cells and counted are indexed by start*n+end. A nil cell has never
	// been written.
	cells   []Store
	counted []int
	total   atomic.Int64

	// finalized holds one bit per span of a finalizing policy. It is
	// cleared by AddEntry and set by FinalizeSpan and ClearSpan.
	finalized *bitset.BitSet

	tables tables
	opts   options
	logger *Logger
}

// New creates an empty chart for sentence, storing entries under policy.
func New(sentence Sentence, policy Policy, optFns ...Option) (*Chart, error) {
	if policy == nil {
		return nil, ErrNilPolicy
	}
	if err := sentence.validate(); err != nil {
		return nil, err
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	n := len(sentence.Words)
	return &Chart{
		sentence:  sentence,
		n:         n,
		policy:    policy,
		cells:     make([]Store, n*n),
		counted:   make([]int, n*n),
		finalized: bitset.New(uint64(n * n)),
		opts:      opts,
		logger:    opts.logger.WithPolicy(policy.Name()),
	}, nil
}

// Size returns the number of words in the sentence.
func (c *Chart) Size() int { return c.n }

// Policy returns the policy the chart stores entries under.
func (c *Chart) Policy() Policy { return c.policy }

// Sentence returns the sentence context. The slices alias the chart.
func (c *Chart) Sentence() Sentence { return c.sentence }

// Words returns the words of the sentence.
func (c *Chart) Words() []string { return c.sentence.Words }

// PosTags returns the part-of-speech tags of the sentence.
func (c *Chart) PosTags() []string { return c.sentence.PosTags }

// WordDistance returns the number of words between positions i and j.
func (c *Chart) WordDistance(i, j int) int { return c.sentence.WordDistances[i*c.n+j] }

// PuncDistance returns the number of punctuation tokens strictly between
// positions i and j.
func (c *Chart) PuncDistance(i, j int) int { return c.sentence.PuncDistances[i*c.n+j] }

// VerbDistance returns the number of verbs strictly between positions i and j.
func (c *Chart) VerbDistance(i, j int) int { return c.sentence.VerbDistances[i*c.n+j] }

func (c *Chart) index(start, end int) (int, error) {
	if !core.NewSpan(start, end).Valid(c.n) {
		return 0, spanError(start, end, c.n)
	}
	return start*c.n + end, nil
}

func (c *Chart) cell(idx int) Store {
	if c.cells[idx] == nil {
		c.cells[idx] = c.policy.NewStore()
	}
	return c.cells[idx]
}

// recount brings the running total in line with the store's length.
func (c *Chart) recount(idx int) {
	var l int
	if s := c.cells[idx]; s != nil {
		l = s.Len()
	}
	c.total.Add(int64(l - c.counted[idx]))
	c.counted[idx] = l
}

// AddEntry proposes e with probability prob at span (start, end).
//
// The configured cost is consulted first; the probability is multiplied by
// exp(cost). Proposals whose resulting probability is not finite and positive
// are rejected silently with the Rejected outcome. syntax is handed to the
// cost; when nil, the dictionary from WithSyntaxDictionary is used.
//
// For finalizing policies, AddEntry reopens the span: it must be finalized
// again before it is read.
func (c *Chart) AddEntry(e *entry.ChartEntry, prob float64, start, end int, syntax *dict.Dictionary[string]) (Outcome, error) {
	idx, err := c.index(start, end)
	if err != nil {
		return Rejected, err
	}
	if e == nil {
		return Rejected, ErrNilEntry
	}

	if !validProbability(prob) {
		c.opts.metricsCollector.RecordInsert(Rejected)
		return Rejected, nil
	}
	if c.opts.cost != nil {
		if syntax == nil {
			syntax = c.opts.syntax
		}
		cst := c.opts.cost.Apply(e, core.NewSpan(start, end), cost.Context{SentenceLength: c.n, Syntax: syntax})
		if !cost.Accepts(cst) {
			c.opts.metricsCollector.RecordInsert(Rejected)
			return Rejected, nil
		}
		if cst != 0 {
			prob *= math.Exp(cst)
		}
		if !validProbability(prob) {
			c.opts.metricsCollector.RecordInsert(Rejected)
			return Rejected, nil
		}
	}

	outcome := c.cell(idx).Insert(e, prob)
	if c.policy.RequiresFinalize() {
		c.finalized.Unset(uint64(idx))
	} else {
		c.recount(idx)
	}
	c.opts.metricsCollector.RecordInsert(outcome)
	return outcome, nil
}

func validProbability(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}

// FinalizeSpan makes the span readable. It is required after inserts for
// policies whose RequiresFinalize is true and harmless for the others. A span
// with no inserts since it was last finalized or restored is left as is.
func (c *Chart) FinalizeSpan(start, end int) error {
	idx, err := c.index(start, end)
	if err != nil {
		return err
	}
	if c.policy.RequiresFinalize() && c.finalized.Test(uint64(idx)) {
		return nil
	}
	s := c.cells[idx]
	if s == nil {
		c.finalized.Set(uint64(idx))
		return nil
	}

	t0 := time.Now()
	before := c.counted[idx]
	s.Finalize()
	c.finalized.Set(uint64(idx))
	c.recount(idx)
	d := time.Since(t0)

	c.logger.LogFinalize(core.NewSpan(start, end), before, s.Len(), d)
	c.opts.metricsCollector.RecordFinalize(s.Len(), d)
	return nil
}

// IsFinalized reports whether the span may be read.
func (c *Chart) IsFinalized(start, end int) bool {
	idx, err := c.index(start, end)
	if err != nil {
		return false
	}
	return c.readable(idx)
}

func (c *Chart) readable(idx int) bool {
	return c.cells[idx] == nil || !c.policy.RequiresFinalize() || c.finalized.Test(uint64(idx))
}

// read returns the store of a readable span, or nil if it was never written.
func (c *Chart) read(start, end int) (Store, error) {
	idx, err := c.index(start, end)
	if err != nil {
		return nil, err
	}
	if !c.readable(idx) {
		return nil, errors.Join(ErrSpanNotFinalized, spanError(start, end, c.n))
	}
	return c.cells[idx], nil
}

// Entries returns the entries stored at the span. The slice aliases the
// chart and must not be modified. An unpopulated span yields nil.
func (c *Chart) Entries(start, end int) ([]*entry.ChartEntry, error) {
	s, err := c.read(start, end)
	if err != nil || s == nil {
		return nil, err
	}
	return s.Entries(), nil
}

// Probabilities returns the probabilities parallel to Entries.
func (c *Chart) Probabilities(start, end int) ([]float64, error) {
	s, err := c.read(start, end)
	if err != nil || s == nil {
		return nil, err
	}
	return s.Probabilities(), nil
}

// EntryCount returns the number of entries stored at the span.
func (c *Chart) EntryCount(start, end int) (int, error) {
	s, err := c.read(start, end)
	if err != nil || s == nil {
		return 0, err
	}
	return s.Len(), nil
}

// EntriesForSyntax returns the indices of the span's entries whose category
// is syntax.
func (c *Chart) EntriesForSyntax(start, end int, syntax core.SyntaxID) ([]int, error) {
	s, err := c.read(start, end)
	if err != nil || s == nil {
		return nil, err
	}
	if si, ok := s.(SyntaxIndexed); ok {
		return si.IndicesForSyntax(int32(syntax)), nil
	}
	var out []int
	for i, e := range s.Entries() {
		if e.Syntax() == syntax {
			out = append(out, i)
		}
	}
	return out, nil
}

// Entry resolves a backpointer. ok is false if ref does not name a stored
// entry of a readable span.
func (c *Chart) Entry(ref entry.Ref) (e *entry.ChartEntry, prob float64, ok bool) {
	s, err := c.read(ref.Span.Start, ref.Span.End)
	if err != nil || s == nil || ref.Index < 0 || ref.Index >= s.Len() {
		return nil, 0, false
	}
	return s.Entries()[ref.Index], s.Probabilities()[ref.Index], true
}

// ClearSpan removes every entry of the span.
func (c *Chart) ClearSpan(start, end int) error {
	idx, err := c.index(start, end)
	if err != nil {
		return err
	}
	removed := c.counted[idx]
	if s := c.cells[idx]; s != nil {
		s.Reset()
	}
	c.finalized.Set(uint64(idx))
	c.recount(idx)
	c.logger.LogClear(core.NewSpan(start, end), removed)
	return nil
}

// FilterSpan keeps only the entries of the span for which keep returns true.
// The span is finalized first and again afterwards. Entry indices change, so
// FilterSpan must not be called on spans other entries already point into.
func (c *Chart) FilterSpan(start, end int, keep func(e *entry.ChartEntry, prob float64) bool) error {
	if err := c.FinalizeSpan(start, end); err != nil {
		return err
	}
	idx, _ := c.index(start, end)
	s := c.cells[idx]
	if s == nil {
		return nil
	}

	var (
		entries []*entry.ChartEntry
		probs   []float64
	)
	for i, e := range s.Entries() {
		p := s.Probabilities()[i]
		if keep(e, p) {
			entries = append(entries, e)
			probs = append(probs, p)
		}
	}
	if len(entries) == s.Len() {
		return nil
	}

	s.Reset()
	for i, e := range entries {
		s.Insert(e, probs[i])
	}
	s.Finalize()
	c.finalized.Set(uint64(idx))
	c.recount(idx)
	return nil
}

// ApplyTerminalHook runs the configured cost's terminal hook, if it has one.
// Call it once, after the terminal layer is populated and before any
// combination.
func (c *Chart) ApplyTerminalHook() error {
	h, ok := c.opts.cost.(cost.TerminalHook)
	if !ok {
		return nil
	}
	before := c.TotalEntryCount()
	err := h.ApplyToTerminals(c)
	c.logger.LogTerminalHook(before, c.TotalEntryCount(), err)
	return err
}

// TotalEntryCount returns the number of entries stored in the chart. For
// finalizing policies, only finalized contents are counted.
func (c *Chart) TotalEntryCount() int {
	return int(c.total.Load())
}

// RestoreSpan replaces the span's contents with entries and probs, keeping
// their order, and marks the span finalized. It is used to reload a chart,
// where backpointers rely on stored indices.
func (c *Chart) RestoreSpan(start, end int, entries []*entry.ChartEntry, probs []float64) error {
	idx, err := c.index(start, end)
	if err != nil {
		return err
	}
	if len(entries) != len(probs) {
		return &ErrLengthMismatch{Name: "probabilities", Expected: len(entries), Actual: len(probs)}
	}
	for _, p := range probs {
		if !validProbability(p) {
			return ErrInvalidProbability
		}
	}
	c.cell(idx).Restore(entries, probs)
	c.finalized.Set(uint64(idx))
	c.recount(idx)
	return nil
}

var _ cost.SpanFilterer = (*Chart)(nil)
