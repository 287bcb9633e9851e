package ccgchart

import (
	"fmt"
	"time"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/internal/queue"
)

// DecodeBest returns the highest-probability parse of the span, or nil if
// the span is empty.
func (c *Chart) DecodeBest(start, end int) (*Parse, error) {
	parses, err := c.DecodeKBest(start, end, 1)
	if err != nil || len(parses) == 0 {
		return nil, err
	}
	return parses[0], nil
}

// DecodeKBest returns up to k parses of the span in non-increasing order of
// stored probability. Stored entries are not reordered.
func (c *Chart) DecodeKBest(start, end, k int) (parses []*Parse, err error) {
	defer c.observeDecode(core.NewSpan(start, end), k, time.Now(), &parses, &err)

	if k <= 0 {
		return nil, ErrInvalidK
	}
	s, err := c.read(start, end)
	if err != nil || s == nil || s.Len() == 0 {
		return nil, err
	}

	k = min(k, s.Len())
	span := core.NewSpan(start, end)
	pq := queue.NewMin[int](k)
	for i, p := range s.Probabilities() {
		pq.PushItemBounded(i, p, k)
	}
	for _, i := range drainDescending(pq) {
		parses = append(parses, c.decode(entry.Ref{Span: span, Index: i}))
	}
	return parses, nil
}

// DecodeKBestSubspans returns up to k parses, in non-increasing order of
// stored probability, drawn from every span (i', j') with
// start <= i' <= j' <= end. It is used for fragment queries when no entry
// covers the whole sentence.
func (c *Chart) DecodeKBestSubspans(start, end, k int) (parses []*Parse, err error) {
	defer c.observeDecode(core.NewSpan(start, end), k, time.Now(), &parses, &err)

	if k <= 0 {
		return nil, ErrInvalidK
	}
	if _, err := c.index(start, end); err != nil {
		return nil, err
	}

	var stores []Store
	var spans []core.Span
	total := 0
	for i := start; i <= end; i++ {
		for j := i; j <= end; j++ {
			s, err := c.read(i, j)
			if err != nil {
				return nil, err
			}
			if s == nil || s.Len() == 0 {
				continue
			}
			stores = append(stores, s)
			spans = append(spans, core.NewSpan(i, j))
			total += s.Len()
		}
	}
	if total == 0 {
		return nil, nil
	}

	k = min(k, total)
	pq := queue.NewMin[entry.Ref](k)
	for n, s := range stores {
		span := spans[n]
		for idx, p := range s.Probabilities() {
			pq.PushItemBounded(entry.Ref{Span: span, Index: idx}, p, k)
		}
	}
	for _, ref := range drainDescending(pq) {
		parses = append(parses, c.decode(ref))
	}
	return parses, nil
}

// drainDescending empties a bounded min-heap through a max-heap and returns
// its values, best first.
func drainDescending[T any](pq *queue.PriorityQueue[T]) []T {
	best := queue.NewMax[T](pq.Len())
	for pq.Len() > 0 {
		v, score, _ := pq.PopItem()
		best.PushItem(v, score)
	}

	out := make([]T, 0, best.Len())
	for best.Len() > 0 {
		v, _, _ := best.PopItem()
		out = append(out, v)
	}
	return out
}

func (c *Chart) observeDecode(span core.Span, k int, t0 time.Time, parses *[]*Parse, err *error) {
	c.logger.LogDecode(span, k, len(*parses), *err)
	c.opts.metricsCollector.RecordDecode(k, len(*parses), time.Since(t0), *err)
}

// decode reconstructs the parse rooted at ref. A ref that does not resolve
// means the chart is inconsistent; decode panics with ErrCorruptChart.
func (c *Chart) decode(ref entry.Ref) *Parse {
	e, prob, ok := c.Entry(ref)
	if !ok {
		panic(fmt.Errorf("%w: no entry %d at span %v", ErrCorruptChart, ref.Index, ref.Span))
	}

	// the category before the root unary rule was applied
	syntax := e.Syntax()
	if ru := e.RootUnary(); ru != nil {
		syntax = ru.Input()
	}

	var node *Parse
	if e.IsTerminal() {
		sp := e.Span()
		if !sp.Valid(c.n) {
			panic(fmt.Errorf("%w: terminal span %v", ErrCorruptChart, sp))
		}
		node = &Parse{
			Syntax:      syntax,
			Span:        sp,
			Probability: prob,
			Lexicon:     e.Lexicon(),
			Words:       c.sentence.Words[sp.Start : sp.End+1],
			PosTags:     c.sentence.PosTags[sp.Start : sp.End+1],
			Trigger:     e.Trigger(),
			Assignments: e.Assignments(),
		}
	} else {
		left := c.decode(e.Left())
		right := c.decode(e.Right())
		// stored probabilities are cumulative over the derivation
		local := prob / (left.SubtreeProbability() * right.SubtreeProbability())
		node = &Parse{
			Syntax:      syntax,
			Span:        e.Span(),
			Probability: local,
			Combinator:  e.Combinator(),
			Left:        wrapUnary(left, e.LeftUnary()),
			Right:       wrapUnary(right, e.RightUnary()),
			FilledDeps:  e.FilledDeps(),
		}
	}
	if ru := e.RootUnary(); ru != nil {
		node = &Parse{
			Syntax:      e.Syntax(),
			Span:        node.Span,
			Probability: 1,
			Unary:       ru,
			Child:       node,
		}
	}
	return node
}

func wrapUnary(p *Parse, rule grammar.UnaryRule) *Parse {
	if rule == nil {
		return p
	}
	return &Parse{
		Syntax:      rule.Result(),
		Span:        p.Span,
		Probability: 1,
		Unary:       rule,
		Child:       p,
	}
}
