package cost

import (
	"errors"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
)

// SumCost adds the costs of its children.
type SumCost struct {
	children []Cost
}

// Sum returns a cost adding all of costs. Nil costs are skipped.
func Sum(costs ...Cost) *SumCost {
	s := &SumCost{}
	for _, c := range costs {
		if c != nil {
			s.children = append(s.children, c)
		}
	}
	return s
}

// Apply implements Cost. Evaluation stops at the first rejecting child.
func (s *SumCost) Apply(e *entry.ChartEntry, span core.Span, c Context) float64 {
	total := 0.0
	for _, child := range s.children {
		v := child.Apply(e, span, c)
		if !Accepts(v) {
			return Reject
		}
		total += v
	}
	return total
}

// ApplyToTerminals forwards to every child implementing TerminalHook.
func (s *SumCost) ApplyToTerminals(sf SpanFilterer) error {
	var errs []error
	for _, child := range s.children {
		if h, ok := child.(TerminalHook); ok {
			errs = append(errs, h.ApplyToTerminals(sf))
		}
	}
	return errors.Join(errs...)
}
