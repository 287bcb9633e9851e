package cost

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
)

// Bracket is a span of a reference derivation together with the categories
// the reference assigns to it. A span rewritten by a unary rule carries both
// the input and the result category.
type Bracket struct {
	Span   core.Span
	Syntax []core.SyntaxID
}

// SyntacticAgreement scores entries by agreement with a reference derivation.
//
// An entry agrees when its span is a reference span, its category (and the
// input of its root unary rule) is allowed there, and any unary rule applied
// to a child produces a category allowed at the child's span. Agreeing
// entries receive Bonus; all others receive Penalty.
type SyntacticAgreement struct {
	n       int
	spans   *bitset.BitSet
	allowed map[core.Span][]core.SyntaxID
	bonus   float64
	penalty float64
}

// AgreementOption configures a SyntacticAgreement.
type AgreementOption func(*SyntacticAgreement)

// WithBonus sets the cost returned for agreeing entries. Default 0.
func WithBonus(bonus float64) AgreementOption {
	return func(a *SyntacticAgreement) {
		a.bonus = bonus
	}
}

// WithPenalty sets the cost returned for disagreeing entries.
// Default -Inf, which turns the agreement into a hard filter.
func WithPenalty(penalty float64) AgreementOption {
	return func(a *SyntacticAgreement) {
		a.penalty = penalty
	}
}

// NewSyntacticAgreement builds an agreement cost for a sentence of n words.
func NewSyntacticAgreement(n int, brackets []Bracket, opts ...AgreementOption) (*SyntacticAgreement, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cost: sentence length must be positive, got %d", n)
	}
	a := &SyntacticAgreement{
		n:       n,
		spans:   bitset.New(uint(n * n)),
		allowed: make(map[core.Span][]core.SyntaxID, len(brackets)),
		penalty: Reject,
	}
	for _, b := range brackets {
		if !b.Span.Valid(n) {
			return nil, fmt.Errorf("cost: bracket %s outside sentence of length %d", b.Span, n)
		}
		a.spans.Set(a.index(b.Span))
		for _, s := range b.Syntax {
			if !slices.Contains(a.allowed[b.Span], s) {
				a.allowed[b.Span] = append(a.allowed[b.Span], s)
			}
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *SyntacticAgreement) index(s core.Span) uint {
	return uint(s.Start*a.n + s.End)
}

func (a *SyntacticAgreement) allows(s core.Span, syntax core.SyntaxID) bool {
	if !s.Valid(a.n) || !a.spans.Test(a.index(s)) {
		return false
	}
	return slices.Contains(a.allowed[s], syntax)
}

// Agrees reports whether e at span agrees with the reference derivation.
func (a *SyntacticAgreement) Agrees(e *entry.ChartEntry, span core.Span) bool {
	if !a.allows(span, e.Syntax()) {
		return false
	}
	if r := e.RootUnary(); r != nil && !a.allows(span, r.Input()) {
		return false
	}
	if e.IsTerminal() {
		return true
	}
	if l := e.LeftUnary(); l != nil && !a.allows(e.Left().Span, l.Result()) {
		return false
	}
	if r := e.RightUnary(); r != nil && !a.allows(e.Right().Span, r.Result()) {
		return false
	}
	return true
}

// Apply implements Cost.
func (a *SyntacticAgreement) Apply(e *entry.ChartEntry, span core.Span, _ Context) float64 {
	if a.Agrees(e, span) {
		return a.bonus
	}
	return a.penalty
}

// Accept implements Filter.
func (a *SyntacticAgreement) Accept(e *entry.ChartEntry, span core.Span, _ Context) bool {
	return a.Agrees(e, span)
}

// ApplyToTerminals removes disagreeing terminal entries when the penalty is a
// hard rejection. Soft penalties leave the terminal layer untouched.
func (a *SyntacticAgreement) ApplyToTerminals(s SpanFilterer) error {
	if Accepts(a.penalty) {
		return nil
	}
	n := min(a.n, s.Size())
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			span := core.NewSpan(i, j)
			err := s.FilterSpan(i, j, func(e *entry.ChartEntry, _ float64) bool {
				return !e.IsTerminal() || a.Agrees(e, span)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
