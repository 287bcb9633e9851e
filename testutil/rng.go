package testutil

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Probability returns a pseudo-random probability in (0, 1].
func (r *RNG) Probability() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 1 - r.rand.Float64()
}

// Terminal returns a terminal entry over span with a random category in
// [0, numSyntax) and a random head assignment.
func (r *RNG) Terminal(tb testing.TB, span core.Span, numSyntax int) *entry.ChartEntry {
	tb.Helper()
	syntax := core.SyntaxID(r.Intn(numSyntax))
	pred := core.PredicateID(r.Intn(16))
	return Terminal(tb, syntax, span.Start, span.End, Assign(0, pred, span.Start))
}

// TopK returns the k largest probabilities in descending order.
func TopK(probs []float64, k int) []float64 {
	sorted := append([]float64(nil), probs...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}
