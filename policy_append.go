package ccgchart

import "github.com/hupe1980/ccgchart/entry"

const appendName = "append"

type appendPolicy struct{}

// Append stores every accepted proposal, with no deduplication and no bound.
// It is meant for left-to-right incremental parsing, where the caller
// enforces a budget through Chart.TotalEntryCount and filters through a cost.
func Append() Policy { return appendPolicy{} }

func (appendPolicy) Name() string           { return appendName }
func (appendPolicy) RequiresFinalize() bool { return false }
func (appendPolicy) NewStore() Store        { return &appendStore{} }

type appendStore struct {
	entries []*entry.ChartEntry
	probs   []float64
}

func (s *appendStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	s.entries = append(s.entries, e)
	s.probs = append(s.probs, prob)
	return Appended
}

func (s *appendStore) Finalize()                    {}
func (s *appendStore) Entries() []*entry.ChartEntry { return s.entries }
func (s *appendStore) Probabilities() []float64     { return s.probs }
func (s *appendStore) Len() int                     { return len(s.entries) }

func (s *appendStore) Reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.probs = s.probs[:0]
}

func (s *appendStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.entries = append(s.entries[:0], entries...)
	s.probs = append(s.probs[:0], probs...)
}
