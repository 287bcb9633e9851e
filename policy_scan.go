package ccgchart

import "github.com/hupe1980/ccgchart/entry"

const exactScanName = "exact-scan"

type exactScanPolicy struct{}

// ExactScan keeps at most one entry per equivalence class (see
// entry.Equivalent), found by comparing each proposal against every stored
// entry. Insert is linear in the span size, so the policy suits small or
// exhaustive searches.
func ExactScan() Policy { return exactScanPolicy{} }

func (exactScanPolicy) Name() string           { return exactScanName }
func (exactScanPolicy) RequiresFinalize() bool { return false }
func (exactScanPolicy) NewStore() Store        { return &scanStore{} }

type scanStore struct {
	entries []*entry.ChartEntry
	probs   []float64
}

func (s *scanStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	for i, other := range s.entries {
		if !entry.Equivalent(e, other) {
			continue
		}
		if prob > s.probs[i] {
			s.entries[i] = e
			s.probs[i] = prob
			return Replaced
		}
		return Discarded
	}
	s.entries = append(s.entries, e)
	s.probs = append(s.probs, prob)
	return Appended
}

func (s *scanStore) Finalize()                    {}
func (s *scanStore) Entries() []*entry.ChartEntry { return s.entries }
func (s *scanStore) Probabilities() []float64     { return s.probs }
func (s *scanStore) Len() int                     { return len(s.entries) }

func (s *scanStore) Reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.probs = s.probs[:0]
}

func (s *scanStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.entries = append(s.entries[:0], entries...)
	s.probs = append(s.probs[:0], probs...)
}
