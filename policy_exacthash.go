package ccgchart

import "github.com/hupe1980/ccgchart/entry"

const exactHashName = "exact-hash"

type exactHashPolicy struct{}

// ExactHash gives the same guarantee as ExactScan, at most one entry per
// equivalence class, but finds candidates through a hash map with chaining
// on HeadHash, so inserts only compare against entries with equal hashes.
func ExactHash() Policy { return exactHashPolicy{} }

func (exactHashPolicy) Name() string           { return exactHashName }
func (exactHashPolicy) RequiresFinalize() bool { return false }

func (exactHashPolicy) NewStore() Store {
	return &exactHashStore{chains: make(map[uint64][]int)}
}

type exactHashStore struct {
	entries []*entry.ChartEntry
	probs   []float64
	chains  map[uint64][]int
}

func (s *exactHashStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	h := e.HeadHash()
	for _, i := range s.chains[h] {
		if !entry.Equivalent(e, s.entries[i]) {
			continue
		}
		if prob > s.probs[i] {
			s.entries[i] = e
			s.probs[i] = prob
			return Replaced
		}
		return Discarded
	}
	s.chains[h] = append(s.chains[h], len(s.entries))
	s.entries = append(s.entries, e)
	s.probs = append(s.probs, prob)
	return Appended
}

func (s *exactHashStore) Finalize()                    {}
func (s *exactHashStore) Entries() []*entry.ChartEntry { return s.entries }
func (s *exactHashStore) Probabilities() []float64     { return s.probs }
func (s *exactHashStore) Len() int                     { return len(s.entries) }

func (s *exactHashStore) Reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.probs = s.probs[:0]
	clear(s.chains)
}

func (s *exactHashStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.Reset()
	for i, e := range entries {
		s.chains[e.HeadHash()] = append(s.chains[e.HeadHash()], i)
	}
	s.entries = append(s.entries, entries...)
	s.probs = append(s.probs, probs...)
}
