package ccgchart

import (
	"sort"

	"github.com/hupe1980/ccgchart/entry"
)

const approxSortedName = "approx-sorted"

type approxSortedPolicy struct{}

// ApproxSorted appends every proposal and deduplicates on Finalize by
// sorting on HeadHash and keeping the highest-probability entry of each run
// of equal hashes.
//
// Like ApproxHashBucket the policy is approximate: distinct entries with equal
// hashes collapse. It has no capacity bound; Finalize costs O(n log n).
//
// Spans must be finalized before they are read.
func ApproxSorted() Policy { return approxSortedPolicy{} }

func (approxSortedPolicy) Name() string           { return approxSortedName }
func (approxSortedPolicy) RequiresFinalize() bool { return true }
func (approxSortedPolicy) NewStore() Store        { return &sortedStore{} }

type sortedStore struct {
	entries []*entry.ChartEntry
	hashes  []uint64
	probs   []float64
}

func (s *sortedStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	return s.insertHashed(e, e.HeadHash(), prob)
}

func (s *sortedStore) insertHashed(e *entry.ChartEntry, hash uint64, prob float64) Outcome {
	s.entries = append(s.entries, e)
	s.hashes = append(s.hashes, hash)
	s.probs = append(s.probs, prob)
	return Appended
}

// Len, Less and Swap sort the three arrays jointly by (hash, probability),
// so the best member of an equal-hash run comes last.
func (s *sortedStore) Len() int { return len(s.entries) }

func (s *sortedStore) Less(i, j int) bool {
	if s.hashes[i] != s.hashes[j] {
		return s.hashes[i] < s.hashes[j]
	}
	return s.probs[i] < s.probs[j]
}

func (s *sortedStore) Swap(i, j int) {
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	s.hashes[i], s.hashes[j] = s.hashes[j], s.hashes[i]
	s.probs[i], s.probs[j] = s.probs[j], s.probs[i]
}

func (s *sortedStore) Finalize() {
	sort.Sort(s)

	n := len(s.entries)
	w := 0
	for i := 0; i < n; i++ {
		if i+1 < n && s.hashes[i+1] == s.hashes[i] {
			continue
		}
		s.entries[w] = s.entries[i]
		s.hashes[w] = s.hashes[i]
		s.probs[w] = s.probs[i]
		w++
	}
	clear(s.entries[w:])
	s.entries = s.entries[:w]
	s.hashes = s.hashes[:w]
	s.probs = s.probs[:w]
}

func (s *sortedStore) Entries() []*entry.ChartEntry { return s.entries }
func (s *sortedStore) Probabilities() []float64     { return s.probs }

func (s *sortedStore) Reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.hashes = s.hashes[:0]
	s.probs = s.probs[:0]
}

func (s *sortedStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.Reset()
	for i, e := range entries {
		s.insertHashed(e, e.HeadHash(), probs[i])
	}
}
