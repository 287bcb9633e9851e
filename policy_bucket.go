package ccgchart

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/ccgchart/entry"
)

const approxBucketName = "approx-bucket"

// BucketCount is the number of hash slots per span of ApproxHashBucket.
const BucketCount = 1000

type approxBucketPolicy struct{}

// ApproxHashBucket deduplicates by HeadHash modulo BucketCount, with no
// chaining: every proposal competes for a single slot and the higher
// probability wins.
//
// The policy is approximate. Two entries that are not equivalent but share a
// slot collapse into one, trading exactness for O(1) inserts. Use ExactScan
// or ExactHash when exact deduplication is required.
//
// Spans must be finalized before they are read.
func ApproxHashBucket() Policy { return approxBucketPolicy{} }

func (approxBucketPolicy) Name() string           { return approxBucketName }
func (approxBucketPolicy) RequiresFinalize() bool { return true }

func (approxBucketPolicy) NewStore() Store {
	return &bucketStore{
		slots:     make([]*entry.ChartEntry, BucketCount),
		slotProbs: make([]float64, BucketCount),
		used:      roaring.New(),
		bySyntax:  make(map[int32][]int),
	}
}

type bucketStore struct {
	slots     []*entry.ChartEntry
	slotProbs []float64
	used      *roaring.Bitmap

	// dense view, rebuilt by Finalize
	entries  []*entry.ChartEntry
	probs    []float64
	bySyntax map[int32][]int
}

func (s *bucketStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	return s.insertHashed(e, e.HeadHash(), prob)
}

func (s *bucketStore) insertHashed(e *entry.ChartEntry, hash uint64, prob float64) Outcome {
	b := uint32(hash % BucketCount)
	if !s.used.Contains(b) {
		s.slots[b] = e
		s.slotProbs[b] = prob
		s.used.Add(b)
		return Appended
	}
	if prob > s.slotProbs[b] {
		s.slots[b] = e
		s.slotProbs[b] = prob
		return Replaced
	}
	return Discarded
}

// Finalize compacts occupied slots, in slot order, into the dense view.
func (s *bucketStore) Finalize() {
	s.entries = s.entries[:0]
	s.probs = s.probs[:0]
	clear(s.bySyntax)

	it := s.used.Iterator()
	for it.HasNext() {
		b := it.Next()
		idx := len(s.entries)
		e := s.slots[b]
		s.entries = append(s.entries, e)
		s.probs = append(s.probs, s.slotProbs[b])
		syntax := int32(e.Syntax())
		s.bySyntax[syntax] = append(s.bySyntax[syntax], idx)
	}
}

func (s *bucketStore) Entries() []*entry.ChartEntry { return s.entries }
func (s *bucketStore) Probabilities() []float64     { return s.probs }
func (s *bucketStore) Len() int                     { return len(s.entries) }

func (s *bucketStore) IndicesForSyntax(syntax int32) []int {
	return s.bySyntax[syntax]
}

func (s *bucketStore) Reset() {
	it := s.used.Iterator()
	for it.HasNext() {
		s.slots[it.Next()] = nil
	}
	s.used.Clear()
	clear(s.entries)
	s.entries = s.entries[:0]
	s.probs = s.probs[:0]
	clear(s.bySyntax)
}

// Restore keeps entries in the given order. The slot table is rebuilt for
// later inserts: colliding entries stay in the dense view, and the slot keeps
// the most probable of them, so the next Finalize collapses them as inserts
// would have.
func (s *bucketStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.Reset()
	for i, e := range entries {
		s.entries = append(s.entries, e)
		s.probs = append(s.probs, probs[i])
		syntax := int32(e.Syntax())
		s.bySyntax[syntax] = append(s.bySyntax[syntax], i)

		s.insertHashed(e, e.HeadHash(), probs[i])
	}
}
