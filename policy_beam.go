package ccgchart

import (
	"container/heap"
	"fmt"

	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/internal/queue"
)

const beamName = "beam"

type beamPolicy struct {
	size int
}

// Beam keeps the size highest-probability proposals per span, without
// deduplication: equivalent entries may coexist. Panics if size < 1.
func Beam(size int) Policy {
	if size < 1 {
		panic(fmt.Sprintf("ccgchart: beam size must be positive, got %d", size))
	}
	return beamPolicy{size: size}
}

func (p beamPolicy) Name() string           { return fmt.Sprintf("%s(%d)", beamName, p.size) }
func (p beamPolicy) RequiresFinalize() bool { return false }

func (p beamPolicy) NewStore() Store {
	return &beamStore{
		size: p.size,
		heap: queue.NewMin[*entry.ChartEntry](p.size + 1),
	}
}

// beamStore keeps entries in a min-heap so the worst entry is at index 0.
type beamStore struct {
	size int
	heap *queue.PriorityQueue[*entry.ChartEntry]

	// set by Restore until the next Insert re-establishes the heap
	restored bool
}

func (s *beamStore) Insert(e *entry.ChartEntry, prob float64) Outcome {
	if s.restored {
		s.reheap()
	}
	if s.heap.Len() < s.size {
		s.heap.PushItem(e, prob)
		return Appended
	}
	if s.heap.PushItemBounded(e, prob, s.size) {
		return Evicted
	}
	return Discarded
}

func (s *beamStore) Finalize()                    {}
func (s *beamStore) Entries() []*entry.ChartEntry { return s.heap.Values() }
func (s *beamStore) Probabilities() []float64     { return s.heap.Scores() }
func (s *beamStore) Len() int                     { return s.heap.Len() }

func (s *beamStore) Reset() {
	s.heap.Reset()
	s.restored = false
}

// Restore keeps entries in the given order, which need not be heap order and
// may exceed the beam size. The next Insert re-establishes the heap and
// evicts down to the beam size first.
func (s *beamStore) Restore(entries []*entry.ChartEntry, probs []float64) {
	s.heap.Restore(entries, probs)
	s.restored = true
}

func (s *beamStore) reheap() {
	heap.Init(s.heap)
	for s.heap.Len() > s.size {
		heap.Pop(s.heap)
	}
	s.restored = false
}
