// Package queue provides a binary heap over parallel (value, score) arrays.
//
// Values and scores live in separate slices so that a chart cell can expose
// its stored entries and probabilities directly, without copying them out of
// an item struct.
package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue[int])(nil)

// Item is a (value, score) pair moved through heap.Push and heap.Pop.
type Item[T any] struct {
	Value T
	Score float64
}

// PriorityQueue implements heap.Interface over parallel values and scores.
type PriorityQueue[T any] struct {
	isMaxHeap bool // true = max heap, false = min heap
	values    []T
	scores    []float64
}

// NewMin initializes a new priority queue with the minimum score on top.
func NewMin[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		values: make([]T, 0, capacity),
		scores: make([]float64, 0, capacity),
	}
}

// NewMax initializes a new priority queue with the maximum score on top.
func NewMax[T any](capacity int) *PriorityQueue[T] {
	pq := NewMin[T](capacity)
	pq.isMaxHeap = true
	return pq
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[T]) TopItem() (T, float64, bool) {
	if len(pq.values) == 0 {
		var zero T
		return zero, 0, false
	}
	return pq.values[0], pq.scores[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PushItem(v T, score float64) {
	pq.values = append(pq.values, v)
	pq.scores = append(pq.scores, score)
	pq.siftUp(len(pq.values) - 1)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PopItem() (T, float64, bool) {
	n := len(pq.values)
	if n == 0 {
		var zero T
		return zero, 0, false
	}
	v, s := pq.values[0], pq.scores[0]
	pq.swap(0, n-1)
	var zero T
	pq.values[n-1] = zero
	pq.values = pq.values[:n-1]
	pq.scores = pq.scores[:n-1]
	if n-1 > 0 {
		pq.siftDown(0)
	}
	return v, s, true
}

// PushItemBounded pushes an item and then pops the top while the queue holds
// more than capacity items. On a min-heap this keeps the capacity largest
// scores; on a max-heap the capacity smallest.
//
// It reports whether the pushed item is still in the queue.
func (pq *PriorityQueue[T]) PushItemBounded(v T, score float64, capacity int) (kept bool) {
	if capacity <= 0 {
		return false
	}
	if len(pq.values) >= capacity {
		_, top, _ := pq.TopItem()
		if pq.isMaxHeap && score >= top || !pq.isMaxHeap && score <= top {
			return false
		}
	}
	pq.PushItem(v, score)
	for len(pq.values) > capacity {
		pq.PopItem()
	}
	return true
}

// Values returns the stored values in heap order. The slice aliases the queue.
func (pq *PriorityQueue[T]) Values() []T { return pq.values }

// Scores returns the stored scores in heap order. The slice aliases the queue.
func (pq *PriorityQueue[T]) Scores() []float64 { return pq.scores }

// Restore replaces the contents with values and scores, keeping their order.
// If they are not already in heap order (as returned by Values and Scores),
// call heap.Init before the next push or pop.
func (pq *PriorityQueue[T]) Restore(values []T, scores []float64) {
	pq.values = append(pq.values[:0], values...)
	pq.scores = append(pq.scores[:0], scores...)
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue[T]) Reset() {
	clear(pq.values)
	pq.values = pq.values[:0]
	pq.scores = pq.scores[:0]
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.scores[i] > pq.scores[j]
	}
	return pq.scores[i] < pq.scores[j]
}

func (pq *PriorityQueue[T]) swap(i, j int) {
	pq.values[i], pq.values[j] = pq.values[j], pq.values[i]
	pq.scores[i], pq.scores[j] = pq.scores[j], pq.scores[i]
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.swap(i, p)
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.values)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.swap(i, best)
		i = best
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.values) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue[T]) Less(i, j int) bool { return pq.less(i, j) }

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue[T]) Swap(i, j int) { pq.swap(i, j) }

// Push adds x, which must be an Item[T], to the end of the queue.
func (pq *PriorityQueue[T]) Push(x any) {
	item := x.(Item[T])
	pq.values = append(pq.values, item.Value)
	pq.scores = append(pq.scores, item.Score)
}

// Pop removes and returns the last element as an Item[T].
func (pq *PriorityQueue[T]) Pop() any {
	n := len(pq.values)
	if n == 0 {
		return Item[T]{}
	}
	item := Item[T]{Value: pq.values[n-1], Score: pq.scores[n-1]}
	var zero T
	pq.values[n-1] = zero
	pq.values = pq.values[:n-1]
	pq.scores = pq.scores[:n-1]
	return item
}
