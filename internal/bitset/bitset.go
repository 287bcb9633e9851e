package bitset

import "sync/atomic"

// BitSet is a fixed-size, lock-free bitset.
//
// Individual bits may be set and cleared from different goroutines without
// external locking; neighbouring bits share a word, so every update is an
// atomic read-modify-write.
type BitSet struct {
	words []atomic.Uint64
	size  uint64
}

// New creates a new BitSet with the given size (in bits).
func New(size uint64) *BitSet {
	return &BitSet{
		words: make([]atomic.Uint64, (size+63)/64),
		size:  size,
	}
}

// Set sets the bit at the given index. Out-of-range indexes are ignored.
func (b *BitSet) Set(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i/64].Or(uint64(1) << (i % 64))
}

// Unset clears the bit at the given index.
func (b *BitSet) Unset(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i/64].And(^(uint64(1) << (i % 64)))
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i uint64) bool {
	if i >= b.size {
		return false
	}
	return b.words[i/64].Load()&(uint64(1)<<(i%64)) != 0
}
