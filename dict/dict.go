// Package dict provides injective mappings between values and dense integer ids.
//
// Dictionaries are owned by the grammar/model layer and passed by reference
// into chart operations, which only read them.
package dict

import (
	"fmt"
	"sync"
)

// Dictionary maps values to dense ids (0, 1, 2, ...) and back.
// Safe for concurrent use.
type Dictionary[T comparable] struct {
	mu  sync.RWMutex
	ids map[T]int
	rev []T
}

// New creates a dictionary pre-populated with values in order.
// Duplicate values are interned once.
func New[T comparable](values ...T) *Dictionary[T] {
	d := &Dictionary[T]{
		ids: make(map[T]int, len(values)),
	}
	for _, v := range values {
		d.Add(v)
	}
	return d
}

// Add returns the id for v, assigning the next id if v has not been seen.
func (d *Dictionary[T]) Add(v T) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.ids[v]; ok {
		return id
	}
	id := len(d.rev)
	d.rev = append(d.rev, v)
	d.ids[v] = id
	return id
}

// Index returns the id of v, or -1 if v is unknown.
func (d *Dictionary[T]) Index(v T) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id, ok := d.ids[v]; ok {
		return id
	}
	return -1
}

// Contains reports whether v has been interned.
func (d *Dictionary[T]) Contains(v T) bool {
	return d.Index(v) >= 0
}

// Value returns the value for id. ok is false when id is out of range.
func (d *Dictionary[T]) Value(id int) (v T, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id < 0 || id >= len(d.rev) {
		return v, false
	}
	return d.rev[id], true
}

// MustValue returns the value for id. Panics if id is out of range.
func (d *Dictionary[T]) MustValue(id int) T {
	v, ok := d.Value(id)
	if !ok {
		panic(fmt.Sprintf("dict: id %d out of range [0,%d)", id, d.Len()))
	}
	return v
}

// Len returns the number of interned values.
func (d *Dictionary[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rev)
}

// Values returns a copy of all values in id order.
func (d *Dictionary[T]) Values() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]T, len(d.rev))
	copy(out, d.rev)
	return out
}
