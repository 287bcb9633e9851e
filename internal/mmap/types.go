package mmap

import "errors"

// AccessPattern is a paging hint for a mapping.
type AccessPattern uint8

const (
	AccessDefault AccessPattern = iota
	// AccessSequential suits whole-blob reads such as snapshot loads.
	AccessSequential
	// AccessRandom suits ranged reads.
	AccessRandom
	// AccessWillNeed asks the kernel to read ahead the whole mapping.
	AccessWillNeed
)

func (p AccessPattern) String() string {
	switch p {
	case AccessSequential:
		return "sequential"
	case AccessRandom:
		return "random"
	case AccessWillNeed:
		return "willneed"
	default:
		return "default"
	}
}

var (
	ErrClosed        = errors.New("mmap: closed")
	ErrInvalidSize   = errors.New("mmap: file size does not fit in memory")
	ErrOutOfBounds   = errors.New("mmap: range exceeds mapping")
	ErrInvalidOffset = errors.New("mmap: negative offset or length")
)
