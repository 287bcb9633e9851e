package ccgchart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptySentence is returned when a chart is built for zero words.
	ErrEmptySentence = errors.New("sentence has no words")

	// ErrSentenceTooLong is returned when word positions would not fit the
	// packed entry encoding.
	ErrSentenceTooLong = errors.New("sentence too long")

	// ErrNilPolicy is returned when a chart is created without a policy.
	ErrNilPolicy = errors.New("policy is nil")

	// ErrNilEntry is returned when a nil entry is added.
	ErrNilEntry = errors.New("entry is nil")

	// ErrInvalidProbability is returned when restored probabilities are not
	// finite and positive.
	ErrInvalidProbability = errors.New("probability must be finite and positive")

	// ErrSpanOutOfRange is returned for spans outside the sentence.
	ErrSpanOutOfRange = errors.New("span out of range")

	// ErrSpanNotFinalized is returned when reading a span of a finalizing
	// policy after it was modified and before FinalizeSpan was called.
	ErrSpanNotFinalized = errors.New("span not finalized")

	// ErrCorruptChart is the panic value (wrapped) raised when a backpointer
	// does not resolve to a stored entry.
	ErrCorruptChart = errors.New("corrupt chart")
)

// ErrLengthMismatch indicates a sentence array of the wrong length.
type ErrLengthMismatch struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("%s: expected length %d, got %d", e.Name, e.Expected, e.Actual)
}

func spanError(start, end, n int) error {
	return fmt.Errorf("%w: (%d,%d) in sentence of length %d", ErrSpanOutOfRange, start, end, n)
}
