package ccgchart

import (
	"slices"
	"strings"
)

// Sentence is the sentence-level context of a chart. It is set once at
// construction and read by costs and the decoder.
//
// Distance arrays are row-major n×n: the value for words i and j is stored at
// i*n+j.
type Sentence struct {
	Words   []string
	PosTags []string

	WordDistances []int
	PuncDistances []int
	VerbDistances []int
}

// NewSentence builds a Sentence and computes its distance arrays.
//
// The word distance of i and j is |i-j|. The punctuation and verb distances
// count the tokens strictly between i and j whose tag satisfies isPunc or
// isVerb. Nil predicates fall back to IsPunctuationTag and IsVerbTag.
func NewSentence(words, posTags []string, isPunc, isVerb func(tag string) bool) Sentence {
	if isPunc == nil {
		isPunc = IsPunctuationTag
	}
	if isVerb == nil {
		isVerb = IsVerbTag
	}
	n := len(words)
	s := Sentence{
		Words:         slices.Clone(words),
		PosTags:       slices.Clone(posTags),
		WordDistances: make([]int, n*n),
		PuncDistances: make([]int, n*n),
		VerbDistances: make([]int, n*n),
	}

	// prefix counts over tags [0, k)
	puncPrefix := make([]int, n+1)
	verbPrefix := make([]int, n+1)
	for k := 0; k < n; k++ {
		puncPrefix[k+1] = puncPrefix[k]
		verbPrefix[k+1] = verbPrefix[k]
		if k < len(posTags) {
			if isPunc(posTags[k]) {
				puncPrefix[k+1]++
			}
			if isVerb(posTags[k]) {
				verbPrefix[k+1]++
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			lo, hi := min(i, j), max(i, j)
			idx := i*n + j
			s.WordDistances[idx] = hi - lo
			if hi-lo > 1 {
				s.PuncDistances[idx] = puncPrefix[hi] - puncPrefix[lo+1]
				s.VerbDistances[idx] = verbPrefix[hi] - verbPrefix[lo+1]
			}
		}
	}
	return s
}

// IsPunctuationTag reports whether tag is a Penn Treebank punctuation tag.
func IsPunctuationTag(tag string) bool {
	switch tag {
	case ".", ",", ":", ";", "``", "''", "-LRB-", "-RRB-", "#", "$":
		return true
	}
	return false
}

// IsVerbTag reports whether tag is a Penn Treebank verb tag.
func IsVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

func (s Sentence) validate() error {
	n := len(s.Words)
	if n == 0 {
		return ErrEmptySentence
	}
	if n > maxSentenceLength {
		return ErrSentenceTooLong
	}
	if len(s.PosTags) != n {
		return &ErrLengthMismatch{Name: "pos tags", Expected: n, Actual: len(s.PosTags)}
	}
	for _, d := range []struct {
		name string
		vals []int
	}{
		{"word distances", s.WordDistances},
		{"punctuation distances", s.PuncDistances},
		{"verb distances", s.VerbDistances},
	} {
		if len(d.vals) != n*n {
			return &ErrLengthMismatch{Name: d.name, Expected: n * n, Actual: len(d.vals)}
		}
	}
	return nil
}
