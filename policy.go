package ccgchart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/ccgchart/entry"
)

// Outcome reports what a store did with a proposed entry.
type Outcome uint8

const (
	// Rejected: zero probability or rejected by the cost. Nothing stored.
	Rejected Outcome = iota
	// Appended: stored as a new entry.
	Appended
	// Replaced: stored in place of a lower-probability equivalent (or, for
	// approximate policies, colliding) entry.
	Replaced
	// Discarded: an equivalent or better entry was already stored.
	Discarded
	// Evicted: stored, pushing the lowest-probability entry out of the beam.
	Evicted

	numOutcomes = int(Evicted) + 1
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Appended:
		return "appended"
	case Replaced:
		return "replaced"
	case Discarded:
		return "discarded"
	case Evicted:
		return "evicted"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Stored reports whether the proposed entry is now held by the store.
func (o Outcome) Stored() bool {
	return o == Appended || o == Replaced || o == Evicted
}

// Policy decides which proposals a span keeps.
type Policy interface {
	// Name identifies the policy, including its parameters. ParsePolicy
	// accepts every name returned by the built-in policies.
	Name() string
	// RequiresFinalize reports whether a span must be finalized after
	// inserts before its contents may be read.
	RequiresFinalize() bool
	// NewStore creates the storage for one span.
	NewStore() Store
}

// Store holds the entries of one span. Stores are not safe for concurrent
// use; the chart gives each span its own store.
type Store interface {
	// Insert proposes e with probability prob (finite, > 0).
	Insert(e *entry.ChartEntry, prob float64) Outcome
	// Finalize makes Entries and Probabilities reflect every insert so far.
	Finalize()
	// Entries returns the stored entries. Indices are stable until the next
	// Insert, Finalize or Reset. The slice aliases the store.
	Entries() []*entry.ChartEntry
	// Probabilities is parallel to Entries.
	Probabilities() []float64
	// Len is len(Entries()).
	Len() int
	// Reset empties the store.
	Reset()
	// Restore replaces the contents with a previously read Entries and
	// Probabilities pair, preserving indices.
	Restore(entries []*entry.ChartEntry, probs []float64)
}

// SyntaxIndexed is implemented by stores that group entries by category
// when finalized.
type SyntaxIndexed interface {
	// IndicesForSyntax returns the indices into Entries whose category is
	// syntax.
	IndicesForSyntax(syntax int32) []int
}

// ParsePolicy returns the built-in policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case exactScanName:
		return ExactScan(), nil
	case exactHashName:
		return ExactHash(), nil
	case approxBucketName:
		return ApproxHashBucket(), nil
	case approxSortedName:
		return ApproxSorted(), nil
	case appendName:
		return Append(), nil
	}
	if rest, ok := strings.CutPrefix(name, beamName+"("); ok {
		if size, err := strconv.Atoi(strings.TrimSuffix(rest, ")")); err == nil && size > 0 && strings.HasSuffix(rest, ")") {
			return Beam(size), nil
		}
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}
