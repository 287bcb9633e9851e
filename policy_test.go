package ccgchart

import (
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart/core"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/testutil"
)

func allPolicies() []Policy {
	return []Policy{Beam(4), ExactScan(), ExactHash(), ApproxHashBucket(), ApproxSorted(), Append()}
}

func TestBeam(t *testing.T) {
	t.Run("KeepsTopProbabilities", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		const size = 5

		c := newTestChart(t, 1, Beam(size))
		var accepted []float64
		for i := 0; i < 200; i++ {
			p := rng.Probability()
			out, err := c.AddEntry(rng.Terminal(t, core.NewSpan(0, 0), 8), p, 0, 0, nil)
			require.NoError(t, err)
			require.True(t, out != Rejected)
			accepted = append(accepted, p)

			count, err := c.EntryCount(0, 0)
			require.NoError(t, err)
			require.LessOrEqual(t, count, size)
		}

		probs, err := c.Probabilities(0, 0)
		require.NoError(t, err)
		stored := slices.Clone(probs)
		sort.Sort(sort.Reverse(sort.Float64Slice(stored)))
		assert.Equal(t, testutil.TopK(accepted, size), stored)
	})

	t.Run("SizeOne", func(t *testing.T) {
		for _, order := range [][]float64{{0.7, 0.3}, {0.3, 0.7}} {
			t.Run(fmt.Sprint(order), func(t *testing.T) {
				c := newTestChart(t, 1, Beam(1))
				for i, p := range order {
					_, err := c.AddEntry(testutil.Terminal(t, core.SyntaxID(i), 0, 0), p, 0, 0, nil)
					require.NoError(t, err)
				}
				probs, err := c.Probabilities(0, 0)
				require.NoError(t, err)
				assert.Equal(t, []float64{0.7}, probs)
			})
		}
	})

	t.Run("Outcomes", func(t *testing.T) {
		s := Beam(2).NewStore()
		assert.Equal(t, Appended, s.Insert(testutil.Terminal(t, 0, 0, 0), 0.5))
		assert.Equal(t, Appended, s.Insert(testutil.Terminal(t, 1, 0, 0), 0.2))
		assert.Equal(t, Discarded, s.Insert(testutil.Terminal(t, 2, 0, 0), 0.1))
		assert.Equal(t, Evicted, s.Insert(testutil.Terminal(t, 3, 0, 0), 0.9))
		assert.ElementsMatch(t, []float64{0.5, 0.9}, s.Probabilities())
	})

	t.Run("NoDeduplication", func(t *testing.T) {
		s := Beam(3).NewStore()
		s.Insert(testutil.Terminal(t, 1, 0, 0), 0.4)
		s.Insert(testutil.Terminal(t, 1, 0, 0), 0.6)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("InvalidSize", func(t *testing.T) {
		assert.Panics(t, func() { Beam(0) })
	})

	t.Run("RestoreOutOfHeapOrder", func(t *testing.T) {
		s := Beam(2).NewStore()
		entries := []*entry.ChartEntry{
			testutil.Terminal(t, 0, 0, 0),
			testutil.Terminal(t, 1, 0, 0),
			testutil.Terminal(t, 2, 0, 0),
		}
		s.Restore(entries, []float64{0.9, 0.1, 0.5})
		assert.Equal(t, entries, s.Entries())
		assert.Equal(t, []float64{0.9, 0.1, 0.5}, s.Probabilities())

		// the next insert trims to the beam size before competing
		assert.Equal(t, Evicted, s.Insert(testutil.Terminal(t, 3, 0, 0), 0.7))
		assert.Equal(t, 2, s.Len())
		assert.ElementsMatch(t, []float64{0.7, 0.9}, s.Probabilities())
		assert.Equal(t, Discarded, s.Insert(testutil.Terminal(t, 4, 0, 0), 0.2))
	})
}

func TestExactDeduplication(t *testing.T) {
	for _, policy := range []Policy{ExactScan(), ExactHash()} {
		t.Run(policy.Name(), func(t *testing.T) {
			rng := testutil.NewRNG(42)
			c := newTestChart(t, 1, policy)

			type proposal struct {
				e    *entry.ChartEntry
				prob float64
			}
			var proposals []proposal
			for i := 0; i < 300; i++ {
				p := proposal{e: rng.Terminal(t, core.NewSpan(0, 0), 3), prob: rng.Probability()}
				_, err := c.AddEntry(p.e, p.prob, 0, 0, nil)
				require.NoError(t, err)
				proposals = append(proposals, p)
			}

			entries, err := c.Entries(0, 0)
			require.NoError(t, err)
			probs, err := c.Probabilities(0, 0)
			require.NoError(t, err)

			for i := range entries {
				for j := i + 1; j < len(entries); j++ {
					require.False(t, entry.Equivalent(entries[i], entries[j]), "entries %d and %d are equivalent", i, j)
				}
			}

			for _, p := range proposals {
				found := false
				for i, e := range entries {
					if entry.Equivalent(p.e, e) {
						found = true
						assert.GreaterOrEqual(t, probs[i], p.prob)
					}
				}
				assert.True(t, found)
			}
		})
	}

	t.Run("AssignmentOrderIgnored", func(t *testing.T) {
		s := ExactScan().NewStore()
		a := testutil.Terminal(t, 1, 0, 0, testutil.Assign(0, 3, 0), testutil.Assign(1, 4, 0))
		b := testutil.Terminal(t, 1, 0, 0, testutil.Assign(1, 4, 0), testutil.Assign(0, 3, 0))
		assert.Equal(t, Appended, s.Insert(a, 0.3))
		assert.Equal(t, Replaced, s.Insert(b, 0.6))
		assert.Equal(t, Discarded, s.Insert(a, 0.1))
		assert.Equal(t, 1, s.Len())
		assert.Same(t, b, s.Entries()[0])
	})

	t.Run("AssignmentValueCompared", func(t *testing.T) {
		s := ExactHash().NewStore()
		// same predicate, different position
		s.Insert(testutil.Terminal(t, 1, 0, 0, testutil.Assign(0, 3, 0)), 0.3)
		s.Insert(testutil.Terminal(t, 1, 0, 0, testutil.Assign(0, 3, 1)), 0.3)
		assert.Equal(t, 2, s.Len())
	})
}

func TestMonotonicity(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.Name(), func(t *testing.T) {
			rng := testutil.NewRNG(7)
			c := newTestChart(t, 1, policy)

			best := 0.0
			for i := 0; i < 100; i++ {
				_, err := c.AddEntry(rng.Terminal(t, core.NewSpan(0, 0), 4), rng.Probability(), 0, 0, nil)
				require.NoError(t, err)
				require.NoError(t, c.FinalizeSpan(0, 0))

				probs, err := c.Probabilities(0, 0)
				require.NoError(t, err)
				m := slices.Max(probs)
				require.GreaterOrEqual(t, m, best)
				best = m
			}
		})
	}
}

// distinctSyntaxes returns k categories whose bare terminals land in
// distinct buckets.
func distinctSyntaxes(t *testing.T, k int) []core.SyntaxID {
	t.Helper()
	seen := make(map[uint64]bool)
	var out []core.SyntaxID
	for s := core.SyntaxID(0); len(out) < k; s++ {
		b := testutil.Terminal(t, s, 0, 0).HeadHash() % BucketCount
		if !seen[b] {
			seen[b] = true
			out = append(out, s)
		}
	}
	return out
}

// collidingTerminals returns two non-equivalent terminals sharing a bucket.
func collidingTerminals(t *testing.T) (*entry.ChartEntry, *entry.ChartEntry) {
	t.Helper()
	seen := make(map[uint64]*entry.ChartEntry)
	for i := 0; i <= BucketCount; i++ {
		e := testutil.Terminal(t, core.SyntaxID(i), 0, 0)
		b := e.HeadHash() % BucketCount
		if prev, ok := seen[b]; ok {
			return prev, e
		}
		seen[b] = e
	}
	t.Fatal("no collision found")
	return nil, nil
}

func TestApproxHashBucket(t *testing.T) {
	t.Run("CollisionKeepsHigher", func(t *testing.T) {
		a, b := collidingTerminals(t)
		require.False(t, entry.Equivalent(a, b))

		c := newTestChart(t, 1, ApproxHashBucket())
		out, err := c.AddEntry(a, 0.5, 0, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, Appended, out)
		out, err = c.AddEntry(b, 0.9, 0, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, Replaced, out)
		require.NoError(t, c.FinalizeSpan(0, 0))

		entries, err := c.Entries(0, 0)
		require.NoError(t, err)
		probs, err := c.Probabilities(0, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.9}, probs)
		assert.Same(t, b, entries[0])
	})

	t.Run("ForcedHash", func(t *testing.T) {
		s := ApproxHashBucket().NewStore().(*bucketStore)
		assert.Equal(t, Appended, s.insertHashed(testutil.Terminal(t, 1, 0, 0), 7, 0.5))
		assert.Equal(t, Discarded, s.insertHashed(testutil.Terminal(t, 2, 0, 0), 1007, 0.4))
		assert.Equal(t, Appended, s.insertHashed(testutil.Terminal(t, 2, 0, 0), 3, 0.1))
		s.Finalize()

		// slot order: 3 then 7
		assert.Equal(t, []float64{0.1, 0.5}, s.Probabilities())
		assert.Equal(t, []int{1}, s.IndicesForSyntax(1))
		assert.Equal(t, []int{0}, s.IndicesForSyntax(2))
	})

	t.Run("ResetAndRestore", func(t *testing.T) {
		s := ApproxHashBucket().NewStore()
		for i := 0; i < 20; i++ {
			s.Insert(testutil.Terminal(t, core.SyntaxID(i), 0, 0), float64(i+1)/20)
		}
		s.Finalize()
		entries := slices.Clone(s.Entries())
		probs := slices.Clone(s.Probabilities())

		s.Reset()
		s.Finalize()
		assert.Equal(t, 0, s.Len())

		s.Restore(entries, probs)
		assert.Equal(t, entries, s.Entries())
		assert.Equal(t, probs, s.Probabilities())
	})

	t.Run("RestoreKeepsCollisions", func(t *testing.T) {
		a, b := collidingTerminals(t)
		s := ApproxHashBucket().NewStore()
		s.Restore([]*entry.ChartEntry{a, b}, []float64{0.5, 0.9})

		require.Equal(t, 2, s.Len())
		assert.Same(t, a, s.Entries()[0])
		assert.Same(t, b, s.Entries()[1])
		assert.Equal(t, []int{1}, s.(SyntaxIndexed).IndicesForSyntax(int32(b.Syntax())))

		// later inserts see the slot table, where the better entry won
		assert.Equal(t, Discarded, s.Insert(b, 0.7))
		s.Finalize()
		require.Equal(t, 1, s.Len())
		assert.Same(t, b, s.Entries()[0])
		assert.Equal(t, []float64{0.9}, s.Probabilities())
	})
}

func TestApproxSorted(t *testing.T) {
	s := ApproxSorted().NewStore().(*sortedStore)
	s.insertHashed(testutil.Terminal(t, 1, 0, 0), 5, 0.2)
	s.insertHashed(testutil.Terminal(t, 2, 0, 0), 5, 0.9)
	s.insertHashed(testutil.Terminal(t, 3, 0, 0), 3, 0.4)
	s.Finalize()

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []uint64{3, 5}, s.hashes)
	assert.Equal(t, []float64{0.4, 0.9}, s.Probabilities())
	assert.Equal(t, core.SyntaxID(2), s.Entries()[1].Syntax())

	// finalize is idempotent
	s.Finalize()
	assert.Equal(t, 2, s.Len())
}

func TestAppend(t *testing.T) {
	c := newTestChart(t, 2, Append())
	e := testutil.Terminal(t, 1, 0, 0)
	for i := 0; i < 3; i++ {
		out, err := c.AddEntry(e, 0.5, 0, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, Appended, out)
	}
	_, err := c.AddEntry(testutil.Terminal(t, 1, 1, 1), 0.5, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, c.TotalEntryCount())
	require.NoError(t, c.ClearSpan(0, 0))
	assert.Equal(t, 1, c.TotalEntryCount())
}

func TestParsePolicy(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.Name(), func(t *testing.T) {
			got, err := ParsePolicy(policy.Name())
			require.NoError(t, err)
			assert.Equal(t, policy, got)
		})
	}

	for _, name := range []string{"", "beam", "beam(0)", "beam(x)", "beam(3", "exact"} {
		_, err := ParsePolicy(name)
		assert.Error(t, err, name)
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "evicted", Evicted.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
	assert.True(t, Replaced.Stored())
	assert.False(t, Discarded.Stored())
	assert.False(t, Rejected.Stored())
}
