// Package ccgchart provides the parse chart of a Combinatory Categorial
// Grammar parser.
//
// A chart stores, for every span of a sentence, the partial derivations
// (chart entries) proposed for it. A Policy decides which proposals a span
// keeps, and a decoder reconstructs derivation trees from the backpointers
// of stored entries. Grammar rules and the probability model live outside
// the chart; it only consumes entries, probabilities and costs.
//
// # Quick Start
//
//	sentence := ccgchart.NewSentence(words, posTags, nil, nil)
//	c, _ := ccgchart.New(sentence, ccgchart.Beam(100))
//
//	// terminals
//	c.AddEntry(e, prob, i, i, syntax)
//	c.FinalizeSpan(i, i)
//
//	// combinations, shortest spans first
//	c.AddEntry(entry.NewBinary(...), prob, i, j, syntax)
//	c.FinalizeSpan(i, j)
//
//	best, _ := c.DecodeBest(0, c.Size()-1)
//
// Package driver implements this loop, optionally filling spans of equal
// length in parallel.
//
// # Policies
//
//   - Beam(k): the k most probable proposals, no deduplication.
//   - ExactScan: one entry per equivalence class, linear scan.
//   - ExactHash: one entry per equivalence class, hash map with chaining.
//   - ApproxHashBucket: one entry per hash slot (BucketCount slots), lossy.
//   - ApproxSorted: one entry per head hash, deduplicated on finalize, lossy.
//   - Append: every proposal, for left-to-right parsing under a budget.
//
// The approximate policies require FinalizeSpan before a span is read; reads
// of an unfinalized span return ErrSpanNotFinalized.
//
// # Costs
//
// A cost (package cost) is consulted on every AddEntry. The probability is
// multiplied by exp(cost), and -Inf rejects the proposal. Boolean filters
// are adapted with cost.FromFilter.
//
// # Probabilities
//
// Stored probabilities are cumulative over the derivation. Decoded parses
// report local probabilities: a binary node's probability is its stored
// probability divided by the probabilities of its two subtrees.
package ccgchart
