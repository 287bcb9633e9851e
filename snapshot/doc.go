// Package snapshot persists filled charts.
//
// A snapshot holds the sentence, the policy name and every stored entry in
// stored order, so backpointers resolve identically after a round trip. Rule
// references (combinators, unary rules, lexicon entries) are written by id
// and resolved through a grammar.Registry on read.
//
// # Usage
//
//	if err := snapshot.Save(ctx, store, "wsj-0001.ccgc", chart,
//	    snapshot.WithCompression(snapshot.CompressionZSTD)); err != nil {
//	    return err
//	}
//
//	restored, err := snapshot.Load(ctx, store, "wsj-0001.ccgc", registry)
//
// The body is framed in lz4 or zstd blocks and the whole snapshot carries a
// CRC32C checksum. Charts of finalizing policies must have every span
// finalized before they are written.
package snapshot
