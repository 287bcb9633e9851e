// Package driver fills a chart bottom-up.
//
// Fill walks span lengths from 1 to n. For each span it asks a Proposer for
// candidates, adds them to the chart and finalizes the span, so that every
// span is complete before any longer span reads it. CKY is a ready-made
// Proposer built from a lexicon lookup and a pairwise combiner.
//
//	stats, err := driver.Fill(ctx, chart, &driver.CKY{
//	    Lexicon: lookup,
//	    Combine: combine,
//	}, driver.WithWorkers(4))
package driver
