// Package testutil provides testing utilities for ccgchart.
//
// This package is intended for use in tests and benchmarks only.
// It provides toy grammar collaborators, entry builders, deterministic
// random proposals and a brute-force top-k reference.
//
// # Entry Builders
//
//	e := testutil.Terminal(t, syntax, 0, 0, testutil.Assign(0, pred, 0))
//	b := testutil.Binary(t, syntax, leftRef, rightRef)
//
// # Random Proposals
//
//	rng := testutil.NewRNG(seed)
//	p := rng.Probability()           // in (0, 1]
//	e := rng.Terminal(t, span, numSyntax)
package testutil
