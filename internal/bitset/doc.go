// Package bitset provides a fixed-size lock-free bitset.
//
// Used internally for:
//   - per-span "finalized" flags of a chart, which disjoint spans may update
//     concurrently while a driver fills one span length in parallel
package bitset
