// Package hash provides the CRC32-Castagnoli checksums that protect chart
// snapshots.
//
// CRC32C is hardware accelerated on x86 (SSE4.2) and ARM and detects all
// burst errors up to 32 bits. It is not a cryptographic hash and only
// guards against accidental corruption.
//
// # Usage
//
// One-shot:
//
//	sum := hash.CRC32C(data)
//	if err := hash.Verify(data, sum); err != nil { ... }
//
// While streaming:
//
//	cw := hash.NewWriter(w)
//	cw.Write(payload)
//	sum := cw.Sum32()
package hash
