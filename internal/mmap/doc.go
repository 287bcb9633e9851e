// Package mmap provides read-only memory-mapped file access.
//
// Chart snapshots on local disk are mapped rather than read so that loading
// a large snapshot does not copy it through kernel buffers first.
//
// # Usage
//
//	m, err := mmap.Open("chart.ccgc")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// Mapping is safe for concurrent reads. Close is idempotent, but callers must
// not touch slices returned by Bytes or Slice after Close returns.
package mmap
