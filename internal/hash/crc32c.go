package hash

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Writer forwards writes to an io.Writer and checksums everything written.
type Writer struct {
	w io.Writer
	h hash.Hash32
	n int64
}

// NewWriter creates a checksumming writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, h: NewCRC32C()}
}

// Write implements io.Writer.
func (cw *Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	_, _ = cw.h.Write(p[:n])
	cw.n += int64(n)
	return n, err
}

// Sum32 returns the checksum of the bytes written so far.
func (cw *Writer) Sum32() uint32 { return cw.h.Sum32() }

// Written returns the number of bytes written so far.
func (cw *Writer) Written() int64 { return cw.n }

// MismatchError is returned when a stored checksum does not match the data.
type MismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

// Verify checks data against the expected CRC32C.
func Verify(data []byte, expected uint32) error {
	if actual := CRC32C(data); actual != expected {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
