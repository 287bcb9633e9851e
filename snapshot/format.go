package snapshot

import (
	"errors"

	"github.com/hupe1980/ccgchart/internal/compress"
)

// Snapshot layout, all integers little-endian:
//
//	magic        [4]byte "CCGC"
//	version      uint16
//	compression  uint8
//	codec name   uint8 length + bytes
//	header       uint32 length + codec-encoded Header
//	body         uint64 length + compressed blocks
//	checksum     uint32 CRC32C of everything above
//
// The body lists every populated span as (start, end, count) followed by
// count (probability, entry) records and ends with a start of endOfSpans.
const (
	magic   = "CCGC"
	version = uint16(1)

	endOfSpans = ^uint32(0)
	noRule     = int32(-1)
)

// Compression selects the block compression of the snapshot body.
type Compression = compress.Type

// Supported compressions.
const (
	CompressionNone = compress.None
	CompressionLZ4  = compress.LZ4
	CompressionZSTD = compress.ZSTD
)

var (
	// ErrInvalidMagic is returned when the data is not a chart snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrTruncated is returned when the data ends before a field is complete.
	ErrTruncated = errors.New("snapshot: truncated")
	// ErrUnknownRule is returned when a persisted rule id is not in the registry.
	ErrUnknownRule = errors.New("snapshot: unknown rule")
)

// Header describes the chart a snapshot holds. It is encoded with the codec
// named in the snapshot prefix.
type Header struct {
	Policy        string   `json:"policy"`
	Words         []string `json:"words"`
	PosTags       []string `json:"pos_tags"`
	WordDistances []int    `json:"word_distances"`
	PuncDistances []int    `json:"punc_distances"`
	VerbDistances []int    `json:"verb_distances"`
	Spans         int      `json:"spans"`
	Entries       int      `json:"entries"`
}
