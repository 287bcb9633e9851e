// Package compress frames data as a sequence of independently compressed
// blocks.
//
// Block format: [raw size uint32][stored size uint32][data...]. A stored size
// of 0 marks a block kept uncompressed because compression did not help.
package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type is a block compression algorithm.
type Type uint8

const (
	// None stores blocks uncompressed.
	None Type = 0
	// LZ4 favors speed.
	LZ4 Type = 1
	// ZSTD favors ratio.
	ZSTD Type = 2
)

// DefaultBlockSize is the raw size of a block.
const DefaultBlockSize = 256 * 1024

const headerSize = 8

var (
	// ErrCorruptBlock is returned for blocks whose framing is inconsistent.
	ErrCorruptBlock = errors.New("compress: corrupt block")
	// ErrUnknownType is returned for an unknown compression type.
	ErrUnknownType = errors.New("compress: unknown type")
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// ParseType returns the Type named by s.
func ParseType(s string) (Type, error) {
	switch s {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool { return t <= ZSTD }

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// AppendBlock appends data to dst as one framed block.
func AppendBlock(dst, data []byte, t Type) ([]byte, error) {
	var packed []byte
	switch t {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		packed = buf[:n]
	case ZSTD:
		enc := getZstdEncoder()
		packed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}

	// keep the block raw unless compression saves at least 10%
	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*0.9 {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
		dst = binary.LittleEndian.AppendUint32(dst, 0)
		return append(dst, data...), nil
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(packed)))
	return append(dst, packed...), nil
}

// ReadBlock decodes the block at the start of src and returns its contents
// and the number of bytes of src it occupied.
func ReadBlock(src []byte, t Type) ([]byte, int, error) {
	if len(src) < headerSize {
		return nil, 0, ErrCorruptBlock
	}
	rawSize := int(binary.LittleEndian.Uint32(src[0:]))
	storedSize := int(binary.LittleEndian.Uint32(src[4:]))

	if storedSize == 0 {
		if len(src) < headerSize+rawSize {
			return nil, 0, ErrCorruptBlock
		}
		return src[headerSize : headerSize+rawSize], headerSize + rawSize, nil
	}
	if len(src) < headerSize+storedSize {
		return nil, 0, ErrCorruptBlock
	}
	packed := src[headerSize : headerSize+storedSize]
	out := make([]byte, rawSize)

	switch t {
	case LZ4:
		n, err := lz4.UncompressBlock(packed, out)
		if err != nil {
			return nil, 0, err
		}
		if n != rawSize {
			return nil, 0, ErrCorruptBlock
		}
	case ZSTD:
		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(packed, out[:0])
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, 0, err
		}
		if len(decoded) != rawSize {
			return nil, 0, ErrCorruptBlock
		}
		out = decoded
	default:
		return nil, 0, fmt.Errorf("%w: compressed block with type %s", ErrCorruptBlock, t)
	}
	return out, headerSize + storedSize, nil
}

// Writer buffers writes and emits them as framed blocks.
type Writer struct {
	w         io.Writer
	t         Type
	blockSize int
	buf       *bytes.Buffer
	frame     []byte
	written   int64
}

// NewWriter creates a block writer. blockSize <= 0 selects DefaultBlockSize.
func NewWriter(w io.Writer, t Type, blockSize int) *Writer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Writer{
		w:         w,
		t:         t,
		blockSize: blockSize,
		buf:       bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

// Write implements io.Writer.
func (c *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buf.Len()
		if space == 0 {
			if err := c.flushBlock(); err != nil {
				return total, err
			}
			space = c.blockSize
		}
		n, _ := c.buf.Write(p[:min(space, len(p))])
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *Writer) flushBlock() error {
	if c.buf.Len() == 0 {
		return nil
	}
	var err error
	c.frame, err = AppendBlock(c.frame[:0], c.buf.Bytes(), c.t)
	if err != nil {
		return err
	}
	n, err := c.w.Write(c.frame)
	c.written += int64(n)
	if err != nil {
		return err
	}
	c.buf.Reset()
	return nil
}

// Flush writes any buffered data as a final block.
func (c *Writer) Flush() error {
	return c.flushBlock()
}

// BytesWritten returns the framed bytes written so far.
func (c *Writer) BytesWritten() int64 {
	return c.written
}

// DecodeAll decodes every block in src and concatenates their contents.
func DecodeAll(src []byte, t Type) ([]byte, error) {
	var out []byte
	for len(src) > 0 {
		block, n, err := ReadBlock(src, t)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		src = src[n:]
	}
	return out, nil
}
