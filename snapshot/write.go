package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/internal/compress"
	"github.com/hupe1980/ccgchart/internal/hash"
)

// Write encodes c to w.
//
// Every span must be readable: for finalizing policies, spans modified since
// their last FinalizeSpan make Write fail with ccgchart.ErrSpanNotFinalized.
// Stored order is preserved so backpointers stay valid after Read.
func Write(w io.Writer, c *ccgchart.Chart, optFns ...Option) error {
	data, err := Marshal(c, optFns...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes c into a new byte slice.
func Marshal(c *ccgchart.Chart, optFns ...Option) ([]byte, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if !opts.compression.Valid() {
		return nil, fmt.Errorf("%w: %s", compress.ErrUnknownType, opts.compression)
	}

	body, spans, entries, err := encodeSpans(c)
	if err != nil {
		return nil, err
	}

	s := c.Sentence()
	header, err := opts.codec.Marshal(Header{
		Policy:        c.Policy().Name(),
		Words:         s.Words,
		PosTags:       s.PosTags,
		WordDistances: s.WordDistances,
		PuncDistances: s.PuncDistances,
		VerbDistances: s.VerbDistances,
		Spans:         spans,
		Entries:       entries,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode header: %w", err)
	}

	var framed bytes.Buffer
	bw := compress.NewWriter(&framed, opts.compression, 0)
	if _, err := bw.Write(body); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	name := opts.codec.Name()
	enc := encoder{buf: make([]byte, 0, len(magic)+len(header)+framed.Len()+64)}
	enc.buf = append(enc.buf, magic...)
	enc.u16(version)
	enc.u8(uint8(opts.compression))
	enc.u8(uint8(len(name)))
	enc.buf = append(enc.buf, name...)
	enc.bytes(header)
	enc.u64(uint64(framed.Len()))
	enc.buf = append(enc.buf, framed.Bytes()...)
	enc.u32(hash.CRC32C(enc.buf))
	return enc.buf, nil
}

func encodeSpans(c *ccgchart.Chart) (body []byte, spans, entries int, err error) {
	var enc encoder
	n := c.Size()
	for start := 0; start < n; start++ {
		for end := start; end < n; end++ {
			es, err := c.Entries(start, end)
			if err != nil {
				return nil, 0, 0, err
			}
			if len(es) == 0 {
				continue
			}
			probs, err := c.Probabilities(start, end)
			if err != nil {
				return nil, 0, 0, err
			}

			enc.u32(uint32(start))
			enc.u32(uint32(end))
			enc.u32(uint32(len(es)))
			for i, e := range es {
				enc.f64(probs[i])
				enc.entry(e)
			}
			spans++
			entries += len(es)
		}
	}
	enc.u32(endOfSpans)
	return enc.buf, spans, entries, nil
}
