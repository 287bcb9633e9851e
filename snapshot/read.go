package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/codec"
	"github.com/hupe1980/ccgchart/entry"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/internal/compress"
	"github.com/hupe1980/ccgchart/internal/hash"
)

// Read decodes a chart from r. Rule references are resolved through reg;
// grammar.Placeholder{} restores a chart without the original grammar.
func Read(r io.Reader, reg grammar.Registry, optFns ...Option) (*ccgchart.Chart, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Unmarshal(buf.Bytes(), reg, optFns...)
}

type prefix struct {
	compression Compression
	header      Header
	body        []byte
}

// parse verifies the checksum and splits data into header and framed body.
func parse(data []byte) (*prefix, error) {
	if len(data) < len(magic)+4 {
		return nil, ErrTruncated
	}
	if string(data[:len(magic)]) != magic {
		return nil, ErrInvalidMagic
	}
	payload := data[:len(data)-4]
	if err := hash.Verify(payload, binary.LittleEndian.Uint32(data[len(data)-4:])); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	d := decoder{data: payload, off: len(magic)}
	if v := d.u16(); d.err == nil && v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(d.u8())
	codecName := string(d.take(int(d.u8())))
	header := d.bytes()
	bodyLen := d.u64()
	if d.err != nil {
		return nil, d.err
	}
	if bodyLen != uint64(d.remaining()) {
		return nil, fmt.Errorf("%w: body length %d, have %d", ErrTruncated, bodyLen, d.remaining())
	}
	if !comp.Valid() {
		return nil, fmt.Errorf("%w: %d", compress.ErrUnknownType, comp)
	}

	c, err := codec.Lookup(codecName)
	if err != nil {
		return nil, err
	}
	p := &prefix{compression: comp, body: d.take(int(bodyLen))}
	if err := c.Unmarshal(header, &p.header); err != nil {
		return nil, fmt.Errorf("snapshot: decode header: %w", err)
	}
	return p, nil
}

// ReadHeader verifies data and returns its header without decoding entries.
func ReadHeader(data []byte) (*Header, error) {
	p, err := parse(data)
	if err != nil {
		return nil, err
	}
	return &p.header, nil
}

// Unmarshal decodes a chart from data. The restored chart does not alias
// data.
func Unmarshal(data []byte, reg grammar.Registry, optFns ...Option) (*ccgchart.Chart, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	p, err := parse(data)
	if err != nil {
		return nil, err
	}

	policy := opts.policy
	if policy == nil {
		if policy, err = ccgchart.ParsePolicy(p.header.Policy); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}

	sentence := ccgchart.Sentence{
		Words:         p.header.Words,
		PosTags:       p.header.PosTags,
		WordDistances: p.header.WordDistances,
		PuncDistances: p.header.PuncDistances,
		VerbDistances: p.header.VerbDistances,
	}
	c, err := ccgchart.New(sentence, policy, opts.chartOpts...)
	if err != nil {
		return nil, err
	}

	body, err := compress.DecodeAll(p.body, p.compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if err := decodeSpans(c, body, reg); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeSpans(c *ccgchart.Chart, body []byte, reg grammar.Registry) error {
	d := decoder{data: body}
	r := resolver{reg: reg}

	for {
		start := d.u32()
		if d.err != nil {
			return d.err
		}
		if start == endOfSpans {
			break
		}
		end := d.u32()
		count := d.length(9)

		entries := make([]*entry.ChartEntry, 0, count)
		probs := make([]float64, 0, count)
		for range count {
			probs = append(probs, d.f64())
			e := d.entry(&r)
			if r.err != nil {
				return r.err
			}
			if d.err != nil {
				return d.err
			}
			entries = append(entries, e)
		}
		if d.err != nil {
			return d.err
		}
		if err := c.RestoreSpan(int(start), int(end), entries, probs); err != nil {
			return fmt.Errorf("snapshot: restore span (%d,%d): %w", start, end, err)
		}
	}

	if d.remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ccgchart.ErrCorruptChart, d.remaining())
	}
	return nil
}
