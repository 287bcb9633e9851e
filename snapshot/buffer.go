package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
)

type encoder struct {
	buf []byte
}

func (e *encoder) u8(v uint8)    { e.buf = append(e.buf, v) }
func (e *encoder) u16(v uint16)  { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32)  { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64)  { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) i32(v int32)   { e.u32(uint32(v)) }
func (e *encoder) f64(v float64) { e.u64(math.Float64bits(v)) }

func (e *encoder) bytes(b []byte) {
	e.u32(uint32(len(b)))
	e.buf = append(e.buf, b...)
}

func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) u64s(vs []uint64) {
	e.u32(uint32(len(vs)))
	for _, v := range vs {
		e.u64(v)
	}
}

// decoder reads fields in order. The first failure sticks and every later
// read returns zero values.
type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.data)-d.off < n {
		d.err = fmt.Errorf("%w at offset %d", ErrTruncated, d.off)
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) u64() uint64 {
	if b := d.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (d *decoder) i32() int32   { return int32(d.u32()) }
func (d *decoder) f64() float64 { return math.Float64frombits(d.u64()) }

// length reads a count of items of at least minSize bytes each and checks
// it against the remaining data.
func (d *decoder) length(minSize int) int {
	n := int(d.u32())
	if d.err == nil && n*minSize > len(d.data)-d.off {
		d.err = fmt.Errorf("%w: length %d at offset %d", ErrTruncated, n, d.off)
		return 0
	}
	return n
}

func (d *decoder) bytes() []byte {
	return d.take(d.length(1))
}

func (d *decoder) str() string {
	return string(d.bytes())
}

func (d *decoder) u64s() []uint64 {
	vs := make([]uint64, d.length(8))
	for i := range vs {
		vs[i] = d.u64()
	}
	return vs
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}
