package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/internal/pool"
)

// IntRawEncoder writes int64 values as 8-byte words in the engine's byte order.
type IntRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[int64] = (*IntRawEncoder)(nil)

// NewIntRawEncoder creates a raw integer encoder.
func NewIntRawEncoder(engine endian.EndianEngine) *IntRawEncoder {
	return &IntRawEncoder{engine: engine, buf: pool.GetColumnBuffer()}
}

func (e *IntRawEncoder) Write(v int64) {
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint:gosec
	e.count++
}

func (e *IntRawEncoder) WriteSlice(values []int64) {
	e.buf.Grow(8 * len(values))
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint:gosec
	}
	e.count += len(values)
}

func (e *IntRawEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *IntRawEncoder) Len() int      { return e.count }
func (e *IntRawEncoder) Size() int     { return e.buf.Len() }

func (e *IntRawEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
}

// IntRawDecoder reads IntRawEncoder payloads.
type IntRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[int64] = IntRawDecoder{}

// NewIntRawDecoder creates a raw integer decoder.
func NewIntRawDecoder(engine endian.EndianEngine) IntRawDecoder {
	return IntRawDecoder{engine: engine}
}

func (d IntRawDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		n := min(count, len(data)/8)
		for i := range n {
			if !yield(int64(d.engine.Uint64(data[i*8:]))) { //nolint:gosec
				return
			}
		}
	}
}

// At returns the value at index without decoding the others.
func (d IntRawDecoder) At(data []byte, index, count int) (int64, bool) {
	if index < 0 || index >= count || len(data) < (index+1)*8 {
		return 0, false
	}

	return int64(d.engine.Uint64(data[index*8:])), true //nolint:gosec
}

// IntDeltaEncoder stores int64 values as delta-of-delta zigzag varints.
//
// The first value is a plain uvarint of its bit pattern, the second the
// zigzag delta from the first, and every later value the zigzag difference
// between consecutive deltas. Regular sampling intervals cost one byte per
// value.
type IntDeltaEncoder struct {
	buf       *pool.ByteBuffer
	prev      int64
	prevDelta int64
	count     int
}

var _ ColumnarEncoder[int64] = (*IntDeltaEncoder)(nil)

// NewIntDeltaEncoder creates a delta-of-delta encoder.
func NewIntDeltaEncoder() *IntDeltaEncoder {
	return &IntDeltaEncoder{buf: pool.GetColumnBuffer()}
}

func (e *IntDeltaEncoder) Write(v int64) {
	e.count++
	switch e.count {
	case 1:
		e.buf.B = binary.AppendUvarint(e.buf.B, uint64(v)) //nolint:gosec
	case 2:
		e.prevDelta = v - e.prev
		e.buf.B = binary.AppendUvarint(e.buf.B, zigzag(e.prevDelta))
	default:
		delta := v - e.prev
		e.buf.B = binary.AppendUvarint(e.buf.B, zigzag(delta-e.prevDelta))
		e.prevDelta = delta
	}
	e.prev = v
}

func (e *IntDeltaEncoder) WriteSlice(values []int64) {
	e.buf.Grow(len(values) * 2)
	for _, v := range values {
		e.Write(v)
	}
}

func (e *IntDeltaEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *IntDeltaEncoder) Len() int      { return e.count }
func (e *IntDeltaEncoder) Size() int     { return e.buf.Len() }

func (e *IntDeltaEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
}

// IntDeltaDecoder reads IntDeltaEncoder payloads.
type IntDeltaDecoder struct{}

var _ ColumnarDecoder[int64] = IntDeltaDecoder{}

func (IntDeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var prev, delta int64
		offset := 0
		for i := range count {
			u, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			switch i {
			case 0:
				prev = int64(u) //nolint:gosec
			case 1:
				delta = unzigzag(u)
				prev += delta
			default:
				delta += unzigzag(u)
				prev += delta
			}
			if !yield(prev) {
				return
			}
		}
	}
}

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}
