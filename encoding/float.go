package encoding

import (
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/internal/pool"
)

// FloatRawEncoder writes float64 values as 8-byte IEEE 754 words in the
// engine's byte order.
type FloatRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*FloatRawEncoder)(nil)

// NewFloatRawEncoder creates a raw float encoder.
func NewFloatRawEncoder(engine endian.EndianEngine) *FloatRawEncoder {
	return &FloatRawEncoder{engine: engine, buf: pool.GetColumnBuffer()}
}

func (e *FloatRawEncoder) Write(v float64) {
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	e.count++
}

func (e *FloatRawEncoder) WriteSlice(values []float64) {
	e.buf.Grow(8 * len(values))
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
	e.count += len(values)
}

func (e *FloatRawEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *FloatRawEncoder) Len() int      { return e.count }
func (e *FloatRawEncoder) Size() int     { return e.buf.Len() }

func (e *FloatRawEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
}

// FloatRawDecoder reads FloatRawEncoder payloads.
type FloatRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = FloatRawDecoder{}

// NewFloatRawDecoder creates a raw float decoder.
func NewFloatRawDecoder(engine endian.EndianEngine) FloatRawDecoder {
	return FloatRawDecoder{engine: engine}
}

func (d FloatRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/8)
		for i := range n {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8:]))) {
				return
			}
		}
	}
}

// At returns the value at index without decoding the others.
func (d FloatRawDecoder) At(data []byte, index, count int) (float64, bool) {
	if index < 0 || index >= count || len(data) < (index+1)*8 {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[index*8:])), true
}

// FloatGorillaEncoder compresses float64 values with the Gorilla XOR scheme.
// The first value is stored as 64 raw bits; each later value stores the XOR
// with its predecessor using the window layout described in the package doc.
type FloatGorillaEncoder struct {
	w         bitWriter
	prev      uint64
	leading   int
	trailing  int
	blockSize int
	count     int
}

var _ ColumnarEncoder[float64] = (*FloatGorillaEncoder)(nil)

// NewFloatGorillaEncoder creates a Gorilla float encoder.
func NewFloatGorillaEncoder() *FloatGorillaEncoder {
	return &FloatGorillaEncoder{w: bitWriter{buf: pool.GetColumnBuffer()}}
}

func (e *FloatGorillaEncoder) Write(v float64) {
	e.count++
	valBits := math.Float64bits(v)
	if e.count == 1 {
		e.w.writeBits(valBits, 64)
		e.prev = valBits

		return
	}

	xor := valBits ^ e.prev
	e.prev = valBits
	if xor == 0 {
		e.w.writeBit(0)
		return
	}
	e.w.writeBit(1)

	leading := bits.LeadingZeros64(xor)
	trailing := bits.TrailingZeros64(xor)
	// Leading zeros are stored in 5 bits.
	if leading > 31 {
		leading = 31
	}

	if e.blockSize > 0 && leading >= e.leading && trailing >= e.trailing {
		e.w.writeBit(0)
		e.w.writeBits(xor>>e.trailing, e.blockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.w.writeBit(1)
	e.w.writeBits(uint64(leading), 5)     //nolint:gosec
	e.w.writeBits(uint64(blockSize-1), 6) //nolint:gosec
	e.w.writeBits(xor>>trailing, blockSize)
	e.leading, e.trailing, e.blockSize = leading, trailing, blockSize
}

func (e *FloatGorillaEncoder) WriteSlice(values []float64) {
	e.w.buf.Grow(len(values) * 2)
	for _, v := range values {
		e.Write(v)
	}
}

func (e *FloatGorillaEncoder) Bytes() []byte { return e.w.bytes() }
func (e *FloatGorillaEncoder) Len() int      { return e.count }
func (e *FloatGorillaEncoder) Size() int     { return e.w.size() }

func (e *FloatGorillaEncoder) Finish() {
	pool.PutColumnBuffer(e.w.buf)
	e.w.buf = nil
}

// FloatGorillaDecoder reads FloatGorillaEncoder payloads.
type FloatGorillaDecoder struct{}

var _ ColumnarDecoder[float64] = FloatGorillaDecoder{}

func (FloatGorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 {
			return
		}
		r := newBitReader(data)
		prev, ok := r.readBits(64)
		if !ok || !yield(math.Float64frombits(prev)) {
			return
		}

		trailing, blockSize := 0, 0
		for i := 1; i < count; i++ {
			changed, ok := r.readBit()
			if !ok {
				return
			}
			if changed == 1 {
				newBlock, ok := r.readBit()
				if !ok {
					return
				}
				if newBlock == 1 {
					leading, ok1 := r.readBits(5)
					size, ok2 := r.readBits(6)
					if !ok1 || !ok2 {
						return
					}
					blockSize = int(size) + 1
					trailing = 64 - int(leading) - blockSize
					if trailing < 0 {
						return
					}
				} else if blockSize == 0 {
					return
				}
				xor, ok := r.readBits(blockSize)
				if !ok {
					return
				}
				prev ^= xor << trailing
			}
			if !yield(math.Float64frombits(prev)) {
				return
			}
		}
	}
}
