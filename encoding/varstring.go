package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/movekit/internal/pool"
)

// VarStringEncoder writes each string as a uvarint byte length followed by
// its bytes.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[string] = (*VarStringEncoder)(nil)

// NewVarStringEncoder creates a length-prefixed string encoder.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetColumnBuffer()}
}

func (e *VarStringEncoder) Write(text string) {
	e.buf.Grow(binary.MaxVarintLen64 + len(text))
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
	e.buf.B = append(e.buf.B, text...)
	e.count++
}

func (e *VarStringEncoder) WriteSlice(texts []string) {
	total := 0
	for _, t := range texts {
		total += 1 + len(t)
	}
	e.buf.Grow(total)
	for _, t := range texts {
		e.Write(t)
	}
}

func (e *VarStringEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *VarStringEncoder) Len() int      { return e.count }
func (e *VarStringEncoder) Size() int     { return e.buf.Len() }

func (e *VarStringEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
}

// VarStringDecoder reads VarStringEncoder payloads.
type VarStringDecoder struct{}

var _ ColumnarDecoder[string] = VarStringDecoder{}

func (VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		offset := 0
		for range count {
			l, n := binary.Uvarint(data[offset:])
			if n <= 0 || l > uint64(len(data)-offset-n) {
				return
			}
			offset += n
			end := offset + int(l) //nolint:gosec
			if !yield(string(data[offset:end])) {
				return
			}
			offset = end
		}
	}
}

// CodeEncoder writes categorical codes as uvarints.
type CodeEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[uint32] = (*CodeEncoder)(nil)

// NewCodeEncoder creates a categorical code encoder.
func NewCodeEncoder() *CodeEncoder {
	return &CodeEncoder{buf: pool.GetColumnBuffer()}
}

func (e *CodeEncoder) Write(code uint32) {
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(code))
	e.count++
}

func (e *CodeEncoder) WriteSlice(codes []uint32) {
	e.buf.Grow(len(codes))
	for _, c := range codes {
		e.Write(c)
	}
}

func (e *CodeEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *CodeEncoder) Len() int      { return e.count }
func (e *CodeEncoder) Size() int     { return e.buf.Len() }

func (e *CodeEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
}

// CodeDecoder reads CodeEncoder payloads.
type CodeDecoder struct{}

var _ ColumnarDecoder[uint32] = CodeDecoder{}

func (CodeDecoder) All(data []byte, count int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		offset := 0
		for range count {
			u, n := binary.Uvarint(data[offset:])
			if n <= 0 || u > 1<<32-1 {
				return
			}
			offset += n
			if !yield(uint32(u)) {
				return
			}
		}
	}
}
