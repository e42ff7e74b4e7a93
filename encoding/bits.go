package encoding

import (
	"encoding/binary"

	"github.com/arloliu/movekit/internal/pool"
)

// bitWriter packs bits MSB-first into a pooled buffer, flushing whole
// 64-bit words as they fill.
type bitWriter struct {
	buf  *pool.ByteBuffer
	word uint64
	n    int // bits held in word
}

func (w *bitWriter) writeBit(bit uint64) {
	w.word = w.word<<1 | bit
	w.n++
	if w.n == 64 {
		w.flushWord()
	}
}

// writeBits writes the low numBits of value, 0 <= numBits <= 64.
func (w *bitWriter) writeBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}
	if numBits < 64 {
		value &= 1<<numBits - 1
	}

	avail := 64 - w.n
	if numBits <= avail {
		w.word = w.word<<numBits | value
		w.n += numBits
		if w.n == 64 {
			w.flushWord()
		}

		return
	}

	high := numBits - avail
	w.word = w.word<<avail | value>>high
	w.n = 64
	w.flushWord()
	w.word = value & (1<<high - 1)
	w.n = high
}

func (w *bitWriter) flushWord() {
	w.buf.B = binary.BigEndian.AppendUint64(w.buf.B, w.word)
	w.word, w.n = 0, 0
}

// bytes returns the flushed words followed by the pending partial word,
// zero padded to a byte boundary. The writer state is not changed.
func (w *bitWriter) bytes() []byte {
	if w.n == 0 {
		return w.buf.B
	}

	var tail [8]byte
	binary.BigEndian.PutUint64(tail[:], w.word<<(64-w.n))
	out := w.buf.B[:len(w.buf.B):len(w.buf.B)]

	return append(out, tail[:(w.n+7)/8]...)
}

func (w *bitWriter) size() int {
	return w.buf.Len() + (w.n+7)/8
}

// bitReader reads bits MSB-first.
type bitReader struct {
	data []byte
	pos  int
	word uint64
	n    int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (r *bitReader) readBit() (uint64, bool) {
	if r.n == 0 && !r.fill() {
		return 0, false
	}
	bit := r.word >> 63
	r.word <<= 1
	r.n--

	return bit, true
}

// readBits reads numBits, 0 <= numBits <= 64, right aligned.
func (r *bitReader) readBits(numBits int) (uint64, bool) {
	var out uint64
	for numBits > 0 {
		if r.n == 0 && !r.fill() {
			return 0, false
		}
		take := min(numBits, r.n)
		out = out<<take | r.word>>(64-take)
		r.word <<= take
		r.n -= take
		numBits -= take
	}

	return out, true
}

func (r *bitReader) fill() bool {
	remain := len(r.data) - r.pos
	if remain <= 0 {
		return false
	}
	if remain >= 8 {
		r.word = binary.BigEndian.Uint64(r.data[r.pos:])
		r.pos += 8
		r.n = 64

		return true
	}

	r.word = 0
	for i := range remain {
		r.word |= uint64(r.data[r.pos+i]) << (56 - 8*i)
	}
	r.pos += remain
	r.n = remain * 8

	return true
}
