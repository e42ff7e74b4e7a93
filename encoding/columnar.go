package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/movekit/errs"
)

// ColumnarEncoder accumulates one column of values.
type ColumnarEncoder[T comparable] interface {
	// Write appends a single value.
	Write(v T)
	// WriteSlice appends values.
	WriteSlice(values []T)
	// Bytes returns the encoded payload. The slice is valid until the next
	// write or Finish and must not be modified.
	Bytes() []byte
	// Len returns the number of values written.
	Len() int
	// Size returns the encoded size in bytes.
	Size() int
	// Finish returns the buffer to its pool. The encoder is unusable afterwards.
	Finish()
}

// ColumnarDecoder reads a payload produced by the matching encoder.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values. Malformed or short data yields fewer.
	All(data []byte, count int) iter.Seq[T]
}

// Collect decodes exactly count values or fails with ErrCorruptPayload.
func Collect[T comparable](d ColumnarDecoder[T], data []byte, count int) ([]T, error) {
	out := make([]T, 0, count)
	for v := range d.All(data, count) {
		out = append(out, v)
	}
	if len(out) != count {
		return nil, fmt.Errorf("%w: decoded %d of %d values", errs.ErrCorruptPayload, len(out), count)
	}

	return out, nil
}
