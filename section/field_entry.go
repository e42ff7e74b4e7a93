package section

import (
	"fmt"

	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
)

// FieldEntry describes one field payload.
//
//	0-7   field ID (xxHash64 of the name)
//	8     kind
//	9     time unit
//	10    encoding
//	11    compression
//	12-15 payload offset, relative to the payload section
//	16-19 stored (compressed) length
//	20-23 encoded length before compression
type FieldEntry struct {
	ID          uint64
	Kind        format.FieldKind
	Unit        format.TimeUnit
	Encoding    format.EncodingType
	Compression format.CompressionType
	Offset      uint32
	Length      uint32
	RawLength   uint32
}

// Bytes serializes the entry with engine.
func (e FieldEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [FieldEntrySize]byte
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes the entry at data[offset:] and returns the next position.
func (e FieldEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	b := data[offset : offset+FieldEntrySize]
	engine.PutUint64(b[0:8], e.ID)
	b[8] = uint8(e.Kind)
	b[9] = uint8(e.Unit)
	b[10] = uint8(e.Encoding)
	b[11] = uint8(e.Compression)
	engine.PutUint32(b[12:16], e.Offset)
	engine.PutUint32(b[16:20], e.Length)
	engine.PutUint32(b[20:24], e.RawLength)

	return offset + FieldEntrySize
}

// End returns the payload-relative offset just past this entry's payload.
func (e FieldEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// ParseFieldEntry parses and validates an entry.
func ParseFieldEntry(data []byte, engine endian.EndianEngine) (FieldEntry, error) {
	if len(data) < FieldEntrySize {
		return FieldEntry{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidIndexEntrySize, len(data))
	}

	e := FieldEntry{
		ID:          engine.Uint64(data[0:8]),
		Kind:        format.FieldKind(data[8]),
		Unit:        format.TimeUnit(data[9]),
		Encoding:    format.EncodingType(data[10]),
		Compression: format.CompressionType(data[11]),
		Offset:      engine.Uint32(data[12:16]),
		Length:      engine.Uint32(data[16:20]),
		RawLength:   engine.Uint32(data[20:24]),
	}
	if !e.Kind.Valid() {
		return FieldEntry{}, fmt.Errorf("%w: kind %d", errs.ErrFieldKindMismatch, data[8])
	}
	if e.Encoding < format.TypeRaw || e.Encoding > format.TypeCode {
		return FieldEntry{}, fmt.Errorf("%w: %d", errs.ErrInvalidEncoding, data[10])
	}
	if e.Compression < format.CompressionNone || e.Compression > format.CompressionLZ4 {
		return FieldEntry{}, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, data[11])
	}

	return e, nil
}
