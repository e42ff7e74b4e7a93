package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/errs"
)

// Header is the fixed 32-byte snapshot header.
//
//	0-1   magic (little endian)
//	2     version
//	3     flags
//	4-7   row count
//	8-11  field count
//	12-15 index offset
//	16-19 names offset
//	20-23 dictionaries offset
//	24-27 payload offset
//	28-31 reserved
type Header struct {
	Flags         uint8
	Rows          uint32
	Fields        uint32
	IndexOffset   uint32
	NamesOffset   uint32
	DictOffset    uint32
	PayloadOffset uint32
}

// NewHeader returns a header for rows × fields with the index right after
// the header. The remaining offsets are set by the encoder.
func NewHeader(rows, fields uint32) Header {
	return Header{Rows: rows, Fields: fields, IndexOffset: IndexOffset}
}

// IsBigEndian reports whether FlagBigEndian is set.
func (h Header) IsBigEndian() bool { return h.Flags&FlagBigEndian != 0 }

// Has reports whether all bits of flag are set.
func (h Header) Has(flag uint8) bool { return h.Flags&flag == flag }

// Set sets or clears flag.
func (h *Header) Set(flag uint8, on bool) {
	if on {
		h.Flags |= flag
	} else {
		h.Flags &^= flag
	}
}

// Engine returns the byte order selected by the flags.
func (h Header) Engine() endian.EndianEngine {
	return endian.FromFlag(h.IsBigEndian())
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint16(b[0:2], Magic)
	b[2] = Version
	b[3] = h.Flags

	engine := h.Engine()
	engine.PutUint32(b[4:8], h.Rows)
	engine.PutUint32(b[8:12], h.Fields)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NamesOffset)
	engine.PutUint32(b[20:24], h.DictOffset)
	engine.PutUint32(b[24:28], h.PayloadOffset)

	return b[:]
}

// Parse reads a header from the first HeaderSize bytes of data and checks
// that its offsets are ordered.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if m := binary.LittleEndian.Uint16(data[0:2]); m != Magic {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidMagic, m)
	}
	if v := data[2]; v != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, v)
	}
	if data[3]&^flagsMask != 0 {
		return fmt.Errorf("%w: unknown flags %#02x", errs.ErrCorruptPayload, data[3])
	}

	h.Flags = data[3]
	engine := h.Engine()
	h.Rows = engine.Uint32(data[4:8])
	h.Fields = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NamesOffset = engine.Uint32(data[16:20])
	h.DictOffset = engine.Uint32(data[20:24])
	h.PayloadOffset = engine.Uint32(data[24:28])

	indexEnd := uint64(h.IndexOffset) + uint64(h.Fields)*FieldEntrySize
	if h.IndexOffset < HeaderSize || indexEnd > uint64(h.NamesOffset) ||
		h.NamesOffset > h.DictOffset || h.DictOffset > h.PayloadOffset {
		return fmt.Errorf("%w: section offsets out of order", errs.ErrCorruptPayload)
	}

	return nil
}

// ParseHeader parses a Header from data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
