package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/compress"
	"github.com/arloliu/movekit/encoding"
	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/hash"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/section"
	"github.com/arloliu/movekit/trajectory"
)

// Info is what a snapshot says about itself without decoding payloads.
type Info struct {
	Header  section.Header
	Entries []section.FieldEntry
	Names   []string
}

// Layout returns the layout of the store that was encoded.
func (i Info) Layout() format.Layout {
	if i.Header.Has(section.FlagTabular) {
		return format.LayoutTabular
	}

	return format.LayoutColumnar
}

// Inspect verifies the checksum and parses the header, field index and
// names table.
func Inspect(data []byte) (Info, error) {
	if len(data) < section.HeaderSize+section.ChecksumSize {
		return Info{}, fmt.Errorf("%w: snapshot of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	hdr, err := section.ParseHeader(data)
	if err != nil {
		return Info{}, err
	}

	engine := hdr.Engine()
	body := len(data) - section.ChecksumSize
	if want, got := engine.Uint64(data[body:]), hash.Checksum(data[:body]); want != got {
		return Info{}, fmt.Errorf("%w: stored %#016x, computed %#016x", errs.ErrChecksumMismatch, want, got)
	}
	if int(hdr.PayloadOffset) > body {
		return Info{}, fmt.Errorf("%w: payload offset %d beyond %d", errs.ErrCorruptPayload, hdr.PayloadOffset, body)
	}

	n := int(hdr.Fields)
	entries := make([]section.FieldEntry, n)
	for i := range n {
		pos := int(hdr.IndexOffset) + i*section.FieldEntrySize
		entries[i], err = section.ParseFieldEntry(data[pos:], engine)
		if err != nil {
			return Info{}, fmt.Errorf("field %d: %w", i, err)
		}
	}

	names, err := encoding.Collect[string](encoding.VarStringDecoder{}, data[hdr.NamesOffset:hdr.DictOffset], n)
	if err != nil {
		return Info{}, fmt.Errorf("names table: %w", err)
	}
	for i, name := range names {
		if hash.ID(name) != entries[i].ID {
			return Info{}, fmt.Errorf("%w: field %q does not match its ID", errs.ErrCorruptPayload, name)
		}
	}

	return Info{Header: hdr, Entries: entries, Names: names}, nil
}

// Decode reads a snapshot into a columnar store. Categorical codes are
// remapped into the dictionaries of reg, created on demand; a nil reg uses
// a fresh registry.
func Decode(data []byte, reg *category.Registry) (*trajectory.Columnar, error) {
	c, _, err := decode(data, reg)
	return c, err
}

// DecodeStore is Decode returning the store in the layout it was encoded from.
func DecodeStore(data []byte, reg *category.Registry) (trajectory.Store, error) {
	c, info, err := decode(data, reg)
	if err != nil {
		return nil, err
	}
	if info.Layout() == format.LayoutTabular {
		return trajectory.ToTabular(c), nil
	}

	return c, nil
}

func decode(data []byte, reg *category.Registry) (*trajectory.Columnar, Info, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, Info{}, err
	}
	if reg == nil {
		reg = category.NewRegistry()
	}

	hdr := info.Header
	engine := hdr.Engine()
	rows := int(hdr.Rows)
	dicts := data[hdr.DictOffset:hdr.PayloadOffset]
	payloads := data[hdr.PayloadOffset : len(data)-section.ChecksumSize]

	fields := make([]schema.Field, len(info.Entries))
	cols := make([]schema.Column, len(info.Entries))
	for i, entry := range info.Entries {
		f := schema.Field{Name: info.Names[i], Kind: entry.Kind, Unit: entry.Unit}

		var remap []category.Code
		if entry.Kind == format.KindCategorical {
			f.Dict, remap, dicts, err = readDictionary(dicts, reg)
			if err != nil {
				return nil, Info{}, fmt.Errorf("field %q dictionary: %w", f.Name, err)
			}
		}

		col, err := decodePayload(payloads, entry, rows, engine)
		if err != nil {
			return nil, Info{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if remap != nil {
			if col, err = globalize(col.(schema.Codes), remap); err != nil {
				return nil, Info{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
		}

		fields[i], cols[i] = f, col
	}

	sch, err := schema.New(fields...)
	if err != nil {
		return nil, Info{}, err
	}
	c, err := trajectory.NewColumnar(sch, cols)
	if err != nil {
		return nil, Info{}, err
	}

	return c, info, nil
}

func decodePayload(payloads []byte, entry section.FieldEntry, rows int, engine endian.EndianEngine) (schema.Column, error) {
	if entry.End() > uint64(len(payloads)) {
		return nil, fmt.Errorf("%w: payload [%d, %d) beyond %d", errs.ErrCorruptPayload, entry.Offset, entry.End(), len(payloads))
	}
	codec, err := compress.GetCodec(entry.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payloads[entry.Offset:entry.End()])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptPayload, err)
	}
	if len(raw) != int(entry.RawLength) {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", errs.ErrCorruptPayload, len(raw), entry.RawLength)
	}

	return encoding.DecodeColumn(entry.Kind, entry.Encoding, raw, rows, engine)
}

// readDictionary parses one dictionary block written by localize and maps
// each local code to its code in the registry dictionary of the same name.
func readDictionary(data []byte, reg *category.Registry) (*category.Dictionary, []category.Code, []byte, error) {
	count, n1 := binary.Uvarint(data)
	if n1 <= 0 {
		return nil, nil, nil, errs.ErrCorruptPayload
	}
	size, n2 := binary.Uvarint(data[n1:])
	if n2 <= 0 || size > uint64(len(data)-n1-n2) || count >= size {
		return nil, nil, nil, errs.ErrCorruptPayload
	}
	start := n1 + n2
	end := start + int(size) //nolint:gosec

	strs, err := encoding.Collect[string](encoding.VarStringDecoder{}, data[start:end], int(count)+1) //nolint:gosec
	if err != nil {
		return nil, nil, nil, err
	}

	dict := reg.Dictionary(strs[0])
	remap := make([]category.Code, count)
	for i, v := range strs[1:] {
		remap[i] = dict.Code(v)
	}

	return dict, remap, data[end:], nil
}

func globalize(codes schema.Codes, remap []category.Code) (schema.Codes, error) {
	for i, c := range codes {
		if int(c) >= len(remap) {
			return nil, fmt.Errorf("%w: code %d beyond dictionary of %d", errs.ErrCorruptPayload, c, len(remap))
		}
		codes[i] = remap[c]
	}

	return codes, nil
}
