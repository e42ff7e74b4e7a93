// Package snapshot serializes trajectory stores into a self-describing,
// checksummed binary form and reads them back.
//
// Columns are encoded independently (see the encoding package), optionally
// compressed, and located through a fixed-size field index (see the section
// package). Categorical columns travel with a local dictionary; on decode
// their codes are remapped through a category.Registry so they line up with
// the caller's dictionaries.
package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/compress"
	"github.com/arloliu/movekit/encoding"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/hash"
	"github.com/arloliu/movekit/internal/options"
	"github.com/arloliu/movekit/internal/pool"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/section"
	"github.com/arloliu/movekit/trajectory"
)

// Encoder turns stores into snapshots. It holds no per-store state and is
// safe for concurrent use once built.
type Encoder struct {
	cfg *EncoderConfig
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode serializes store.
func (e *Encoder) Encode(store trajectory.Store) ([]byte, error) {
	sch := store.Schema()
	engine := e.cfg.engine()
	codec, err := compress.GetCodec(e.cfg.compression)
	if err != nil {
		return nil, err
	}

	entries := make([]section.FieldEntry, sch.Len())
	payloads := make([][]byte, sch.Len())
	meta := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(meta)

	// Names first, then dictionaries, so one buffer holds both sections.
	names := encoding.NewVarStringEncoder()
	names.WriteSlice(sch.Names())
	meta.B = append(meta.B, names.Bytes()...)
	names.Finish()
	namesLen := meta.Len()

	var offset uint32
	for i, f := range sch.Fields() {
		col, err := store.Column(i)
		if err != nil {
			return nil, err
		}
		if f.Kind == format.KindCategorical {
			col, err = localize(meta, f, col)
			if err != nil {
				return nil, err
			}
		}

		enc, err := e.cfg.encodingFor(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidEncoding, err)
		}
		raw, err := encoding.EncodeColumn(col, enc, engine)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		packed, err := codec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %s compress: %w", f.Name, e.cfg.compression, err)
		}

		payloads[i] = packed
		entries[i] = section.FieldEntry{
			ID:          sch.ID(i),
			Kind:        f.Kind,
			Unit:        f.Unit,
			Encoding:    enc,
			Compression: e.cfg.compression,
			Offset:      offset,
			Length:      uint32(len(packed)), //nolint:gosec
			RawLength:   uint32(len(raw)),    //nolint:gosec
		}
		offset += uint32(len(packed)) //nolint:gosec
	}

	hdr := section.NewHeader(uint32(store.Len()), uint32(sch.Len())) //nolint:gosec
	hdr.Set(section.FlagBigEndian, e.cfg.bigEndian)
	hdr.Set(section.FlagTabular, store.Layout() == format.LayoutTabular)
	hdr.Set(section.FlagCollision, sch.HasCollision())
	hdr.NamesOffset = hdr.IndexOffset + uint32(section.FieldEntrySize*len(entries)) //nolint:gosec
	hdr.DictOffset = hdr.NamesOffset + uint32(namesLen)                             //nolint:gosec
	hdr.PayloadOffset = hdr.NamesOffset + uint32(meta.Len())                        //nolint:gosec

	size := int(hdr.PayloadOffset) + int(offset) + section.ChecksumSize
	out := make([]byte, size)
	pos := copy(out, hdr.Bytes())
	for _, entry := range entries {
		pos = entry.WriteToSlice(out, pos, engine)
	}
	pos += copy(out[pos:], meta.Bytes())
	for _, p := range payloads {
		pos += copy(out[pos:], p)
	}
	engine.PutUint64(out[pos:], hash.Checksum(out[:pos]))

	return out, nil
}

// localize rewrites the codes of a categorical column into a dense local
// dictionary in first-seen order and appends that dictionary to meta as
//
//	uvarint value count | uvarint block length | block
//
// where block holds the dictionary name and then each value, all length
// prefixed.
func localize(meta *pool.ByteBuffer, f schema.Field, col schema.Column) (schema.Column, error) {
	codes, ok := col.(schema.Codes)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T", errs.ErrFieldKindMismatch, f.Name, col)
	}

	local := make(map[category.Code]category.Code)
	values := make([]string, 0)
	out := make(schema.Codes, len(codes))
	for i, c := range codes {
		lc, seen := local[c]
		if !seen {
			v, ok := f.Dict.Value(c)
			if !ok {
				return nil, fmt.Errorf("%w: field %q code %d not in dictionary %q",
					errs.ErrSchemaMismatch, f.Name, c, f.Dict.Name())
			}
			lc = category.Code(len(values)) //nolint:gosec
			local[c] = lc
			values = append(values, v)
		}
		out[i] = lc
	}

	block := encoding.NewVarStringEncoder()
	defer block.Finish()
	block.Write(f.Dict.Name())
	block.WriteSlice(values)

	meta.B = binary.AppendUvarint(meta.B, uint64(len(values)))
	meta.B = binary.AppendUvarint(meta.B, uint64(block.Size()))
	meta.B = append(meta.B, block.Bytes()...)

	return out, nil
}
