package encoding

import (
	"fmt"
	"slices"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
)

// Supports reports whether enc can encode columns of kind.
func Supports(kind format.FieldKind, enc format.EncodingType) bool {
	switch kind {
	case format.KindFloat64:
		return enc == format.TypeRaw || enc == format.TypeGorilla
	case format.KindInt64, format.KindTimestamp:
		return enc == format.TypeRaw || enc == format.TypeDelta
	case format.KindString:
		return enc == format.TypeVarlen
	case format.KindCategorical:
		return enc == format.TypeCode
	default:
		return false
	}
}

// DefaultEncoding returns the encoding used for kind when none is configured.
func DefaultEncoding(kind format.FieldKind) format.EncodingType {
	switch kind {
	case format.KindFloat64:
		return format.TypeGorilla
	case format.KindInt64, format.KindTimestamp:
		return format.TypeDelta
	case format.KindString:
		return format.TypeVarlen
	default:
		return format.TypeCode
	}
}

// EncodeColumn encodes col with enc and returns a freshly allocated payload.
func EncodeColumn(col schema.Column, enc format.EncodingType, engine endian.EndianEngine) ([]byte, error) {
	if !Supports(col.Kind(), enc) {
		return nil, fmt.Errorf("%w: %s cannot encode %s", errs.ErrInvalidEncoding, enc, col.Kind())
	}

	switch c := col.(type) {
	case schema.Float64s:
		if enc == format.TypeRaw {
			return encodeWith(NewFloatRawEncoder(engine), c), nil
		}
		return encodeWith(NewFloatGorillaEncoder(), c), nil
	case schema.Int64s:
		return encodeInts(c, enc, engine), nil
	case schema.Timestamps:
		return encodeInts(c, enc, engine), nil
	case schema.Strings:
		return encodeWith(NewVarStringEncoder(), c), nil
	case schema.Codes:
		codes := make([]uint32, len(c))
		for i, code := range c {
			codes[i] = uint32(code)
		}
		return encodeWith(NewCodeEncoder(), codes), nil
	default:
		return nil, fmt.Errorf("%w: unsupported column type %T", errs.ErrFieldKindMismatch, col)
	}
}

func encodeInts(values []int64, enc format.EncodingType, engine endian.EndianEngine) []byte {
	if enc == format.TypeRaw {
		return encodeWith(NewIntRawEncoder(engine), values)
	}

	return encodeWith(NewIntDeltaEncoder(), values)
}

func encodeWith[T comparable, S ~[]T](e ColumnarEncoder[T], values S) []byte {
	defer e.Finish()
	e.WriteSlice(values)

	return slices.Clone(e.Bytes())
}

// DecodeColumn decodes count values of kind from data.
func DecodeColumn(kind format.FieldKind, enc format.EncodingType, data []byte, count int, engine endian.EndianEngine) (schema.Column, error) {
	if !Supports(kind, enc) {
		return nil, fmt.Errorf("%w: %s cannot decode %s", errs.ErrInvalidEncoding, enc, kind)
	}

	switch kind {
	case format.KindFloat64:
		var d ColumnarDecoder[float64] = FloatGorillaDecoder{}
		if enc == format.TypeRaw {
			d = NewFloatRawDecoder(engine)
		}
		v, err := Collect(d, data, count)
		if err != nil {
			return nil, err
		}

		return schema.Float64s(v), nil
	case format.KindInt64, format.KindTimestamp:
		var d ColumnarDecoder[int64] = IntDeltaDecoder{}
		if enc == format.TypeRaw {
			d = NewIntRawDecoder(engine)
		}
		v, err := Collect(d, data, count)
		if err != nil {
			return nil, err
		}
		if kind == format.KindTimestamp {
			return schema.Timestamps(v), nil
		}

		return schema.Int64s(v), nil
	case format.KindString:
		v, err := Collect[string](VarStringDecoder{}, data, count)
		if err != nil {
			return nil, err
		}

		return schema.Strings(v), nil
	default:
		v, err := Collect[uint32](CodeDecoder{}, data, count)
		if err != nil {
			return nil, err
		}
		codes := make(schema.Codes, len(v))
		for i, c := range v {
			codes[i] = category.Code(c)
		}

		return codes, nil
	}
}
