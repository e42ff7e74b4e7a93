package snapshot

import (
	"fmt"

	"github.com/arloliu/movekit/compress"
	"github.com/arloliu/movekit/encoding"
	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/options"
	"github.com/arloliu/movekit/schema"
)

// EncoderConfig holds the settings applied by EncoderOptions.
type EncoderConfig struct {
	bigEndian     bool
	floatEncoding format.EncodingType
	intEncoding   format.EncodingType
	compression   format.CompressionType
	fieldEncoding map[string]format.EncodingType
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

func defaultConfig() *EncoderConfig {
	return &EncoderConfig{
		floatEncoding: format.TypeGorilla,
		intEncoding:   format.TypeDelta,
		compression:   format.CompressionNone,
		fieldEncoding: make(map[string]format.EncodingType),
	}
}

func (c *EncoderConfig) engine() endian.EndianEngine {
	return endian.FromFlag(c.bigEndian)
}

// encodingFor returns the encoding of f: a per-field override, then the
// per-kind setting, then the kind default.
func (c *EncoderConfig) encodingFor(f schema.Field) (format.EncodingType, error) {
	if enc, ok := c.fieldEncoding[f.Name]; ok {
		if !encoding.Supports(f.Kind, enc) {
			return 0, fmt.Errorf("field %q: %s encoding does not apply to %s", f.Name, enc, f.Kind)
		}
		return enc, nil
	}

	switch f.Kind {
	case format.KindFloat64:
		return c.floatEncoding, nil
	case format.KindInt64, format.KindTimestamp:
		return c.intEncoding, nil
	default:
		return encoding.DefaultEncoding(f.Kind), nil
	}
}

// WithLittleEndian writes little-endian snapshots. It is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.bigEndian = false })
}

// WithBigEndian writes big-endian snapshots.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.bigEndian = true })
}

// WithFloatEncoding selects raw or Gorilla encoding for float64 fields.
func WithFloatEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !encoding.Supports(format.KindFloat64, enc) {
			return fmt.Errorf("invalid float encoding: %s", enc)
		}
		c.floatEncoding = enc

		return nil
	})
}

// WithIntEncoding selects raw or delta encoding for int64 and timestamp fields.
func WithIntEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !encoding.Supports(format.KindInt64, enc) {
			return fmt.Errorf("invalid integer encoding: %s", enc)
		}
		c.intEncoding = enc

		return nil
	})
}

// WithFieldEncoding overrides the encoding of the field called name. The
// pairing is checked when a store is encoded.
func WithFieldEncoding(name string, enc format.EncodingType) EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.fieldEncoding[name] = enc })
}

// WithCompression compresses every payload with comp.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}
