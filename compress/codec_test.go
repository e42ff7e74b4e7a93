package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func samplePayload() []byte {
	// Repetitive with some noise, like an encoded timestamp column.
	rng := rand.New(rand.NewSource(1))
	var buf bytes.Buffer
	for i := range 4096 {
		buf.WriteByte(byte(i % 7))
		if rng.Intn(10) == 0 {
			buf.WriteByte(byte(rng.Intn(256)))
		}
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := samplePayload()
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(payload)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(packed), len(payload))
			}

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, payload, unpacked)
		})
	}
}

func TestCodecs_Empty(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		out, err := codec.Decompress(packed)
		require.NoError(t, err)
		require.Empty(t, out, ct.String())
	}
}

func TestCodecs_Corrupt(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0x01, 0x02, 0x03}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCompressWithStats(t *testing.T) {
	payload := samplePayload()
	out, stats, err := CompressWithStats(format.CompressionS2, payload)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, int64(len(payload)), stats.OriginalSize)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Less(t, stats.Ratio(), 1.0)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	require.Equal(t, 0.0, Stats{}.Ratio())
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]format.CompressionType{
		"":     format.CompressionNone,
		"none": format.CompressionNone,
		"zstd": format.CompressionZstd,
		"s2":   format.CompressionS2,
		"lz4":  format.CompressionLZ4,
	} {
		got, err := ParseType(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseType("brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
