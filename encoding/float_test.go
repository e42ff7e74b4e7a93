package encoding

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arloliu/movekit/endian"
	"github.com/stretchr/testify/require"
)

func TestFloatRaw_RoundTrip(t *testing.T) {
	values := []float64{0, -1.5, math.Pi, math.MaxFloat64, math.Inf(-1), 42}
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		enc := NewFloatRawEncoder(engine)
		enc.Write(values[0])
		enc.WriteSlice(values[1:])
		require.Equal(t, len(values), enc.Len())
		require.Equal(t, 8*len(values), enc.Size())

		data := append([]byte(nil), enc.Bytes()...)
		enc.Finish()

		got, err := Collect[float64](NewFloatRawDecoder(engine), data, len(values))
		require.NoError(t, err)
		require.Equal(t, values, got)

		v, ok := NewFloatRawDecoder(engine).At(data, 2, len(values))
		require.True(t, ok)
		require.Equal(t, math.Pi, v)
		_, ok = NewFloatRawDecoder(engine).At(data, len(values), len(values))
		require.False(t, ok)
	}
}

func TestFloatGorilla_UnchangedValues(t *testing.T) {
	enc := NewFloatGorillaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]float64{100, 100, 100, 100})
	require.Equal(t, 4, enc.Len())
	// 64 bits for the first value and one bit for each repeat.
	require.Len(t, enc.Bytes(), 9)
	require.Equal(t, 9, enc.Size())
}

func TestFloatGorilla_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	walk := make([]float64, 500)
	lat := 25.03
	for i := range walk {
		lat += (rng.Float64() - 0.5) * 1e-4
		walk[i] = lat
	}

	cases := map[string][]float64{
		"single":   {42},
		"constant": {1, 1, 1, 1, 1},
		"similar":  {100, 100.1, 100.2, 100.3, 100.4},
		"special":  {0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64},
		"walk":     walk,
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			enc := NewFloatGorillaEncoder()
			enc.WriteSlice(values)
			data := append([]byte(nil), enc.Bytes()...)
			enc.Finish()

			got, err := Collect[float64](FloatGorillaDecoder{}, data, len(values))
			require.NoError(t, err)
			require.Len(t, got, len(values))
			for i := range values {
				require.Equal(t, math.Float64bits(values[i]), math.Float64bits(got[i]), "index %d", i)
			}
		})
	}
}

func TestFloatGorilla_NaN(t *testing.T) {
	enc := NewFloatGorillaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]float64{1, math.NaN(), 2})

	got, err := Collect[float64](FloatGorillaDecoder{}, enc.Bytes(), 3)
	require.NoError(t, err)
	require.Equal(t, 1.0, got[0])
	require.True(t, math.IsNaN(got[1]))
	require.Equal(t, 2.0, got[2])
}

func TestFloatGorilla_BytesDoesNotDisturbStream(t *testing.T) {
	enc := NewFloatGorillaEncoder()
	defer enc.Finish()

	enc.Write(1.5)
	enc.Write(2.5)
	_ = enc.Bytes()
	enc.Write(3.5)

	got, err := Collect[float64](FloatGorillaDecoder{}, enc.Bytes(), 3)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5}, got)
}

func TestFloatGorilla_Truncated(t *testing.T) {
	enc := NewFloatGorillaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]float64{1, 2, 3, 4, 5})

	_, err := Collect[float64](FloatGorillaDecoder{}, enc.Bytes()[:4], 5)
	require.Error(t, err)
}
