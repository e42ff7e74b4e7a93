package encoding

import (
	"math"
	"testing"

	"github.com/arloliu/movekit/endian"
	"github.com/arloliu/movekit/errs"
	"github.com/stretchr/testify/require"
)

func TestIntRaw_RoundTrip(t *testing.T) {
	values := []int64{0, -1, math.MaxInt64, math.MinInt64, 1700000000000}
	engine := endian.GetBigEndianEngine()

	enc := NewIntRawEncoder(engine)
	enc.WriteSlice(values)
	require.Equal(t, 40, enc.Size())
	data := append([]byte(nil), enc.Bytes()...)
	enc.Finish()

	got, err := Collect[int64](NewIntRawDecoder(engine), data, len(values))
	require.NoError(t, err)
	require.Equal(t, values, got)

	v, ok := NewIntRawDecoder(engine).At(data, 3, len(values))
	require.True(t, ok)
	require.Equal(t, int64(math.MinInt64), v)
}

func TestIntDelta_RegularIntervals(t *testing.T) {
	enc := NewIntDeltaEncoder()
	defer enc.Finish()

	start := int64(1700000000000)
	values := make([]int64, 100)
	for i := range values {
		values[i] = start + int64(i)*1000
	}
	enc.WriteSlice(values)

	// One byte per value after the first two.
	require.Less(t, enc.Size(), 6+2+98+1)

	got, err := Collect[int64](IntDeltaDecoder{}, enc.Bytes(), len(values))
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestIntDelta_RoundTrip(t *testing.T) {
	cases := map[string][]int64{
		"single":    {5},
		"two":       {5, -5},
		"irregular": {10, 11, 15, 14, 100, -3, 0},
		"extremes":  {math.MinInt64, math.MaxInt64, 0, math.MinInt64},
		"negative":  {-100, -90, -80},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			enc := NewIntDeltaEncoder()
			defer enc.Finish()
			for _, v := range values {
				enc.Write(v)
			}

			got, err := Collect[int64](IntDeltaDecoder{}, enc.Bytes(), len(values))
			require.NoError(t, err)
			require.Equal(t, values, got)
		})
	}
}

func TestIntDelta_Truncated(t *testing.T) {
	enc := NewIntDeltaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]int64{1, 2, 3})

	_, err := Collect[int64](IntDeltaDecoder{}, enc.Bytes(), 4)
	require.ErrorIs(t, err, errs.ErrCorruptPayload)
}

func TestZigzag(t *testing.T) {
	for v, want := range map[int64]uint64{0: 0, -1: 1, 1: 2, -2: 3, 2: 4} {
		require.Equal(t, want, zigzag(v))
		require.Equal(t, v, unzigzag(want))
	}
	require.Equal(t, int64(math.MinInt64), unzigzag(zigzag(math.MinInt64)))
}
