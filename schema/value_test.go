package schema

import (
	"testing"

	"github.com/arloliu/movekit/format"
	"github.com/stretchr/testify/require"
)

func TestValue_Compare(t *testing.T) {
	require.Equal(t, -1, Float(1).Compare(Float(2)))
	require.Equal(t, 0, Timestamp(5).Compare(Timestamp(5)))
	require.Equal(t, 1, Int(9).Compare(Int(-9)))
	require.Equal(t, -1, String("a").Compare(String("b")))
	require.Equal(t, 1, Categorical(3).Compare(Categorical(1)), "categorical order is code order")

	require.Panics(t, func() { Float(1).Compare(Int(1)) })
}

// TestValue_Diff verifies the subtraction-like distance, including on categorical codes.
func TestValue_Diff(t *testing.T) {
	require.Equal(t, 1.5, Float(3).Diff(Float(1.5)))
	require.Equal(t, -4.0, Timestamp(1).Diff(Timestamp(5)))
	require.Equal(t, 2.0, Categorical(3).Diff(Categorical(1)))

	require.Panics(t, func() { String("a").Diff(String("b")) })
	require.Panics(t, func() { Int(1).Diff(Timestamp(1)) })
}

func TestValue_Accessors(t *testing.T) {
	require.Equal(t, format.KindCategorical, Categorical(2).Kind())
	require.Equal(t, 2.0, Categorical(2).AsFloat())
	require.Equal(t, 0.25, Float(0.25).AsFloat())
	require.True(t, Int(4).Equal(Int(4)))
	require.False(t, Int(4).Equal(Timestamp(4)))
	require.Equal(t, "#2", Categorical(2).String())
}

func TestRow_Clone(t *testing.T) {
	r := Row{Float(1), Int(2)}
	c := r.Clone()
	c[0] = Float(9)
	require.Equal(t, Float(1), r[0])
}
