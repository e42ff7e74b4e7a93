package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice_Length(t *testing.T) {
	s, cleanup := GetFloat64Slice(10)
	defer cleanup()

	require.Len(t, s, 10)
}

// TestGetFloat64Slice_Reuse verifies a returned slice can be handed out again with a new length.
func TestGetFloat64Slice_Reuse(t *testing.T) {
	s, cleanup := GetFloat64Slice(64)
	s[0] = 1
	cleanup()

	s2, cleanup2 := GetFloat64Slice(8)
	defer cleanup2()
	require.Len(t, s2, 8)

	s3, cleanup3 := GetFloat64Slice(0)
	defer cleanup3()
	require.Empty(t, s3)
}
