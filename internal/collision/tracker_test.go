package collision

import (
	"testing"

	"github.com/arloliu/movekit/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_TrackField_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackField("lat", 0x1234567890abcdef))
	require.NoError(t, tracker.TrackField("lon", 0xfedcba0987654321))
	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"lat", "lon"}, tracker.Names())
}

func TestTracker_TrackField_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackField("", 0x1)
	require.ErrorIs(t, err, errs.ErrInvalidFieldName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_TrackField_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackField("time", 0x42))
	err := tracker.TrackField("time", 0x42)
	require.ErrorIs(t, err, errs.ErrDuplicateField)
	require.Equal(t, 1, tracker.Count(), "duplicate must not be recorded")
}

// TestTracker_TrackField_Collision verifies distinct names sharing an ID set the flag.
func TestTracker_TrackField_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackField("speed", 0x99))
	require.NoError(t, tracker.TrackField("heading", 0x99))
	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Count())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.TrackField("a", 1))
	require.NoError(t, tracker.TrackField("b", 1))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.NoError(t, tracker.TrackField("a", 1), "names are reusable after reset")
}
