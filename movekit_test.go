package movekit

import (
	"strings"
	"testing"

	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/ingest"
	"github.com/arloliu/movekit/internal/hash"
	"github.com/arloliu/movekit/outlier"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/snapshot"
	"github.com/stretchr/testify/require"
)

const csvTrack = "lat,lon,time,mode\n" +
	"10,20,0,walk\n" +
	"10.0001,20,10,walk\n" +
	"11,20,20,teleport\n" +
	"10.0003,20,30,walk\n"

func TestFieldID(t *testing.T) {
	require.Equal(t, hash.ID("lat"), FieldID("lat"))
	require.NotEqual(t, FieldID("lat"), FieldID("lon"))
}

func TestEndToEnd(t *testing.T) {
	reg := NewRegistry()
	fields := []schema.Field{
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitSecond),
		schema.CategoricalField("mode", nil),
	}
	store, err := ReadCSV(strings.NewReader(csvTrack), fields, ingest.WithRegistry(reg))
	require.NoError(t, err)

	kept, cls, err := FilterSpeed(store, outlier.ProbeFields{Lat: 0, Lon: 1, Time: 2, Speed: outlier.NoSpeed}, 5)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 3}, cls.Inliers)
	require.Equal(t, []int{2}, cls.Outliers)
	require.Equal(t, 3, kept.Len())

	data, err := EncodeSnapshot(kept, snapshot.WithCompression(format.CompressionS2))
	require.NoError(t, err)

	restored, err := DecodeSnapshot(data, reg)
	require.NoError(t, err)
	require.Equal(t, kept.Len(), restored.Len())
	for i, row := range kept.All() {
		require.Equal(t, row, restored.Row(i))
	}

	sum, err := Summarize(kept, 0, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, sum.Points)
	require.InDelta(t, 30.0, sum.Duration, 1e-9)
	require.InDelta(t, 33.4, sum.Length, 0.1)
}

func TestFilterSpeed_BadFields(t *testing.T) {
	store, err := ReadCSV(strings.NewReader(csvTrack), []schema.Field{
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitSecond),
	})
	require.NoError(t, err)

	_, _, err = FilterSpeed(store, outlier.ProbeFields{Lat: 0, Lon: 2, Time: 2, Speed: outlier.NoSpeed}, 5)
	require.Error(t, err)
}
