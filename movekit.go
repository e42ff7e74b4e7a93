// Package movekit stores, indexes, summarises and cleans movement
// trajectories such as GPS tracks.
//
// A trajectory is a time-ordered sequence of probe rows (position, time and
// any extra attributes) held in a trajectory.Store. Stores come in two
// layouts with identical behaviour: tabular (row-major) and columnar
// (column-major).
//
// # Core Features
//
//   - Typed schemas with float64, int64, timestamp, string and categorical fields
//   - Shared category registries so categorical codes agree across stores
//   - An offset index mapping along-track distance to rows, with interpolation
//   - Length, duration, speed statistics and dominant sampling interval
//   - Greedy, longest-chain and segmented speed-outlier detection
//   - A checksummed binary snapshot codec (Gorilla, delta-of-delta, zstd, s2, lz4)
//   - A SQLite snapshot archive, CSV ingestion and HTML outlier charts
//
// # Basic Usage
//
// Reading a track and dropping speed outliers:
//
//	fields := []schema.Field{
//		schema.Float64Field("lat"),
//		schema.Float64Field("lon"),
//		schema.TimestampField("time", format.UnitSecond),
//	}
//	store, _ := movekit.ReadCSV(f, fields)
//	kept, cls, _ := movekit.FilterSpeed(store, outlier.ProbeFields{Lat: 0, Lon: 1, Time: 2, Speed: outlier.NoSpeed}, 40)
//	fmt.Printf("dropped %d rows\n", len(cls.Outliers))
//
// Saving and restoring a snapshot:
//
//	data, _ := movekit.EncodeSnapshot(kept, snapshot.WithCompression(format.CompressionZstd))
//	restored, _ := movekit.DecodeSnapshot(data, nil)
//
// # Package Structure
//
// This package holds thin wrappers for the common paths. The subpackages
// (trajectory, offset, stats, outlier, snapshot, archive, ingest, report)
// expose the full APIs.
package movekit

import (
	"io"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/ingest"
	"github.com/arloliu/movekit/internal/hash"
	"github.com/arloliu/movekit/outlier"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/snapshot"
	"github.com/arloliu/movekit/stats"
	"github.com/arloliu/movekit/trajectory"
)

// FieldID returns the 64-bit identifier a snapshot records for a field name.
func FieldID(name string) uint64 {
	return hash.ID(name)
}

// NewRegistry returns an empty category registry.
func NewRegistry() *category.Registry {
	return category.NewRegistry()
}

// ReadCSV reads delimited text with a header into a columnar store.
// See ingest.NewReader for the options.
func ReadCSV(r io.Reader, fields []schema.Field, opts ...ingest.Option) (trajectory.Store, error) {
	return ingest.ReadAll(r, fields, opts...)
}

// EncodeSnapshot encodes store with a fresh encoder.
func EncodeSnapshot(store trajectory.Store, opts ...snapshot.EncoderOption) ([]byte, error) {
	enc, err := snapshot.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(store)
}

// DecodeSnapshot decodes data into a store of its original layout.
// A nil reg decodes categorical fields into a fresh registry.
func DecodeSnapshot(data []byte, reg *category.Registry) (trajectory.Store, error) {
	return snapshot.DecodeStore(data, reg)
}

// FilterSpeed runs the greedy detector with a great-circle speed bound of
// thresholdMPS metres per second and returns the inlier rows.
func FilterSpeed(store trajectory.Store, fields outlier.ProbeFields, thresholdMPS float64) (trajectory.Store, outlier.Classification, error) {
	probes, err := outlier.ProbesFrom(store, fields)
	if err != nil {
		return nil, outlier.Classification{}, err
	}

	cls := outlier.Greedy(probes, outlier.SpeedBound{Threshold: thresholdMPS, Metric: geo.Haversine{}})
	kept, err := outlier.Apply(store, cls)
	if err != nil {
		return nil, outlier.Classification{}, err
	}

	return kept, cls, nil
}

// Summarize computes great-circle statistics for store. The dominant interval
// uses exact matching.
func Summarize(store trajectory.Store, lat, lon, ts int) (stats.Summary, error) {
	return stats.Summarize(store, lat, lon, ts, geo.Haversine{}, 0)
}
