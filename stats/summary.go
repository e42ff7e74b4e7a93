package stats

import (
	"fmt"

	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/trajectory"
)

// Summary collects the statistics of one trajectory. Durations and intervals
// are in seconds, speeds in metric units per second.
type Summary struct {
	Points           int
	Length           float64
	Duration         float64
	MeanSpeed        float64
	MedianSpeed      float64
	MinSpeed         float64
	MaxSpeed         float64
	SpeedVariance    float64
	DominantInterval float64
}

// Summarize pulls the lat, lon and time columns of store and computes a Summary.
// The time field may be a timestamp, whose unit is converted to seconds, or a
// plain number taken as seconds. tolerance is in seconds.
func Summarize(store trajectory.Store, lat, lon, ts int, metric geo.Metric, tolerance float64) (Summary, error) {
	lats, err := floatColumn(store, lat)
	if err != nil {
		return Summary{}, err
	}
	lons, err := floatColumn(store, lon)
	if err != nil {
		return Summary{}, err
	}
	secs, err := Seconds(store, ts)
	if err != nil {
		return Summary{}, err
	}

	pts := geo.Points(lats, lons)
	sp := SpeedStatistics(pts, secs, metric, Mean, Median, Min, Max, Variance)

	return Summary{
		Points:           store.Len(),
		Length:           Length(lats, lons, metric),
		Duration:         Duration(secs),
		MeanSpeed:        sp[0],
		MedianSpeed:      sp[1],
		MinSpeed:         sp[2],
		MaxSpeed:         sp[3],
		SpeedVariance:    sp[4],
		DominantInterval: DominantInterval(secs, tolerance),
	}, nil
}

// Seconds returns the time field of store as seconds.
func Seconds(store trajectory.Store, ts int) ([]float64, error) {
	f, err := store.Schema().Require(ts, format.KindTimestamp, format.KindInt64, format.KindFloat64)
	if err != nil {
		return nil, fmt.Errorf("time field: %w", err)
	}
	out := make([]float64, store.Len())
	fc, err := trajectory.Fields(store, ts)
	if err != nil {
		return nil, err
	}
	for fc.Next() {
		out[fc.Pos()] = f.Seconds(fc.Value())
	}

	return out, nil
}

func floatColumn(store trajectory.Store, field int) ([]float64, error) {
	col, err := store.Column(field)
	if err != nil {
		return nil, err
	}

	return schema.Float64sOf(col)
}
