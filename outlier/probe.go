// Package outlier removes points that violate a consistency predicate, such
// as a maximum speed, from a time-ordered trajectory.
//
// Detectors work on Probes, the (point, time) view of a row, and return a
// Classification of row indices. The predicate is pluggable: SpeedBound is
// the usual choice, and any Predicate can replace it without changing how a
// detector walks the input.
package outlier

import (
	"fmt"

	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/trajectory"
	"github.com/paulmach/orb"
)

// Probe is one observation as seen by a predicate.
type Probe struct {
	Point orb.Point
	Time  float64 // seconds
	Speed float64 // reported speed, if the source has one
}

// Classification partitions input indices into inliers and outliers, both ascending.
type Classification struct {
	Inliers  []int
	Outliers []int
}

// Len returns the number of classified points.
func (c Classification) Len() int { return len(c.Inliers) + len(c.Outliers) }

// Mask returns a slice of length n with true at inlier indices.
func (c Classification) Mask(n int) []bool {
	m := make([]bool, n)
	for _, i := range c.Inliers {
		m[i] = true
	}

	return m
}

// NoSpeed marks ProbeFields without a reported speed field.
const NoSpeed = -1

// ProbeFields names the store fields a probe is read from.
type ProbeFields struct {
	Lat, Lon int
	Time     int
	Speed    int // NoSpeed when the store has no speed field
}

// ProbesFrom reads probes from store. Lat, Lon and Speed must be Float64
// fields; Time may be a timestamp, converted to seconds through its unit,
// or a plain number taken as seconds.
func ProbesFrom(store trajectory.Store, f ProbeFields) ([]Probe, error) {
	sch := store.Schema()
	for _, i := range []int{f.Lat, f.Lon} {
		if _, err := sch.Require(i, format.KindFloat64); err != nil {
			return nil, fmt.Errorf("probe position: %w", err)
		}
	}
	tf, err := sch.Require(f.Time, format.KindTimestamp, format.KindInt64, format.KindFloat64)
	if err != nil {
		return nil, fmt.Errorf("probe time: %w", err)
	}
	if f.Speed != NoSpeed {
		if _, err := sch.Require(f.Speed, format.KindFloat64); err != nil {
			return nil, fmt.Errorf("probe speed: %w", err)
		}
	}

	fields := []int{f.Lat, f.Lon, f.Time}
	if f.Speed != NoSpeed {
		fields = append(fields, f.Speed)
	}
	probes := make([]Probe, 0, store.Len())
	ls := trajectory.NewLockstep(store, fields...)
	for ls.Next() {
		p := Probe{
			Point: orb.Point{ls.Cursor(1).Value().Float64(), ls.Cursor(0).Value().Float64()},
			Time:  tf.Seconds(ls.Cursor(2).Value()),
		}
		if f.Speed != NoSpeed {
			p.Speed = ls.Cursor(3).Value().Float64()
		}
		probes = append(probes, p)
	}

	return probes, nil
}

// Apply returns the inlier rows of store in original order, in the same layout.
func Apply(store trajectory.Store, c Classification) (trajectory.Store, error) {
	return trajectory.Select(store, c.Inliers)
}

// Outliers returns the outlier rows of store in original order.
func Outliers(store trajectory.Store, c Classification) (trajectory.Store, error) {
	return trajectory.Select(store, c.Outliers)
}

