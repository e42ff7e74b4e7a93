// Package stats computes motion statistics over coordinate and time ranges.
//
// All functions are pure. Empty and single-point ranges are not errors: they
// produce zero results. Ranges that must be paired (latitudes with
// longitudes, points with times) must have equal lengths; a mismatch is a
// programming error and panics.
package stats

import (
	"fmt"
	"slices"

	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/internal/pool"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Number is the set of numeric types accepted for times.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Statistic selects an aggregate of the per-segment speeds.
type Statistic uint8

const (
	Mean Statistic = iota + 1
	Median
	Min
	Max
	Variance // population variance
)

func (s Statistic) String() string {
	switch s {
	case Mean:
		return "mean"
	case Median:
		return "median"
	case Min:
		return "min"
	case Max:
		return "max"
	case Variance:
		return "variance"
	default:
		return "unknown"
	}
}

// Length sums the distance between consecutive (lat, lon) points.
// It returns 0 for fewer than two points.
func Length(lats, lons []float64, metric geo.Metric) float64 {
	mustPair(len(lats), len(lons))
	if len(lats) < 2 {
		return 0
	}

	total := 0.0
	prev := orb.Point{lons[0], lats[0]}
	for i := 1; i < len(lats); i++ {
		p := orb.Point{lons[i], lats[i]}
		total += metric.Distance(prev, p)
		prev = p
	}

	return total
}

// Duration returns max(times) - min(times) found in one pass, or 0 for an empty range.
// The range does not need to be sorted.
func Duration[T Number](times []T) T {
	if len(times) == 0 {
		return 0
	}
	lo, hi := times[0], times[0]
	for _, t := range times[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}

	return hi - lo
}

// Speeds returns distance / Δtime for every consecutive pair. Equal
// consecutive times yield an infinite or NaN speed.
func Speeds[T Number](points []orb.Point, times []T, metric geo.Metric) []float64 {
	mustPair(len(points), len(times))
	if len(points) < 2 {
		return nil
	}
	out := make([]float64, len(points)-1)
	fillSpeeds(out, points, times, metric)

	return out
}

func fillSpeeds[T Number](dst []float64, points []orb.Point, times []T, metric geo.Metric) {
	for i := range dst {
		dst[i] = metric.Distance(points[i], points[i+1]) / float64(times[i+1]-times[i])
	}
}

// SpeedStatistics aggregates the per-segment speeds of points and times.
//
// Results align positionally with requested. Every result is 0 when there
// are fewer than two points.
//
// Example:
//
//	res := stats.SpeedStatistics(pts, secs, geo.Haversine{}, stats.Mean, stats.Max)
//	mean, peak := res[0], res[1]
func SpeedStatistics[T Number](points []orb.Point, times []T, metric geo.Metric, requested ...Statistic) []float64 {
	mustPair(len(points), len(times))
	out := make([]float64, len(requested))
	if len(points) < 2 {
		return out
	}

	speeds, cleanup := pool.GetFloat64Slice(len(points) - 1)
	defer cleanup()
	fillSpeeds(speeds, points, times, metric)

	medianAt := -1
	for i, s := range requested {
		switch s {
		case Mean:
			out[i] = stat.Mean(speeds, nil)
		case Min:
			out[i] = floats.Min(speeds)
		case Max:
			out[i] = floats.Max(speeds)
		case Variance:
			_, out[i] = stat.PopMeanVariance(speeds, nil)
		case Median:
			medianAt = i
		default:
			panic(fmt.Sprintf("stats: unknown statistic %d", s))
		}
	}

	// median reorders speeds, so it runs after every other aggregate
	if medianAt >= 0 {
		m := median(speeds)
		for i, s := range requested {
			if s == Median {
				out[i] = m
			}
		}
	}

	return out
}

// SpeedStatistic returns a single aggregate of the per-segment speeds.
func SpeedStatistic[T Number](points []orb.Point, times []T, metric geo.Metric, s Statistic) float64 {
	return SpeedStatistics(points, times, metric, s)[0]
}

// median returns the median of values, reordering them in place.
// For an even count it averages the two middle values.
func median(values []float64) float64 {
	n := len(values)
	k := n / 2
	nthElement(values, k)
	if n%2 == 1 {
		return values[k]
	}

	return (floats.Max(values[:k]) + values[k]) / 2
}

// nthElement partially sorts a so that a[k] holds the value it would have
// after a full sort, with no larger value before it and no smaller value after it.
func nthElement(a []float64, k int) {
	lo, hi := 0, len(a)-1
	for lo < hi {
		pivot := a[lo+(hi-lo)/2]
		i, j := lo, hi
		for i <= j {
			for a[i] < pivot {
				i++
			}
			for a[j] > pivot {
				j--
			}
			if i <= j {
				a[i], a[j] = a[j], a[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}

// DominantInterval estimates the most common sampling interval of sorted times.
//
// Consecutive differences are sorted and scanned with a window in which no
// two differences are more than tolerance apart. The smallest difference of
// the first widest window is returned. It returns 0 for fewer than two times
// and the sole difference for exactly two.
func DominantInterval[T Number](sortedTimes []T, tolerance T) T {
	if len(sortedTimes) < 2 {
		return 0
	}
	diffs := make([]T, len(sortedTimes)-1)
	for i := range diffs {
		diffs[i] = sortedTimes[i+1] - sortedTimes[i]
	}
	if len(diffs) == 1 {
		return diffs[0]
	}
	slices.Sort(diffs)

	best, mode := 0, diffs[0]
	left := 0
	for right := range diffs {
		for diffs[right]-diffs[left] > tolerance {
			left++
		}
		if count := right - left + 1; count > best {
			best = count
			mode = diffs[left]
		}
	}

	return mode
}

func mustPair(a, b int) {
	if a != b {
		panic(fmt.Sprintf("stats: paired ranges differ in length (%d != %d)", a, b))
	}
}
