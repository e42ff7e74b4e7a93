package outlier

import (
	"math"

	"github.com/arloliu/movekit/geo"
)

// Predicate decides whether cand is consistent with the reference probe ref.
// ref always precedes cand in the input.
type Predicate interface {
	Consistent(ref, cand Probe) bool
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(ref, cand Probe) bool

func (f PredicateFunc) Consistent(ref, cand Probe) bool { return f(ref, cand) }

// SpeedBound accepts a candidate when the speed needed to reach it from the
// reference does not exceed Threshold, in metric units per second.
//
// A candidate at the same instant is consistent only at the same place; a
// candidate earlier than the reference is never consistent.
type SpeedBound struct {
	Threshold float64
	Metric    geo.Metric
}

func (b SpeedBound) Consistent(ref, cand Probe) bool {
	dt := cand.Time - ref.Time
	d := b.metric().Distance(ref.Point, cand.Point)
	if dt <= 0 {
		return dt == 0 && d == 0
	}

	return d/dt <= b.Threshold
}

func (b SpeedBound) metric() geo.Metric {
	if b.Metric == nil {
		return geo.Haversine{}
	}

	return b.Metric
}

// PlanarSpeedBound is SpeedBound on projected coordinates, comparing squared
// distances so no square root is taken.
type PlanarSpeedBound struct {
	Threshold float64
}

func (b PlanarSpeedBound) Consistent(ref, cand Probe) bool {
	dt := cand.Time - ref.Time
	dx := cand.Point.X() - ref.Point.X()
	dy := cand.Point.Y() - ref.Point.Y()
	d2 := dx*dx + dy*dy
	if dt <= 0 {
		return dt == 0 && d2 == 0
	}
	limit := b.Threshold * dt

	return b.Threshold >= 0 && d2 <= limit*limit
}

// AccelerationBound accepts a candidate whose reported speed differs from the
// reference speed by at most Threshold per second.
type AccelerationBound struct {
	Threshold float64
}

func (b AccelerationBound) Consistent(ref, cand Probe) bool {
	dt := cand.Time - ref.Time
	dv := math.Abs(cand.Speed - ref.Speed)
	if dt <= 0 {
		return dt == 0 && dv == 0
	}

	return dv/dt <= b.Threshold
}

// All combines predicates; a candidate must satisfy every one.
func All(preds ...Predicate) Predicate {
	return PredicateFunc(func(ref, cand Probe) bool {
		for _, p := range preds {
			if !p.Consistent(ref, cand) {
				return false
			}
		}

		return true
	})
}
