// Package interp supplies interpolation between consecutive trajectory rows.
package interp

import (
	"fmt"
	"math"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/schema"
)

// Interpolator returns a row between a and b at localOffset along the segment.
//
// Implementations must return a at localOffset 0 and b at the segment length.
type Interpolator interface {
	Interpolate(a, b schema.Row, localOffset float64) (schema.Row, error)
}

// NoTime disables time interpolation in Linear.
const NoTime = -1

// Linear moves the position along the segment with Metric and scales the
// time field by the travelled fraction. Every other field is copied from a.
type Linear struct {
	Lat, Lon int
	Time     int // NoTime to leave the time field as in a
	Metric   geo.Metric
}

var _ Interpolator = Linear{}

// NewLinear returns a Linear interpolator for the given fields.
func NewLinear(lat, lon, time int, metric geo.Metric) Linear {
	return Linear{Lat: lat, Lon: lon, Time: time, Metric: metric}
}

func (l Linear) Interpolate(a, b schema.Row, localOffset float64) (schema.Row, error) {
	if err := l.check(a); err != nil {
		return nil, err
	}
	if err := l.check(b); err != nil {
		return nil, err
	}

	pa, pb := geo.PointOf(a, l.Lat, l.Lon), geo.PointOf(b, l.Lat, l.Lon)
	total := l.Metric.Distance(pa, pb)
	if localOffset <= 0 {
		return a.Clone(), nil
	}
	if localOffset >= total {
		return b.Clone(), nil
	}

	p := l.Metric.PointAlong(pa, pb, localOffset)
	out := a.Clone()
	out[l.Lat] = schema.Float(p.Lat())
	out[l.Lon] = schema.Float(p.Lon())

	if l.Time >= 0 {
		frac := localOffset / total
		ta, tb := a[l.Time], b[l.Time]
		switch ta.Kind() {
		case format.KindTimestamp:
			out[l.Time] = schema.Timestamp(ta.Int64() + int64(math.Round(frac*float64(tb.Int64()-ta.Int64()))))
		case format.KindInt64:
			out[l.Time] = schema.Int(ta.Int64() + int64(math.Round(frac*float64(tb.Int64()-ta.Int64()))))
		case format.KindFloat64:
			out[l.Time] = schema.Float(ta.Float64() + frac*(tb.Float64()-ta.Float64()))
		}
	}

	return out, nil
}

func (l Linear) check(row schema.Row) error {
	for _, i := range []int{l.Lat, l.Lon} {
		if i < 0 || i >= len(row) {
			return fmt.Errorf("%w: position field %d", errs.ErrFieldIndexOutOfRange, i)
		}
		if row[i].Kind() != format.KindFloat64 {
			return fmt.Errorf("%w: position field %d is %s", errs.ErrFieldKindMismatch, i, row[i].Kind())
		}
	}
	if l.Time >= len(row) {
		return fmt.Errorf("%w: time field %d", errs.ErrFieldIndexOutOfRange, l.Time)
	}
	if l.Time >= 0 && !row[l.Time].Kind().Ordered() {
		return fmt.Errorf("%w: time field %d is %s", errs.ErrFieldKindMismatch, l.Time, row[l.Time].Kind())
	}

	return nil
}
