// Package geo supplies the distance and projection collaborators consumed by
// the offset index, the statistics engine and the outlier detectors.
//
// Points are orb.Point values with X holding longitude (or easting) and Y
// holding latitude (or northing).
package geo

import (
	"math"

	"github.com/arloliu/movekit/schema"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Metric measures distance between points and walks along a segment.
//
// Distance must be symmetric, non-negative and zero only for equal points.
// PointAlong returns a when d <= 0 and b when d is at least Distance(a, b).
type Metric interface {
	Distance(a, b orb.Point) float64
	PointAlong(a, b orb.Point, d float64) orb.Point
}

// Haversine is the great-circle metric on lon/lat degrees, in metres.
type Haversine struct{}

// Planar is the Euclidean metric on projected coordinates.
type Planar struct{}

var (
	_ Metric = Haversine{}
	_ Metric = Planar{}
)

func (Haversine) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

func (h Haversine) PointAlong(a, b orb.Point, d float64) orb.Point {
	if d <= 0 {
		return a
	}
	if d >= h.Distance(a, b) {
		return b
	}

	return geo.PointAtBearingAndDistance(a, geo.Bearing(a, b), d)
}

func (Planar) Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

func (p Planar) PointAlong(a, b orb.Point, d float64) orb.Point {
	total := p.Distance(a, b)
	if d <= 0 || total == 0 {
		return a
	}
	if d >= total {
		return b
	}
	f := d / total

	return orb.Point{a[0] + (b[0]-a[0])*f, a[1] + (b[1]-a[1])*f}
}

// Destination projects (lat, lon) by planar offsets east and north in metres
// along the geodesic and returns the new latitude and longitude.
func Destination(lat, lon, east, north float64) (float64, float64) {
	dist := math.Hypot(east, north)
	if dist == 0 {
		return lat, lon
	}
	bearing := math.Atan2(east, north) * 180 / math.Pi
	p := geo.PointAtBearingAndDistance(orb.Point{lon, lat}, bearing, dist)

	return p.Lat(), p.Lon()
}

// PointOf reads a point from the lat and lon fields of row.
func PointOf(row schema.Row, lat, lon int) orb.Point {
	return orb.Point{row[lon].Float64(), row[lat].Float64()}
}

// Points reads points from paired lat and lon slices, which must have equal length.
func Points(lats, lons []float64) []orb.Point {
	if len(lats) != len(lons) {
		panic("geo: lats and lons differ in length")
	}
	pts := make([]orb.Point, len(lats))
	for i := range lats {
		pts[i] = orb.Point{lons[i], lats[i]}
	}

	return pts
}
