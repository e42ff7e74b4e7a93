// Package offset indexes a trajectory by cumulative travelled distance.
//
// The index holds one offset per row, starting at 0. It is a snapshot of the
// store's position fields at build time; Stale reports whether those fields
// changed since, in which case the index must be rebuilt with New.
package offset

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/interp"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/trajectory"
	"github.com/paulmach/orb"
)

// Index maps distance travelled to row positions.
type Index struct {
	store    trajectory.Store
	lat, lon int
	offsets  []float64
	gens     [2]uint64
}

// Location is the result of a forward lookup: the cursor of the first row
// whose offset is strictly greater than the query, and the bracketing offsets.
type Location struct {
	Cursor trajectory.Cursor
	Start  float64
	End    float64
}

// New builds the offset table of store from its lat and lon fields.
//
// Parameters:
//   - store: trajectory to index
//   - lat, lon: Float64 position fields
//   - metric: distance between consecutive points
//
// Returns:
//   - *Index: the offset index, entry 0 is always 0
//   - error: ErrFieldIndexOutOfRange or ErrFieldKindMismatch for bad fields
func New(store trajectory.Store, lat, lon int, metric geo.Metric) (*Index, error) {
	sch := store.Schema()
	for _, f := range []int{lat, lon} {
		if _, err := sch.Require(f, format.KindFloat64); err != nil {
			return nil, fmt.Errorf("offset index: %w", err)
		}
	}

	n := store.Len()
	offsets := make([]float64, n)
	var prev orb.Point
	for i := range n {
		p := orb.Point{store.Value(i, lon).Float64(), store.Value(i, lat).Float64()}
		if i > 0 {
			offsets[i] = offsets[i-1] + metric.Distance(prev, p)
		}
		prev = p
	}

	return &Index{
		store:   store,
		lat:     lat,
		lon:     lon,
		offsets: offsets,
		gens:    [2]uint64{store.Generation(lat), store.Generation(lon)},
	}, nil
}

// Len returns the number of entries, equal to the store's row count at build time.
func (ix *Index) Len() int { return len(ix.offsets) }

// Offsets returns a copy of the offset table.
func (ix *Index) Offsets() []float64 {
	out := make([]float64, len(ix.offsets))
	copy(out, ix.offsets)

	return out
}

// Total returns the total travelled distance.
func (ix *Index) Total() float64 {
	if len(ix.offsets) == 0 {
		return 0
	}

	return ix.offsets[len(ix.offsets)-1]
}

// Store returns the indexed store.
func (ix *Index) Store() trajectory.Store { return ix.store }

// Stale reports whether the store's position fields changed after the index was built.
func (ix *Index) Stale() bool {
	return ix.store.Generation(ix.lat) != ix.gens[0] ||
		ix.store.Generation(ix.lon) != ix.gens[1] ||
		ix.store.Len() != len(ix.offsets)
}

// Locate finds the first row whose offset is strictly greater than offset.
//
// Before the first entry it returns the begin cursor with Start = -Inf.
// Past the last entry it returns the end cursor with End = +Inf. Otherwise
// Start and End are the offsets of the rows bracketing the query.
func (ix *Index) Locate(offset float64) Location {
	i := sort.Search(len(ix.offsets), func(k int) bool { return ix.offsets[k] > offset })

	switch {
	case i == len(ix.offsets):
		start := math.Inf(-1)
		if i > 0 {
			start = ix.offsets[i-1]
		}

		return Location{Cursor: trajectory.End(ix.store), Start: start, End: math.Inf(1)}
	case i == 0:
		return Location{Cursor: trajectory.Begin(ix.store), Start: math.Inf(-1), End: ix.offsets[0]}
	default:
		return Location{Cursor: trajectory.At(ix.store, i), Start: ix.offsets[i-1], End: ix.offsets[i]}
	}
}

// OffsetOf returns the offset of the row under cursor. It reports false for
// cursors of another store or outside the indexed rows.
func (ix *Index) OffsetOf(cursor trajectory.Cursor) (float64, bool) {
	for i, off := range ix.offsets {
		if cursor.Equal(trajectory.At(ix.store, i)) {
			return off, true
		}
	}

	return 0, false
}

// InterpolateAt returns the row at offset and the cursor where it would be inserted.
//
// Past the end it returns the last row with the end cursor; before the start
// it returns the first row with the begin cursor. Otherwise it interpolates
// between the bracketing rows with offset - Start as the local offset.
func (ix *Index) InterpolateAt(offset float64, ip interp.Interpolator) (schema.Row, trajectory.Cursor, error) {
	if len(ix.offsets) == 0 {
		return nil, trajectory.Cursor{}, errs.ErrEmptyTrajectory
	}

	loc := ix.Locate(offset)
	switch {
	case loc.Cursor.IsEnd():
		return ix.store.Row(len(ix.offsets) - 1).Clone(), loc.Cursor, nil
	case loc.Cursor.IsBegin():
		return ix.store.Row(0).Clone(), loc.Cursor, nil
	}

	p := loc.Cursor.Pos()
	row, err := ip.Interpolate(ix.store.Row(p-1), ix.store.Row(p), offset-loc.Start)
	if err != nil {
		return nil, loc.Cursor, fmt.Errorf("interpolate at %g: %w", offset, err)
	}

	return row, loc.Cursor, nil
}
