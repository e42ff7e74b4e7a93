package trajectory

import (
	"testing"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func collectTimes(seq func(func(int, schema.Row) bool)) ([]int, []int64) {
	var idx []int
	var ts []int64
	for i, row := range seq {
		idx = append(idx, i)
		ts = append(ts, row[2].Int64())
	}

	return idx, ts
}

// TestAll_Restartable verifies iterating twice yields the same rows.
func TestAll_Restartable(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			s := newStore(t, layout, 1, 2, 3)

			idx, ts := collectTimes(s.All())
			require.Equal(t, []int{0, 1, 2}, idx)
			require.Equal(t, []int64{1, 2, 3}, ts)

			_, again := collectTimes(s.All())
			require.Equal(t, ts, again)

			idx, ts = collectTimes(s.Backward())
			require.Equal(t, []int{2, 1, 0}, idx)
			require.Equal(t, []int64{3, 2, 1}, ts)
		})
	}
}

func TestAll_EarlyBreak(t *testing.T) {
	for _, layout := range layouts {
		s := newStore(t, layout, 1, 2, 3, 4)
		count := 0
		for i := range s.All() {
			count++
			if i == 1 {
				break
			}
		}
		require.Equal(t, 2, count)
	}
}

func TestFieldCursor(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			s := newStore(t, layout, 10, 20, 30, 40)
			fc, err := Fields(s, 2)
			require.NoError(t, err)
			require.Equal(t, -1, fc.Pos())
			require.Equal(t, 2, fc.Field())

			var got []int64
			for fc.Next() {
				got = append(got, fc.Value().Int64())
			}
			require.Equal(t, []int64{10, 20, 30, 40}, got)
			require.False(t, fc.Next())

			fc.Rewind(2)
			require.True(t, fc.Next())
			require.Equal(t, int64(30), fc.Value().Int64())
			require.Equal(t, 2, fc.Pos())

			fc.Rewind(100)
			require.True(t, fc.Next())
			require.Equal(t, int64(10), fc.Value().Int64(), "rewind clamps at the start")

			fc.Reset()
			require.Equal(t, -1, fc.Pos())

			_, err = Fields(s, 3)
			require.ErrorIs(t, err, errs.ErrFieldIndexOutOfRange)
		})
	}
}

func TestLockstep(t *testing.T) {
	s := newStore(t, format.LayoutColumnar, 5, 6)
	ls := NewLockstep(s, 2, 0)

	require.True(t, ls.Next())
	require.Equal(t, 0, ls.Pos())
	require.Equal(t, schema.Row{schema.Timestamp(5), schema.Float(0)}, ls.Row())
	require.True(t, ls.Next())
	require.Equal(t, int64(6), ls.Cursor(0).Value().Int64())
	require.False(t, ls.Next())

	require.False(t, NewLockstep(newStore(t, format.LayoutColumnar)).Next())
}

func TestCursor(t *testing.T) {
	s := newStore(t, format.LayoutTabular, 1, 2)
	other := newStore(t, format.LayoutTabular, 1, 2)

	require.True(t, Begin(s).IsBegin())
	require.True(t, End(s).IsEnd())
	require.False(t, At(s, 1).IsEnd())
	require.Equal(t, 2, End(s).Pos())
	require.True(t, End(s).Prev().Equal(At(s, 1)))
	require.False(t, At(s, 1).Equal(At(other, 1)), "cursor identity includes the store")
	require.Equal(t, int64(2), At(s, 1).Row()[2].Int64())
	require.Same(t, s, At(s, 0).Store())
}

// TestCollect_FromRanges verifies stores can be built from forward and reverse row ranges.
func TestCollect_FromRanges(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			s := newStore(t, layout, 1, 2, 3, 4, 5)

			fwd, err := Collect(format.LayoutColumnar, s.Schema(), Range(s, 1, 4))
			require.NoError(t, err)
			require.Equal(t, []int64{2, 3, 4}, timesOf(t, fwd))

			rev, err := Collect(format.LayoutTabular, s.Schema(), ReverseRange(s, 1, 4))
			require.NoError(t, err)
			require.Equal(t, []int64{4, 3, 2}, timesOf(t, rev))

			clamped, err := Collect(layout, s.Schema(), Range(s, -3, 99))
			require.NoError(t, err)
			require.Equal(t, 5, clamped.Len())

			_, err = Collect(0, s.Schema(), s.All())
			require.Error(t, err)
		})
	}
}

func TestConvertLayouts(t *testing.T) {
	tab := newStore(t, format.LayoutTabular, 1, 2, 3)

	col := ToColumnar(tab)
	require.Equal(t, format.LayoutColumnar, col.Layout())
	require.Same(t, col, ToColumnar(col))

	back := ToTabular(col)
	require.Equal(t, format.LayoutTabular, back.Layout())
	require.Same(t, back, ToTabular(back))

	for i := range tab.Len() {
		require.Empty(t, cmp.Diff(tab.Row(i), back.Row(i), cmp.AllowUnexported(schema.Value{})))
		require.Empty(t, cmp.Diff(tab.Row(i), col.Row(i), cmp.AllowUnexported(schema.Value{})))
	}
}

func TestSelectAndSort(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			s := newStore(t, layout, 30, 10, 20, 10)

			sorted, err := SortBy(s, 2)
			require.NoError(t, err)
			require.Equal(t, []int64{10, 10, 20, 30}, timesOf(t, sorted))
			require.Equal(t, 1.0, sorted.Value(0, 0).Float64(), "stable: row 1 precedes row 3")
			require.Equal(t, 3.0, sorted.Value(1, 0).Float64())

			sel, err := Select(s, []int{3, 0})
			require.NoError(t, err)
			require.Equal(t, []int64{10, 30}, timesOf(t, sel))

			_, err = Select(s, []int{4})
			require.ErrorIs(t, err, errs.ErrRowOutOfRange)

			_, err = SortBy(s, 9)
			require.ErrorIs(t, err, errs.ErrFieldIndexOutOfRange)

			cl := Clone(s)
			require.NoError(t, cl.ReplaceColumn(2, schema.Timestamps{0, 0, 0, 0}))
			require.Equal(t, []int64{30, 10, 20, 10}, timesOf(t, s), "clone is independent")
		})
	}
}
