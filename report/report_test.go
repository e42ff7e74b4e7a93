package report

import (
	"bytes"
	"testing"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/outlier"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/trajectory"
	"github.com/stretchr/testify/require"
)

func track(t *testing.T) trajectory.Store {
	t.Helper()
	sch := schema.MustNew(
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitSecond),
	)
	s, err := trajectory.New(format.LayoutColumnar, sch, []schema.Column{
		schema.Float64s{10.0, 10.001, 40.0, 10.003},
		schema.Float64s{20.0, 20.001, 60.0, 20.003},
		schema.Timestamps{0, 10, 20, 30},
	})
	require.NoError(t, err)

	return s
}

func TestRender(t *testing.T) {
	store := track(t)
	cls := outlier.Classification{Inliers: []int{0, 1, 3}, Outliers: []int{2}}

	var buf bytes.Buffer
	err := Render(&buf, store, 0, 1, cls, WithTitle("Ferry 7"), WithTheme("dark"), WithSymbolSize(4))
	require.NoError(t, err)

	page := buf.String()
	require.Contains(t, page, "<title>Ferry 7</title>")
	require.Contains(t, page, "inliers")
	require.Contains(t, page, "outliers")
	require.Contains(t, page, "rows=4 inliers=3 outliers=1")
	require.Contains(t, page, outlierColor)
}

func TestRender_Empty(t *testing.T) {
	sch := schema.MustNew(schema.Float64Field("lat"), schema.Float64Field("lon"))
	store, err := trajectory.New(format.LayoutTabular, sch, []schema.Column{schema.Float64s{}, schema.Float64s{}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, store, 0, 1, outlier.Classification{}))
	require.Contains(t, buf.String(), "rows=0 inliers=0 outliers=0")
}

func TestRender_Errors(t *testing.T) {
	store := track(t)
	var buf bytes.Buffer

	err := Render(&buf, store, 0, 2, outlier.Classification{})
	require.ErrorIs(t, err, errs.ErrFieldKindMismatch)

	err = Render(&buf, store, 0, 7, outlier.Classification{})
	require.ErrorIs(t, err, errs.ErrFieldIndexOutOfRange)

	err = Render(&buf, store, 0, 1, outlier.Classification{Inliers: []int{4}})
	require.ErrorIs(t, err, errs.ErrRowOutOfRange)

	err = Render(&buf, store, 0, 1, outlier.Classification{}, WithSymbolSize(0))
	require.Error(t, err)
}

func TestBounds_Padded(t *testing.T) {
	b := newBounds()
	x0, x1, _, _ := b.padded()
	require.Nil(t, x0)
	require.Nil(t, x1)

	b.add(1, 5)
	x0, x1, y0, y1 := b.padded()
	require.InDelta(t, 0.999, x0, 1e-12)
	require.InDelta(t, 1.001, x1, 1e-12)
	require.InDelta(t, 4.999, y0, 1e-12)
	require.InDelta(t, 5.001, y1, 1e-12)

	b.add(3, 15)
	x0, x1, y0, y1 = b.padded()
	require.InDelta(t, 0.9, x0, 1e-12)
	require.InDelta(t, 3.1, x1, 1e-12)
	require.InDelta(t, 4.5, y0, 1e-12)
	require.InDelta(t, 15.5, y1, 1e-12)
}
