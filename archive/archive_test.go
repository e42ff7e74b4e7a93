package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/logging"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/snapshot"
	"github.com/arloliu/movekit/trajectory"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, opts ...Option) *Archive {
	t.Helper()
	mute(t)

	a, err := Open(context.Background(), filepath.Join(t.TempDir(), "archive.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a
}

func mute(t *testing.T) {
	prev := logging.Logf
	logging.SetLogger(nil)
	t.Cleanup(func() { logging.SetLogger(prev) })
}

func track(t *testing.T, reg *category.Registry, layout format.Layout) trajectory.Store {
	t.Helper()
	mode := reg.Dictionary("mode")
	sch := schema.MustNew(
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitSecond),
		schema.CategoricalField("mode", mode),
	)
	s, err := trajectory.New(layout, sch, []schema.Column{
		schema.Float64s{51.50, 51.51, 51.52},
		schema.Float64s{-0.12, -0.11, -0.10},
		schema.Timestamps{100, 160, 220},
		schema.Codes{mode.Code("walk"), mode.Code("walk"), mode.Code("bus")},
	})
	require.NoError(t, err)

	return s
}

func TestArchive_Cycle(t *testing.T) {
	ctx := context.Background()
	clock := time.Unix(1700000000, 0)
	a := openTemp(t,
		WithEncoderOptions(snapshot.WithCompression(format.CompressionZstd)),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)

	reg := category.NewRegistry()
	first := track(t, reg, format.LayoutColumnar)
	second := track(t, reg, format.LayoutTabular)

	id1, err := a.Put(ctx, "morning", first)
	require.NoError(t, err)
	id2, err := a.Put(ctx, "evening", second)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	entries, err := a.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, id1, entries[0].ID)
	require.Equal(t, "morning", entries[0].Name)
	require.Equal(t, 3, entries[0].Rows)
	require.Equal(t, 4, entries[0].Fields)
	require.Equal(t, format.LayoutColumnar, entries[0].Layout)
	require.Positive(t, entries[0].Size)
	require.Equal(t, format.LayoutTabular, entries[1].Layout)
	require.True(t, entries[0].CreatedAt.Before(entries[1].CreatedAt))

	got, err := a.Get(ctx, id2, reg)
	require.NoError(t, err)
	require.Equal(t, format.LayoutTabular, got.Layout())
	require.Equal(t, second.Len(), got.Len())
	for i, row := range second.All() {
		require.Equal(t, row, got.Row(i))
	}

	st, err := a.Stat(ctx, id1)
	require.NoError(t, err)
	require.Equal(t, entries[0], st)

	require.NoError(t, a.Delete(ctx, id1))
	entries, err = a.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id2, entries[0].ID)
}

func TestArchive_NotFound(t *testing.T) {
	ctx := context.Background()
	a := openTemp(t)

	_, err := a.Get(ctx, "missing", nil)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = a.Stat(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.ErrorIs(t, a.Delete(ctx, "missing"), errs.ErrNotFound)

	entries, err := a.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestArchive_FreshRegistry(t *testing.T) {
	ctx := context.Background()
	a := openTemp(t)

	id, err := a.Put(ctx, "walk", track(t, category.NewRegistry(), format.LayoutColumnar))
	require.NoError(t, err)

	got, err := a.Get(ctx, id, nil)
	require.NoError(t, err)
	f := got.Schema().Field(3)
	require.Equal(t, []string{"walk", "bus"}, f.Dict.Values())
	require.Equal(t, "bus", f.Format(got.Value(2, 3)))
}

func TestArchive_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	mute(t)
	path := filepath.Join(t.TempDir(), "reopen.db")

	a, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := a.Put(ctx, "kept", track(t, category.NewRegistry(), format.LayoutColumnar))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := Open(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	version, dirty, err := b.Version()
	require.NoError(t, err)
	require.Equal(t, uint(1), version)
	require.False(t, dirty)

	st, err := b.Stat(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "kept", st.Name)
}

func TestOpen_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, filepath.Join(t.TempDir(), "bad.db"), WithBusyTimeout(-time.Second))
	require.Error(t, err)

	_, err = Open(ctx, filepath.Join(t.TempDir(), "bad.db"),
		WithEncoderOptions(snapshot.WithFloatEncoding(format.TypeDelta)))
	require.Error(t, err)
}
