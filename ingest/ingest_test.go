package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func trackFields() []schema.Field {
	return []schema.Field{
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitSecond),
		schema.CategoricalField("mode", nil),
	}
}

func TestRead_Header(t *testing.T) {
	in := "time,lon,lat,mode\n" +
		"100,-0.12,51.5,walk\n" +
		"160,-0.11,51.51,bus\n" +
		"220,-0.1,51.52,walk\n"

	store, err := ReadAll(strings.NewReader(in), trackFields())
	require.NoError(t, err)
	require.Equal(t, format.LayoutColumnar, store.Layout())
	require.Equal(t, []string{"lat", "lon", "time", "mode"}, store.Schema().Names())
	require.Equal(t, 3, store.Len())

	lat, err := store.Column(0)
	require.NoError(t, err)
	require.Equal(t, schema.Float64s{51.5, 51.51, 51.52}, lat)

	ts, err := store.Column(2)
	require.NoError(t, err)
	require.Equal(t, schema.Timestamps{100, 160, 220}, ts)

	mode, err := store.Column(3)
	require.NoError(t, err)
	require.Equal(t, schema.Codes{0, 1, 0}, mode)
}

func TestRead_SharedRegistry(t *testing.T) {
	reg := category.NewRegistry()

	first, err := ReadAll(strings.NewReader("lat,lon,time,mode\n1,2,3,car\n1,2,4,walk\n"),
		trackFields(), WithRegistry(reg))
	require.NoError(t, err)
	second, err := ReadAll(strings.NewReader("lat,lon,time,mode\n1,2,3,walk\n1,2,4,ferry\n"),
		trackFields(), WithRegistry(reg), WithLayout(format.LayoutTabular))
	require.NoError(t, err)
	require.Equal(t, format.LayoutTabular, second.Layout())

	a, err := first.Column(3)
	require.NoError(t, err)
	b, err := second.Column(3)
	require.NoError(t, err)
	require.Equal(t, schema.Codes{0, 1}, a)
	require.Equal(t, schema.Codes{1, 2}, b)
	require.Equal(t, []string{"car", "walk", "ferry"}, reg.Dictionary("mode").Values())
	require.Same(t, first.Schema().Field(3).Dict, second.Schema().Field(3).Dict)
}

func TestRead_NoHeader(t *testing.T) {
	in := "51.5;-0.12;100;walk\n51.51;-0.11;160;bus\n"

	store, err := ReadAll(strings.NewReader(in), trackFields(), WithHeader(false), WithComma(';'))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())
	require.Equal(t, "bus", store.Schema().Field(3).Format(store.Value(1, 3)))
}

func TestRead_TimeLayout(t *testing.T) {
	in := "lat,lon,at\n" +
		"1,2,2024-01-02T03:04:05Z\n" +
		"1,2,2024-01-02T03:04:05.250Z\n"
	fields := []schema.Field{
		schema.Float64Field("lat"),
		schema.Float64Field("lon"),
		schema.TimestampField("time", format.UnitMillisecond),
	}

	store, err := ReadAll(strings.NewReader(in), fields,
		WithTimeLayout("2006-01-02T15:04:05Z07:00"),
		WithColumns(map[string]string{"time": "at"}))
	require.NoError(t, err)

	ts, err := store.Column(2)
	require.NoError(t, err)
	require.Equal(t, schema.Timestamps{1704164645000, 1704164645250}, ts)
}

func TestRead_FractionalEpoch(t *testing.T) {
	in := "lat,lon,time,mode\n1,2,100.6,a\n1,2,1e3,a\n"

	store, err := ReadAll(strings.NewReader(in), trackFields())
	require.NoError(t, err)
	ts, err := store.Column(2)
	require.NoError(t, err)
	require.Equal(t, schema.Timestamps{101, 1000}, ts)
}

func TestRead_Comments(t *testing.T) {
	in := "# exported track\nlat,lon,time,mode\n# paused here\n1,2,3,a\n"

	store, err := ReadAll(strings.NewReader(in), trackFields(), WithComment('#'))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    []Option
		wantErr error
		wantMsg string
	}{
		{
			name:    "bad float",
			input:   "lat,lon,time,mode\n1,2,3,a\nx,2,4,a\n",
			wantErr: errs.ErrInvalidRecord,
			wantMsg: "line 3",
		},
		{
			name:    "bad timestamp",
			input:   "lat,lon,time,mode\n1,2,soon,a\n",
			wantErr: errs.ErrInvalidRecord,
			wantMsg: `field "time"`,
		},
		{
			name:    "ragged record",
			input:   "lat,lon,time,mode\n1,2,3\n",
			wantErr: errs.ErrInvalidRecord,
		},
		{
			name:    "missing header",
			input:   "",
			wantErr: errs.ErrInvalidRecord,
		},
		{
			name:    "missing column",
			input:   "lat,lon,mode\n1,2,a\n",
			wantErr: errs.ErrSchemaMismatch,
		},
		{
			name:    "short record without header",
			input:   "1,2\n",
			opts:    []Option{WithHeader(false)},
			wantErr: errs.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader(tt.input), trackFields(), tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestNewReader_InvalidOptions(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), trackFields(), WithComma('\n'))
	require.Error(t, err)

	_, err = NewReader(strings.NewReader(""), trackFields(), WithLayout(0))
	require.Error(t, err)

	_, err = NewReader(strings.NewReader(""), trackFields(), WithHeader(false), WithPassthrough())
	require.Error(t, err)

	_, err = NewReader(strings.NewReader(""), []schema.Field{schema.Float64Field("lat"), schema.Float64Field("lat")})
	require.ErrorIs(t, err, errs.ErrDuplicateField)
}

func TestPassthroughWrite(t *testing.T) {
	in := "id,lat,lon,time,mode,note\n" +
		"a1,51.5,-0.12,100,walk,\"left, then right\"\n" +
		"a2,51.51,-0.11,160,bus,\n"

	store, err := ReadAll(strings.NewReader(in), trackFields(), WithPassthrough())
	require.NoError(t, err)
	require.Equal(t, []string{"lat", "lon", "time", "mode", "id", "note"}, store.Schema().Names())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, store, ','))

	want := "lat,lon,time,mode,id,note\n" +
		"51.5,-0.12,100,walk,a1,\"left, then right\"\n" +
		"51.51,-0.11,160,bus,a2,\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("written csv mismatch (-want +got):\n%s", diff)
	}
}
