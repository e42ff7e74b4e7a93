// Package report renders outlier classifications as HTML scatter charts.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/options"
	"github.com/arloliu/movekit/outlier"
	"github.com/arloliu/movekit/trajectory"
)

// Config holds chart settings.
type Config struct {
	title      string
	subtitle   string
	theme      string
	width      string
	height     string
	assetsHost string
	symbolSize int
}

// Option configures Render.
type Option = options.Option[*Config]

// WithTitle sets the chart and page title.
func WithTitle(title string) Option {
	return options.NoError(func(c *Config) {
		c.title = title
	})
}

// WithSubtitle sets the chart subtitle. By default it summarises the counts.
func WithSubtitle(subtitle string) Option {
	return options.NoError(func(c *Config) {
		c.subtitle = subtitle
	})
}

// WithTheme sets the echarts theme, such as "dark" or "white".
func WithTheme(theme string) Option {
	return options.NoError(func(c *Config) {
		c.theme = theme
	})
}

// WithSize sets the chart width and height as CSS lengths.
func WithSize(width, height string) Option {
	return options.NoError(func(c *Config) {
		c.width, c.height = width, height
	})
}

// WithAssetsHost sets where the page loads the echarts scripts from.
func WithAssetsHost(host string) Option {
	return options.NoError(func(c *Config) {
		c.assetsHost = host
	})
}

// WithSymbolSize sets the point size in pixels.
func WithSymbolSize(size int) Option {
	return options.New(func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("symbol size must be positive, got %d", size)
		}
		c.symbolSize = size

		return nil
	})
}

const (
	inlierColor  = "#26828e"
	outlierColor = "#ff5252"
)

// Render writes an HTML page plotting the rows of cls over store, longitude
// on X and latitude on Y, with inliers and outliers as separate series.
func Render(w io.Writer, store trajectory.Store, lat, lon int, cls outlier.Classification, settings ...Option) error {
	cfg := &Config{
		title:      "Trajectory outliers",
		theme:      "white",
		width:      "900px",
		height:     "900px",
		symbolSize: 6,
	}
	if err := options.Apply(cfg, settings...); err != nil {
		return err
	}

	sch := store.Schema()
	if _, err := sch.Require(lat, format.KindFloat64); err != nil {
		return err
	}
	if _, err := sch.Require(lon, format.KindFloat64); err != nil {
		return err
	}

	b := newBounds()
	inliers, err := points(store, lat, lon, cls.Inliers, b)
	if err != nil {
		return err
	}
	outliers, err := points(store, lat, lon, cls.Outliers, b)
	if err != nil {
		return err
	}

	subtitle := cfg.subtitle
	if subtitle == "" {
		subtitle = fmt.Sprintf("rows=%d inliers=%d outliers=%d", store.Len(), len(inliers), len(outliers))
	}

	minX, maxX, minY, maxY := b.padded()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  cfg.title,
			Theme:      cfg.theme,
			Width:      cfg.width,
			Height:     cfg.height,
			AssetsHost: cfg.assetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: minX, Max: maxX, Name: sch.Field(lon).Name, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: minY, Max: maxY, Name: sch.Field(lat).Name, NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("inliers", inliers,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: cfg.symbolSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: inlierColor}))
	scatter.AddSeries("outliers", outliers,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: cfg.symbolSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: outlierColor}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

func points(store trajectory.Store, lat, lon int, rows []int, b *bounds) ([]opts.ScatterData, error) {
	out := make([]opts.ScatterData, 0, len(rows))
	for _, i := range rows {
		if i < 0 || i >= store.Len() {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrRowOutOfRange, i, store.Len())
		}
		x := store.Value(i, lon).Float64()
		y := store.Value(i, lat).Float64()
		b.add(x, y)
		out = append(out, opts.ScatterData{Name: fmt.Sprintf("row %d", i), Value: []any{x, y}})
	}

	return out, nil
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func newBounds() *bounds {
	return &bounds{
		minX: math.Inf(1), maxX: math.Inf(-1),
		minY: math.Inf(1), maxY: math.Inf(-1),
	}
}

func (b *bounds) add(x, y float64) {
	b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
	b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
}

// padded widens the box by 5% per side, or by 0.001 when it is degenerate.
// An empty box comes back as nil limits so echarts picks its own.
func (b *bounds) padded() (minX, maxX, minY, maxY any) {
	if b.minX > b.maxX {
		return nil, nil, nil, nil
	}
	pad := func(lo, hi float64) (float64, float64) {
		d := (hi - lo) * 0.05
		if d == 0 {
			d = 0.001
		}

		return lo - d, hi + d
	}
	x0, x1 := pad(b.minX, b.maxX)
	y0, y1 := pad(b.minY, b.maxY)

	return x0, x1, y0, y1
}
