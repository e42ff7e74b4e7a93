// Command movefilter removes speed outliers from a CSV track.
//
// It reads lat, lon and time columns (names configurable), classifies each
// row with one of the outlier detectors and writes the surviving rows, in
// their original order, to stdout. Unclaimed columns are passed through.
//
// Usage:
//
//	movefilter -in track.csv -detector chain -threshold 120 -unit kmph
//	movefilter -config filter.json -archive tracks.db -report outliers.html < track.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arloliu/movekit/archive"
	"github.com/arloliu/movekit/compress"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/geo"
	"github.com/arloliu/movekit/ingest"
	"github.com/arloliu/movekit/internal/config"
	"github.com/arloliu/movekit/internal/logging"
	"github.com/arloliu/movekit/outlier"
	"github.com/arloliu/movekit/report"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/snapshot"
	"github.com/arloliu/movekit/trajectory"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logging.Logf("movefilter: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("movefilter", flag.ContinueOnError)
	var (
		inPath     = fs.String("in", "-", "input CSV path, - for stdin")
		configPath = fs.String("config", "", "JSON config file")
		detector   = fs.String("detector", config.DetectorGreedy, "detector: greedy, chain or segmented")
		threshold  = fs.Float64("threshold", 50, "speed threshold")
		speedUnit  = fs.String("unit", "mps", "threshold unit: mps, mph, kmph, kph, knots")
		minSegment = fs.Int("min-segment", 3, "segmented detector: drop segments with at most this many points")
		metric     = fs.String("metric", config.MetricHaversine, "distance metric: haversine or planar")
		latColumn  = fs.String("lat", "lat", "latitude column")
		lonColumn  = fs.String("lon", "lon", "longitude column")
		timeColumn = fs.String("time", "time", "time column")
		timeUnit   = fs.String("time-unit", "s", "unit of numeric time cells: s, ms, us, ns")
		timeLayout = fs.String("time-layout", "", "Go time layout for time cells; empty means numeric epoch")
		comma      = fs.String("comma", ",", "field delimiter")
		archiveDB  = fs.String("archive", "", "SQLite archive to store the filtered track in")
		reportPath = fs.String("report", "", "HTML chart of inliers and outliers")
		compName   = fs.String("compression", "zstd", "archive payload compression: none, zstd, s2, lz4")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.DefaultFilterConfig()
	if *configPath != "" {
		fileCfg, err := config.LoadFilterConfig(*configPath)
		if err != nil {
			return err
		}
		cfg.Merge(fileCfg)
	}

	// Explicit flags win over the file.
	flagCfg := &config.FilterConfig{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "detector":
			flagCfg.Detector = detector
		case "threshold":
			flagCfg.Threshold = threshold
		case "unit":
			flagCfg.SpeedUnit = speedUnit
		case "min-segment":
			flagCfg.MinSegment = minSegment
		case "metric":
			flagCfg.Metric = metric
		case "lat":
			flagCfg.LatColumn = latColumn
		case "lon":
			flagCfg.LonColumn = lonColumn
		case "time":
			flagCfg.TimeColumn = timeColumn
		case "time-unit":
			flagCfg.TimeUnit = timeUnit
		case "time-layout":
			flagCfg.TimeLayout = timeLayout
		case "comma":
			flagCfg.Comma = comma
		case "archive":
			flagCfg.ArchivePath = archiveDB
		case "report":
			flagCfg.ReportPath = reportPath
		case "compression":
			flagCfg.Compression = compName
		}
	})
	if err := flagCfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	cfg.Merge(flagCfg)

	in := stdin
	name := "stdin"
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		name = filepath.Base(*inPath)
	}

	return filter(ctx, cfg, name, in, stdout)
}

func filter(ctx context.Context, cfg *config.FilterConfig, name string, in io.Reader, out io.Writer) error {
	unit, err := parseTimeUnit(cfg.GetTimeUnit())
	if err != nil {
		return err
	}

	fields := []schema.Field{
		schema.Float64Field(cfg.GetLatColumn()),
		schema.Float64Field(cfg.GetLonColumn()),
		schema.TimestampField(cfg.GetTimeColumn(), unit),
	}
	store, err := ingest.ReadAll(in, fields,
		ingest.WithComma(cfg.GetComma()),
		ingest.WithTimeLayout(cfg.GetTimeLayout()),
		ingest.WithPassthrough(),
	)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	probes, err := outlier.ProbesFrom(store, outlier.ProbeFields{Lat: 0, Lon: 1, Time: 2, Speed: outlier.NoSpeed})
	if err != nil {
		return err
	}

	var m geo.Metric = geo.Haversine{}
	if cfg.GetMetric() == config.MetricPlanar {
		m = geo.Planar{}
	}
	pred := outlier.SpeedBound{Threshold: cfg.GetThresholdMPS(), Metric: m}

	det, err := outlier.NewDetector(cfg.GetDetector(), pred, cfg.GetMinSegment())
	if err != nil {
		return err
	}
	cls := det.Detect(probes)

	kept, err := outlier.Apply(store, cls)
	if err != nil {
		return err
	}
	if err := ingest.Write(out, kept, cfg.GetComma()); err != nil {
		return err
	}
	logging.Logf("movefilter: %s: kept %d of %d rows with %s detector", name, len(cls.Inliers), store.Len(), cfg.GetDetector())

	if path := cfg.GetArchivePath(); path != "" {
		if err := archiveTrack(ctx, cfg, path, name, kept); err != nil {
			return err
		}
	}

	if path := cfg.GetReportPath(); path != "" {
		if err := writeReport(path, name, store, cls); err != nil {
			return err
		}
	}

	return nil
}

func archiveTrack(ctx context.Context, cfg *config.FilterConfig, path, name string, store trajectory.Store) error {
	comp, err := compress.ParseType(cfg.GetCompression())
	if err != nil {
		return err
	}

	a, err := archive.Open(ctx, path, archive.WithEncoderOptions(snapshot.WithCompression(comp)))
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.Put(ctx, name, store)
	if err != nil {
		return err
	}
	logging.Logf("movefilter: archived %s as %s in %s", name, id, path)

	return nil
}

func writeReport(path, name string, store trajectory.Store, cls outlier.Classification) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.Render(f, store, 0, 1, cls, report.WithTitle(name)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func parseTimeUnit(s string) (format.TimeUnit, error) {
	switch s {
	case "s":
		return format.UnitSecond, nil
	case "ms":
		return format.UnitMillisecond, nil
	case "us":
		return format.UnitMicrosecond, nil
	case "ns":
		return format.UnitNanosecond, nil
	default:
		return 0, fmt.Errorf("invalid time unit %q", s)
	}
}
