// Package config loads the movefilter JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/movekit/internal/units"
)

// Detector names accepted by the Detector field.
const (
	DetectorGreedy    = "greedy"
	DetectorChain     = "chain"
	DetectorSegmented = "segmented"
)

// Metric names accepted by the Metric field.
const (
	MetricHaversine = "haversine"
	MetricPlanar    = "planar"
)

// FilterConfig holds the settings of one filtering run. Nil fields fall back
// to the defaults returned by the Get accessors, so a partial file only
// overrides what it names.
type FilterConfig struct {
	// Detection
	Detector   *string  `json:"detector,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
	SpeedUnit  *string  `json:"speed_unit,omitempty"`
	MinSegment *int     `json:"min_segment,omitempty"`
	Metric     *string  `json:"metric,omitempty"`

	// Input columns
	LatColumn  *string `json:"lat_column,omitempty"`
	LonColumn  *string `json:"lon_column,omitempty"`
	TimeColumn *string `json:"time_column,omitempty"`
	TimeUnit   *string `json:"time_unit,omitempty"`   // s, ms, us, ns
	TimeLayout *string `json:"time_layout,omitempty"` // Go time layout; empty means numeric epoch
	Comma      *string `json:"comma,omitempty"`

	// Outputs
	ArchivePath *string `json:"archive_path,omitempty"`
	ReportPath  *string `json:"report_path,omitempty"`
	Compression *string `json:"compression,omitempty"` // none, zstd, s2, lz4
}

func ptrString(v string) *string    { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultFilterConfig returns a config with every field set to its default.
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		Detector:    ptrString(DetectorGreedy),
		Threshold:   ptrFloat64(50),
		SpeedUnit:   ptrString(units.MPS),
		MinSegment:  ptrInt(3),
		Metric:      ptrString(MetricHaversine),
		LatColumn:   ptrString("lat"),
		LonColumn:   ptrString("lon"),
		TimeColumn:  ptrString("time"),
		TimeUnit:    ptrString("s"),
		TimeLayout:  ptrString(""),
		Comma:       ptrString(","),
		ArchivePath: ptrString(""),
		ReportPath:  ptrString(""),
		Compression: ptrString("zstd"),
	}
}

// LoadFilterConfig reads and validates a JSON config file.
func LoadFilterConfig(path string) (*FilterConfig, error) {
	cleanPath := filepath.Clean(path)

	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &FilterConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields that are set.
func (c *FilterConfig) Validate() error {
	if c.Detector != nil {
		switch *c.Detector {
		case DetectorGreedy, DetectorChain, DetectorSegmented:
		default:
			return fmt.Errorf("unknown detector %q", *c.Detector)
		}
	}
	if c.Threshold != nil && *c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %f", *c.Threshold)
	}
	if c.SpeedUnit != nil && !units.IsValid(*c.SpeedUnit) {
		return fmt.Errorf("invalid speed_unit %q: expected one of %s", *c.SpeedUnit, units.GetValidUnitsString())
	}
	if c.MinSegment != nil && *c.MinSegment < 0 {
		return fmt.Errorf("min_segment must be non-negative, got %d", *c.MinSegment)
	}
	if c.Metric != nil && *c.Metric != MetricHaversine && *c.Metric != MetricPlanar {
		return fmt.Errorf("unknown metric %q", *c.Metric)
	}
	if c.TimeUnit != nil {
		switch *c.TimeUnit {
		case "s", "ms", "us", "ns":
		default:
			return fmt.Errorf("invalid time_unit %q", *c.TimeUnit)
		}
	}
	if c.Comma != nil && len([]rune(*c.Comma)) != 1 {
		return fmt.Errorf("comma must be a single character, got %q", *c.Comma)
	}
	if c.Compression != nil {
		switch *c.Compression {
		case "none", "zstd", "s2", "lz4":
		default:
			return fmt.Errorf("invalid compression %q", *c.Compression)
		}
	}

	return nil
}

// Merge copies every non-nil field of other over c.
func (c *FilterConfig) Merge(other *FilterConfig) {
	if other == nil {
		return
	}
	mergeField(&c.Detector, other.Detector)
	mergeField(&c.Threshold, other.Threshold)
	mergeField(&c.SpeedUnit, other.SpeedUnit)
	mergeField(&c.MinSegment, other.MinSegment)
	mergeField(&c.Metric, other.Metric)
	mergeField(&c.LatColumn, other.LatColumn)
	mergeField(&c.LonColumn, other.LonColumn)
	mergeField(&c.TimeColumn, other.TimeColumn)
	mergeField(&c.TimeUnit, other.TimeUnit)
	mergeField(&c.TimeLayout, other.TimeLayout)
	mergeField(&c.Comma, other.Comma)
	mergeField(&c.ArchivePath, other.ArchivePath)
	mergeField(&c.ReportPath, other.ReportPath)
	mergeField(&c.Compression, other.Compression)
}

func mergeField[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func getOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}

	return *p
}

// GetDetector returns the detector name.
func (c *FilterConfig) GetDetector() string { return getOr(c.Detector, DetectorGreedy) }

// GetThreshold returns the threshold in its configured unit.
func (c *FilterConfig) GetThreshold() float64 { return getOr(c.Threshold, 50) }

// GetThresholdMPS returns the threshold converted to metres per second.
func (c *FilterConfig) GetThresholdMPS() float64 {
	return units.ToMPS(c.GetThreshold(), c.GetSpeedUnit())
}

func (c *FilterConfig) GetSpeedUnit() string  { return getOr(c.SpeedUnit, units.MPS) }
func (c *FilterConfig) GetMinSegment() int    { return getOr(c.MinSegment, 3) }
func (c *FilterConfig) GetMetric() string     { return getOr(c.Metric, MetricHaversine) }
func (c *FilterConfig) GetLatColumn() string  { return getOr(c.LatColumn, "lat") }
func (c *FilterConfig) GetLonColumn() string  { return getOr(c.LonColumn, "lon") }
func (c *FilterConfig) GetTimeColumn() string { return getOr(c.TimeColumn, "time") }
func (c *FilterConfig) GetTimeUnit() string   { return getOr(c.TimeUnit, "s") }
func (c *FilterConfig) GetTimeLayout() string { return getOr(c.TimeLayout, "") }

// GetComma returns the field delimiter rune.
func (c *FilterConfig) GetComma() rune {
	s := getOr(c.Comma, ",")
	if s == "" {
		return ','
	}

	return []rune(s)[0]
}

func (c *FilterConfig) GetArchivePath() string { return getOr(c.ArchivePath, "") }
func (c *FilterConfig) GetReportPath() string  { return getOr(c.ReportPath, "") }
func (c *FilterConfig) GetCompression() string { return getOr(c.Compression, "zstd") }
