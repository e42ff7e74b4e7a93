package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFilterConfig(t *testing.T) {
	cfg := DefaultFilterConfig()

	require.NoError(t, cfg.Validate())
	require.Equal(t, DetectorGreedy, cfg.GetDetector())
	require.Equal(t, 50.0, cfg.GetThreshold())
	require.Equal(t, ',', cfg.GetComma())
	require.Equal(t, "zstd", cfg.GetCompression())
}

// TestEmptyConfigAccessors verifies nil fields fall back to defaults.
func TestEmptyConfigAccessors(t *testing.T) {
	cfg := &FilterConfig{}

	require.Equal(t, DefaultFilterConfig().GetDetector(), cfg.GetDetector())
	require.Equal(t, "lat", cfg.GetLatColumn())
	require.Equal(t, "time", cfg.GetTimeColumn())
	require.Equal(t, 3, cfg.GetMinSegment())
}

func TestLoadFilterConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.json")
	body := `{"detector": "chain", "threshold": 36, "speed_unit": "kmph", "comma": ";"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadFilterConfig(path)
	require.NoError(t, err)
	require.Equal(t, DetectorChain, cfg.GetDetector())
	require.InDelta(t, 10.0, cfg.GetThresholdMPS(), 1e-9)
	require.Equal(t, ';', cfg.GetComma())
	require.Nil(t, cfg.Metric, "unset fields stay nil")
}

func TestLoadFilterConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFilterConfig(filepath.Join(dir, "filter.yaml"))
	require.ErrorContains(t, err, ".json extension")

	_, err = LoadFilterConfig(filepath.Join(dir, "missing.json"))
	require.ErrorContains(t, err, "failed to stat")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"threshold": `), 0o600))
	_, err = LoadFilterConfig(bad)
	require.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"detector": "kalman"}`), 0o600))
	_, err = LoadFilterConfig(invalid)
	require.ErrorContains(t, err, "invalid configuration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  FilterConfig
	}{
		{"negative threshold", FilterConfig{Threshold: ptrFloat64(-1)}},
		{"bad unit", FilterConfig{SpeedUnit: ptrString("furlongs")}},
		{"bad metric", FilterConfig{Metric: ptrString("manhattan")}},
		{"bad time unit", FilterConfig{TimeUnit: ptrString("min")}},
		{"bad comma", FilterConfig{Comma: ptrString(",;")}},
		{"bad compression", FilterConfig{Compression: ptrString("gzip")}},
		{"negative segment", FilterConfig{MinSegment: ptrInt(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.cfg.Validate())
		})
	}
}

func TestMerge(t *testing.T) {
	base := DefaultFilterConfig()
	base.Merge(&FilterConfig{Threshold: ptrFloat64(12), Metric: ptrString(MetricPlanar)})

	require.Equal(t, 12.0, base.GetThreshold())
	require.Equal(t, MetricPlanar, base.GetMetric())
	require.Equal(t, DetectorGreedy, base.GetDetector(), "untouched fields keep their values")

	base.Merge(nil)
	require.Equal(t, 12.0, base.GetThreshold())
}
