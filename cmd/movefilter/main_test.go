package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/movekit/archive"
	"github.com/arloliu/movekit/internal/logging"
	"github.com/stretchr/testify/require"
)

// Row p2 jumps about 110 km away for one sample.
const track = "id,lat,lon,time\n" +
	"p0,10,20,0\n" +
	"p1,10.0001,20,10\n" +
	"p2,11,20,20\n" +
	"p3,10.0003,20,30\n" +
	"p4,10.0004,20,40\n"

const want = "lat,lon,time,id\n" +
	"10,20,0,p0\n" +
	"10.0001,20,10,p1\n" +
	"10.0003,20,30,p3\n" +
	"10.0004,20,40,p4\n"

func capture(t *testing.T) *[]string {
	t.Helper()
	prev := logging.Logf
	var lines []string
	logging.SetLogger(func(format string, v ...any) {
		lines = append(lines, format)
	})
	t.Cleanup(func() { logging.SetLogger(prev) })

	return &lines
}

func TestRun_Stdin(t *testing.T) {
	capture(t)
	var out bytes.Buffer
	err := run(context.Background(), []string{"-threshold", "5"}, strings.NewReader(track), &out)
	require.NoError(t, err)
	require.Equal(t, want, out.String())
}

func TestRun_ConfigAndFlags(t *testing.T) {
	capture(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "filter.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"detector":"segmented","threshold":18,"speed_unit":"kmph","min_segment":1}`), 0o600))
	inPath := filepath.Join(dir, "ferry.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(track), 0o600))

	// The flag replaces the file's detector; the threshold comes from the file.
	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfgPath, "-detector", "chain", "-in", inPath}, nil, &out)
	require.NoError(t, err)
	require.Equal(t, want, out.String())
}

func TestRun_Segmented(t *testing.T) {
	capture(t)
	var out bytes.Buffer
	// Both segments around the jump have two points, so min-segment 2 drops everything.
	err := run(context.Background(), []string{"-threshold", "5", "-detector", "segmented", "-min-segment", "2"},
		strings.NewReader(track), &out)
	require.NoError(t, err)
	require.Equal(t, "lat,lon,time,id\n", out.String())
}

func TestRun_ArchiveAndReport(t *testing.T) {
	capture(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tracks.db")
	reportPath := filepath.Join(dir, "report.html")

	var out bytes.Buffer
	err := run(context.Background(), []string{
		"-threshold", "5", "-archive", dbPath, "-report", reportPath, "-compression", "s2",
	}, strings.NewReader(track), &out)
	require.NoError(t, err)

	a, err := archive.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer a.Close()
	entries, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "stdin", entries[0].Name)
	require.Equal(t, 4, entries[0].Rows)
	require.Equal(t, 4, entries[0].Fields)

	page, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(page), "inliers=4 outliers=1")
}

func TestRun_Errors(t *testing.T) {
	capture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		args  []string
		input string
	}{
		{name: "unknown detector", args: []string{"-detector", "bogus"}, input: track},
		{name: "negative threshold", args: []string{"-threshold", "-1"}, input: track},
		{name: "bad time unit", args: []string{"-time-unit", "h"}, input: track},
		{name: "missing column", args: []string{"-lat", "latitude"}, input: track},
		{name: "bad cell", args: nil, input: "lat,lon,time\n1,2,x\n"},
		{name: "missing file", args: []string{"-in", filepath.Join(t.TempDir(), "none.csv")}},
		{name: "config extension", args: []string{"-config", "filter.yaml"}, input: track},
		{name: "unknown flag", args: []string{"-bogus"}, input: track},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(ctx, tt.args, strings.NewReader(tt.input), &out)
			require.Error(t, err)
		})
	}
}
