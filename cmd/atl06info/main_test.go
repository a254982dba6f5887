package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-icesat2/internal/h5/h5test"
)

func writeGranule(t *testing.T) string {
	t.Helper()

	root := h5test.NewGroup("/")
	lis := root.AddGroup("gt1l").AddGroup("land_ice_segments")
	lis.AddFloat64("segment_id", 1, 2, 3)
	lis.AddFloat64("h_li", 10, 20, math.MaxFloat32).SetAttr("units", "meters")
	lis.AddFloat64("delta_time", 86401.5, 0, math.MaxFloat64)
	for _, sub := range []string{"bias_correction", "dem", "fit_statistics", "geophysical", "ground_track"} {
		lis.AddGroup(sub).AddFloat64("v", 1)
	}
	root.AddGroup("gt2r").AddFloat64("orphan", 1)

	path := filepath.Join(t.TempDir(), "ATL06_test.h5")
	require.NoError(t, h5test.WriteFile(path, root))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunBeamsOnly(t *testing.T) {
	out, _, err := runCLI(t, "-beams-only", writeGranule(t))
	require.NoError(t, err)
	require.Equal(t, "gt1l\n", out)
}

func TestRunBeamListing(t *testing.T) {
	out, _, err := runCLI(t, "-beam", "gt1l", writeGranule(t))
	require.NoError(t, err)
	require.Contains(t, out, "beams: gt1l\n")
	require.Contains(t, out, "/gt1l/land_ice_segments/h_li float64[3]\n")
	require.Contains(t, out, "/gt1l/land_ice_segments/dem/v float64[1]\n")
}

func TestRunVarsAndAttrs(t *testing.T) {
	out, _, err := runCLI(t,
		"-beam", "gt1l",
		"-stats",
		"-var", "/gt1l/land_ice_segments/h_li",
		"-attr", "/gt1l/land_ice_segments/h_li@units",
		writeGranule(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[1], "/gt1l/land_ice_segments/h_li float64[3] [10 20 "), lines[1])
	require.Equal(t, "  n=3 valid=2 min=10 max=20 mean=15", lines[2])
	require.Equal(t, "/gt1l/land_ice_segments/h_li@units = meters", lines[3])
}

func TestRunDeltaTimeRange(t *testing.T) {
	out, _, err := runCLI(t,
		"-beam", "gt1l",
		"-stats",
		"-var", "gt1l/land_ice_segments/delta_time",
		writeGranule(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "  n=3 valid=2 min=0 max=86401.5 mean=43200.75", lines[2])
	require.Equal(t, "  utc=2018-01-01T00:00:00Z..2018-01-02T00:00:01.5Z", lines[3])
}

func TestRunMissingVar(t *testing.T) {
	_, _, err := runCLI(t, "-beam", "gt1l", "-var", "/gt1l/nope", writeGranule(t))
	require.ErrorContains(t, err, "variable /gt1l/nope")
}

func TestRunTree(t *testing.T) {
	out, _, err := runCLI(t, "-tree", writeGranule(t))
	require.NoError(t, err)
	require.Contains(t, out, "/ attrs=[]\n")
	require.Contains(t, out, "/gt1l/land_ice_segments/ attrs=[]\n")
	require.Contains(t, out, "/gt1l/land_ice_segments/h_li attrs=[units]\n")
	require.Contains(t, out, "/gt2r/orphan attrs=[]\n")
}

func TestRunConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "atl06info.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("beams-only: true\nlog-level: debug\n"), 0o600))

	out, stderr, err := runCLI(t, "-config", cfgPath, writeGranule(t))
	require.NoError(t, err)
	require.Equal(t, "gt1l\n", out)
	require.Contains(t, stderr, "skipping beam without land ice segments")
}

func TestRunUsageErrors(t *testing.T) {
	_, stderr, err := runCLI(t)
	require.ErrorContains(t, err, "expected exactly one granule")
	require.Contains(t, stderr, "Usage: atl06info")

	_, _, err = runCLI(t, "-beam", "gt9z", "x.h5")
	require.ErrorContains(t, err, "invalid BEAM")

	_, _, err = runCLI(t, "-beams-only", filepath.Join(t.TempDir(), "missing.h5"))
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"plain", []float64{1, 2, 3, 6}, "n=4 valid=4 min=1 max=6 mean=3"},
		{"fill and nan", []float64{math.MaxFloat32, 4, math.NaN(), -2}, "n=4 valid=2 min=-2 max=4 mean=1"},
		{"all fill", []float64{math.MaxFloat32}, "n=1 valid=0"},
		{"empty", nil, "n=0 valid=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, summarize(tt.values).String())
		})
	}
}
