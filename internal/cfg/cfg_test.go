package cfg

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func wantErrContains(t *testing.T, err error, sub string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got <nil>", sub)
	}
	if !strings.Contains(err.Error(), sub) {
		t.Fatalf("error %q does not contain %q", err.Error(), sub)
	}
}

func newFlagSet(t *testing.T, args []string) (*flag.FlagSet, *App) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c := &App{}
	Register(fs, c)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("flag parse: %v", err)
	}
	return fs, c
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atl06info.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegister_Defaults(t *testing.T) {
	_, c := newFlagSet(t, nil)

	if c.LogJSON {
		t.Error("LogJSON: want false")
	}
	if c.LogLevel != "warn" {
		t.Errorf("LogLevel: want %q, got %q", "warn", c.LogLevel)
	}
	if c.Attributes || c.Histogram || c.Quality || c.BeamsOnly || c.Tree || c.Stats {
		t.Errorf("reader switches: want all false, got %+v", c)
	}
	if c.Beam != "" {
		t.Errorf("Beam: want empty, got %q", c.Beam)
	}
	if len(c.Vars) != 0 || len(c.AttrPaths) != 0 {
		t.Errorf("paths: want none, got %v %v", c.Vars, c.AttrPaths)
	}
}

func TestRegister_RepeatableFlags(t *testing.T) {
	_, c := newFlagSet(t, []string{
		"-var", "/gt1l/land_ice_segments/h_li",
		"-var", "/gt1r/land_ice_segments/h_li,/orbit_info/rgt",
		"-attr", "/@short_name",
	})

	want := []string{"/gt1l/land_ice_segments/h_li", "/gt1r/land_ice_segments/h_li", "/orbit_info/rgt"}
	if strings.Join(c.Vars, " ") != strings.Join(want, " ") {
		t.Errorf("Vars: want %v, got %v", want, c.Vars)
	}
	if len(c.AttrPaths) != 1 || c.AttrPaths[0] != "/@short_name" {
		t.Errorf("AttrPaths: got %v", c.AttrPaths)
	}
}

func TestFillFromEnv(t *testing.T) {
	t.Setenv("ATL06_LOG_LEVEL", "debug")
	t.Setenv("ATL06_HISTOGRAM", "true")
	t.Setenv("ATL06_BEAM", "gt3r")
	t.Setenv("ATL06_QUALITY", "notabool")

	fs, c := newFlagSet(t, []string{"-beam", "gt1l"})

	var logged []string
	FillFromEnv(fs, EnvPrefix, func(format string, args ...any) {
		logged = append(logged, format)
	})

	if c.LogLevel != "debug" {
		t.Errorf("LogLevel: want debug, got %q", c.LogLevel)
	}
	if !c.Histogram {
		t.Error("Histogram: want true from env")
	}
	if c.Beam != "gt1l" {
		t.Errorf("Beam: cli should win, got %q", c.Beam)
	}
	if c.Quality {
		t.Error("Quality: invalid env value should be ignored")
	}
	if len(logged) != 2 {
		t.Errorf("want 2 log lines (override + invalid), got %d: %v", len(logged), logged)
	}
}

func TestFillFromFile(t *testing.T) {
	path := writeConfig(t, `
log-level: error
log-json: true
attrs: true
beam: gt2l
var:
  - /gt1l/land_ice_segments/h_li
  - /orbit_info/rgt
`)
	t.Setenv("ATL06_LOG_LEVEL", "info")

	fs, c := newFlagSet(t, []string{"-beam", "gt1r"})
	FillFromEnv(fs, EnvPrefix, nil)
	if err := FillFromFile(fs, path); err != nil {
		t.Fatalf("FillFromFile: %v", err)
	}

	if c.LogLevel != "info" {
		t.Errorf("LogLevel: env should win over file, got %q", c.LogLevel)
	}
	if c.Beam != "gt1r" {
		t.Errorf("Beam: cli should win over file, got %q", c.Beam)
	}
	if !c.LogJSON || !c.Attributes {
		t.Errorf("file switches not applied: %+v", c)
	}
	if len(c.Vars) != 2 || c.Vars[1] != "/orbit_info/rgt" {
		t.Errorf("Vars: got %v", c.Vars)
	}
}

func TestFillFromFile_Errors(t *testing.T) {
	fs, _ := newFlagSet(t, nil)
	wantErrContains(t, FillFromFile(fs, writeConfig(t, "nope: 1\nhistogram: maybe\n")), `unknown key "nope"`)

	fs, _ = newFlagSet(t, nil)
	wantErrContains(t, FillFromFile(fs, writeConfig(t, "histogram: maybe\n")), `key "histogram"`)

	fs, _ = newFlagSet(t, nil)
	wantErrContains(t, FillFromFile(fs, writeConfig(t, "beam: [unclosed\n")), "parsing config")

	fs, _ = newFlagSet(t, nil)
	wantErrContains(t, FillFromFile(fs, filepath.Join(t.TempDir(), "missing.yaml")), "reading config")
}

func TestValidate(t *testing.T) {
	valid := App{LogLevel: "info"}
	if err := Validate(valid); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*App)
		want string
	}{
		{"log level", func(c *App) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"beam", func(c *App) { c.Beam = "gt4x" }, "invalid BEAM"},
		{"beam and beams-only", func(c *App) { c.Beam = "gt1l"; c.BeamsOnly = true }, "mutually exclusive"},
		{"tree", func(c *App) { c.Tree = true; c.BeamsOnly = true }, "TREE"},
		{"attr path", func(c *App) { c.AttrPaths = List{"/gt1l/h_li"} }, "invalid ATTR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mut(&c)
			wantErrContains(t, Validate(c), tt.want)
		})
	}
}
