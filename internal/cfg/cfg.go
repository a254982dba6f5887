package cfg

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-icesat2/atl06"
	"github.com/robert-malhotra/go-icesat2/internal/log"
)

// EnvPrefix prefixes the environment variables read by FillFromEnv.
const EnvPrefix = "ATL06_"

type App struct {
	LogJSON    bool
	LogLevel   string
	ConfigFile string

	Attributes bool
	Histogram  bool
	Quality    bool
	Beam       string
	BeamsOnly  bool
	Tree       bool
	Stats      bool
	Vars       List
	AttrPaths  List

	S3Region string
}

// List is a repeatable string flag. Each Set appends; a comma separated
// value appends every element.
type List []string

func (l *List) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *List) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

// Register binds all config fields to the given FlagSet with defaults inline
func Register(fs *flag.FlagSet, c *App) {
	fs.BoolVar(&c.LogJSON, "log-json", false, "JSON logs (true) or logfmt (false)")
	fs.StringVar(&c.LogLevel, "log-level", "warn", "debug|info|warn|error")
	fs.StringVar(&c.ConfigFile, "config", "", "YAML file with flag defaults (keys are flag names)")
	fs.BoolVar(&c.Attributes, "attrs", false, "copy group and dataset attributes")
	fs.BoolVar(&c.Histogram, "histogram", false, "include each beam's residual_histogram group")
	fs.BoolVar(&c.Quality, "quality", false, "include each beam's segment_quality group")
	fs.StringVar(&c.Beam, "beam", "", "read a single beam (gt1l..gt3r)")
	fs.BoolVar(&c.BeamsOnly, "beams-only", false, "only list the beams carrying land ice segments")
	fs.BoolVar(&c.Tree, "tree", false, "dump the raw container tree instead of reading the granule")
	fs.BoolVar(&c.Stats, "stats", false, "print min/max/mean for each -var array")
	fs.Var(&c.Vars, "var", "array path to print, e.g. /gt1l/land_ice_segments/h_li (repeatable)")
	fs.Var(&c.AttrPaths, "attr", "attribute path to print, e.g. /gt1l/land_ice_segments/h_li@units (repeatable)")
	fs.StringVar(&c.S3Region, "s3-region", "", "AWS region for s3:// granules (default from the AWS config chain)")
}

// FillFromEnv sets any flag not explicitly passed on the CLI from
// environment variables. Flag "foo-bar" maps to PREFIX_FOO_BAR.
// Precedence: cli flag > env var > default.
func FillFromEnv(fs *flag.FlagSet, prefix string, logf func(string, ...any)) {
	explicit := setFlags(fs)

	fs.VisitAll(func(f *flag.Flag) {
		key := envKey(prefix, f.Name)
		envVal, envSet := os.LookupEnv(key)
		if !envSet {
			return
		}
		if explicit[f.Name] {
			if logf != nil {
				logf("flag -%s: cli value %q overrides env %s=%q", f.Name, f.Value.String(), key, envVal)
			}
			return
		}
		prev := f.Value.String()
		if err := fs.Set(f.Name, envVal); err != nil {
			fs.Set(f.Name, prev)
			if logf != nil {
				logf("flag -%s: ignoring invalid env %s=%q: %v", f.Name, key, envVal, err)
			}
		}
	})
}

// FillFromFile sets flags from a YAML mapping of flag name to value. Flags
// already set on the CLI or from the environment are left alone, so run it
// after FillFromEnv. List values set repeatable flags once per element.
// Precedence: cli flag > env var > file > default.
func FillFromFile(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	explicit := setFlags(fs)
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if fs.Lookup(name) == nil {
			errs = append(errs, fmt.Errorf("%s: unknown key %q", path, name))
			continue
		}
		if explicit[name] {
			continue
		}
		for _, v := range flatten(values[name]) {
			if err := fs.Set(name, v); err != nil {
				errs = append(errs, fmt.Errorf("%s: key %q: %w", path, name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Validate checks that config values are within expected ranges and formats.
// Returns an error describing all invalid fields, or nil if all valid.
func Validate(c App) error {
	var errs []error

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err))
	}

	if c.Beam != "" && !atl06.IsBeam(c.Beam) {
		errs = append(errs, fmt.Errorf("invalid BEAM %q (want gt1l..gt3r)", c.Beam))
	}
	if c.Beam != "" && c.BeamsOnly {
		errs = append(errs, fmt.Errorf("BEAM and BEAMS_ONLY are mutually exclusive"))
	}
	if c.Tree && (c.Beam != "" || c.BeamsOnly) {
		errs = append(errs, fmt.Errorf("TREE cannot be combined with BEAM or BEAMS_ONLY"))
	}

	for _, p := range c.AttrPaths {
		if _, _, err := atl06.ParseAttrPath(p); err != nil {
			errs = append(errs, fmt.Errorf("invalid ATTR: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func envKey(prefix, name string) string {
	return prefix + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
}

// setFlags returns the names of flags that have been set.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func flatten(v interface{}) []string {
	if list, ok := v.([]interface{}); ok {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, fmt.Sprint(e))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}
