// atl06info prints the beams, variables and attributes of an ATL06 granule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/robert-malhotra/go-icesat2/atl06"
	"github.com/robert-malhotra/go-icesat2/internal/cfg"
	"github.com/robert-malhotra/go-icesat2/internal/h5"
	"github.com/robert-malhotra/go-icesat2/internal/log"
	"github.com/robert-malhotra/go-icesat2/internal/s3src"
)

const usage = `Usage: atl06info [flags] <granule.h5 | s3://bucket/key>

Flags may also be set from ATL06_<FLAG> environment variables or a YAML
file given with -config. Precedence: flag > env > file > default.

`

// maxValues caps how many elements of an array are printed.
const maxValues = 8

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "atl06info: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("atl06info", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var c cfg.App
	cfg.Register(fs, &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.FillFromEnv(fs, cfg.EnvPrefix, func(format string, a ...any) {
		fmt.Fprintf(stderr, format+"\n", a...)
	})
	if c.ConfigFile != "" {
		if err := cfg.FillFromFile(fs, c.ConfigFile); err != nil {
			return err
		}
	}
	if err := cfg.Validate(c); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one granule")
	}
	if len(c.AttrPaths) > 0 {
		c.Attributes = true
	}

	level, _ := log.ParseLevel(c.LogLevel)
	logger := log.New(log.Options{
		App:        "atl06info",
		Level:      level,
		JSONFormat: c.LogJSON,
		Writer:     stderr,
	})

	target := fs.Arg(0)
	var body io.ReadCloser
	if s3src.IsURL(target) {
		fetcher, err := s3src.NewFetcher(ctx, s3src.Options{Region: c.S3Region, Logger: logger})
		if err != nil {
			return err
		}
		body, err = fetcher.Open(ctx, target)
		if err != nil {
			logger.Error("fetching granule failed", "target", target, "err", err)
			return err
		}
		defer body.Close()
	}

	if c.Tree {
		return dumpTree(stdout, target, body)
	}

	src := atl06.FromPath(target)
	if body != nil {
		src = atl06.FromStream(body)
	}
	return report(stdout, c, src, logger)
}

func report(w io.Writer, c cfg.App, src atl06.Source, logger *slog.Logger) error {
	opts := []atl06.Option{atl06.WithLogger(logger)}
	if c.Attributes {
		opts = append(opts, atl06.WithAttributes())
	}
	if c.Histogram {
		opts = append(opts, atl06.WithHistogram())
	}
	if c.Quality {
		opts = append(opts, atl06.WithQuality())
	}

	if c.BeamsOnly {
		beams, err := atl06.FindBeams(src, opts...)
		if err != nil {
			return err
		}
		for _, b := range beams {
			fmt.Fprintln(w, b)
		}
		return nil
	}

	var (
		g   *atl06.Granule
		err error
	)
	if c.Beam != "" {
		g, err = atl06.ReadBeam(src, c.Beam, opts...)
	} else {
		g, err = atl06.ReadGranule(src, opts...)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "beams: %s\n", strings.Join(g.Beams, " "))

	if len(c.Vars) == 0 && len(c.AttrPaths) == 0 {
		printVars(w, "/", g.Vars)
		return nil
	}

	for _, p := range c.Vars {
		a, ok := g.Vars.Lookup(p)
		if !ok {
			return fmt.Errorf("variable %s: %w", p, atl06.ErrNotFound)
		}
		fmt.Fprintf(w, "%s %s %s\n", atl06.CleanPath(p), a, preview(a))
		if c.Stats && !a.IsText() {
			s := summarize(a.Float64)
			fmt.Fprintf(w, "  %s\n", s)
			if path.Base(p) == "delta_time" && s.valid > 0 {
				fmt.Fprintf(w, "  utc=%s..%s\n", utc(s.min), utc(s.max))
			}
		}
	}
	for _, p := range c.AttrPaths {
		v, ok := g.Attrs.Lookup(p)
		if !ok {
			return fmt.Errorf("attribute %s: %w", p, atl06.ErrNotFound)
		}
		fmt.Fprintf(w, "%s = %v\n", p, v)
	}
	return nil
}

// printVars lists every array below g with its type and length, sorted by
// path.
func printVars(w io.Writer, p string, g *atl06.Group) {
	names := make([]string, 0, len(g.Arrays))
	for name := range g.Arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s %s\n", join(p, name), g.Arrays[name])
	}

	groups := make([]string, 0, len(g.Groups))
	for name := range g.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		printVars(w, join(p, name), g.Groups[name])
	}
}

func preview(a atl06.Array) string {
	var parts []string
	n := a.Len()
	for i := 0; i < n && i < maxValues; i++ {
		if a.IsText() {
			parts = append(parts, fmt.Sprintf("%q", a.Strings[i]))
		} else {
			parts = append(parts, fmt.Sprint(a.Float64[i]))
		}
	}
	if n > maxValues {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// dumpTree prints the raw container hierarchy, groups and datasets alike.
// A non-nil body is read instead of the file at target.
func dumpTree(w io.Writer, target string, body io.Reader) error {
	var (
		f   *h5.File
		err error
	)
	if body != nil {
		f, err = h5.OpenStream(body)
	} else {
		f, err = h5.Open(target)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	root, err := f.Root()
	if err != nil {
		return err
	}
	return h5.Walk(root, "/", func(p string, obj h5.Object, err error) error {
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", p, err)
			return nil
		}
		attrs, _ := obj.Attrs()
		switch obj.(type) {
		case h5.Group:
			fmt.Fprintf(w, "%s/ attrs=%v\n", strings.TrimSuffix(p, "/"), attrs)
		case h5.Dataset:
			fmt.Fprintf(w, "%s attrs=%v\n", p, attrs)
		}
		return nil
	})
}

// utc formats a delta_time value as an RFC 3339 timestamp.
func utc(deltaTime float64) string {
	return atl06.DeltaTime(deltaTime).Format(time.RFC3339Nano)
}

func join(p, name string) string {
	if p == "/" {
		return "/" + name
	}
	return p + "/" + name
}
