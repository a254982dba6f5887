// Package log builds the slog loggers used by the command line tools. The
// reader packages take a plain *slog.Logger so callers can bring their own.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	App        string
	Level      slog.Level
	JSONFormat bool
	Writer     io.Writer
}

// New returns a logger writing logfmt (or JSON) records to opts.Writer,
// stderr by default. Every record carries the app name, and records with an
// "err" attribute also carry the unwrapped error chain.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var h slog.Handler
	if opts.JSONFormat {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level})
	}
	h = chainHandler{next: h}

	l := slog.New(h)
	if opts.App != "" {
		l = l.With(slog.String("app", opts.App))
	}
	return l
}

func ParseLevel(s string) (slog.Level, error) {
	x := strings.ToLower(strings.TrimSpace(s))
	switch x {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %s (valid levels are debug|info|warn|error)", s)
	}
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// chainHandler adds an error_chain attribute next to any "err" attribute
// that wraps other errors.
type chainHandler struct{ next slog.Handler }

func (h chainHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h chainHandler) Handle(ctx context.Context, r slog.Record) error {
	var chain []string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "err" {
			return true
		}
		if err, ok := a.Value.Any().(error); ok {
			chain = errorChain(err)
		}
		return false
	})
	if len(chain) > 1 {
		r.AddAttrs(slog.Any("error_chain", chain))
	}
	return h.next.Handle(ctx, r)
}

func (h chainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return chainHandler{next: h.next.WithAttrs(attrs)}
}

func (h chainHandler) WithGroup(name string) slog.Handler {
	return chainHandler{next: h.next.WithGroup(name)}
}

func errorChain(err error) []string {
	out := make([]string, 0, 8)
	var prev string
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if msg != prev {
			out = append(out, msg)
			prev = msg
		}
	}
	return out
}
