package atl06

import (
	"log/slog"

	"github.com/robert-malhotra/go-icesat2/internal/log"
)

// Option configures a read.
type Option func(*options)

type options struct {
	attributes bool
	histogram  bool
	quality    bool
	keep       **File
	close      bool
	logger     *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAttributes copies group and dataset attributes alongside the arrays.
func WithAttributes() Option {
	return func(o *options) {
		o.attributes = true
	}
}

// WithHistogram includes each beam's residual_histogram group.
func WithHistogram() Option {
	return func(o *options) {
		o.histogram = true
	}
}

// WithQuality includes each beam's segment_quality group.
func WithQuality() Option {
	return func(o *options) {
		o.quality = true
	}
}

// WithKeepOpen leaves the handle open after the read and stores it in *dst.
// For sources opened by the read itself the caller then owns the handle
// and must close it.
func WithKeepOpen(dst **File) Option {
	return func(o *options) {
		o.keep = dst
	}
}

// WithClose closes a borrowed handle (FromFile) once the read returns.
// Handles opened by the read are closed by default.
func WithClose() Option {
	return func(o *options) {
		o.close = true
	}
}

// WithLogger sets the logger for informational output. Reads are silent
// by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
