// Package s3src fetches granules stored in S3 so they can be read as
// streams.
package s3src

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/robert-malhotra/go-icesat2/internal/log"
)

// ErrNotS3 is returned by ParseURL for anything but an s3:// URL.
var ErrNotS3 = errors.New("not an s3:// URL")

// Location names one object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// IsURL reports whether s uses the s3 scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "s3://")
}

// ParseURL splits s3://bucket/key into its parts. Both parts are required.
func ParseURL(s string) (Location, error) {
	if !IsURL(s) {
		return Location{}, fmt.Errorf("%q: %w", s, ErrNotS3)
	}
	u, err := url.Parse(s)
	if err != nil {
		return Location{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	loc := Location{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	if loc.Bucket == "" {
		return Location{}, fmt.Errorf("%q: missing bucket", s)
	}
	if loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
		return Location{}, fmt.Errorf("%q: missing object key", s)
	}
	return loc, nil
}

// GetObjectAPI is the part of the S3 client the Fetcher uses.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures a Fetcher.
type Options struct {
	// Region overrides the region from the AWS config chain.
	Region string

	// AWSConfig is used as is when set.
	AWSConfig *aws.Config

	// Client replaces the S3 client, mostly for tests.
	Client GetObjectAPI

	Logger *slog.Logger
}

// Fetcher opens S3 objects.
type Fetcher struct {
	client GetObjectAPI
	logger *slog.Logger
}

// NewFetcher builds a Fetcher. Without a Client or AWSConfig the default
// AWS config chain is loaded.
func NewFetcher(ctx context.Context, opts Options) (*Fetcher, error) {
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}

	client := opts.Client
	if client == nil {
		var awsCfg aws.Config
		if opts.AWSConfig != nil {
			awsCfg = *opts.AWSConfig
		} else {
			var loadOpts []func(*config.LoadOptions) error
			if opts.Region != "" {
				loadOpts = append(loadOpts, config.WithRegion(opts.Region))
			}
			var err error
			awsCfg, err = config.LoadDefaultConfig(ctx, loadOpts...)
			if err != nil {
				return nil, fmt.Errorf("loading AWS config: %w", err)
			}
		}
		client = s3.NewFromConfig(awsCfg)
	}

	return &Fetcher{client: client, logger: opts.Logger}, nil
}

// Open returns the body of the object at rawURL. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	f.logger.Info("fetching granule", "bucket", loc.Bucket, "key", loc.Key)

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get S3 object %s: %w", loc, err)
	}
	if out.ContentLength != nil {
		f.logger.Debug("granule size", "url", loc.String(), "bytes", *out.ContentLength)
	}
	return &namedBody{ReadCloser: out.Body, name: loc.String()}, nil
}

// namedBody gives the object body a Name so opened granules report their
// URL.
type namedBody struct {
	io.ReadCloser
	name string
}

func (b *namedBody) Name() string {
	return b.name
}
