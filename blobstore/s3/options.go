package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	prefix      string
	region      string
	endpoint    string
	pathStyle   bool
	partSize    int64
	concurrency int
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix prepended to every blob name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithRegion overrides the region from the shared AWS configuration.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithEndpoint sets a custom endpoint URL, e.g. "http://localhost:4566".
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithPathStyle enables path-style addressing (bucket in the path, not the host).
func WithPathStyle() Option {
	return func(o *options) {
		o.pathStyle = true
	}
}

// WithPartSize sets the multipart upload part size in bytes.
// Default: 8MB.
func WithPartSize(size int64) Option {
	return func(o *options) {
		o.partSize = size
	}
}

// WithConcurrency sets the number of parts uploaded in parallel.
// Default: 5.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// New loads the default AWS configuration (environment, shared config files,
// instance roles) and returns a Store for bucket.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	o := options{
		partSize:    DefaultPartSize,
		concurrency: DefaultConcurrency,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
		so.UsePathStyle = o.pathStyle
	})

	s := NewStore(client, bucket, o.prefix)
	s.uploader = newUploader(client, o.partSize, o.concurrency)
	return s, nil
}
