// Package storage fetches the raw dataset from a local path or an
// S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Location is a parsed dataset URI.
type Location struct {
	Bucket string // empty for local files
	Key    string // object key, or the local path
}

// Remote reports whether the location points into a bucket.
func (l Location) Remote() bool { return l.Bucket != "" }

// Name is the base file name, used to pick the decoder.
func (l Location) Name() string { return path.Base(l.Key) }

// ParseURI accepts "s3://bucket/key" or a plain filesystem path.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("empty dataset location")
	}
	if !strings.HasPrefix(uri, "s3://") {
		return Location{Key: uri}, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("parse %q: %w", uri, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("parse %q: want s3://bucket/key", uri)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Config holds the S3 connection settings. Empty credentials fall back to
// the default AWS chain; an empty endpoint means AWS itself.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// ObjectGetter is the slice of the S3 API the fetcher needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher reads dataset bytes. The S3 client is only built when a remote
// location is first requested.
type Fetcher struct {
	cfg    Config
	client ObjectGetter
}

// NewFetcher returns a Fetcher using cfg for remote locations.
func NewFetcher(cfg Config) *Fetcher {
	return &Fetcher{cfg: cfg}
}

// WithClient replaces the S3 client.
func (f *Fetcher) WithClient(c ObjectGetter) *Fetcher {
	f.client = c
	return f
}

// Fetch returns the bytes stored at loc.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) ([]byte, error) {
	if !loc.Remote() {
		data, err := os.ReadFile(loc.Key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loc.Key, err)
		}
		return data, nil
	}

	if f.client == nil {
		client, err := newS3Client(ctx, f.cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		f.client = client
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	return data, nil
}

func newS3Client(ctx context.Context, c Config) (*s3.Client, error) {
	region := c.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	if c.Endpoint != "" {
		opts = append(opts, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, _ string, _ ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{URL: c.Endpoint, SigningRegion: region}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2 and MinIO want path-style addressing.
		o.UsePathStyle = c.Endpoint != ""
	}), nil
}
