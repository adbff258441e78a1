// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dotctl/dotctl/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points S3 at a compatible service (MinIO, R2, ...). Path-style
// addressing is used when set.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NoRetries is a retryer factory that makes every request a single attempt.
func NoRetries() awsv2.Retryer {
	return awsv2.NopRetryer{}
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)
	log.Debugf("aws opts: profile=%s region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created: region=%s", cfg.Region)
	return client
}

// WithBaseEndpoint returns an S3 option that targets url with path-style
// addressing.
func WithBaseEndpoint(url string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(url)
		o.UsePathStyle = true
	}
}

// putter is the slice of the S3 API Uploader uses.
type putter interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Uploader stores objects in one bucket.
type Uploader struct {
	client putter
	Bucket string
	Prefix string
}

// NewUploader loads config and builds an Uploader for bucket. Keys are
// placed under prefix.
func NewUploader(ctx context.Context, bucket, prefix string, opts ...Option) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("an S3 bucket is required")
	}
	cfg, err := LoadConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var s3opts []func(*s3v2.Options)
	if o := apply(opts); o.endpoint != "" {
		s3opts = append(s3opts, WithBaseEndpoint(o.endpoint))
	}
	return &Uploader{client: NewS3(cfg, s3opts...), Bucket: bucket, Prefix: prefix}, nil
}

// Key joins the prefix and name into an object key.
func (u *Uploader) Key(name string) string {
	p := strings.Trim(u.Prefix, "/")
	if p == "" {
		return name
	}
	return path.Join(p, name)
}

// Upload stores body under Key(name) and returns the s3:// URI.
func (u *Uploader) Upload(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error) {
	key := u.Key(name)
	in := &s3v2.PutObjectInput{
		Bucket: awsv2.String(u.Bucket),
		Key:    awsv2.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = awsv2.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", u.Bucket, key, err)
	}
	uri := fmt.Sprintf("s3://%s/%s", u.Bucket, key)
	log.Debugf("uploaded %s", uri)
	return uri, nil
}
