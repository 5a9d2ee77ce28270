package storage

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Adapter implements Storage using AWS S3 or any S3-compatible endpoint.
type S3Adapter struct {
	client  *s3.Client
	presign *s3.PresignClient
}

// S3Options configures S3 client initialization.
type S3Options struct {
	// Region is the AWS region.
	Region string
	// Endpoint overrides the AWS endpoint (e.g. for MinIO).
	Endpoint string
	// AccessKey is the static access key ID.
	AccessKey string
	// SecretKey is the static secret access key.
	SecretKey string
	// UsePathStyle forces path-style addressing.
	UsePathStyle bool
}

// NewS3 constructs an S3 adapter. A custom Endpoint plus UsePathStyle points
// the adapter at MinIO or another S3-compatible server.
func NewS3(ctx context.Context, opts S3Options) (*S3Adapter, error) {
	var loadOpts []func(*config.LoadOptions) error

	switch {
	case opts.Region != "":
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	case opts.Endpoint != "":
		// Compatible servers ignore the region but the SDK requires one.
		loadOpts = append(loadOpts, config.WithRegion("us-east-1"))
	}
	if opts.AccessKey != "" || opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.UsePathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &S3Adapter{
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// PutObject stores data in S3 and returns metadata.
func (s *S3Adapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	input := &s3.PutObjectInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		Body:     r,
		Metadata: opts.Metadata,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.Size > 0 {
		input.ContentLength = aws.Int64(opts.Size)
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        opts.Size,
		ETag:        aws.ToString(out.ETag),
		ContentType: opts.ContentType,
		Metadata:    opts.Metadata,
	}, nil
}

// GetObject retrieves data and metadata from S3.
func (s *S3Adapter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ETag:        aws.ToString(out.ETag),
		ContentType: aws.ToString(out.ContentType),
		Metadata:    out.Metadata,
	}
	if out.LastModified != nil {
		info.UpdatedAt = *out.LastModified
	}

	return out.Body, info, nil
}

// DeleteObject removes an object from S3.
func (s *S3Adapter) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

// PresignGet returns a signed URL for downloading an object.
func (s *S3Adapter) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// Close implements io.Closer for interface compatibility.
func (s *S3Adapter) Close() error {
	return nil
}
