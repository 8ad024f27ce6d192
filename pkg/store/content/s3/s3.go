// Package s3 implements S3-based content storage for the files manager.
//
// Content blobs are stored as one object per locator under an optional key
// prefix. The store works with Amazon S3 and S3-compatible services (MinIO,
// Localstack) via a custom endpoint.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
)

// S3ContentStore implements content.ContentStore backed by an S3 bucket.
type S3ContentStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// Config holds S3-specific store options.
type Config struct {
	// Region is the AWS region of the bucket. Required.
	Region string

	// Bucket is the bucket name. Required.
	Bucket string

	// KeyPrefix is prepended to every object key (e.g. "content/").
	KeyPrefix string

	// Endpoint overrides the S3 endpoint for S3-compatible services.
	Endpoint string

	// AccessKeyID and SecretAccessKey are static credentials. When empty,
	// the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// New creates an S3-backed content store.
func New(ctx context.Context, cfg Config) (*S3ContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 content store: bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 content store: region is required")
	}

	var configOptions []func(*awsConfig.LoadOptions) error
	configOptions = append(configOptions, awsConfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for static credentials)
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing is what MinIO and Localstack expect.
			o.UsePathStyle = true
		}
	})

	return &S3ContentStore{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// objectKey returns the S3 object key for a locator.
func (s *S3ContentStore) objectKey(locator string) string {
	return s.keyPrefix + locator
}

// Write uploads the content in a single PutObject call. Blobs here are
// request-body sized, so multipart upload is unnecessary.
func (s *S3ContentStore) Write(ctx context.Context, locator string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(locator)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to write content %s to S3: %w", locator, err)
	}
	return nil
}

// Read downloads the complete content stored under the locator.
func (s *S3ContentStore) Read(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(locator)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("content %s: %w", locator, content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get content %s from S3: %w", locator, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s body: %w", locator, err)
	}
	return data, nil
}

// Exists checks for the object with a HeadObject call.
func (s *S3ContentStore) Exists(ctx context.Context, locator string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(locator)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check content %s on S3: %w", locator, err)
	}
	return true, nil
}

// HealthCheck verifies the bucket is reachable.
func (s *S3ContentStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 bucket %s unavailable: %w", s.bucket, err)
	}
	return nil
}
