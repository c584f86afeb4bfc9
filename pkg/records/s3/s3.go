package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/singleflight"

	"corgraph/pkg/records"
)

// S3Source is a records.Source implementation that reads record-set files
// from an Amazon S3 bucket using the AWS SDK v2 for Go.
//
// This source is useful when group data is stored in S3 instead of the
// local filesystem.
type S3Source struct {
	bucket string
	client *s3.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewS3SourceWithClient creates a new S3Source using an existing s3.Client.
// This is useful if you want to reuse a preconfigured AWS client (e.g.,
// with custom middleware or credentials).
func NewS3SourceWithClient(bucket string, client *s3.Client) *S3Source {
	return &S3Source{
		bucket: bucket,
		client: client,
		cache:  make(map[string][]byte),
	}
}

// NewS3SourceParams defines the configuration parameters for creating a
// new S3Source.
//
// Bucket specifies the S3 bucket name.
// Endpoint allows overriding the S3 endpoint (useful for S3-compatible
// storage like MinIO).
// Region specifies the AWS region.
// AccessKey and SecretKey provide static credentials.
type NewS3SourceParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Source creates a new S3Source using the provided parameters. It
// initializes an AWS S3 client with static credentials and the given
// endpoint/region.
func NewS3Source(ctx context.Context, params NewS3SourceParams) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)

	return &S3Source{
		bucket: params.Bucket,
		client: client,
		cache:  make(map[string][]byte),
	}, nil
}

// Read retrieves the file content from the configured S3 bucket. A missing
// object is reported with an error wrapping fs.ErrNotExist so callers can
// treat the record set as absent. Results are cached.
func (s *S3Source) Read(ctx context.Context, file records.GroupFile) ([]byte, error) {
	cacheKey := file.Path

	s.cacheMu.RLock()
	if cached, ok := s.cache[cacheKey]; ok {
		s.cacheMu.RUnlock()
		return cached, nil
	}
	s.cacheMu.RUnlock()

	result, err, _ := s.group.Do(cacheKey, func() (any, error) {
		s.cacheMu.RLock()
		if cached, ok := s.cache[cacheKey]; ok {
			s.cacheMu.RUnlock()
			return cached, nil
		}
		s.cacheMu.RUnlock()

		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(file.Path),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if errors.As(err, &noKey) {
				return nil, fmt.Errorf("s3 object %s: %w", file.Path, fs.ErrNotExist)
			}
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}

		byts := buf.Bytes()

		s.cacheMu.Lock()
		s.cache[cacheKey] = byts
		s.cacheMu.Unlock()

		return byts, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
