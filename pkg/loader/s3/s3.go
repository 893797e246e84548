package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/singleflight"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
)

// S3ByteLoader is a ByteLoader implementation that loads file contents from
// an Amazon S3 bucket. It uses the AWS SDK v2 for Go.
//
// This loader is useful when the interaction source tables are stored in S3
// instead of the local filesystem.
type S3ByteLoader struct {
	bucket string
	client *s3.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewS3ByteLoaderWithClient creates a new S3ByteLoader using an existing
// s3.Client. This is useful if you want to reuse a preconfigured AWS client
// (e.g., with custom middleware or credentials).
func NewS3ByteLoaderWithClient(bucket string, client *s3.Client) *S3ByteLoader {
	return &S3ByteLoader{
		bucket: bucket,
		client: client,
		cache:  make(map[string][]byte),
	}
}

// NewS3ByteLoaderParams defines the configuration parameters for creating a
// new S3ByteLoader.
//
// Bucket specifies the S3 bucket name.
// Endpoint allows overriding the S3 endpoint (useful for S3-compatible
// storage like MinIO).
// Region specifies the AWS region.
// AccessKey and SecretKey provide static credentials.
type NewS3ByteLoaderParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3ByteLoader creates a new S3ByteLoader using the provided parameters.
// It initializes an AWS S3 client with static credentials and the given
// endpoint/region.
func NewS3ByteLoader(ctx context.Context, params NewS3ByteLoaderParams) (*S3ByteLoader, error) {
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

	return &S3ByteLoader{
		bucket: params.Bucket,
		client: client,
		cache:  make(map[string][]byte),
	}, nil
}

// GetFileBytes retrieves the contents of the given TableFile from the
// configured S3 bucket. A missing object key is reported as
// loader.ErrTableNotFound.
func (l *S3ByteLoader) GetFileBytes(ctx context.Context, file loader.TableFile) ([]byte, error) {
	cacheKey := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[cacheKey]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(cacheKey, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[cacheKey]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(file.FilePath),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if errors.As(err, &noKey) {
				return nil, fmt.Errorf("%w: s3://%s/%s", loader.ErrTableNotFound, l.bucket, file.FilePath)
			}
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}

		byts := buf.Bytes()

		l.cacheMu.Lock()
		l.cache[cacheKey] = byts
		l.cacheMu.Unlock()

		return byts, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
