package publisher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/joe-lloyd/model-blog/internal/config"
)

// S3Store is an ObjectStore backed by an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store connects to the configured bucket. Credentials come from
// the ambient AWS chain: environment variables first, then the shared
// credentials file.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
	})

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Exists checks whether an object with the given key is already in the
// bucket.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, err
}

// Upload writes a local file to the bucket under the given key.
func (s *S3Store) Upload(ctx context.Context, key, filePath, contentType string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, key, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
