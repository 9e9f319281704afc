package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/NRodriguezT98/ryr-documentos/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxRetries bounds the automatic retry of transient blob-store failures.
const maxRetries = 4

// MinioStore implements BlobStore on a MinIO / S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the configured object store and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.StorageBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.StorageBucket, err)
		}
		log.Printf("Created storage bucket: %s", cfg.StorageBucket)
	}

	return &MinioStore{client: client, bucket: cfg.StorageBucket}, nil
}

// retry runs op with exponential backoff, bounded by maxRetries.
func retry(ctx context.Context, op func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(op, bo)
}

// Put uploads an object. Uploads are idempotent by key.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	// Buffer so each retry attempt re-reads from the start.
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read upload payload: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("upload payload size mismatch: declared %d, read %d", size, len(data))
	}
	return retry(ctx, func() error {
		_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		return err
	})
}

// Get downloads an object in full.
func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := retry(ctx, func() error {
		obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = obj.Close() }()
		data, err = io.ReadAll(obj)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Copy performs a server-side copy, used for replacement backups.
func (s *MinioStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	return retry(ctx, func() error {
		_, err := s.client.CopyObject(ctx,
			minio.CopyDestOptions{Bucket: s.bucket, Object: dstKey},
			minio.CopySrcOptions{Bucket: s.bucket, Object: srcKey})
		return err
	})
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return retry(ctx, func() error {
		return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	})
}

// SignedURL returns a presigned download URL for the object.
func (s *MinioStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Ping verifies the store is reachable.
func (s *MinioStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
