// Package storage wraps the S3-compatible object store (MinIO) used for
// photo uploads. The rest of the application deals with the narrow Uploader
// interface; the MinIO client and bucket policy stay contained here.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wiryawan46/instagram-clone-be/config"
)

// Uploader is what the HTTP handlers need from the object store. ObjectStore
// implements it; tests substitute their own.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
	ObjectURL(key string) string
}

// ObjectStore is a MinIO-backed object store for uploaded photos.
type ObjectStore struct {
	client *minio.Client
	cfg    *config.StorageConfig
}

// NewObjectStore creates an ObjectStore from the storage configuration.
func NewObjectStore(cfg *config.StorageConfig) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &ObjectStore{client: client, cfg: cfg}, nil
}

// EnsurePublicReadPolicy sets a bucket policy allowing anonymous reads, so
// the object URLs handed to clients work without signing. Callers may treat a
// failure here as a warning: uploads still work, only direct reads break.
func (s *ObjectStore) EnsurePublicReadPolicy(ctx context.Context) error {
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, s.cfg.Bucket)

	if err := s.client.SetBucketPolicy(ctx, s.cfg.Bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy on %s: %w", s.cfg.Bucket, err)
	}
	return nil
}

// Upload stores the body under a timestamped key derived from the original
// filename and returns the key. The timestamp prefix keeps concurrent uploads
// of the same filename from clobbering each other.
func (s *ObjectStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filename)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return key, nil
}

// ObjectURL returns the public URL for an object key.
func (s *ObjectStore) ObjectURL(key string) string {
	return s.cfg.ObjectURL(key)
}
