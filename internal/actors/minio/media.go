// Package minio adapts MinIO/S3 object storage to the MediaStore port:
// upload bytes under a path, hand back a fetchable URL.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStoreArgs are the mandatory arguments for the creation of a MediaStore.
type MediaStoreArgs struct {
	// Endpoint is the MinIO/S3 endpoint, e.g. "localhost:9000".
	Endpoint string

	// AccessKeyID and SecretAccessKey authenticate the client.
	AccessKeyID     string
	SecretAccessKey string

	// UseSSL toggles TLS on the connection.
	UseSSL bool

	// Bucket is the bucket all media is uploaded into.
	Bucket string

	// PublicBaseURL is prepended to object paths to form fetchable URLs,
	// e.g. "https://media.podiumlink.example".
	PublicBaseURL string
}

// MediaStore is a MinIO-backed blob-storage adapter.
type MediaStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMediaStore creates a new MediaStore.
func NewMediaStore(args MediaStoreArgs) (*MediaStore, error) {
	if args.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if args.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	client, err := minio.New(args.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(args.AccessKeyID, args.SecretAccessKey, ""),
		Secure: args.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MediaStore{
		client:        client,
		bucket:        args.Bucket,
		publicBaseURL: strings.TrimSuffix(args.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the media bucket if it does not exist. Idempotent.
func (m *MediaStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

// Upload stores the bytes under the path and returns the fetchable URL.
func (m *MediaStore) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	if _, err := m.client.PutObject(ctx, m.bucket, path, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("error uploading object %q: %w", path, err)
	}
	return m.publicBaseURL + "/" + m.bucket + "/" + path, nil
}
