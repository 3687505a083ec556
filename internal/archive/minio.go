// Package archive stores original receipt images in S3-compatible object
// storage so entries in the ledger can link back to their source scans.
package archive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/scanstation/receipt-ocr/internal/logger"
	"github.com/scanstation/receipt-ocr/internal/models"
)

// presignedURLTTL bounds how long a shared image link stays valid.
const presignedURLTTL = 24 * time.Hour

// Store archives receipt images in a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	log    zerolog.Logger
}

// NewStore connects to the object store and verifies the bucket exists.
func NewStore(ctx context.Context, cfg models.ArchiveConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket, log: logger.WithComponent("archive")}, nil
}

// Upload stores a receipt image under receipts/YYYY/MM/{uuid}{ext} and
// returns the object path for the ledger.
func (s *Store) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	now := time.Now()
	objectName := fmt.Sprintf("receipts/%d/%02d/%s%s",
		now.Year(), now.Month(), uuid.New().String(), FileExtension(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.log.Debug().Str("object", objectName).Int64("size", size).Msg("receipt image archived")
	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}

// PresignedURL generates a time-limited viewing URL for an archived image.
func (s *Store) PresignedURL(ctx context.Context, objectPath string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, s.trimBucket(objectPath), presignedURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Delete removes an archived image.
func (s *Store) Delete(ctx context.Context, objectPath string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.trimBucket(objectPath), minio.RemoveObjectOptions{})
}

// trimBucket strips the bucket prefix Upload embeds in returned paths.
func (s *Store) trimBucket(objectPath string) string {
	return strings.TrimPrefix(objectPath, s.bucket+"/")
}

// FileExtension maps a content type to a file extension for object names.
func FileExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
