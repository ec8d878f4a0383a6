package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/logging"
)

// Storage is the media asset gateway. Binary assets (avatars, covers,
// videos, thumbnails) live in object storage; callers persist only the
// returned URL and asset id.
type Storage struct {
	client        *minio.Client
	log           *logging.Logger
	bucketName    string
	publicBaseURL string
	ffprobePath   string
}

// Asset identifies one uploaded object. Duration is populated for video
// uploads only.
type Asset struct {
	URL      string
	ID       string
	Duration float64
}

// New creates a new storage client
func New(cfg config.StorageConfig, log *logging.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:        client,
		log:           log,
		bucketName:    cfg.BucketName,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		ffprobePath:   cfg.FFprobePath,
	}, nil
}

// UploadFile uploads a local file under objectName and returns its asset
// reference. Video files are probed for duration before upload; any failure
// means nothing is persisted and the caller must not store a partial
// reference.
func (s *Storage) UploadFile(ctx context.Context, objectName, filePath string) (*Asset, error) {
	contentType := getContentType(filePath)

	asset := &Asset{
		ID:  objectName,
		URL: s.publicBaseURL + "/" + objectName,
	}

	if strings.HasPrefix(contentType, "video/") {
		duration, err := s.probeDuration(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to probe video: %w", err)
		}
		asset.Duration = duration
	}

	start := time.Now()
	info, err := s.client.FPutObject(ctx, s.bucketName, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	s.log.LogStorageOperation("upload", s.bucketName, objectName, info.Size, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return asset, nil
}

// Delete deletes an object from storage. Callers replacing an asset treat a
// failure here as non-fatal once the primary record write succeeded.
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	start := time.Now()
	err := s.client.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{})
	s.log.LogStorageOperation("delete", s.bucketName, objectName, 0, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// GetURL returns a short-lived presigned URL for an object. Used for assets
// that are not publicly readable, such as unpublished videos.
func (s *Storage) GetURL(ctx context.Context, objectName string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate URL: %w", err)
	}

	return url.String(), nil
}

// getContentType returns the content type based on file extension
func getContentType(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
