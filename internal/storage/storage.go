package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ForumApp/forum-service/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrFileMustBeImage = errors.New("cover must be an image")
	ErrFileTooLarge    = errors.New("cover exceeds the maximum allowed size")
)

// Storage uploads post cover images to S3-compatible object storage.
type Storage struct {
	client        *minio.Client
	bucket        string
	publicURL     string
	maxUploadSize int64
}

func New(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicURL:     strings.TrimSuffix(cfg.PublicURL, "/"),
		maxUploadSize: cfg.MaxUploadSize,
	}, nil
}

// UploadCover stores the uploaded file and returns its public URL.
func (s *Storage) UploadCover(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrFileMustBeImage
	}
	if s.maxUploadSize > 0 && fileHeader.Size > s.maxUploadSize {
		return "", ErrFileTooLarge
	}

	objectName := "covers/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
