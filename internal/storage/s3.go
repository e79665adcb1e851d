package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"slotbook/config"
)

const photoPrefix = "profile-photos"

type S3Storage struct {
	client  *minio.Client
	cfg     config.S3Config
	baseURL string
	logger  *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
		logger.Info("Создан бакет для фото профилей", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client:  client,
		cfg:     cfg,
		baseURL: objectBaseURL(cfg),
		logger:  logger,
	}, nil
}

// objectBaseURL строит адрес в path-style, который понимают и MinIO, и S3.
func objectBaseURL(cfg config.S3Config) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", scheme, strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
}

func (s *S3Storage) Upload(ctx context.Context, owner string, photo Photo) (string, error) {
	objectName := fmt.Sprintf("%s/%s/%s%s", photoPrefix, owner, uuid.New().String(), photo.Extension())

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(photo.Data), int64(len(photo.Data)), minio.PutObjectOptions{
		ContentType: photo.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки фото в S3: %w", err)
	}

	s.logger.Debug("Фото загружено", zap.String("object", objectName), zap.Int("size", len(photo.Data)))

	return s.baseURL + objectName, nil
}

func (s *S3Storage) Owns(fileURL string) bool {
	_, ok := objectNameFromURL(s.baseURL, fileURL)
	return ok
}

func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	objectName, ok := objectNameFromURL(s.baseURL, fileURL)
	if !ok {
		return fmt.Errorf("некорректный URL файла: %s", fileURL)
	}

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	return nil
}

func objectNameFromURL(baseURL, fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, baseURL) {
		return "", false
	}
	name := strings.TrimPrefix(fileURL, baseURL)
	if !strings.HasPrefix(name, photoPrefix+"/") {
		return "", false
	}
	return name, true
}
