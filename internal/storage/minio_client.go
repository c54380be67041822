package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"socialhub/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client        *minio.Client
	bucket        string
	publicURL     string
	maxUploadSize int64
}

func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	m := &MinIOClient{
		client:        client,
		bucket:        cfg.MinIO.BucketName,
		publicURL:     cfg.MinIO.PublicURL,
		maxUploadSize: cfg.MaxUploadSize,
	}

	if err := m.ensureBucket(ctx, cfg.MinIO.Region); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("ошибка проверки бакета %s: %w", m.bucket, err)
	}

	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("ошибка создания бакета %s: %w", m.bucket, err)
	}

	slog.Info("Создан бакет MinIO", "bucket", m.bucket)
	return nil
}

func (m *MinIOClient) Upload(ctx context.Context, folder, blob string) (string, error) {
	img, err := decodeImage(blob, m.maxUploadSize)
	if err != nil {
		return "", err
	}

	now := time.Now()
	object := objectName(folder, img.mime.Extension(), now)

	_, err = m.client.PutObject(ctx, m.bucket, object, bytes.NewReader(img.data), int64(len(img.data)),
		minio.PutObjectOptions{
			ContentType: img.mime.String(),
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return publicURL(m.publicURL, m.bucket, object), nil
}

func (m *MinIOClient) Validate(blob string) error {
	return ValidateImage(blob, m.maxUploadSize)
}

func (m *MinIOClient) Destroy(ctx context.Context, url string) error {
	object, ok := objectNameFromURL(m.publicURL, m.bucket, url)
	if !ok {
		slog.Warn("Изображение вне бакета, удаление пропущено", "url", url)
		return nil
	}

	err := m.client.RemoveObject(ctx, m.bucket, object, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}

	return nil
}
