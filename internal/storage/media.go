package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("некорректное изображение")

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// MediaStorage hosts images referenced by posts and profiles.
type MediaStorage interface {
	// Upload stores blob under folder and returns its public URL.
	Upload(ctx context.Context, folder, blob string) (string, error)
	// Destroy removes the object behind a URL returned by Upload.
	Destroy(ctx context.Context, url string) error
	// Validate reports ErrInvalidImage for a blob Upload would reject.
	Validate(blob string) error
}

// ValidateImage checks a blob the same way Upload decodes it.
func ValidateImage(blob string, limit int64) error {
	_, err := decodeImage(blob, limit)
	return err
}

type image struct {
	data []byte
	mime *mimetype.MIME
}

// decodeImage accepts a data URI or bare base64 payload.
func decodeImage(blob string, limit int64) (*image, error) {
	payload := strings.TrimSpace(blob)
	if payload == "" {
		return nil, fmt.Errorf("%w: пустые данные", ErrInvalidImage)
	}

	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("%w: неподдерживаемый data URI", ErrInvalidImage)
		}
		payload = payload[comma+1:]
	}

	if limit > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > limit+2 {
		return nil, sizeError(int64(base64.StdEncoding.DecodedLen(len(payload))), limit)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, sizeError(int64(len(data)), limit)
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedImageTypes...) {
		return nil, fmt.Errorf("%w: тип %s не поддерживается", ErrInvalidImage, mime.String())
	}

	return &image{data: data, mime: mime}, nil
}

func sizeError(size, limit int64) error {
	return fmt.Errorf("%w: размер %s превышает лимит %s",
		ErrInvalidImage, humanize.Bytes(uint64(size)), humanize.Bytes(uint64(limit)))
}

func objectName(folder, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), now.Month(), uuid.New().String(), ext)
}

func publicURL(baseURL, bucket, object string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), bucket, object)
}

// objectNameFromURL reverses publicURL. ok is false for URLs outside the bucket.
func objectNameFromURL(baseURL, bucket, url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(baseURL, "/"), bucket)
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
