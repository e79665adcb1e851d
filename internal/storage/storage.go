package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"slotbook/internal/domain"
)

const MaxPhotoBytes = 5 << 20

type Photo struct {
	Data        []byte
	ContentType string
}

// DataURL возвращает фото в виде data URL для хранения без внешнего хранилища.
func (p Photo) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.ContentType, base64.StdEncoding.EncodeToString(p.Data))
}

func (p Photo) Extension() string {
	switch p.ContentType {
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

type PhotoStorage interface {
	// Upload сохраняет фото владельца и возвращает публичный URL.
	Upload(ctx context.Context, owner string, photo Photo) (string, error)

	// Owns сообщает, указывает ли URL на объект этого хранилища.
	Owns(fileURL string) bool

	Delete(ctx context.Context, fileURL string) error
}

// DecodePhoto принимает data URL (data:image/png;base64,...) или чистый base64.
// Тип содержимого определяется по самим байтам, а не по префиксу.
func DecodePhoto(value string) (Photo, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Photo{}, domain.ValidationError("фото не передано")
	}

	payload := value
	if strings.HasPrefix(value, "data:") {
		comma := strings.IndexByte(value, ',')
		if comma < 0 || !strings.HasSuffix(value[:comma], ";base64") {
			return Photo{}, domain.ValidationError("некорректный data URL фото")
		}
		payload = value[comma+1:]
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > MaxPhotoBytes+2 {
		return Photo{}, domain.ValidationError("фото слишком большое")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Photo{}, domain.ValidationError("фото должно быть закодировано в base64")
	}

	if len(data) == 0 {
		return Photo{}, domain.ValidationError("пустые данные фото")
	}
	if len(data) > MaxPhotoBytes {
		return Photo{}, domain.ValidationError("фото слишком большое")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return Photo{}, domain.ValidationError("файл не является изображением")
	}

	return Photo{Data: data, ContentType: contentType}, nil
}
