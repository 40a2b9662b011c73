package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path/filepath"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/infras/s3"
	"reserva/shared/constant"

	"github.com/google/uuid"
)

// Storage persists uploaded files and hands back a publicly resolvable URL.
// The local driver writes beneath the uploads directory served at /uploads;
// the s3 driver delegates to object storage.
type Storage interface {
	Save(ctx context.Context, directory, originalName, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, directory, url string) error
}

func New(cfg *config.Config, otl otel.Otel, objectStore s3.S3) Storage {
	if cfg.Storage.Driver == constant.StorageDriverS3 {
		return newS3Storage(cfg, otl, objectStore)
	}

	return newLocalStorage(cfg, otl)
}

// objectName builds a collision-free name: unix-nanos plus a random suffix,
// keeping the original extension. Superseded files are not cleaned up.
func objectName(originalName string, nowNanos int64) string {
	ext := filepath.Ext(originalName)

	return fmt.Sprintf("%d_%s%s", nowNanos, uuid.NewString(), ext)
}
