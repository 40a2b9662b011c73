package storage

import (
	"context"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/infras/s3"
	"reserva/shared/constant"
	"reserva/shared/timezone"
)

type s3Storage struct {
	cfg         *config.Config
	otel        otel.Otel
	objectStore s3.S3
}

func newS3Storage(cfg *config.Config, otl otel.Otel, objectStore s3.S3) Storage {
	return &s3Storage{
		cfg:         cfg,
		otel:        otl,
		objectStore: objectStore,
	}
}

func (s *s3Storage) Save(ctx context.Context, directory, originalName, contentType string, data []byte) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	name := objectName(originalName, timezone.Now().UnixNano())

	return s.objectStore.UploadFileBytes(ctx, s.cfg.Storage.S3.BucketName, directory, name, contentType, data)
}

func (s *s3Storage) Delete(ctx context.Context, _, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := s.cfg.Storage.S3.BucketName

	// The resolved object name already carries its directory prefix.
	objectName := s.objectStore.GetObjectNameFromURL(bucket, url)
	if objectName == constant.Empty {
		return nil
	}

	return s.objectStore.DeleteFile(ctx, bucket, constant.Empty, objectName)
}
