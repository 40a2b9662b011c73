package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/shared/constant"

	"github.com/rs/zerolog/log"

	"reserva/shared/timezone"
)

type localStorage struct {
	cfg  *config.Config
	otel otel.Otel
}

func newLocalStorage(cfg *config.Config, otl otel.Otel) Storage {
	if err := os.MkdirAll(cfg.Storage.LocalDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", cfg.Storage.LocalDir).Msg("failed to create uploads directory")
	}

	return &localStorage{
		cfg:  cfg,
		otel: otl,
	}
}

func (s *localStorage) Save(ctx context.Context, directory, originalName, _ string, data []byte) (url string, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	name := objectName(originalName, timezone.Now().UnixNano())
	dir := filepath.Join(s.cfg.Storage.LocalDir, directory)

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return constant.Empty, fmt.Errorf("failed to create upload directory: %w", err)
	}

	target := filepath.Join(dir, name)
	if err = os.WriteFile(target, data, 0o644); err != nil {
		return constant.Empty, fmt.Errorf("failed to write uploaded file: %w", err)
	}

	scope.SetAttribute("file_name", name)

	publicPath := path.Join(constant.UploadsPublicPath, directory, name)

	return s.cfg.App.PublicBaseURL + publicPath, nil
}

func (s *localStorage) Delete(ctx context.Context, directory, url string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	prefix := s.cfg.App.PublicBaseURL + path.Join(constant.UploadsPublicPath, directory) + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}

	name := strings.TrimPrefix(url, prefix)

	if err = os.Remove(filepath.Join(s.cfg.Storage.LocalDir, directory, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove uploaded file: %w", err)
	}

	return nil
}
