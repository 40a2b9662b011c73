package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/internal/domains/analytics/model/dto"
	"reserva/internal/domains/analytics/repository"
	"reserva/shared/cache"
	"reserva/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheRevenue = "analytics:revenue"

	trailingMonths  = 12
	topServiceLimit = 5
)

type Analytics interface {
	Revenue(ctx context.Context) (dto.RevenueResponse, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Revenue(ctx context.Context) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheRevenue, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheRevenue).Msg("cache hit for revenue analytics")

		return res, nil
	}

	total, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get total revenue")

		return res, fmt.Errorf("failed to get total revenue: %w", err)
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations by status")

		return res, fmt.Errorf("failed to count reservations by status: %w", err)
	}

	monthly, err := s.repo.MonthlyRevenue(ctx, trailingMonths)
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly revenue")

		return res, fmt.Errorf("failed to get monthly revenue: %w", err)
	}

	top, err := s.repo.TopServices(ctx, topServiceLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to rank services by revenue")

		return res, fmt.Errorf("failed to rank services by revenue: %w", err)
	}

	res.FromModels(total, byStatus, monthly, top)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheRevenue, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save revenue analytics to cache")
		}
	}()

	return res, nil
}
