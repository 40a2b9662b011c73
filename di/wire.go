//go:build wireinject
// +build wireinject

package di

import (
	"reserva/config"
	"reserva/infras/googleauth"
	"reserva/infras/kafka"
	"reserva/infras/otel"
	"reserva/infras/postgres"
	"reserva/infras/redis"
	"reserva/infras/s3"
	"reserva/infras/session"
	"reserva/infras/storage"
	"reserva/permissions"
	"reserva/shared/cache"
	"reserva/transport/http"
	"reserva/transport/http/middleware"
	"reserva/transport/http/router"

	analyticsRepository "reserva/internal/domains/analytics/repository"
	analyticsService "reserva/internal/domains/analytics/service"
	authService "reserva/internal/domains/auth/service"
	catalogRepository "reserva/internal/domains/catalog/repository"
	catalogService "reserva/internal/domains/catalog/service"
	reservationRepository "reserva/internal/domains/reservation/repository"
	reservationService "reserva/internal/domains/reservation/service"
	userRepository "reserva/internal/domains/user/repository"
	userService "reserva/internal/domains/user/service"

	analyticsHandler "reserva/internal/handlers/analytics"
	authHandler "reserva/internal/handlers/auth"
	catalogHandler "reserva/internal/handlers/catalog"
	reservationHandler "reserva/internal/handlers/reservation"
	userHandler "reserva/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	s3.New,
	storage.New,
	session.New,
	kafka.New,
	googleauth.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.NewService,
	catalogRepository.NewServiceItem,
	catalogService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsRepository.New,
	analyticsService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	reservationDomain,
	analyticsDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	catalogHandler.New,
	reservationHandler.New,
	analyticsHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
