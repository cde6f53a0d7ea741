//go:build wireinject
// +build wireinject

package di

import (
	"servana/config"
	"servana/infras/jwt"
	"servana/infras/kafka"
	"servana/infras/otel"
	"servana/infras/postgres"
	"servana/infras/redis"
	"servana/infras/s3"
	"servana/permissions"
	"servana/shared/cache"
	"servana/transport/http"
	"servana/transport/http/middleware"
	"servana/transport/http/router"

	"github.com/google/wire"

	adminService "servana/internal/domains/admin/service"
	authService "servana/internal/domains/auth/service"
	bookingRepository "servana/internal/domains/booking/repository"
	bookingService "servana/internal/domains/booking/service"
	providerRepository "servana/internal/domains/provider/repository"
	providerService "servana/internal/domains/provider/service"
	userRepository "servana/internal/domains/user/repository"

	adminHandler "servana/internal/handlers/admin"
	authHandler "servana/internal/handlers/auth"
	bookingHandler "servana/internal/handlers/booking"
	providerHandler "servana/internal/handlers/provider"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
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

var providerDomain = wire.NewSet(
	providerRepository.New,
	providerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var adminDomain = wire.NewSet(
	adminService.New,
)

var domains = wire.NewSet(
	authDomain,
	providerDomain,
	bookingDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	providerHandler.New,
	bookingHandler.New,
	adminHandler.New,
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
