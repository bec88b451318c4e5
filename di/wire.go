//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"reservation/config"
	"reservation/infras/jwt"
	"reservation/infras/kafka"
	"reservation/infras/metrics"
	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/infras/redis"
	"reservation/internal/events/refund"
	"reservation/internal/guard"
	"reservation/internal/workers/purge"
	"reservation/permissions"
	"reservation/shared/cache"
	"reservation/shared/clock"
	"reservation/transport/http"
	"reservation/transport/http/middleware"
	"reservation/transport/http/router"

	bookingRepository "reservation/internal/domains/booking/repository"
	bookingService "reservation/internal/domains/booking/service"
	cancellationRepository "reservation/internal/domains/cancellation/repository"
	cancellationService "reservation/internal/domains/cancellation/service"
	holdRepository "reservation/internal/domains/hold/repository"
	holdService "reservation/internal/domains/hold/service"
	paymentRepository "reservation/internal/domains/payment/repository"
	roomRepository "reservation/internal/domains/room/repository"

	bookingHandler "reservation/internal/handlers/booking"
	cancellationHandler "reservation/internal/handlers/cancellation"
	holdHandler "reservation/internal/handlers/hold"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var admission = wire.NewSet(
	guard.NewPostgresLocker,
	guard.New,
)

var domains = wire.NewSet(
	roomRepository.New,
	paymentRepository.New,
	bookingRepository.New,
	bookingService.New,
	holdRepository.New,
	holdService.New,
	cancellationRepository.New,
	cancellationService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	holdHandler.New,
	bookingHandler.New,
	cancellationHandler.New,
	router.New,
)

var background = wire.NewSet(
	purge.New,
	refund.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		admission,
		domains,
		routing,
		background,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
