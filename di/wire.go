//go:build wireinject
// +build wireinject

package di

import (
	"conference/config"
	"conference/infras/jwt"
	"conference/infras/kafka"
	"conference/infras/mail"
	"conference/infras/otel"
	"conference/infras/postgres"
	"conference/infras/redis"
	"conference/infras/s3"
	"conference/internal/app"
	"conference/internal/sweeper"
	"conference/permissions"
	"conference/shared/cache"
	"conference/transport/http"
	"conference/transport/http/middleware"
	"conference/transport/http/router"

	accommodationService "conference/internal/domains/accommodation/service"
	adminService "conference/internal/domains/admin/service"
	bookingRepository "conference/internal/domains/booking/repository"
	bookingService "conference/internal/domains/booking/service"
	lawyerRepository "conference/internal/domains/lawyer/repository"
	notificationService "conference/internal/domains/notification/service"
	receiptRepository "conference/internal/domains/receipt/repository"

	adminHandler "conference/internal/handlers/admin"
	bookingHandler "conference/internal/handlers/booking"
	healthHandler "conference/internal/handlers/health"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	mail.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	ProvideCSRF,
	ProvideSchema,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	lawyerRepository.New,
	bookingRepository.New,
	receiptRepository.New,
	accommodationService.New,
	notificationService.New,
	bookingService.New,
)

var adminDomain = wire.NewSet(
	adminService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	adminHandler.New,
	healthHandler.New,
	router.New,
)

var application = wire.NewSet(
	http.New,
	sweeper.New,
	app.New,
	wire.Bind(new(app.Server), new(*http.HTTP)),
	wire.Bind(new(app.Scheduler), new(*sweeper.Sweeper)),
)

// InitializeServer builds the HTTP transport alone, for serverless runtimes.
func InitializeServer() *http.HTTP {
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

// InitializeApp builds the long-running process: HTTP server plus the expiry sweeper.
func InitializeApp() *app.App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		application,
	)

	return &app.App{}
}
