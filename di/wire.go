//go:build wireinject
// +build wireinject

package di

import (
	"homestay/config"
	"homestay/infras/jwt"
	"homestay/infras/mailer"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/infras/redis"
	"homestay/shared/cache"
	"homestay/transport/http"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"

	"github.com/google/wire"

	adminRepository "homestay/internal/domains/admin/repository"
	authService "homestay/internal/domains/auth/service"
	bookingRepository "homestay/internal/domains/booking/repository"
	bookingService "homestay/internal/domains/booking/service"
	contactRepository "homestay/internal/domains/contact/repository"
	contactService "homestay/internal/domains/contact/service"
	guestRepository "homestay/internal/domains/guest/repository"
	guestService "homestay/internal/domains/guest/service"
	paymentRepository "homestay/internal/domains/payment/repository"
	paymentService "homestay/internal/domains/payment/service"
	reviewRepository "homestay/internal/domains/review/repository"
	reviewService "homestay/internal/domains/review/service"

	authHandler "homestay/internal/handlers/auth"
	bookingHandler "homestay/internal/handlers/booking"
	contactHandler "homestay/internal/handlers/contact"
	guestHandler "homestay/internal/handlers/guest"
	paymentHandler "homestay/internal/handlers/payment"
	reviewHandler "homestay/internal/handlers/review"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var domains = wire.NewSet(
	authDomain,
	bookingDomain,
	guestDomain,
	paymentDomain,
	reviewDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	guestHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	contactHandler.New,
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
