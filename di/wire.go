//go:build wireinject
// +build wireinject

package di

import (
	"frontdesk/config"
	"frontdesk/infras/jwt"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/infras/redis"
	"frontdesk/infras/s3"
	"frontdesk/infras/store"
	"frontdesk/shared/cache"
	"frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"

	"github.com/google/wire"

	activityRepository "frontdesk/internal/domains/activity/repository"
	activityService "frontdesk/internal/domains/activity/service"
	authService "frontdesk/internal/domains/auth/service"
	bookingRepository "frontdesk/internal/domains/booking/repository"
	bookingService "frontdesk/internal/domains/booking/service"
	dashboardService "frontdesk/internal/domains/dashboard/service"
	roomRepository "frontdesk/internal/domains/room/repository"
	roomService "frontdesk/internal/domains/room/service"
	userRepository "frontdesk/internal/domains/user/repository"
	activityHandler "frontdesk/internal/handlers/activity"
	authHandler "frontdesk/internal/handlers/auth"
	bookingHandler "frontdesk/internal/handlers/booking"
	dashboardHandler "frontdesk/internal/handlers/dashboard"
	healthHandler "frontdesk/internal/handlers/health"
	roomHandler "frontdesk/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	provideStore,
	otel.New,
	redis.New,
	s3.New,
	kafka.New,
	jwt.New,
	wire.Bind(new(middleware.StoreGuard), new(*store.Store)),
	wire.Bind(new(healthHandler.Prober), new(*store.Store)),
	wire.Bind(new(bookingService.Transactor), new(*store.Store)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
	session.New,
	view.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activityService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	activityDomain,
	authDomain,
	roomDomain,
	bookingDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	dashboardHandler.New,
	roomHandler.New,
	bookingHandler.New,
	activityHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeApp() (*App, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil, nil
}
