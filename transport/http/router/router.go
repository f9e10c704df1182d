package router

import (
	"frontdesk/config"
	"frontdesk/internal/handlers/activity"
	"frontdesk/internal/handlers/auth"
	"frontdesk/internal/handlers/booking"
	"frontdesk/internal/handlers/dashboard"
	"frontdesk/internal/handlers/health"
	"frontdesk/internal/handlers/room"
	"frontdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Dashboard dashboard.Handler
	Room      room.Handler
	Booking   booking.Handler
	Activity  activity.Handler
	Health    health.Handler
}

type Router struct {
	Config         *config.Config
	App            middleware.AppMiddleware
	Session        middleware.Session
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts the HTML pages at the root and the JSON mirror under
// /api/v1. Every route except /healthz passes the store guard first.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.RealIP, r.App.RequestLog, chiMiddleware.Recoverer, r.App.Tracing)

	r.DomainHandlers.Health.Router(router)

	router.Group(func(pages chi.Router) {
		pages.Use(r.App.Store, r.Session.Load)

		r.DomainHandlers.Auth.Public(pages)

		pages.Group(func(protected chi.Router) {
			protected.Use(r.Session.RequirePage)

			r.DomainHandlers.Auth.Pages(protected)
			r.DomainHandlers.Dashboard.Pages(protected)
			r.DomainHandlers.Room.Pages(protected)
			r.DomainHandlers.Booking.Pages(protected)
			r.DomainHandlers.Activity.Pages(protected)
		})
	})

	router.Route("/api/v1", func(api chi.Router) {
		if r.Config.App.CORS.Enable {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
				AllowedMethods:   r.Config.App.CORS.AllowedMethods,
				AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
				AllowCredentials: r.Config.App.CORS.AllowCredentials,
				MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
			}))
		}

		api.Use(r.App.Store, r.Session.Load)

		r.DomainHandlers.Auth.PublicAPI(api)

		api.Group(func(protected chi.Router) {
			protected.Use(r.Session.RequireAPI)

			r.DomainHandlers.Auth.API(protected)
			r.DomainHandlers.Dashboard.API(protected)
			r.DomainHandlers.Room.API(protected)
			r.DomainHandlers.Booking.API(protected)
			r.DomainHandlers.Activity.API(protected)
		})
	})
}

func New(cfg *config.Config, app middleware.AppMiddleware, session middleware.Session, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		App:            app,
		Session:        session,
		DomainHandlers: domainHandlers,
	}
}
