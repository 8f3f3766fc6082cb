package router

import (
	"conference/config"
	"conference/internal/handlers/admin"
	"conference/internal/handlers/booking"
	"conference/internal/handlers/health"
	"conference/shared/failure"
	"conference/transport/http/middleware"
	"conference/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	errPageNotFound     = &failure.Failure{Code: http.StatusNotFound, Message: "Page not found."}
	errMethodNotAllowed = &failure.Failure{Code: http.StatusMethodNotAllowed, Message: "Method not allowed."}
)

type DomainHandlers struct {
	Booking booking.Handler
	Admin   admin.Handler
	Health  health.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
	CSRF     middleware.CSRFGuard
	Schema   middleware.SchemaGuard
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
}

// SetupRoutes mounts the public booking pages at the root and the admin pages behind the session
// check. The health check stays outside the schema guard so that it answers while the database is down.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.Recoverer, r.Middlewares.App.Tracing)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			ExposedHeaders:   []string{"Location", "X-CSRF-Token"},
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, errPageNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, errMethodNotAllowed)
	})

	r.DomainHandlers.Health.Router(router)

	router.Group(func(site chi.Router) {
		site.Use(r.Middlewares.Schema, r.Middlewares.App.RateLimit, r.Middlewares.CSRF)

		r.DomainHandlers.Booking.Router(site)

		site.Group(func(adminGroup chi.Router) {
			adminGroup.Use(r.Middlewares.AuthRole.Auth, r.Middlewares.AuthRole.RBAC)

			r.DomainHandlers.Admin.Router(adminGroup)
		})
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, middlewares Middlewares) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
	}
}
