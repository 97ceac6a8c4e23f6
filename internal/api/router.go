package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/teamdir/internal/api/handler"
	"github.com/daap14/teamdir/internal/api/middleware"
	"github.com/daap14/teamdir/internal/auth"
	"github.com/daap14/teamdir/internal/directory"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DirectoryChecker directory.HealthChecker
	DBPinger         handler.DBPinger
	Version          string
	Authenticator    auth.Authenticator
	Finder           handler.MembershipFinder
	AuthService      *auth.Service       // nil unless API key users are enabled
	UserRepo         auth.UserRepository // nil unless API key users are enabled
	OpenAPISpec      []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DirectoryChecker, deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Authenticator))
		r.Use(middleware.RequireAdmin())

		membershipHandler := handler.NewMembershipHandler(deps.Finder)
		r.Post("/teams/memberships", membershipHandler.Lookup)

		if deps.AuthService != nil && deps.UserRepo != nil {
			userHandler := handler.NewUserHandler(deps.AuthService, deps.UserRepo)
			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.Create)
				r.Get("/", userHandler.List)
				r.Delete("/{id}", userHandler.Delete)
			})
		}
	})

	return r
}
