package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/agrasia-be/internal/api/handlers"
	"github.com/isdelr/agrasia-be/internal/auth"
	"github.com/isdelr/agrasia-be/internal/services"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	AuthService    services.AuthServiceProvider
	FarmService    services.FarmServiceProvider
	EventService   services.EventServiceProvider
	TokenVerifier  auth.TokenVerifier
	Catalog        handlers.CatalogStatus
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	farmHandler := handlers.NewFarmHandler(deps.FarmService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	healthHandler := handlers.NewHealthHandler(deps.Catalog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(deps.TokenVerifier))

			r.Get("/me", authHandler.GetMe)
			r.Get("/ndvi/legend", farmHandler.GetLegend)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/farms", func(r chi.Router) {
				r.Get("/", farmHandler.GetAll)
				r.Route("/{farmId}", func(r chi.Router) {
					r.Use(handlers.ValidateFarmID)
					r.Get("/", farmHandler.Get)
					r.Get("/dashboard", farmHandler.GetDashboard)
					r.Get("/spatial", farmHandler.GetSpatial)
					r.Get("/series/{kind}", farmHandler.GetSeries)
				})
			})
		})
	})

	return r
}
