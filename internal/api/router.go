package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doafacil/doafacil/internal/api/handlers"
	"github.com/doafacil/doafacil/internal/api/middleware"
	"github.com/doafacil/doafacil/internal/service"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	institutionService *service.InstitutionService,
	catalogService *service.CatalogService,
	statsService *service.StatsService,
	authService *service.AuthService,
	rateLimitService *service.RateLimitService,
	rateLimitDaily int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	// Health checks (not rate limited)
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready)

	// Create handlers
	institutionHandler := handlers.NewInstitutionHandler(institutionService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	donationTypeHandler := handlers.NewDonationTypeHandler(catalogService)
	statsHandler := handlers.NewStatsHandler(statsService)
	authHandler := handlers.NewAuthHandler(authService)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService, rateLimitDaily)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimitMiddleware.RateLimit)

		// Public endpoints
		r.Post("/auth/login", authHandler.Login)

		r.Get("/institutions", institutionHandler.Search)
		r.Get("/institutions/{id}", institutionHandler.Get)
		r.Post("/institutions", institutionHandler.Create)

		r.Get("/categories", categoryHandler.List)
		r.Get("/donation-types", donationTypeHandler.List)
		r.Get("/stats", statsHandler.Get)

		// Administrative endpoints (approval workflow, reference data)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAdmin)

			r.Put("/institutions/{id}", institutionHandler.Update)
			r.Delete("/institutions/{id}", institutionHandler.Delete)
			r.Patch("/institutions/{id}/verify", institutionHandler.Verify)

			r.Post("/categories", categoryHandler.Create)
			r.Post("/donation-types", donationTypeHandler.Create)
		})
	})

	return r
}
