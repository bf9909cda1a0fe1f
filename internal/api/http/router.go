package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bruinrecruit/recruitment-service/internal/api/http/handlers"
	"github.com/bruinrecruit/recruitment-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Applications   *handlers.ApplicationsHandler
	Seasons        *handlers.SeasonsHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthLimiter throttles the credential endpoints. Optional.
	AuthLimiter fiber.Handler
	// Metrics serves the prometheus registry. Optional.
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	authGroup := app.Group("/auth")
	if cfg.AuthLimiter != nil {
		authGroup.Use(cfg.AuthLimiter)
	}
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	applications := app.Group("/applications", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	applications.Get("/:id?", cfg.Applications.Get)
	applications.Post("/", cfg.Applications.Create)
	applications.Post("/:id/submit", cfg.Applications.Submit)
	applications.Post("/:id/review", cfg.Applications.Review)
	applications.Put("/:id/availability", cfg.Applications.UpdateAvailability)
	applications.Put("/:id?", cfg.Applications.Update)
	applications.Delete("/:id?", cfg.Applications.Delete)

	seasons := app.Group("/seasons", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	seasons.Get("/:id?", cfg.Seasons.Get)
	seasons.Post("/", cfg.Seasons.Create)
	seasons.Delete("/:id?", cfg.Seasons.Delete)
}
