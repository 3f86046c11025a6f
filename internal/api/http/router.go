package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coworkspace-service/internal/api/http/handlers"
	"github.com/spec-kit/coworkspace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Bookings       *handlers.BookingsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Token and register are the only
// endpoints reachable without a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/token", cfg.Auth.Token)
	authGroup.Post("/register", cfg.Auth.Register)

	bookings := api.Group("/bookings", cfg.AuthMiddleware.Handle)
	bookings.Get("/", cfg.Bookings.List)
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Delete("/:bookingId", cfg.Bookings.Delete)
	bookings.Put("/:bookingId", auth.RequireAdmin(), cfg.Bookings.Update)
}
