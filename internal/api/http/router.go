package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/http/handlers"
	"github.com/spec-kit/pet-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Owners     *handlers.OwnersHandler
	Pets       *handlers.PetsHandler
	Statistics *handlers.StatisticsHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes. The gate runs for every /api request and
// only attaches identity; access decisions happen in guards and services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.Gate.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	me := api.Group("/users/me", auth.RequireAnyRole())
	me.Get("", cfg.Users.Me)
	me.Put("", cfg.Users.UpdateMe)
	me.Put("/password", cfg.Users.ChangePassword)

	admin := api.Group("/admin", auth.AdminOnly())
	admin.Put("/users/:username/roles", cfg.Users.SetRoles)

	owners := api.Group("/owners")
	owners.Get("", cfg.Owners.List)
	owners.Post("", cfg.Owners.Create)
	owners.Get("/:id", cfg.Owners.Get)
	owners.Get("/:id/pets", cfg.Owners.Pets)
	owners.Put("/:id", cfg.Owners.Update)
	owners.Delete("/:id", cfg.Owners.Delete)

	pets := api.Group("/pets")
	pets.Get("", cfg.Pets.List)
	pets.Post("", cfg.Pets.Create)
	pets.Get("/my", auth.RequireAnyRole(), cfg.Pets.Mine)
	pets.Get("/:id", cfg.Pets.Get)
	pets.Put("/:id", cfg.Pets.Update)
	pets.Delete("/:id", cfg.Pets.Delete)

	api.Get("/statistics", cfg.Statistics.Summary)
}
