package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/http/handlers"
	"github.com/spec-kit/auth-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Demo   *handlers.DemoHandler
	Guard  *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Guard.RequireRefresh(), cfg.Auth.Refresh)
	authGroup.Delete("/revoke_access", cfg.Guard.RequireAccess(), cfg.Auth.RevokeAccess)
	authGroup.Delete("/revoke_refresh", cfg.Guard.RequireRefresh(), cfg.Auth.RevokeRefresh)
	authGroup.Put("/change_password", cfg.Guard.RequireAccess(), cfg.Auth.ChangePassword)
	authGroup.Put("/reset_password", cfg.Guard.RequireAccess(), cfg.Auth.ResetPassword)

	apiGroup := app.Group("/api/v1")
	apiGroup.Get("/demos", cfg.Demo.List)
	apiGroup.Post("/demos", cfg.Demo.Create)
}
