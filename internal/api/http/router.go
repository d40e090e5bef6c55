package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Analytics *handlers.AnalyticsHandler
	Tickets   *handlers.TicketsHandler
	Metrics   *handlers.MetricsHandler
	Proxy     *handlers.ProxyHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)
	api.Get("/analytics/overview", cfg.Analytics.Overview)
	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/active", cfg.Tickets.Active)
	api.Get("/tickets/:id/action-items", cfg.Tickets.ActionItems)
	api.Get("/metrics/weekly", cfg.Metrics.Weekly)
	api.Get("/connect/*", cfg.Proxy.Forward)
}
