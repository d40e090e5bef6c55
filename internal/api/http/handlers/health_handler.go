package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/api/dto"
)

// TokenProbe reports whether a valid upstream token is currently cached.
type TokenProbe interface {
	TokenCached() bool
}

// HealthHandler responds to the dashboard health probe.
type HealthHandler struct {
	tokens TokenProbe
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(tokens TokenProbe) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

// Health GET /api/health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		TokenCached: h.tokens.TokenCached(),
	})
}
