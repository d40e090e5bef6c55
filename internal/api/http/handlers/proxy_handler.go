package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/service"
)

// ProxyHandler forwards arbitrary sub-paths to the upstream Connect API.
type ProxyHandler struct {
	service *service.DashboardService
}

// NewProxyHandler constructs handler.
func NewProxyHandler(dashboardService *service.DashboardService) *ProxyHandler {
	return &ProxyHandler{service: dashboardService}
}

// Forward GET /api/connect/*.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	subPath := "/" + c.Params("*")
	if query := string(c.Request().URI().QueryString()); query != "" {
		subPath += "?" + query
	}

	raw, err := h.service.Passthrough(c.UserContext(), subPath)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": json.RawMessage(raw)})
}
