package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/api/dto"
	"github.com/spec-kit/servicedesk-proxy/internal/service"
)

// MetricsHandler serves weekly trend metrics.
type MetricsHandler struct {
	service *service.DashboardService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(dashboardService *service.DashboardService) *MetricsHandler {
	return &MetricsHandler{service: dashboardService}
}

// Weekly GET /api/metrics/weekly.
func (h *MetricsHandler) Weekly(c *fiber.Ctx) error {
	filter := parseStatusFilter(c.Query("status"))

	result, err := h.service.WeeklyMetrics(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.FromWeekly(result)})
}
