package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/api/dto"
	"github.com/spec-kit/servicedesk-proxy/internal/domain"
	"github.com/spec-kit/servicedesk-proxy/internal/service"
)

const (
	defaultLimit  = 100
	defaultOffset = 0
)

// AnalyticsHandler serves the dashboard overview.
type AnalyticsHandler struct {
	service *service.DashboardService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(dashboardService *service.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{service: dashboardService}
}

// Overview GET /api/analytics/overview.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), defaultLimit)
	filter := parseStatusFilter(c.Query("status"))

	result, err := h.service.Overview(c.UserContext(), limit, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.FromOverview(result)})
}

// Query parameters are deliberately permissive: absent or malformed values
// silently fall back to their defaults.
func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func parseStatusFilter(val string) domain.StatusFilter {
	if val == "" {
		return domain.StatusFilterOpen
	}
	return domain.StatusFilter(val)
}
