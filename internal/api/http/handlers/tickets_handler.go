package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/servicedesk-proxy/internal/service"
)

// TicketsHandler serves raw ticket listings and backlog health.
type TicketsHandler struct {
	service *service.DashboardService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(dashboardService *service.DashboardService) *TicketsHandler {
	return &TicketsHandler{service: dashboardService}
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), defaultLimit)
	offset := parseInt(c.Query("offset"), defaultOffset)

	raw, err := h.service.ListRecords(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": json.RawMessage(raw)})
}

// ActionItems GET /api/tickets/:id/action-items.
func (h *TicketsHandler) ActionItems(c *fiber.Ctx) error {
	raw, count, err := h.service.ActionItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": json.RawMessage(raw), "count": count})
}

// Active GET /api/tickets/active.
func (h *TicketsHandler) Active(c *fiber.Ctx) error {
	health, err := h.service.ActiveHealth(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": health})
}
