package handlers

import (
	"farmconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the farmer dashboard.
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard route.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleGetDashboard)
}

// HandleGetDashboard returns weather, market prices and tips.
func (h *DashboardHandler) HandleGetDashboard(c *fiber.Ctx) error {
	return c.JSON(h.service.Dashboard())
}
