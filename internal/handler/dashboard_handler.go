package handler

import (
	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/model"
	"go-inventory-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

type selectionRequest struct {
	Series *string `json:"series" validate:"omitempty,series_key"`
}

// GetDashboard returns stat cards, chart models and the shared selection
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(middleware.SessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	snap, err := h.service.Reload(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

// PutSelection sets the filter directly. {"series": null} clears it.
func (h *DashboardHandler) PutSelection(c *fiber.Ctx) error {
	var req selectionRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	sel := chart.NoSelection()
	if req.Series != nil {
		key, _ := model.ParseSeriesKey(*req.Series)
		sel = chart.Select(key)
	}

	snap, err := h.service.Select(middleware.SessionID(c), sel)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}
