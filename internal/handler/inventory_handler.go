package handler

import (
	"bytes"

	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func itemID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext(), middleware.SessionID(c).String())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// ToggleItem checks or unchecks one table row
func (h *InventoryHandler) ToggleItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}
	list, err := h.service.ToggleItem(c.UserContext(), middleware.SessionID(c).String(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// SelectAll checks every row, or clears them all if they already are
func (h *InventoryHandler) SelectAll(c *fiber.Ctx) error {
	list, err := h.service.SelectAll(c.UserContext(), middleware.SessionID(c).String())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// GetItem returns the item detail. Query params: range (1d, 1w, 1m; default 1w)
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}
	detail, err := h.service.Detail(c.UserContext(), id, service.ParseTimeRange(c.Query("range", "1w")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}

// GetItemTrend renders the sales/demand chart. Query params: range, hover (e.g. sales:3)
func (h *InventoryHandler) GetItemTrend(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}
	var buf bytes.Buffer
	rng := service.ParseTimeRange(c.Query("range", "1w"))
	if err := h.service.RenderTrend(c.UserContext(), id, rng, c.Query("hover"), &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}
