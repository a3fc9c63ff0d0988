package handler

import (
	"bytes"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ChartHandler struct {
	service service.DashboardService
}

func NewChartHandler(s service.DashboardService) *ChartHandler {
	return &ChartHandler{service: s}
}

type clickRequest struct {
	Target string `json:"target" validate:"required"`
}

type pointerRequest struct {
	Event  string `json:"event" validate:"required,oneof=enter leave"`
	Target string `json:"target" validate:"required_if=Event enter"`
}

func chartKind(c *fiber.Ctx) (chart.Kind, error) {
	return chart.ParseKind(c.Params("chart"))
}

// Click toggles the series behind a chart element, e.g. {"target": "segment:0:inStock"}
func (h *ChartHandler) Click(c *fiber.Ctx) error {
	kind, err := chartKind(c)
	if err != nil {
		return fail(c, err)
	}
	var req clickRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	target, err := chart.ParseTarget(req.Target)
	if err != nil {
		return fail(c, err)
	}

	snap, err := h.service.Click(middleware.SessionID(c), kind, target)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

// Pointer moves the chart's tooltip and returns the chart model
func (h *ChartHandler) Pointer(c *fiber.Ctx) error {
	kind, err := chartKind(c)
	if err != nil {
		return fail(c, err)
	}
	var req pointerRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	event, err := service.ParsePointerEvent(req.Event)
	if err != nil {
		return fail(c, err)
	}

	var target chart.Target
	if event == service.PointerEnter {
		if target, err = chart.ParseTarget(req.Target); err != nil {
			return fail(c, err)
		}
	}

	view, err := h.service.Pointer(middleware.SessionID(c), kind, event, target)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// SVG renders the chart with the session's selection and tooltip
func (h *ChartHandler) SVG(c *fiber.Ctx) error {
	kind, err := chartKind(c)
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := h.service.RenderChart(middleware.SessionID(c), kind, &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}
