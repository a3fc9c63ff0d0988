package handler

import (
	"context"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/logger"
	"go-inventory-dashboard/internal/repository"
	"go-inventory-dashboard/internal/service"
	"go-inventory-dashboard/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// fail maps service errors to a JSON error response.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, chart.ErrUnknownChart):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrItemNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, chart.ErrUnknownTarget),
		errors.Is(err, service.ErrUnknownPointerEvent),
		errors.Is(err, service.ErrEmptyMessage):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(503).JSON(fiber.Map{"error": "Request cancelled"})
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

// bindBody decodes and validates a JSON request body into v. When it
// reports false the 400 response has already been written and the handler
// returns err as is.
func bindBody(c *fiber.Ctx, v interface{}) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return false, c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}
	return true, nil
}
