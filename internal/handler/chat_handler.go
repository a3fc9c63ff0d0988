package handler

import (
	"context"

	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	service service.ChatService
	ctx     context.Context
}

// NewChatHandler binds pending replies to ctx. Fiber never cancels a
// request context on client disconnect, so ctx is the server lifetime.
func NewChatHandler(ctx context.Context, s service.ChatService) *ChatHandler {
	return &ChatHandler{service: s, ctx: ctx}
}

type chatRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.History(middleware.SessionID(c).String())})
}

// SendMessage blocks for the assistant's reply delay. Closing the session
// or shutting down the server during the delay drops the reply.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req chatRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	reply, err := h.service.Send(h.ctx, middleware.SessionID(c).String(), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": reply})
}
