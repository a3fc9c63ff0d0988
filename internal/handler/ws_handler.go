package handler

import (
	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Stream attaches a websocket to its session's room. RequireSession runs on
// the upgrade request and its locals carry over to the connection.
func Stream(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		id, _ := c.Locals(middleware.SessionIDKey).(uuid.UUID)
		room := id.String()
		if !hub.Join(room, c) {
			c.Close()
			return
		}
		defer hub.Leave(room, c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
