package middleware

import (
	"strings"

	"go-inventory-dashboard/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// RequireSession validates the dashboard session token and stores the
// session ID in c.Locals. The token is read from "Authorization: Bearer"
// or, for websocket upgrades that cannot set headers, the token query param.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("token")

		if authHeader := c.Get("Authorization"); authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
			}
			tokenString = parts[1]
		}

		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing session token"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(SessionIDKey, claims.SessionID)
		return c.Next()
	}
}

// SessionChecker reports whether a session is still open.
type SessionChecker interface {
	Touch(id uuid.UUID) error
}

// RequireLiveSession rejects tokens whose session was closed or expired.
// It runs after RequireSession.
func RequireLiveSession(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := sessions.Touch(SessionID(c)); err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Next()
	}
}

// SessionID returns the ID stored by RequireSession.
func SessionID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(SessionIDKey).(uuid.UUID)
	return id
}

// RequireUpgrade rejects plain HTTP requests to websocket routes.
func RequireUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
}
