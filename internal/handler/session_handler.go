package handler

import (
	"time"

	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/service"
	"go-inventory-dashboard/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// SessionState is per-session data kept outside the dashboard.
type SessionState interface {
	Forget(sessionID string)
}

type SessionHandler struct {
	dashboard service.DashboardService
	ttl       time.Duration
	state     []SessionState
}

// NewSessionHandler forgets every state on session delete.
func NewSessionHandler(d service.DashboardService, ttl time.Duration, state ...SessionState) *SessionHandler {
	return &SessionHandler{dashboard: d, ttl: ttl, state: state}
}

// CreateSession opens a dashboard and returns its token and first snapshot
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	snap, err := h.dashboard.Open(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	token, err := jwt.GenerateToken(snap.SessionID, h.ttl)
	if err != nil {
		_ = h.dashboard.Close(snap.SessionID)
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"token":      token,
		"session_id": snap.SessionID,
		"expires_in": int(h.ttl.Seconds()),
		"dashboard":  snap,
	})
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	id := middleware.SessionID(c)
	if err := h.dashboard.Close(id); err != nil {
		return fail(c, err)
	}
	for _, st := range h.state {
		st.Forget(id.String())
	}
	return c.SendStatus(204)
}
