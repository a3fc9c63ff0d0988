package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-dashboard/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c).String())
	})
	app.Get("/ws", RequireUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	return app
}

func TestRequireSession(t *testing.T) {
	t.Setenv("SESSION_SECRET", "middleware-secret")
	id := uuid.New()
	token, err := jwt.GenerateToken(id, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		url    string
		header string
		status int
	}{
		{"bearer", "/me", "Bearer " + token, 200},
		{"query", "/me?token=" + token, "", 200},
		{"missing", "/me", "", 401},
		{"basic scheme", "/me", "Basic " + token, 401},
		{"bad token", "/me", "Bearer nope", 401},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == 200 {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, id.String(), string(body))
			}
		})
	}
}

func TestRequireUpgrade(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

type openSessions map[uuid.UUID]bool

func (o openSessions) Touch(id uuid.UUID) error {
	if !o[id] {
		return errors.New("closed")
	}
	return nil
}

func TestRequireLiveSession(t *testing.T) {
	t.Setenv("SESSION_SECRET", "middleware-secret")
	open, closed := uuid.New(), uuid.New()
	sessions := openSessions{open: true}

	app := fiber.New()
	app.Get("/me", RequireSession(), RequireLiveSession(sessions), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	tests := []struct {
		name   string
		id     uuid.UUID
		status int
	}{
		{"open", open, 200},
		{"closed", closed, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.GenerateToken(tt.id, time.Hour)
			require.NoError(t, err)
			req := httptest.NewRequest("GET", "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
