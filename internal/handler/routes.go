package handler

import (
	"context"
	"time"

	"go-inventory-dashboard/internal/middleware"
	"go-inventory-dashboard/internal/service"
	"go-inventory-dashboard/internal/ws"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Dashboard  service.DashboardService
	Inventory  service.InventoryService
	Chat       service.ChatService
	Hub        *ws.Hub
	SessionTTL time.Duration
	DataDir    string
	// Context ends on server shutdown. Pending chat replies are abandoned
	// with it.
	Context context.Context
}

// RegisterRoutes mounts the API, the websocket stream and the fixture files.
func RegisterRoutes(app *fiber.App, d Deps) {
	sessionHandler := NewSessionHandler(d.Dashboard, d.SessionTTL, d.Chat, d.Inventory)
	dashHandler := NewDashboardHandler(d.Dashboard)
	chartHandler := NewChartHandler(d.Dashboard)
	invHandler := NewInventoryHandler(d.Inventory)
	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}
	chatHandler := NewChatHandler(ctx, d.Chat)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/sessions", sessionHandler.CreateSession)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireSession(), middleware.RequireLiveSession(d.Dashboard))
	protected.Delete("/sessions", sessionHandler.DeleteSession)

	protected.Get("/dashboard", dashHandler.GetDashboard)
	protected.Post("/dashboard/reload", dashHandler.Reload)
	protected.Put("/dashboard/selection", dashHandler.PutSelection)

	protected.Get("/charts/:chart.svg", chartHandler.SVG)
	protected.Post("/charts/:chart/click", chartHandler.Click)
	protected.Post("/charts/:chart/pointer", chartHandler.Pointer)

	protected.Get("/items", invHandler.GetItems)
	protected.Put("/items/selected", invHandler.SelectAll)
	protected.Put("/items/:id/selected", invHandler.ToggleItem)
	protected.Get("/items/:id/trend.svg", invHandler.GetItemTrend)
	protected.Get("/items/:id", invHandler.GetItem)

	protected.Get("/chat", chatHandler.GetHistory)
	protected.Post("/chat", chatHandler.SendMessage)

	// WebSocket Route
	if d.Hub != nil {
		app.Use("/ws", middleware.RequireUpgrade())
		app.Get("/ws", middleware.RequireSession(), middleware.RequireLiveSession(d.Dashboard), Stream(d.Hub))
	}

	// Fixtures, for clients that fetch the raw JSON
	if d.DataDir != "" {
		app.Static("/data", d.DataDir)
	}
}
