package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-dashboard/internal/config"
	"go-inventory-dashboard/internal/datasource"
	"go-inventory-dashboard/internal/handler"
	applog "go-inventory-dashboard/internal/logger"
	"go-inventory-dashboard/internal/model"
	"go-inventory-dashboard/internal/repository"
	"go-inventory-dashboard/internal/service"
	"go-inventory-dashboard/internal/ws"
	"go-inventory-dashboard/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

func main() {
	// 1. Load Env
	cfg := config.Load()
	applog.InitLogger(cfg.Stage, cfg.LogLevel)
	defer applog.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Data source: fixture files or a remote base URL
	var source datasource.Source = datasource.NewFileSource(cfg.DataDir)
	if cfg.DataBaseURL != "" {
		source = datasource.NewHTTPSource(cfg.DataBaseURL, cfg.DataFetchTimeout)
	}
	loader := datasource.NewLoader(source)

	// 3. Item storage: Postgres when configured, the fixture otherwise
	itemRepo := repository.NewFixtureItemRepo(loader)
	if cfg.DatabaseURL != "" {
		db, err := database.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			applog.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&model.InventoryItem{}); err != nil {
			applog.Fatal("failed to migrate items table", zap.Error(err))
		}
		itemRepo = repository.NewItemRepo(db)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	dashService := service.NewDashboardService(loader, wsHub, cfg.SessionTTL)
	invService := service.NewInventoryService(itemRepo)
	chatService := service.NewChatService(cfg.ChatReplyDelay)

	go sweepSessions(ctx, dashService, chatService, invService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Dashboard v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.RegisterRoutes(app, handler.Deps{
		Dashboard:  dashService,
		Inventory:  invService,
		Chat:       chatService,
		Hub:        wsHub,
		SessionTTL: cfg.SessionTTL,
		DataDir:    cfg.DataDir,
		Context:    ctx,
	})

	// 8. Graceful Shutdown
	go func() {
		applog.Info("listening", zap.String("port", cfg.Port), zap.String("stage", cfg.Stage))
		if err := app.Listen(":" + cfg.Port); err != nil {
			applog.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	applog.Info("shutting down server")
	stop()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		applog.Error("server forced to shutdown", zap.Error(err))
	}
	<-wsHub.Done()

	applog.Info("server exited")
}

// sweepSessions drops idle dashboards with their chat history and row
// selection.
func sweepSessions(ctx context.Context, dash service.DashboardService, state ...handler.SessionState) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, id := range dash.Sweep(now) {
				for _, st := range state {
					st.Forget(id.String())
				}
			}
		}
	}
}
