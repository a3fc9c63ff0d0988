package main

import (
	"context"
	"flag"
	"time"

	"go-inventory-dashboard/internal/config"
	"go-inventory-dashboard/internal/datasource"
	applog "go-inventory-dashboard/internal/logger"
	"go-inventory-dashboard/internal/model"
	"go-inventory-dashboard/internal/repository"
	"go-inventory-dashboard/pkg/database"

	"go.uber.org/zap"
)

// seed-items copies inventory-items.json into the Postgres items table.
func main() {
	cfg := config.Load()
	dir := flag.String("data", cfg.DataDir, "directory holding inventory-items.json")
	flag.Parse()

	applog.InitLogger(cfg.Stage, cfg.LogLevel)
	defer applog.Sync()

	if cfg.DatabaseURL == "" {
		applog.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items := datasource.NewLoader(datasource.NewFileSource(*dir)).LoadItems(ctx)
	if len(items) == 0 {
		applog.Fatal("no items to seed", zap.String("dir", *dir))
	}

	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		applog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.InventoryItem{}); err != nil {
		applog.Fatal("failed to migrate items table", zap.Error(err))
	}

	if err := repository.NewItemRepo(db).Upsert(ctx, items); err != nil {
		applog.Fatal("failed to seed items", zap.Error(err))
	}
	applog.Info("items seeded", zap.Int("count", len(items)))
}
