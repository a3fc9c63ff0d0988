package config

import (
	"os"
	"path/filepath"
	"time"

	"go-inventory-dashboard/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port             string
	Stage            string
	LogLevel         string
	DataDir          string
	DataBaseURL      string
	DataFetchTimeout time.Duration
	DatabaseURL      string
	SessionSecret    string
	SessionTTL       time.Duration
	ChatReplyDelay   time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read .env", zap.Error(err))
	}

	return &Config{
		Port:             getEnv("PORT", "3000"),
		Stage:            getEnv("APP_STAGE", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DataDir:          filepath.Clean(getEnv("DATA_DIR", "./data")),
		DataBaseURL:      getEnv("DATA_BASE_URL", ""),
		DataFetchTimeout: getDuration("DATA_FETCH_TIMEOUT", 5*time.Second),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		ChatReplyDelay:   getDuration("CHAT_REPLY_DELAY", time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Warn("invalid duration, using default",
			zap.String("key", key),
			zap.String("value", raw),
			zap.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}
