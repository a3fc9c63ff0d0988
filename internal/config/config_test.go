package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_DIR", "DATABASE_URL", "SESSION_TTL", "CHAT_REPLY_DELAY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.ChatReplyDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_FETCH_TIMEOUT", "250ms")
	t.Setenv("CHAT_REPLY_DELAY", "soon")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.DataFetchTimeout)
	assert.Equal(t, time.Second, cfg.ChatReplyDelay, "unparseable duration keeps the default")
}
