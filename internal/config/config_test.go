package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEFAULT_SLOT_STEP", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "08:00", cfg.DefaultOpeningTime)
	assert.Equal(t, "18:00", cfg.DefaultClosingTime)
	assert.Equal(t, 30, cfg.DefaultSlotStep)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.MediaEnabled())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DEFAULT_SLOT_STEP", "15")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.profislots.test, ,http://localhost:5173")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15, cfg.DefaultSlotStep)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://app.profislots.test", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DEFAULT_SLOT_STEP", "half-hour")
	t.Setenv("TOKEN_TTL", "-5m")

	cfg := Load()

	assert.Equal(t, 30, cfg.DefaultSlotStep)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
