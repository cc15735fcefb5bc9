package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_TTL", "RESET_CODE_TTL", "PLATFORM_FEE_PERCENT", "CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetCodeTTL)
	assert.Equal(t, int64(30), cfg.PlatformFeePercent)
	assert.Equal(t, "usd", cfg.Currency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("PLATFORM_FEE_PERCENT", "25")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(25), cfg.PlatformFeePercent)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "a week")
	t.Setenv("PLATFORM_FEE_PERCENT", "thirty")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(30), cfg.PlatformFeePercent)
}
