package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SESSION_TIMEOUT", "")
	t.Setenv("SEED_DEMO", "")

	cfg := Load()

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 30*time.Minute, cfg.Session.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Session.WarningWindow)
	assert.Equal(t, 5*time.Minute, cfg.Session.CheckInterval)
	assert.Equal(t, time.Minute, cfg.Session.WarningTTL)
	assert.True(t, cfg.SeedDemo)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TIMEOUT", "10m")
	t.Setenv("SESSION_WARNING_WINDOW", "not-a-duration")
	t.Setenv("SEED_DEMO", "false")

	cfg := Load()

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 10*time.Minute, cfg.Session.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Session.WarningWindow)
	assert.False(t, cfg.SeedDemo)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Atlantis"}
	assert.Equal(t, time.UTC, cfg.Location())
}
