package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./world.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(1), cfg.World.Seed)
	assert.Equal(t, 10000.0, cfg.World.Width)
	assert.Equal(t, 60, cfg.World.TickRate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORLD_SEED", "12345")
	t.Setenv("WORLD_WIDTH", "4000")
	t.Setenv("PORT", "9090")
	t.Setenv("TICK_RATE", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.World.Seed)
	assert.Equal(t, 4000.0, cfg.World.Width)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.World.TickRate)
}

func TestLoadRejectsBadTickRate(t *testing.T) {
	t.Setenv("TICK_RATE", "0")
	_, err := Load()
	assert.Error(t, err)
}
