package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	World    WorldConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Path            string        `env:"DB_PATH" envDefault:"./world.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"`
	Structured bool   `env:"LOG_STRUCTURED" envDefault:"true"`
}

// WorldConfig controls generation and simulation pacing. The seed is the only
// input the terrain depends on; two processes with the same seed and
// dimensions serve identical worlds.
type WorldConfig struct {
	Seed     int64   `env:"WORLD_SEED" envDefault:"1"`
	Width    float64 `env:"WORLD_WIDTH" envDefault:"10000"`
	Height   float64 `env:"WORLD_HEIGHT" envDefault:"8000"`
	TileSize float64 `env:"WORLD_TILE_SIZE" envDefault:"50"`
	TickRate int     `env:"TICK_RATE" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.World.TickRate <= 0 {
		return nil, fmt.Errorf("TICK_RATE must be positive, got %d", cfg.World.TickRate)
	}
	return cfg, nil
}
