package logging

import (
	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/config"
)

// Setup configures the global logger from the environment.
func Setup(cfg config.LoggingConfig) {
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("Invalid log level, using info", "level", cfg.Level)
		log.SetLevel(log.InfoLevel)
	}

	if cfg.Format == "pretty" || !cfg.Structured {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	}

	log.SetPrefix("[world] ")
}

// WithFields creates a logger with contextual fields.
func WithFields(fields ...interface{}) *log.Logger {
	return log.With(fields...)
}

// WithCoords creates a logger with world coordinate context.
func WithCoords(x, y float64) *log.Logger {
	return WithFields("x", x, "y", y)
}

// WithSeason creates a logger with season context.
func WithSeason(season string) *log.Logger {
	return WithFields("season", season)
}
