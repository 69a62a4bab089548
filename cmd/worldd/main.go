package main

import (
	"context"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/api"
	"github.com/verdantgame/world/internal/config"
	"github.com/verdantgame/world/internal/content"
	"github.com/verdantgame/world/internal/logging"
	"github.com/verdantgame/world/internal/sim"
	"github.com/verdantgame/world/internal/store"
	"github.com/verdantgame/world/internal/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	logging.Setup(cfg.Logging)
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "world_seed", cfg.World.Seed)

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer db.Close()

	worldMap, err := loadOrBuildWorld(cfg.World, db)
	if err != nil {
		log.Fatal("Failed to build world", "error", err)
	}

	library := content.Default()
	if err := library.Validate(); err != nil {
		log.Fatal("Invalid content library", "error", err)
	}

	simulation, err := sim.New(worldMap, library, sim.DefaultParams(), content.Spring)
	if err != nil {
		log.Fatal("Failed to create simulation", "error", err)
	}

	handler := api.NewHandler(worldMap, simulation, library)
	simulation.SeedRings(handler.Agent())
	logging.WithSeason(simulation.Season().String()).Info("World ready",
		"seed", cfg.World.Seed, "objects", simulation.Count())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runTickLoop(ctx, simulation, handler, cfg.World.TickRate)

	router := api.SetupRoutes(handler)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting world server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}

// loadOrBuildWorld serves the biome grid from the cache when the seed and
// geometry match a previous run, and rebuilds (then caches) otherwise.
func loadOrBuildWorld(cfg config.WorldConfig, db *store.Store) (*world.Map, error) {
	params := world.Params{Width: cfg.Width, Height: cfg.Height, TileSize: cfg.TileSize}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cols := int(math.Ceil(params.Width / params.TileSize))
	rows := int(math.Ceil(params.Height / params.TileSize))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if tiles, err := db.LoadGrid(ctx, cfg.Seed, cols, rows); err != nil {
		log.Warn("Biome grid cache unavailable, rebuilding", "error", err)
	} else if tiles != nil {
		m, err := world.NewFromTiles(cfg.Seed, params, tiles)
		if err == nil {
			log.Info("World loaded from cache", "seed", cfg.Seed, "cols", cols, "rows", rows)
			return m, nil
		}
		log.Warn("Cached biome grid rejected, rebuilding", "error", err)
	}

	m, err := world.New(cfg.Seed, params)
	if err != nil {
		return nil, err
	}
	if err := db.SaveGrid(ctx, cfg.Seed, cols, rows, m.EncodeTiles()); err != nil {
		log.Warn("Failed to cache biome grid", "error", err)
	}
	return m, nil
}

// runTickLoop advances the simulation at a fixed rate against the latest
// reported agent state.
func runTickLoop(ctx context.Context, simulation *sim.Simulation, handler *api.Handler, tickRate int) {
	dt := 1.0 / float64(tickRate)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	log.Debug("Tick loop running", "rate", tickRate)
	for {
		select {
		case <-ctx.Done():
			log.Info("Tick loop stopped")
			return
		case <-ticker.C:
			simulation.Tick(handler.Agent(), dt)
		}
	}
}
