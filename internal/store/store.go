package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/verdantgame/world/internal/config"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store caches generated biome grids so a restart with a known seed skips the
// full noise pass. Terrain is immutable for a given seed and dimensions, so
// rows are write-once.
type Store struct {
	db *sql.DB
}

func Open(cfg config.DatabaseConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("Store initialized", "path", cfg.Path)
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("Database migrations completed")
	return nil
}

// LoadGrid returns the cached tile data for a seed and grid shape, or nil
// when no cache entry exists.
func (s *Store) LoadGrid(ctx context.Context, seed int64, cols, rows int) ([]byte, error) {
	start := time.Now()
	var tiles []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT tiles FROM biome_grids WHERE seed = ? AND cols = ? AND rows = ?`,
		seed, cols, rows,
	).Scan(&tiles)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("Biome grid cache miss", "seed", seed, "cols", cols, "rows", rows)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load biome grid: %w", err)
	}
	log.Debug("Biome grid cache hit", "seed", seed, "bytes", len(tiles), "duration", time.Since(start))
	return tiles, nil
}

// SaveGrid stores the tile data for a seed and grid shape. Re-saving the same
// key is a no-op since the content is deterministic.
func (s *Store) SaveGrid(ctx context.Context, seed int64, cols, rows int, tiles []byte) error {
	if len(tiles) != cols*rows {
		return fmt.Errorf("tile data length %d does not match grid %dx%d", len(tiles), cols, rows)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO biome_grids (seed, cols, rows, tiles, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (seed, cols, rows) DO NOTHING`,
		seed, cols, rows, tiles, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save biome grid: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
