// Package content holds the static data tables the simulation consumes as
// read-only configuration: object type definitions and per-biome seasonal
// spawn tables. The core never mutates these after validation.
package content

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/biome"
)

// Season selects which spawn table column is active.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter

	seasonCount
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	default:
		return "unknown"
	}
}

// ParseSeason maps a season name to its value.
func ParseSeason(name string) (Season, error) {
	for s := Spring; s < seasonCount; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return Spring, fmt.Errorf("unknown season %q", name)
}

// Pattern describes how instances of a type are laid out when spawned.
type Pattern int

const (
	// Single spawns one instance.
	Single Pattern = iota
	// Cluster scatters extra instances within a radius of the seed instance.
	Cluster
	// Grid lays instances out in a jittered, slightly rotated grid.
	Grid
)

// ObjectID keys the object type table.
type ObjectID string

// ObjectType is an immutable object definition.
type ObjectType struct {
	ID      ObjectID
	Glyph   string // display identifier, rendered by the outer layer
	MinSize float64
	MaxSize float64
	Pattern Pattern
	// Permanent objects are never despawned by distance culling or replaced
	// on season change (large landmark obstacles).
	Permanent bool
}

// MeanSize returns the midpoint of the configured size range.
func (t ObjectType) MeanSize() float64 {
	return (t.MinSize + t.MaxSize) / 2
}

// SpawnEntry is one row of a biome's seasonal spawn table.
type SpawnEntry struct {
	Object ObjectID
	Weight float64
	// Player-size gate. Zero means unbounded on that side.
	MinPlayerSize float64
	MaxPlayerSize float64
}

// Admits reports whether the entry's player-size gate admits the agent.
func (e SpawnEntry) Admits(agentSize float64) bool {
	if e.MinPlayerSize > 0 && agentSize < e.MinPlayerSize {
		return false
	}
	if e.MaxPlayerSize > 0 && agentSize > e.MaxPlayerSize {
		return false
	}
	return true
}

// TerrainSpeed classifies how fast the agent moves over a biome.
type TerrainSpeed int

const (
	SpeedSlow TerrainSpeed = iota
	SpeedNormal
	SpeedFast
)

func (t TerrainSpeed) String() string {
	switch t {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "normal"
	}
}

// BiomeDef configures spawning for one biome.
type BiomeDef struct {
	Spawns  map[Season][]SpawnEntry
	Density float64 // spawn probability factor, (0, 1]
	Speed   TerrainSpeed
	// Ocean marks water biomes; spawn sampling rejects water tiles unless
	// the table being drawn from is an ocean table.
	Ocean bool
}

// Library bundles the object and biome tables.
type Library struct {
	Objects map[ObjectID]ObjectType
	Biomes  map[biome.Biome]BiomeDef
}

// Validate prunes biome table entries that reference unknown object ids
// (logged as warnings, never fatal) and checks density bounds. A library that
// loses every entry still validates: the world just spawns nothing.
func (l *Library) Validate() error {
	for b, def := range l.Biomes {
		if def.Density <= 0 || def.Density > 1 {
			return fmt.Errorf("biome %s density %g out of (0,1]", b, def.Density)
		}
		for season, entries := range def.Spawns {
			kept := entries[:0]
			for _, e := range entries {
				if _, ok := l.Objects[e.Object]; !ok {
					log.Warn("spawn table references unknown object, skipping entry",
						"biome", b.String(), "season", season.String(), "object", string(e.Object))
					continue
				}
				if e.Weight <= 0 {
					log.Warn("spawn table entry has non-positive weight, skipping entry",
						"biome", b.String(), "season", season.String(), "object", string(e.Object))
					continue
				}
				kept = append(kept, e)
			}
			def.Spawns[season] = kept
		}
	}
	return nil
}

// SeasonTable returns the spawn table for a biome and season. Missing tables
// come back empty, never nil-panic.
func (l *Library) SeasonTable(b biome.Biome, season Season) []SpawnEntry {
	def, ok := l.Biomes[b]
	if !ok {
		return nil
	}
	return def.Spawns[season]
}

// Speed returns the terrain speed class for a biome, defaulting to normal.
func (l *Library) Speed(b biome.Biome) TerrainSpeed {
	def, ok := l.Biomes[b]
	if !ok {
		return SpeedNormal
	}
	return def.Speed
}

// IsOcean reports whether a biome is configured as water.
func (l *Library) IsOcean(b biome.Biome) bool {
	def, ok := l.Biomes[b]
	return ok && def.Ocean
}

// Density returns the spawn density factor for a biome, defaulting to 1.
func (l *Library) Density(b biome.Biome) float64 {
	def, ok := l.Biomes[b]
	if !ok {
		return 1
	}
	return def.Density
}
