// Package world owns the precomputed biome grid and the toroidal geometry of
// the play field. The grid is classified once at construction and immutable
// afterwards; lookups never resample noise.
package world

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/biome"
	"github.com/verdantgame/world/internal/noise"
)

// Params fixes the world geometry. The island sits on an ellipse inset from
// the rectangular (toroidal) field.
type Params struct {
	Width    float64
	Height   float64
	TileSize float64
}

// DefaultParams returns the standard world geometry.
func DefaultParams() Params {
	return Params{
		Width:    10000,
		Height:   8000,
		TileSize: 50,
	}
}

// Validate checks the geometry is usable.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", p.Width, p.Height)
	}
	if p.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %g", p.TileSize)
	}
	if p.TileSize > p.Width || p.TileSize > p.Height {
		return fmt.Errorf("tile size %g exceeds world dimensions %gx%g", p.TileSize, p.Width, p.Height)
	}
	return nil
}

// Elliptical island radii as a fraction of each world dimension.
const islandRadiusFraction = 0.45

// Noise sampling scales per channel. Larger scale means broader features.
const (
	elevationScale   = 1200.0
	moistureScale    = 900.0
	temperatureScale = 1500.0
	coastlineScale   = 500.0
	settlementScale  = 600.0
)

// Map is the precomputed tile grid. Safe for concurrent readers once built.
type Map struct {
	seed   int64
	params Params
	cols   int
	rows   int
	tiles  []biome.Biome
}

// New builds the full grid from a world seed: every tile center is sampled
// against the five noise channels and classified. This is the expensive
// one-time cost of world construction.
func New(seed int64, params Params) (*Map, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world params: %w", err)
	}

	m := &Map{
		seed:   seed,
		params: params,
		cols:   int(math.Ceil(params.Width / params.TileSize)),
		rows:   int(math.Ceil(params.Height / params.TileSize)),
	}
	m.tiles = make([]biome.Biome, m.cols*m.rows)

	log.Debug("building biome map", "seed", seed, "cols", m.cols, "rows", m.rows)
	start := time.Now()

	fields := noise.NewFields(seed)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			cx := (float64(col) + 0.5) * params.TileSize
			cy := (float64(row) + 0.5) * params.TileSize
			m.tiles[row*m.cols+col] = biome.Classify(m.sampleAt(fields, cx, cy))
		}
	}

	log.Info("biome map built", "seed", seed, "tiles", len(m.tiles), "duration", time.Since(start))
	return m, nil
}

// NewFromTiles rebuilds a map from a previously encoded grid, skipping
// classification. The encoded data must match the geometry exactly.
func NewFromTiles(seed int64, params Params, data []byte) (*Map, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world params: %w", err)
	}

	cols := int(math.Ceil(params.Width / params.TileSize))
	rows := int(math.Ceil(params.Height / params.TileSize))
	if len(data) != cols*rows {
		return nil, fmt.Errorf("encoded grid has %d tiles, want %d", len(data), cols*rows)
	}

	tiles := make([]biome.Biome, len(data))
	for i, b := range data {
		t := biome.Biome(b)
		if !t.Valid() {
			return nil, fmt.Errorf("encoded grid has invalid biome %d at index %d", b, i)
		}
		tiles[i] = t
	}

	return &Map{seed: seed, params: params, cols: cols, rows: rows, tiles: tiles}, nil
}

// sampleAt assembles the classifier input for one world position.
func (m *Map) sampleAt(fields *noise.Fields, x, y float64) biome.Sample {
	centerX := m.params.Width / 2
	centerY := m.params.Height / 2
	dx := x - centerX
	dy := y - centerY

	a := m.params.Width * islandRadiusFraction
	b := m.params.Height * islandRadiusFraction
	dist := math.Sqrt((dx/a)*(dx/a) + (dy/b)*(dy/b))

	angle := math.Atan2(dy, dx) + math.Pi // [0, 2π]
	sectorWidth := 2 * math.Pi / float64(biome.ZoneCount())
	sector := int(angle/sectorWidth) % biome.ZoneCount()
	frac := angle/sectorWidth - math.Floor(angle/sectorWidth)

	return biome.Sample{
		Elevation:    fields.Elevation.Fractal(x, y, 4, 0.5, 2.0, elevationScale),
		Moisture:     fields.Moisture.Fractal(x, y, 4, 0.5, 2.0, moistureScale),
		Temperature:  fields.Temperature.Fractal(x, y, 3, 0.5, 2.0, temperatureScale),
		Coastline:    fields.Coastline.Fractal(x, y, 4, 0.5, 2.0, coastlineScale),
		Settlement:   fields.Settlement.Fractal(x, y, 3, 0.5, 2.0, settlementScale),
		Dist:         dist,
		Zone:         biome.Zone(sector),
		ZoneStrength: 1 - math.Abs(frac-0.5)*2,
	}
}

// BiomeAt returns the biome for any world position with toroidal wrap.
func (m *Map) BiomeAt(x, y float64) biome.Biome {
	col := int(math.Floor(x / m.params.TileSize))
	row := int(math.Floor(y / m.params.TileSize))
	col = ((col % m.cols) + m.cols) % m.cols
	row = ((row % m.rows) + m.rows) % m.rows

	idx := row*m.cols + col
	if idx < 0 || idx >= len(m.tiles) {
		// Unreachable after wrap; clamp rather than panic.
		log.Error("biome lookup out of range", "x", x, "y", y, "index", idx)
		return biome.Ocean
	}
	return m.tiles[idx]
}

// Seed returns the world seed the grid was built from.
func (m *Map) Seed() int64 { return m.seed }

// Width returns the world width.
func (m *Map) Width() float64 { return m.params.Width }

// Height returns the world height.
func (m *Map) Height() float64 { return m.params.Height }

// Cols returns the tile grid width.
func (m *Map) Cols() int { return m.cols }

// Rows returns the tile grid height.
func (m *Map) Rows() int { return m.rows }

// EncodeTiles serializes the grid as one byte per tile, row-major.
func (m *Map) EncodeTiles() []byte {
	data := make([]byte, len(m.tiles))
	for i, t := range m.tiles {
		data[i] = byte(t)
	}
	return data
}

// WrapPoint folds a position into [0, Width) × [0, Height).
func (m *Map) WrapPoint(x, y float64) (float64, float64) {
	return wrap(x, m.params.Width), wrap(y, m.params.Height)
}

// WrapDelta returns the shortest toroidal vector for a raw displacement.
func (m *Map) WrapDelta(dx, dy float64) (float64, float64) {
	if dx > m.params.Width/2 {
		dx -= m.params.Width
	} else if dx < -m.params.Width/2 {
		dx += m.params.Width
	}
	if dy > m.params.Height/2 {
		dy -= m.params.Height
	} else if dy < -m.params.Height/2 {
		dy += m.params.Height
	}
	return dx, dy
}

// Dist returns the shortest toroidal distance between two points.
func (m *Map) Dist(x1, y1, x2, y2 float64) float64 {
	dx, dy := m.WrapDelta(x2-x1, y2-y1)
	return math.Hypot(dx, dy)
}

func wrap(v, dim float64) float64 {
	w := math.Mod(v, dim)
	if w < 0 {
		w += dim
	}
	return w
}
