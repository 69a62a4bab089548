// Package noise provides the seeded gradient-noise channels terrain synthesis
// is built from. A Field is pure after construction: same seed, same
// coordinates, same value, across process restarts.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin shape parameters. These values give good terrain-like noise.
const (
	alpha = 2.0
	beta  = 2.0
	n     = 3
)

// Channel offsets added to the world seed so the five fields are uncorrelated.
const (
	ElevationOffset   int64 = 0
	MoistureOffset    int64 = 1013
	TemperatureOffset int64 = 2027
	CoastlineOffset   int64 = 3041
	SettlementOffset  int64 = 4057
)

// Field is a single seeded 2D noise channel.
type Field struct {
	noise *perlin.Perlin
}

// NewField creates a noise field from the given seed.
func NewField(seed int64) *Field {
	return &Field{
		noise: perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// Sample returns raw gradient noise in [-1, 1] for the given coordinates.
func (f *Field) Sample(x, y float64) float64 {
	v := f.noise.Noise2D(x, y)
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Fractal returns a normalized multi-octave sum in [0, 1]. Each octave
// contributes at progressively higher frequency and lower amplitude, and the
// total is divided by the maximum possible amplitude so the output stays
// bounded regardless of octave count.
func (f *Field) Fractal(x, y float64, octaves int, persistence, lacunarity, scale float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	freq := 1.0 / scale
	amp := 1.0
	total := 0.0
	maxAmp := 0.0

	for o := 0; o < octaves; o++ {
		total += f.Sample(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= persistence
		freq *= lacunarity
	}

	v := (total/maxAmp + 1) / 2
	return math.Max(0, math.Min(1, v))
}

// Fields bundles the five independent channels the biome classifier reads.
type Fields struct {
	Elevation   *Field
	Moisture    *Field
	Temperature *Field
	Coastline   *Field
	Settlement  *Field
}

// NewFields derives all five channels from a single world seed.
func NewFields(worldSeed int64) *Fields {
	return &Fields{
		Elevation:   NewField(worldSeed + ElevationOffset),
		Moisture:    NewField(worldSeed + MoistureOffset),
		Temperature: NewField(worldSeed + TemperatureOffset),
		Coastline:   NewField(worldSeed + CoastlineOffset),
		Settlement:  NewField(worldSeed + SettlementOffset),
	}
}
