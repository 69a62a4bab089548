package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgame/world/internal/biome"
)

// testParams keeps grids small enough that construction stays fast in tests.
func testParams() Params {
	return Params{Width: 2000, Height: 1600, TileSize: 50}
}

func TestNewValidatesParams(t *testing.T) {
	cases := []struct {
		name   string
		params Params
	}{
		{"zero width", Params{Width: 0, Height: 100, TileSize: 10}},
		{"negative height", Params{Width: 100, Height: -5, TileSize: 10}},
		{"zero tile", Params{Width: 100, Height: 100, TileSize: 0}},
		{"tile larger than world", Params{Width: 100, Height: 100, TileSize: 500}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(1, tc.params)
			assert.Error(t, err)
		})
	}
}

func TestBiomeAtDeterministicAcrossConstructions(t *testing.T) {
	a, err := New(42, testParams())
	require.NoError(t, err)
	b, err := New(42, testParams())
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		x := float64(i*37%2000) + 0.5
		y := float64(i*53%1600) + 0.5
		assert.Equal(t, a.BiomeAt(x, y), b.BiomeAt(x, y), "at (%f, %f)", x, y)
	}
}

func TestBiomeAtRepeatable(t *testing.T) {
	m, err := New(7, testParams())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		x := float64(i * 19)
		y := float64(i * 11)
		first := m.BiomeAt(x, y)
		assert.Equal(t, first, m.BiomeAt(x, y))
	}
}

func TestToroidalClosure(t *testing.T) {
	m, err := New(42, testParams())
	require.NoError(t, err)

	for _, k := range []float64{-2, -1, 1, 3} {
		for i := 0; i < 200; i++ {
			x := float64(i * 13 % 2000)
			y := float64(i * 29 % 1600)
			assert.Equal(t, m.BiomeAt(x, y), m.BiomeAt(x+k*m.Width(), y+k*m.Height()),
				"wrap mismatch at (%f, %f) k=%f", x, y, k)
		}
	}
}

func TestBiomeAtNegativeCoordinates(t *testing.T) {
	m, err := New(42, testParams())
	require.NoError(t, err)

	assert.Equal(t, m.BiomeAt(-10, -10), m.BiomeAt(-10+m.Width(), -10+m.Height()))
}

func TestDifferentSeedsProduceDifferentMaps(t *testing.T) {
	a, err := New(1, testParams())
	require.NoError(t, err)
	b, err := New(2, testParams())
	require.NoError(t, err)

	diff := 0
	for i := 0; i < 500; i++ {
		x := float64(i * 37 % 2000)
		y := float64(i * 53 % 1600)
		if a.BiomeAt(x, y) != b.BiomeAt(x, y) {
			diff++
		}
	}
	assert.Greater(t, diff, 0, "different seeds should produce different maps")
}

func TestCenterIsLandEdgeIsOcean(t *testing.T) {
	m, err := New(42, testParams())
	require.NoError(t, err)

	assert.NotEqual(t, biome.Ocean, m.BiomeAt(m.Width()/2, m.Height()/2))
	// The world corner is far outside the island ellipse.
	assert.Equal(t, biome.Ocean, m.BiomeAt(5, 5))
}

func TestEncodeTilesRoundTrip(t *testing.T) {
	a, err := New(42, testParams())
	require.NoError(t, err)

	b, err := NewFromTiles(42, testParams(), a.EncodeTiles())
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		x := float64(i * 31 % 2000)
		y := float64(i * 17 % 1600)
		assert.Equal(t, a.BiomeAt(x, y), b.BiomeAt(x, y))
	}
}

func TestNewFromTilesRejectsBadData(t *testing.T) {
	_, err := NewFromTiles(42, testParams(), []byte{1, 2, 3})
	assert.Error(t, err)

	good, err := New(42, testParams())
	require.NoError(t, err)
	data := good.EncodeTiles()
	data[0] = 250 // not a biome
	_, err = NewFromTiles(42, testParams(), data)
	assert.Error(t, err)
}

func TestWrapPoint(t *testing.T) {
	m, err := New(1, testParams())
	require.NoError(t, err)

	x, y := m.WrapPoint(-10, 1650)
	assert.InDelta(t, 1990, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	x, y = m.WrapPoint(2000, 1600)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestWrapDeltaShortestPath(t *testing.T) {
	m, err := New(1, testParams())
	require.NoError(t, err)

	// Crossing the seam should be shorter than going the long way round.
	dx, dy := m.WrapDelta(1950, 0)
	assert.InDelta(t, -50, dx, 1e-9)
	assert.InDelta(t, 0, dy, 1e-9)

	dx, dy = m.WrapDelta(-1950, -1550)
	assert.InDelta(t, 50, dx, 1e-9)
	assert.InDelta(t, 50, dy, 1e-9)
}

func TestDistAcrossSeam(t *testing.T) {
	m, err := New(1, testParams())
	require.NoError(t, err)

	assert.InDelta(t, 20, m.Dist(10, 800, 1990, 800), 1e-9)
}
