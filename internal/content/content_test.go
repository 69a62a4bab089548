package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgame/world/internal/biome"
)

func TestDefaultLibraryValidates(t *testing.T) {
	lib := Default()
	require.NoError(t, lib.Validate())

	// Every spawn entry must survive validation: the shipped tables should
	// not reference unknown objects.
	for b, def := range lib.Biomes {
		for season, entries := range def.Spawns {
			for _, e := range entries {
				_, ok := lib.Objects[e.Object]
				assert.True(t, ok, "biome %s season %s references %s", b, season, e.Object)
			}
		}
	}
}

func TestValidatePrunesUnknownObjects(t *testing.T) {
	lib := &Library{
		Objects: map[ObjectID]ObjectType{
			"known": {ID: "known", MinSize: 1, MaxSize: 2},
		},
		Biomes: map[biome.Biome]BiomeDef{
			biome.Meadow: {
				Density: 1,
				Spawns: map[Season][]SpawnEntry{
					Spring: {
						{Object: "known", Weight: 5},
						{Object: "ghost", Weight: 5},
					},
				},
			},
		},
	}

	require.NoError(t, lib.Validate())
	table := lib.SeasonTable(biome.Meadow, Spring)
	require.Len(t, table, 1)
	assert.Equal(t, ObjectID("known"), table[0].Object)
}

func TestValidatePrunesNonPositiveWeights(t *testing.T) {
	lib := &Library{
		Objects: map[ObjectID]ObjectType{
			"a": {ID: "a", MinSize: 1, MaxSize: 2},
		},
		Biomes: map[biome.Biome]BiomeDef{
			biome.Meadow: {
				Density: 0.5,
				Spawns: map[Season][]SpawnEntry{
					Summer: {{Object: "a", Weight: 0}},
				},
			},
		},
	}

	require.NoError(t, lib.Validate())
	assert.Empty(t, lib.SeasonTable(biome.Meadow, Summer))
}

func TestValidateRejectsBadDensity(t *testing.T) {
	for _, density := range []float64{0, -0.5, 1.5} {
		lib := &Library{
			Objects: map[ObjectID]ObjectType{},
			Biomes: map[biome.Biome]BiomeDef{
				biome.Meadow: {Density: density},
			},
		}
		assert.Error(t, lib.Validate(), "density %g should be rejected", density)
	}
}

func TestSpawnEntryAdmits(t *testing.T) {
	cases := []struct {
		name      string
		entry     SpawnEntry
		agentSize float64
		want      bool
	}{
		{"no gate", SpawnEntry{}, 12, true},
		{"above min", SpawnEntry{MinPlayerSize: 50}, 60, true},
		{"below min", SpawnEntry{MinPlayerSize: 50}, 40, false},
		{"below max", SpawnEntry{MaxPlayerSize: 100}, 60, true},
		{"above max", SpawnEntry{MaxPlayerSize: 100}, 120, false},
		{"inside band", SpawnEntry{MinPlayerSize: 50, MaxPlayerSize: 100}, 75, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entry.Admits(tc.agentSize))
		})
	}
}

func TestSeasonTableMissingBiome(t *testing.T) {
	lib := &Library{Objects: map[ObjectID]ObjectType{}, Biomes: map[biome.Biome]BiomeDef{}}
	assert.Nil(t, lib.SeasonTable(biome.Hills, Winter))
	assert.False(t, lib.IsOcean(biome.Hills))
	assert.Equal(t, 1.0, lib.Density(biome.Hills))
}

func TestOceanFlag(t *testing.T) {
	lib := Default()
	assert.True(t, lib.IsOcean(biome.Ocean))
	assert.False(t, lib.IsOcean(biome.Meadow))
}

func TestParseSeason(t *testing.T) {
	s, err := ParseSeason("autumn")
	require.NoError(t, err)
	assert.Equal(t, Autumn, s)

	_, err = ParseSeason("monsoon")
	assert.Error(t, err)
}
