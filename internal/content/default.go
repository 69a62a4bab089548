package content

import (
	"github.com/verdantgame/world/internal/biome"
)

// Default returns the built-in content tables. Sizes are in world units; the
// agent starts at 12 and can grow past 2500, so the tables span from petals
// the starting agent can swallow up to landmark obstacles.
func Default() *Library {
	objects := map[ObjectID]ObjectType{
		"petal":     {ID: "petal", Glyph: "🌸", MinSize: 4, MaxSize: 8, Pattern: Cluster},
		"flower":    {ID: "flower", Glyph: "🌼", MinSize: 6, MaxSize: 12, Pattern: Cluster},
		"mushroom":  {ID: "mushroom", Glyph: "🍄", MinSize: 8, MaxSize: 16, Pattern: Cluster},
		"berry":     {ID: "berry", Glyph: "🍓", MinSize: 9, MaxSize: 18},
		"shell":     {ID: "shell", Glyph: "🐚", MinSize: 6, MaxSize: 14},
		"crab":      {ID: "crab", Glyph: "🦀", MinSize: 12, MaxSize: 24},
		"fish":      {ID: "fish", Glyph: "🐟", MinSize: 10, MaxSize: 22},
		"duck":      {ID: "duck", Glyph: "🦆", MinSize: 14, MaxSize: 28},
		"frog":      {ID: "frog", Glyph: "🐸", MinSize: 10, MaxSize: 20},
		"reed":      {ID: "reed", Glyph: "🌾", MinSize: 12, MaxSize: 26, Pattern: Grid},
		"apple":     {ID: "apple", Glyph: "🍎", MinSize: 10, MaxSize: 20},
		"pear":      {ID: "pear", Glyph: "🍐", MinSize: 10, MaxSize: 20},
		"pumpkin":   {ID: "pumpkin", Glyph: "🎃", MinSize: 24, MaxSize: 48},
		"hay":       {ID: "hay", Glyph: "🌾", MinSize: 20, MaxSize: 40, Pattern: Grid},
		"crop":      {ID: "crop", Glyph: "🌽", MinSize: 14, MaxSize: 28, Pattern: Grid},
		"sheep":     {ID: "sheep", Glyph: "🐑", MinSize: 36, MaxSize: 70},
		"cow":       {ID: "cow", Glyph: "🐄", MinSize: 60, MaxSize: 110},
		"bush":      {ID: "bush", Glyph: "🌳", MinSize: 30, MaxSize: 60, Pattern: Cluster},
		"tree":      {ID: "tree", Glyph: "🌲", MinSize: 90, MaxSize: 180, Pattern: Cluster},
		"fruittree": {ID: "fruittree", Glyph: "🌳", MinSize: 80, MaxSize: 150, Pattern: Grid},
		"rock":      {ID: "rock", Glyph: "🪨", MinSize: 70, MaxSize: 140},
		"boulder":   {ID: "boulder", Glyph: "🪨", MinSize: 180, MaxSize: 360},
		"house":     {ID: "house", Glyph: "🏠", MinSize: 240, MaxSize: 420, Permanent: true},
		"barn":      {ID: "barn", Glyph: "🏚️", MinSize: 260, MaxSize: 440, Permanent: true},
		"windmill":  {ID: "windmill", Glyph: "🌬️", MinSize: 320, MaxSize: 520, Permanent: true},
		"boat":      {ID: "boat", Glyph: "⛵", MinSize: 160, MaxSize: 320},
		"whale":     {ID: "whale", Glyph: "🐋", MinSize: 500, MaxSize: 900},
		"hill":      {ID: "hill", Glyph: "⛰️", MinSize: 700, MaxSize: 1300, Permanent: true},
	}

	biomes := map[biome.Biome]BiomeDef{
		biome.Ocean: {
			Density: 0.35,
			Speed:   SpeedSlow,
			Ocean:   true,
			Spawns: allSeasons([]SpawnEntry{
				{Object: "fish", Weight: 10},
				{Object: "shell", Weight: 4},
				{Object: "boat", Weight: 2, MinPlayerSize: 120},
				{Object: "whale", Weight: 1, MinPlayerSize: 400},
			}),
		},
		biome.Beach: {
			Density: 0.6,
			Speed:   SpeedSlow,
			Spawns: allSeasons([]SpawnEntry{
				{Object: "shell", Weight: 10},
				{Object: "crab", Weight: 6},
				{Object: "rock", Weight: 2},
				{Object: "boat", Weight: 1, MinPlayerSize: 120},
			}),
		},
		biome.Wetland: {
			Density: 0.75,
			Speed:   SpeedSlow,
			Spawns: allSeasons([]SpawnEntry{
				{Object: "reed", Weight: 8},
				{Object: "frog", Weight: 6},
				{Object: "duck", Weight: 5},
				{Object: "fish", Weight: 3},
				{Object: "tree", Weight: 1, MinPlayerSize: 60},
			}),
		},
		biome.Meadow: {
			Density: 1.0,
			Speed:   SpeedFast,
			Spawns: perSeason(map[Season][]SpawnEntry{
				Spring: {
					{Object: "petal", Weight: 10},
					{Object: "flower", Weight: 8},
					{Object: "berry", Weight: 4},
					{Object: "sheep", Weight: 3, MinPlayerSize: 24},
					{Object: "bush", Weight: 2},
					{Object: "rock", Weight: 1},
				},
				Summer: {
					{Object: "flower", Weight: 10},
					{Object: "berry", Weight: 6},
					{Object: "sheep", Weight: 4, MinPlayerSize: 24},
					{Object: "cow", Weight: 2, MinPlayerSize: 50},
					{Object: "bush", Weight: 2},
					{Object: "rock", Weight: 1},
				},
				Autumn: {
					{Object: "mushroom", Weight: 10},
					{Object: "berry", Weight: 5},
					{Object: "hay", Weight: 4},
					{Object: "sheep", Weight: 3, MinPlayerSize: 24},
					{Object: "bush", Weight: 2},
					{Object: "rock", Weight: 1},
				},
				Winter: {
					{Object: "bush", Weight: 6},
					{Object: "rock", Weight: 4},
					{Object: "sheep", Weight: 3, MinPlayerSize: 24},
					{Object: "boulder", Weight: 1, MinPlayerSize: 150},
				},
			}),
		},
		biome.Forest: {
			Density: 0.9,
			Speed:   SpeedNormal,
			Spawns: perSeason(map[Season][]SpawnEntry{
				Spring: {
					{Object: "mushroom", Weight: 8},
					{Object: "flower", Weight: 5},
					{Object: "bush", Weight: 5},
					{Object: "tree", Weight: 4, MinPlayerSize: 60},
					{Object: "boulder", Weight: 1, MinPlayerSize: 150},
				},
				Summer: {
					{Object: "berry", Weight: 8},
					{Object: "mushroom", Weight: 5},
					{Object: "bush", Weight: 5},
					{Object: "tree", Weight: 4, MinPlayerSize: 60},
					{Object: "boulder", Weight: 1, MinPlayerSize: 150},
				},
				Autumn: {
					{Object: "mushroom", Weight: 12},
					{Object: "bush", Weight: 4},
					{Object: "tree", Weight: 5, MinPlayerSize: 60},
					{Object: "boulder", Weight: 1, MinPlayerSize: 150},
				},
				Winter: {
					{Object: "tree", Weight: 8, MinPlayerSize: 60},
					{Object: "bush", Weight: 4},
					{Object: "rock", Weight: 3},
					{Object: "boulder", Weight: 2, MinPlayerSize: 150},
				},
			}),
		},
		biome.Farmland: {
			Density: 0.85,
			Speed:   SpeedNormal,
			Spawns: perSeason(map[Season][]SpawnEntry{
				Spring: {
					{Object: "crop", Weight: 10},
					{Object: "sheep", Weight: 4, MinPlayerSize: 24},
					{Object: "hay", Weight: 3},
					{Object: "barn", Weight: 1, MinPlayerSize: 200},
				},
				Summer: {
					{Object: "crop", Weight: 10},
					{Object: "cow", Weight: 4, MinPlayerSize: 50},
					{Object: "hay", Weight: 3},
					{Object: "barn", Weight: 1, MinPlayerSize: 200},
				},
				Autumn: {
					{Object: "pumpkin", Weight: 10, MinPlayerSize: 18},
					{Object: "hay", Weight: 8},
					{Object: "cow", Weight: 3, MinPlayerSize: 50},
					{Object: "barn", Weight: 1, MinPlayerSize: 200},
				},
				Winter: {
					{Object: "hay", Weight: 8},
					{Object: "rock", Weight: 3},
					{Object: "barn", Weight: 1, MinPlayerSize: 200},
				},
			}),
		},
		biome.Village: {
			Density: 0.7,
			Speed:   SpeedNormal,
			Spawns: allSeasons([]SpawnEntry{
				{Object: "berry", Weight: 6},
				{Object: "apple", Weight: 5},
				{Object: "house", Weight: 3, MinPlayerSize: 180},
				{Object: "windmill", Weight: 1, MinPlayerSize: 250},
				{Object: "rock", Weight: 2},
			}),
		},
		biome.Orchard: {
			Density: 0.8,
			Speed:   SpeedNormal,
			Spawns: perSeason(map[Season][]SpawnEntry{
				Spring: {
					{Object: "petal", Weight: 8},
					{Object: "fruittree", Weight: 6, MinPlayerSize: 55},
					{Object: "flower", Weight: 4},
				},
				Summer: {
					{Object: "pear", Weight: 8},
					{Object: "fruittree", Weight: 6, MinPlayerSize: 55},
					{Object: "berry", Weight: 3},
				},
				Autumn: {
					{Object: "apple", Weight: 10},
					{Object: "pear", Weight: 6},
					{Object: "fruittree", Weight: 5, MinPlayerSize: 55},
				},
				Winter: {
					{Object: "fruittree", Weight: 8, MinPlayerSize: 55},
					{Object: "rock", Weight: 3},
				},
			}),
		},
		biome.Hills: {
			Density: 0.6,
			Speed:   SpeedSlow,
			Spawns: allSeasons([]SpawnEntry{
				{Object: "rock", Weight: 8},
				{Object: "boulder", Weight: 4, MinPlayerSize: 150},
				{Object: "mushroom", Weight: 3},
				{Object: "tree", Weight: 3, MinPlayerSize: 60},
				{Object: "hill", Weight: 1, MinPlayerSize: 500},
			}),
		},
	}

	return &Library{Objects: objects, Biomes: biomes}
}

// allSeasons uses the same spawn table for every season.
func allSeasons(entries []SpawnEntry) map[Season][]SpawnEntry {
	spawns := make(map[Season][]SpawnEntry, int(seasonCount))
	for s := Spring; s < seasonCount; s++ {
		table := make([]SpawnEntry, len(entries))
		copy(table, entries)
		spawns[s] = table
	}
	return spawns
}

// perSeason passes explicit per-season tables through, filling gaps with
// empty tables so lookups stay total.
func perSeason(spawns map[Season][]SpawnEntry) map[Season][]SpawnEntry {
	for s := Spring; s < seasonCount; s++ {
		if _, ok := spawns[s]; !ok {
			spawns[s] = nil
		}
	}
	return spawns
}
