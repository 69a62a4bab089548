// Package biome classifies world positions into terrain regions. The
// classifier is a pure, total, order-sensitive rule cascade: every input
// resolves to exactly one Biome, with Meadow as the final fallback.
package biome

// Biome identifies a terrain region. The set is closed; the classifier is
// exhaustive over it.
type Biome uint8

const (
	Ocean Biome = iota
	Beach
	Wetland
	Meadow
	Forest
	Farmland
	Village
	Orchard
	Hills

	biomeCount
)

// Count returns the number of distinct biomes.
func Count() int {
	return int(biomeCount)
}

// Valid reports whether b is a member of the closed biome set.
func (b Biome) Valid() bool {
	return b < biomeCount
}

func (b Biome) String() string {
	switch b {
	case Ocean:
		return "ocean"
	case Beach:
		return "beach"
	case Wetland:
		return "wetland"
	case Meadow:
		return "meadow"
	case Forest:
		return "forest"
	case Farmland:
		return "farmland"
	case Village:
		return "village"
	case Orchard:
		return "orchard"
	case Hills:
		return "hills"
	default:
		return "unknown"
	}
}
