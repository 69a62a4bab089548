package biome

// Sample carries everything Classify needs for one position: the five noise
// channel values normalized to [0, 1], the normalized elliptical distance from
// the world center (1.0 is the island edge), and the angular zone.
type Sample struct {
	Elevation   float64
	Moisture    float64
	Temperature float64
	Coastline   float64
	Settlement  float64

	// Dist is the elliptical distance from world center, normalized so the
	// island edge sits at 1.0. Values past 1.0 are open ocean.
	Dist float64

	// Zone is the angular sector the position falls in; ZoneStrength is 1.0
	// at the sector's angular center and 0.0 at its boundaries.
	Zone         Zone
	ZoneStrength float64
}

// Zone is one of eight equal angular sectors around the world center, each
// with a preferred biome that colors classification inside it.
type Zone uint8

const (
	ZoneForest Zone = iota
	ZoneMeadowEast
	ZoneFarmland
	ZoneOrchard
	ZoneWetland
	ZoneMeadowWest
	ZoneHills
	ZoneBeach

	zoneCount
)

// ZoneCount returns the number of angular sectors.
func ZoneCount() int {
	return int(zoneCount)
}

// preferred maps each sector to the biome it favors on land.
var preferred = [zoneCount]Biome{
	ZoneForest:     Forest,
	ZoneMeadowEast: Meadow,
	ZoneFarmland:   Farmland,
	ZoneOrchard:    Orchard,
	ZoneWetland:    Wetland,
	ZoneMeadowWest: Meadow,
	ZoneHills:      Hills,
	ZoneBeach:      Beach,
}

// Preferred returns the biome this sector favors.
func (z Zone) Preferred() Biome {
	if z >= zoneCount {
		return Meadow
	}
	return preferred[z]
}

// Terrain band thresholds on jittered distance. The coastline channel shifts
// the effective edge by up to ±15% of the island radius so shores read as
// organic rather than elliptical.
const (
	coastJitterAmplitude = 0.15
	oceanBand            = 1.0
	beachBand            = 0.965
	shoreBand            = 0.93

	shoreWetMoisture = 0.55
)

// Land cascade thresholds. Rule order below is load-bearing: reordering
// changes the map.
const (
	villageCore   = 0.78
	farmRing      = 0.70
	orchardRing   = 0.64
	zoneMinPull   = 0.25
	hillElevation = 0.75
	forestWet     = 0.60
	forestHigh    = 0.50
	orchardWarmth = 0.45
	wetlandWet    = 0.72
	farmDry       = 0.60
	farmMinWet    = 0.30
	beachZoneDist = 0.80
	wetZoneWet    = 0.45
	forestZoneWet = 0.35
)

// Classify resolves a sample to exactly one biome. It never fails: any input
// that matches no earlier rule lands on Meadow.
func Classify(s Sample) Biome {
	// Jittered distance decides the terrain band first. Ocean, beach and the
	// wet shore short-circuit everything on land.
	d := s.Dist + (s.Coastline-0.5)*2*coastJitterAmplitude
	switch {
	case d > oceanBand:
		return Ocean
	case d > beachBand:
		return Beach
	case d > shoreBand:
		if s.Moisture > shoreWetMoisture {
			return Wetland
		}
		return Beach
	}

	// Settlement peaks carve out village cores, with farmland then orchard
	// rings concentric around them.
	if s.Settlement > villageCore {
		return Village
	}
	if s.Settlement > farmRing {
		return Farmland
	}
	if s.Settlement > orchardRing {
		return Orchard
	}

	zone := s.Zone.Preferred()
	zonal := s.ZoneStrength > zoneMinPull

	if zonal && zone == Farmland && s.Elevation < farmDry && s.Moisture > farmMinWet {
		return Farmland
	}
	if zonal && zone == Beach && s.Dist > beachZoneDist {
		return Beach
	}
	if zonal && zone == Wetland && s.Moisture > wetZoneWet {
		return Wetland
	}

	if s.Elevation > hillElevation {
		return Hills
	}
	if zonal && zone == Hills && s.Elevation > forestHigh {
		return Hills
	}

	if (zonal && zone == Forest && s.Moisture > forestZoneWet) ||
		(s.Moisture > forestWet && s.Elevation > forestHigh) {
		return Forest
	}

	if zonal && zone == Orchard && s.Temperature > orchardWarmth {
		return Orchard
	}

	if s.Moisture > wetlandWet {
		return Wetland
	}

	return Meadow
}
