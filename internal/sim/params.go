// Package sim maintains the live object population around the agent and the
// radial attraction forces acting on it. One Tick advances management, force
// accumulation and integration as sequential phases; the population never
// exceeds the configured cap after any tick.
package sim

import (
	"fmt"
)

// Params centralizes every tuning constant of the population and force model.
// Distances and sizes are in world units, rates are per second.
type Params struct {
	// MaxObjects is the hard population cap.
	MaxObjects int

	// StartSize is the agent's initial diameter; force scaling is relative
	// to it.
	StartSize float64

	// CollectibleThreshold: an object is collectible while its size is below
	// agentSize * CollectibleThreshold.
	CollectibleThreshold float64
	// AttractFadeStart: attraction fades linearly to zero between this
	// fraction of agent size and CollectibleThreshold.
	AttractFadeStart float64

	// Force model.
	GravityBase            float64 // base acceleration, units/s²
	GravitySizeExponent    float64 // growth exponent on (agentSize/StartSize)
	GravityRadiusScale     float64 // radius = scale * agentSize^1.5
	GravityFalloffExponent float64 // steepness of (1 - d/R)^p
	VelocityCap            float64 // max object speed, units/s
	Friction               float64 // per-second velocity decay rate
	MinForceDistance       float64 // skip force below this distance

	// Continuous distance management.
	ManageInterval int     // ticks between management passes
	MoveThreshold  float64 // agent movement required before a pass, at zoom 1
	DespawnRadius  float64 // cull distance at zoom 1 (scaled by 1/zoom)
	KeepRadius     float64 // eviction protection radius
	SpawnRadius    float64 // refill annulus center distance at zoom 1
	TargetDensity  float64 // target object count over a zoom-1 view
	ViewWidth      float64 // nominal camera view at zoom 1
	ViewHeight     float64

	// Weighted selection.
	MaxSpawnBoost   float64 // max multiplier for easily collectible entries
	ObstaclePenalty float64 // exponential suppression rate above threshold

	// Ring seeding.
	RingRadii      []float64
	RingTargets    []int
	RingSeedStride int64

	// Pattern expansion.
	ClusterRadiusFactor float64 // cluster radius = factor * type max size
	GridSpacingFactor   float64 // grid spacing = factor * type max size

	// Season transition.
	SeasonTargetCount int
	SeasonMargin      float64 // retention margin around the camera bounds
	SeasonLandShare   float64 // fraction of replacement points on land
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		MaxObjects: 600,

		StartSize:            12,
		CollectibleThreshold: 0.95,
		AttractFadeStart:     0.83,

		GravityBase:            800,
		GravitySizeExponent:    1.2,
		GravityRadiusScale:     1.5,
		GravityFalloffExponent: 2.5,
		VelocityCap:            600,
		Friction:               3.0,
		MinForceDistance:       1.0,

		ManageInterval: 30,
		MoveThreshold:  40,
		DespawnRadius:  2400,
		KeepRadius:     700,
		SpawnRadius:    1600,
		TargetDensity:  120,
		ViewWidth:      1280,
		ViewHeight:     800,

		MaxSpawnBoost:   5,
		ObstaclePenalty: 3,

		RingRadii:      []float64{100, 300, 600, 1000},
		RingTargets:    []int{80, 120, 150, 150},
		RingSeedStride: 7919,

		ClusterRadiusFactor: 3,
		GridSpacingFactor:   1.4,

		SeasonTargetCount: 450,
		SeasonMargin:      200,
		SeasonLandShare:   0.8,
	}
}

// Validate rejects configurations the simulation cannot run with.
func (p Params) Validate() error {
	if p.MaxObjects <= 0 {
		return fmt.Errorf("max objects must be positive, got %d", p.MaxObjects)
	}
	if p.StartSize <= 0 {
		return fmt.Errorf("start size must be positive, got %g", p.StartSize)
	}
	if p.CollectibleThreshold <= 0 || p.CollectibleThreshold > 1 {
		return fmt.Errorf("collectible threshold %g out of (0,1]", p.CollectibleThreshold)
	}
	if p.AttractFadeStart <= 0 || p.AttractFadeStart >= p.CollectibleThreshold {
		return fmt.Errorf("attract fade start %g must sit below collectible threshold %g", p.AttractFadeStart, p.CollectibleThreshold)
	}
	if p.VelocityCap <= 0 {
		return fmt.Errorf("velocity cap must be positive, got %g", p.VelocityCap)
	}
	if p.Friction < 0 {
		return fmt.Errorf("friction must be non-negative, got %g", p.Friction)
	}
	if p.ManageInterval <= 0 {
		return fmt.Errorf("manage interval must be positive, got %d", p.ManageInterval)
	}
	if p.DespawnRadius <= 0 || p.KeepRadius <= 0 || p.SpawnRadius <= 0 {
		return fmt.Errorf("management radii must be positive")
	}
	if p.KeepRadius >= p.DespawnRadius {
		return fmt.Errorf("keep radius %g must sit inside despawn radius %g", p.KeepRadius, p.DespawnRadius)
	}
	if p.ViewWidth <= 0 || p.ViewHeight <= 0 {
		return fmt.Errorf("view dimensions must be positive")
	}
	if len(p.RingRadii) != len(p.RingTargets) {
		return fmt.Errorf("ring radii (%d) and targets (%d) must align", len(p.RingRadii), len(p.RingTargets))
	}
	if p.SeasonLandShare < 0 || p.SeasonLandShare > 1 {
		return fmt.Errorf("season land share %g out of [0,1]", p.SeasonLandShare)
	}
	return nil
}

// CanCollect reports whether an object of the given size is collectible by an
// agent of the given size. The boundary itself is not collectible.
func (p Params) CanCollect(objectSize, agentSize float64) bool {
	return objectSize < agentSize*p.CollectibleThreshold
}
