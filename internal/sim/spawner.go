package sim

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/content"
	"github.com/verdantgame/world/internal/rng"
)

// Spawn attempt loops are bounded at target*maxAttemptFactor so a hostile
// landscape (all ocean, no admissible entries) degrades to a sparser world
// instead of stalling the frame.
const maxAttemptFactor = 5

// tileRequirement constrains which tiles a spawn attempt may land on.
type tileRequirement int

const (
	anyTile tileRequirement = iota
	landTile
	oceanTile
)

// spawnOptions tunes one spawn attempt.
type spawnOptions struct {
	applyDensity bool
	require      tileRequirement
	// budget caps how many objects this attempt may add (pattern expansion
	// included). Zero or negative means no budget.
	budget int
	// bounded pattern expansion: when boundRadius > 0, generated pattern
	// positions farther than boundRadius from (boundX, boundY) are rejected.
	boundX, boundY float64
	boundRadius    float64
	// when avoidHalfW > 0, positions inside the rectangle centered at
	// (avoidX, avoidY) are rejected. Used to keep season replacements out of
	// the visible area.
	avoidX, avoidY         float64
	avoidHalfW, avoidHalfH float64
}

// SeedRings populates the world at season start: expanding concentric rings
// around the agent's position, each ring an independently seeded uniform-disk
// sample so ring contents reproduce exactly for a given seed, start position
// and season.
func (s *Simulation) SeedRings(agent AgentState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, radius := range s.params.RingRadii {
		target := s.params.RingTargets[i]
		src := rng.New(s.baseSeed + int64(i)*s.params.RingSeedStride + int64(s.season)*seasonSeedStride)

		spawned := 0
		for attempt := 0; attempt < target*maxAttemptFactor && spawned < target; attempt++ {
			if len(s.objects) >= s.params.MaxObjects {
				break
			}
			r := math.Sqrt(src.Float64()) * radius
			theta := src.Range(0, 2*math.Pi)
			x, y := s.world.WrapPoint(agent.X+r*math.Cos(theta), agent.Y+r*math.Sin(theta))

			spawned += s.trySpawnAt(src, x, y, agent.Size, spawnOptions{
				// The innermost ring always populates close range.
				applyDensity: i != 0,
				budget:       target - spawned,
				boundX:       agent.X,
				boundY:       agent.Y,
				boundRadius:  radius,
			})
		}
		log.Debug("ring seeded", "ring", i, "radius", radius, "target", target, "spawned", spawned, "season", s.season.String())
	}
}

// trySpawnAt attempts one spawn at a world position and returns how many
// objects were added (0 on rejection). The tile's own biome table governs
// what can appear, so ocean tiles only ever produce ocean objects.
func (s *Simulation) trySpawnAt(src *rng.Source, x, y, agentSize float64, opts spawnOptions) int {
	b := s.world.BiomeAt(x, y)
	ocean := s.library.IsOcean(b)
	if opts.require == landTile && ocean {
		return 0
	}
	if opts.require == oceanTile && !ocean {
		return 0
	}

	table := s.library.SeasonTable(b, s.season)
	if len(table) == 0 {
		return 0
	}

	if opts.applyDensity && src.Float64() > s.library.Density(b) {
		return 0
	}

	admissible := table[:0:0]
	for _, e := range table {
		if e.Admits(agentSize) {
			admissible = append(admissible, e)
		}
	}
	if len(admissible) == 0 {
		return 0
	}

	typ, ok := s.pickWeighted(src, admissible, agentSize)
	if !ok {
		return 0
	}

	seed := s.addObject(typ, x, y, src.Range(typ.MinSize, typ.MaxSize))
	if seed == nil {
		return 0
	}

	added := 1
	// Expansion gets what the seed instance left of the caller's budget;
	// -1 keeps unbudgeted attempts unlimited since 0 means exhausted.
	budget := -1
	if opts.budget > 0 {
		budget = opts.budget - 1
	}
	added += s.expandPattern(src, typ, seed, budget, opts)
	return added
}

// pickWeighted draws one entry by cumulative adjusted weight. The adjustment
// biases the mix toward objects the agent can currently collect: entries
// whose mean size sits under the collectible threshold get boosted up to
// MaxSpawnBoost, entries above it decay exponentially but never to zero, so
// obstacles stay rare rather than vanishing.
func (s *Simulation) pickWeighted(src *rng.Source, entries []content.SpawnEntry, agentSize float64) (content.ObjectType, bool) {
	weights := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		typ, ok := s.library.Objects[e.Object]
		if !ok {
			// Validation should have pruned these; tolerate anyway.
			continue
		}
		weights[i] = s.adjustedWeight(e, typ, agentSize)
		total += weights[i]
	}
	if total <= 0 {
		return content.ObjectType{}, false
	}

	draw := src.Float64() * total
	acc := 0.0
	for i, e := range entries {
		acc += weights[i]
		if draw < acc {
			return s.library.Objects[e.Object], true
		}
	}
	// Floating-point tail: fall back to the last weighted entry.
	for i := len(entries) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return s.library.Objects[entries[i].Object], true
		}
	}
	return content.ObjectType{}, false
}

func (s *Simulation) adjustedWeight(e content.SpawnEntry, typ content.ObjectType, agentSize float64) float64 {
	threshold := agentSize * s.params.CollectibleThreshold
	if threshold <= 0 {
		return e.Weight
	}
	ratio := typ.MeanSize() / threshold
	if ratio < 1 {
		return e.Weight * (1 + (s.params.MaxSpawnBoost-1)*(1-ratio))
	}
	return e.Weight * math.Exp(-s.params.ObstaclePenalty*(ratio-1))
}

// expandPattern turns a seed instance into a cluster or grid. Every generated
// position is revalidated against the biome map (ocean rejected) and, when a
// bound is set, against the caller's radius. budget caps how many instances
// may be added, with a negative budget meaning unlimited.
func (s *Simulation) expandPattern(src *rng.Source, typ content.ObjectType, seed *Object, budget int, opts spawnOptions) int {
	switch typ.Pattern {
	case content.Cluster:
		return s.expandCluster(src, typ, seed, budget, opts)
	case content.Grid:
		return s.expandGrid(src, typ, seed, budget, opts)
	default:
		return 0
	}
}

func (s *Simulation) expandCluster(src *rng.Source, typ content.ObjectType, seed *Object, budget int, opts spawnOptions) int {
	count := src.IntInclusive(4, 10)
	radius := typ.MaxSize * s.params.ClusterRadiusFactor

	added := 0
	for i := 0; i < count; i++ {
		if budget >= 0 && added >= budget {
			break
		}
		r := math.Sqrt(src.Float64()) * radius
		theta := src.Range(0, 2*math.Pi)
		x, y := s.world.WrapPoint(seed.X+r*math.Cos(theta), seed.Y+r*math.Sin(theta))
		if !s.patternPositionOK(x, y, opts) {
			continue
		}
		if s.addObject(typ, x, y, src.Range(typ.MinSize, typ.MaxSize)) == nil {
			break
		}
		added++
	}
	return added
}

func (s *Simulation) expandGrid(src *rng.Source, typ content.ObjectType, seed *Object, budget int, opts spawnOptions) int {
	rows := src.IntInclusive(3, 5)
	cols := src.IntInclusive(4, 7)
	spacing := typ.MaxSize * s.params.GridSpacingFactor
	rot := src.Range(-0.15, 0.15)
	sin, cos := math.Sin(rot), math.Cos(rot)

	added := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if row == 0 && col == 0 {
				continue // the seed instance anchors the grid
			}
			if budget >= 0 && added >= budget {
				return added
			}
			lx := float64(col)*spacing + src.Range(-spacing*0.2, spacing*0.2)
			ly := float64(row)*spacing + src.Range(-spacing*0.2, spacing*0.2)
			x, y := s.world.WrapPoint(seed.X+lx*cos-ly*sin, seed.Y+lx*sin+ly*cos)
			if !s.patternPositionOK(x, y, opts) {
				continue
			}
			if s.addObject(typ, x, y, src.Range(typ.MinSize, typ.MaxSize)) == nil {
				return added
			}
			added++
		}
	}
	return added
}

func (s *Simulation) patternPositionOK(x, y float64, opts spawnOptions) bool {
	if s.library.IsOcean(s.world.BiomeAt(x, y)) {
		return false
	}
	if opts.boundRadius > 0 && s.world.Dist(opts.boundX, opts.boundY, x, y) > opts.boundRadius {
		return false
	}
	if opts.avoidHalfW > 0 {
		dx, dy := s.world.WrapDelta(x-opts.avoidX, y-opts.avoidY)
		if math.Abs(dx) <= opts.avoidHalfW && math.Abs(dy) <= opts.avoidHalfH {
			return false
		}
	}
	return true
}

// manage runs the periodic distance pass: cull far objects, enforce the cap
// by eviction priority, then refill toward the target density at the outer
// spawn annulus. Skipped entirely while the agent has not moved far enough.
func (s *Simulation) manage(agent AgentState) {
	zoom := agent.zoom()

	if s.haveManaged {
		moved := s.world.Dist(s.lastManageX, s.lastManageY, agent.X, agent.Y)
		if moved < s.params.MoveThreshold/zoom {
			return
		}
	}
	s.lastManageX, s.lastManageY = agent.X, agent.Y
	s.haveManaged = true

	// Zoomed-out views must keep more world populated.
	despawnRadius := s.params.DespawnRadius / zoom

	kept := make([]*Object, 0, len(s.objects))
	despawned := 0
	for _, o := range s.objects {
		if o.Permanent || s.world.Dist(o.X, o.Y, agent.X, agent.Y) <= despawnRadius {
			kept = append(kept, o)
		} else {
			despawned++
		}
	}
	s.objects = kept

	evicted := s.evictOverCap(agent)
	spawned := s.refill(agent, despawned, zoom)

	if despawned > 0 || evicted > 0 || spawned > 0 {
		log.Debug("population managed",
			"despawned", despawned, "evicted", evicted, "spawned", spawned,
			"live", len(s.objects), "zoom", zoom)
	}
}

// evictOverCap truncates the population to the cap by protection priority:
// collectible objects inside the keep radius are untouchable, then anything
// inside the keep radius, then protection falls off with distance.
func (s *Simulation) evictOverCap(agent AgentState) int {
	if len(s.objects) <= s.params.MaxObjects {
		return 0
	}

	type ranked struct {
		obj   *Object
		class int
		dist  float64
	}
	rankedObjs := make([]ranked, len(s.objects))
	for i, o := range s.objects {
		d := s.world.Dist(o.X, o.Y, agent.X, agent.Y)
		class := 2
		switch {
		case o.Permanent:
			class = 0
		case d <= s.params.KeepRadius && s.params.CanCollect(o.Size, agent.Size):
			class = 0
		case d <= s.params.KeepRadius:
			class = 1
		}
		rankedObjs[i] = ranked{obj: o, class: class, dist: d}
	}

	sort.SliceStable(rankedObjs, func(i, j int) bool {
		if rankedObjs[i].class != rankedObjs[j].class {
			return rankedObjs[i].class < rankedObjs[j].class
		}
		return rankedObjs[i].dist < rankedObjs[j].dist
	})

	evicted := len(rankedObjs) - s.params.MaxObjects
	kept := make([]*Object, s.params.MaxObjects)
	for i := 0; i < s.params.MaxObjects; i++ {
		kept[i] = rankedObjs[i].obj
	}
	s.objects = kept
	return evicted
}

// refill spawns despawned + densityDeficit objects at the outer edge of the
// spawn radius (an annulus at 80-120%), bounded by the cap.
func (s *Simulation) refill(agent AgentState, despawned int, zoom float64) int {
	visW := s.params.ViewWidth / zoom
	visH := s.params.ViewHeight / zoom

	// The density target is over the visible rectangle, so count within the
	// same rectangle.
	nearby := 0
	for _, o := range s.objects {
		dx, dy := s.world.WrapDelta(o.X-agent.X, o.Y-agent.Y)
		if math.Abs(dx) <= visW/2 && math.Abs(dy) <= visH/2 {
			nearby++
		}
	}
	targetNearby := int(s.params.TargetDensity * (visW * visH) / (s.params.ViewWidth * s.params.ViewHeight))
	deficit := targetNearby - nearby
	if deficit < 0 {
		deficit = 0
	}

	want := despawned + deficit
	if room := s.params.MaxObjects - len(s.objects); want > room {
		want = room
	}
	if want <= 0 {
		return 0
	}

	spawnRadius := s.params.SpawnRadius / zoom
	spawned := 0
	for attempt := 0; attempt < want*maxAttemptFactor && spawned < want; attempt++ {
		if len(s.objects) >= s.params.MaxObjects {
			break
		}
		r := s.src.Range(0.8, 1.2) * spawnRadius
		theta := s.src.Range(0, 2*math.Pi)
		x, y := s.world.WrapPoint(agent.X+r*math.Cos(theta), agent.Y+r*math.Sin(theta))
		spawned += s.trySpawnAt(s.src, x, y, agent.Size, spawnOptions{
			applyDensity: true,
			budget:       want - spawned,
		})
	}
	return spawned
}
