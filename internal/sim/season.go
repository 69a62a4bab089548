package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/verdantgame/world/internal/content"
)

// OnSeasonChange swaps the active season in one atomic batch. Everything the
// player can currently see (camera bounds plus margin) is retained unchanged,
// as is every permanent object; the rest of the population is discarded and
// replaced with fresh spawn points outside the visible region, drawn from the
// new season's tables.
func (s *Simulation) OnSeasonChange(newSeason content.Season, agent AgentState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newSeason == s.season {
		return
	}
	oldSeason := s.season
	s.season = newSeason

	zoom := agent.zoom()
	halfW := s.params.ViewWidth/zoom/2 + s.params.SeasonMargin
	halfH := s.params.ViewHeight/zoom/2 + s.params.SeasonMargin

	kept := make([]*Object, 0, len(s.objects))
	discarded := 0
	for _, o := range s.objects {
		dx, dy := s.world.WrapDelta(o.X-agent.X, o.Y-agent.Y)
		onScreen := math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
		if o.Permanent || onScreen {
			kept = append(kept, o)
		} else {
			discarded++
		}
	}
	s.objects = kept

	need := s.params.SeasonTargetCount - len(s.objects)
	if room := s.params.MaxObjects - len(s.objects); need > room {
		need = room
	}

	spawned := 0
	if need > 0 {
		landWant := int(float64(need) * s.params.SeasonLandShare)
		oceanWant := need - landWant
		spawned += s.spawnSeasonPoints(agent, landWant, landTile, halfW, halfH)
		spawned += s.spawnSeasonPoints(agent, oceanWant, oceanTile, halfW, halfH)
	}

	log.Info("season changed",
		"from", oldSeason.String(), "to", newSeason.String(),
		"retained", len(kept), "discarded", discarded, "spawned", spawned)
}

// spawnSeasonPoints places replacement objects outside the visible rectangle,
// between the screen edge and the despawn radius.
func (s *Simulation) spawnSeasonPoints(agent AgentState, want int, require tileRequirement, halfW, halfH float64) int {
	if want <= 0 {
		return 0
	}

	minRadius := math.Hypot(halfW, halfH)
	maxRadius := s.params.DespawnRadius / agent.zoom()
	if maxRadius <= minRadius {
		maxRadius = minRadius * 1.5
	}

	spawned := 0
	for attempt := 0; attempt < want*maxAttemptFactor && spawned < want; attempt++ {
		if len(s.objects) >= s.params.MaxObjects {
			break
		}
		r := s.src.Range(minRadius, maxRadius)
		theta := s.src.Range(0, 2*math.Pi)
		x, y := s.world.WrapPoint(agent.X+r*math.Cos(theta), agent.Y+r*math.Sin(theta))

		// Annulus sampling can still clip the screen corners; reject anything
		// the player would see pop in.
		dx, dy := s.world.WrapDelta(x-agent.X, y-agent.Y)
		if math.Abs(dx) <= halfW && math.Abs(dy) <= halfH {
			continue
		}

		spawned += s.trySpawnAt(s.src, x, y, agent.Size, spawnOptions{
			applyDensity: true,
			require:      require,
			budget:       want - spawned,
			avoidX:       agent.X,
			avoidY:       agent.Y,
			avoidHalfW:   halfW,
			avoidHalfH:   halfH,
		})
	}
	return spawned
}
