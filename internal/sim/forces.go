package sim

import (
	"math"
)

// gravityRadius is the effective attraction range for an agent size. It grows
// super-linearly so a large agent hoovers a wide area, clamped to half the
// smaller world dimension to keep toroidal shortest-vector math meaningful.
func (s *Simulation) gravityRadius(agentSize float64) float64 {
	r := s.params.GravityRadiusScale * math.Pow(agentSize, 1.5)
	limit := math.Min(s.world.Width(), s.world.Height()) / 2
	return math.Min(r, limit)
}

// applyForces accumulates this tick's attraction into object velocities.
// Deltas are computed for every object against start-of-phase positions, then
// applied, so no object's update sees another's half-applied state. Only the
// objects' velocities change; agent state is never touched.
func (s *Simulation) applyForces(agent AgentState, dt float64) {
	radius := s.gravityRadius(agent.Size)
	sizeMul := math.Pow(agent.Size/s.params.StartSize, s.params.GravitySizeExponent)

	type delta struct{ vx, vy float64 }
	deltas := make([]delta, len(s.objects))

	for i, o := range s.objects {
		if o.Collected || !s.params.CanCollect(o.Size, agent.Size) {
			continue
		}
		dx, dy := s.world.WrapDelta(agent.X-o.X, agent.Y-o.Y)
		d := math.Hypot(dx, dy)
		if d < s.params.MinForceDistance || d > radius {
			continue
		}

		// Near-threshold objects are barely pulled: attraction fades to zero
		// as the object's size approaches the collectible boundary.
		attract := 1.0
		ratio := o.Size / agent.Size
		if ratio > s.params.AttractFadeStart {
			attract = 1 - (ratio-s.params.AttractFadeStart)/(s.params.CollectibleThreshold-s.params.AttractFadeStart)
			if attract < 0 {
				attract = 0
			}
		}

		falloff := math.Pow(1-d/radius, s.params.GravityFalloffExponent)
		strength := s.params.GravityBase * sizeMul * attract * falloff

		deltas[i] = delta{
			vx: dx / d * strength * dt,
			vy: dy / d * strength * dt,
		}
	}

	for i, o := range s.objects {
		o.VX += deltas[i].vx
		o.VY += deltas[i].vy
		if speed := math.Hypot(o.VX, o.VY); speed > s.params.VelocityCap {
			scale := s.params.VelocityCap / speed
			o.VX *= scale
			o.VY *= scale
		}
	}
}

// integrate advances positions with toroidal wrap and applies friction so
// objects no longer being pulled coast to rest.
func (s *Simulation) integrate(dt float64) {
	decay := 1 - s.params.Friction*dt
	if decay < 0 {
		decay = 0
	}
	for _, o := range s.objects {
		o.X, o.Y = s.world.WrapPoint(o.X+o.VX*dt, o.Y+o.VY*dt)
		o.VX *= decay
		o.VY *= decay
	}
}
