package sim

import (
	"fmt"
	"sync"

	"github.com/verdantgame/world/internal/content"
	"github.com/verdantgame/world/internal/rng"
	"github.com/verdantgame/world/internal/world"
)

// seasonSeedStride separates the deterministic spawn streams of different
// seasons for the same world seed.
const seasonSeedStride int64 = 104729

// Simulation owns the live object set. All mutation happens under the mutex;
// the biome map it reads is immutable and freely shared.
type Simulation struct {
	mu sync.Mutex

	params  Params
	world   *world.Map
	library *content.Library

	baseSeed int64
	src      *rng.Source // continuous spawn stream

	objects []*Object
	nextID  int64

	season content.Season
	ticks  int

	lastManageX float64
	lastManageY float64
	haveManaged bool
}

// New creates an empty simulation over a built world map.
func New(m *world.Map, lib *content.Library, params Params, season content.Season) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sim params: %w", err)
	}
	return &Simulation{
		params:   params,
		world:    m,
		library:  lib,
		baseSeed: m.Seed(),
		src:      rng.New(m.Seed() + 1),
		season:   season,
		nextID:   1,
	}, nil
}

// Season returns the active season.
func (s *Simulation) Season() content.Season {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.season
}

// Count returns the live object count.
func (s *Simulation) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Tick advances one simulation step: distance management (on its interval),
// then force accumulation, then position/velocity integration. dt is the
// frame time in seconds.
func (s *Simulation) Tick(agent AgentState, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++
	if s.ticks%s.params.ManageInterval == 0 {
		s.manage(agent)
	}
	s.applyForces(agent, dt)
	s.integrate(dt)
}

// Objects returns a snapshot of live, non-collected objects for rendering and
// collision testing.
func (s *Simulation) Objects() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Snapshot, 0, len(s.objects))
	for _, o := range s.objects {
		if o.Collected {
			continue
		}
		out = append(out, Snapshot{
			ID:        o.ID,
			Type:      o.Type.ID,
			Glyph:     o.Type.Glyph,
			X:         o.X,
			Y:         o.Y,
			Size:      o.Size,
			Permanent: o.Permanent,
		})
	}
	return out
}

// Collect marks an object collected and removes it from the live set. The
// caller (external collision resolution) owns the decision; returns false for
// unknown ids.
func (s *Simulation) Collect(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.objects[:0]
	found := false
	for _, o := range s.objects {
		if o.ID == id {
			o.Collected = true
			found = true
			continue
		}
		kept = append(kept, o)
	}
	s.objects = kept
	return found
}

// addObject inserts a new object, honoring the population cap. Returns nil
// when the cap leaves no room.
func (s *Simulation) addObject(typ content.ObjectType, x, y, size float64) *Object {
	if len(s.objects) >= s.params.MaxObjects {
		return nil
	}
	o := &Object{
		ID:        s.nextID,
		Type:      typ,
		X:         x,
		Y:         y,
		Size:      size,
		Permanent: typ.Permanent,
	}
	s.nextID++
	s.objects = append(s.objects, o)
	return o
}
