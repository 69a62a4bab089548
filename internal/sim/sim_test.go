package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgame/world/internal/content"
	"github.com/verdantgame/world/internal/world"
)

var (
	mapOnce   sync.Once
	sharedMap *world.Map
)

// testMap builds one moderate world shared across the package's tests; the
// grid is immutable so sharing is safe.
func testMap(t *testing.T) *world.Map {
	t.Helper()
	mapOnce.Do(func() {
		m, err := world.New(42, world.Params{Width: 4000, Height: 3000, TileSize: 50})
		if err != nil {
			panic(err)
		}
		sharedMap = m
	})
	return sharedMap
}

func newTestSim(t *testing.T, params Params) *Simulation {
	t.Helper()
	lib := content.Default()
	require.NoError(t, lib.Validate())
	s, err := New(testMap(t), lib, params, content.Spring)
	require.NoError(t, err)
	return s
}

// inject places a synthetic object directly into the live set.
func inject(s *Simulation, typ content.ObjectType, x, y, size float64) *Object {
	o := &Object{ID: s.nextID, Type: typ, X: x, Y: y, Size: size, Permanent: typ.Permanent}
	s.nextID++
	s.objects = append(s.objects, o)
	return o
}

func centerAgent(m *world.Map, size float64) AgentState {
	return AgentState{X: m.Width() / 2, Y: m.Height() / 2, Size: size, Zoom: 1}
}

func TestNewValidatesParams(t *testing.T) {
	lib := content.Default()
	bad := DefaultParams()
	bad.MaxObjects = 0
	_, err := New(testMap(t), lib, bad, content.Spring)
	assert.Error(t, err)

	bad = DefaultParams()
	bad.AttractFadeStart = 0.99 // above collectible threshold
	_, err = New(testMap(t), lib, bad, content.Spring)
	assert.Error(t, err)

	bad = DefaultParams()
	bad.KeepRadius = bad.DespawnRadius + 1
	_, err = New(testMap(t), lib, bad, content.Spring)
	assert.Error(t, err)
}

func TestCanCollectBoundary(t *testing.T) {
	p := DefaultParams()
	agentSize := 100.0
	threshold := agentSize * p.CollectibleThreshold

	assert.False(t, p.CanCollect(threshold, agentSize), "exactly at threshold is not collectible")
	assert.True(t, p.CanCollect(threshold-0.001, agentSize), "just below threshold is collectible")
	assert.False(t, p.CanCollect(threshold+0.001, agentSize))
}

func TestPopulationBoundAfterTicks(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)

	s.SeedRings(agent)
	assert.LessOrEqual(t, s.Count(), s.params.MaxObjects)

	for i := 0; i < 300; i++ {
		// Keep the agent moving so management passes actually run.
		agent.X += 25
		agent.Size += 0.5
		s.Tick(agent, 1.0/60)
		assert.LessOrEqual(t, s.Count(), s.params.MaxObjects, "cap violated at tick %d", i)
	}
}

func TestObjectsSnapshotExcludesCollected(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	typ := s.library.Objects["flower"]

	a := inject(s, typ, 100, 100, 8)
	b := inject(s, typ, 200, 200, 8)
	a.Collected = true

	snaps := s.Objects()
	require.Len(t, snaps, 1)
	assert.Equal(t, b.ID, snaps[0].ID)
	assert.Equal(t, typ.ID, snaps[0].Type)
}

func TestCollectRemovesObject(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	typ := s.library.Objects["berry"]
	o := inject(s, typ, 100, 100, 10)

	assert.True(t, s.Collect(o.ID))
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Collect(o.ID), "collecting twice must fail")
	assert.False(t, s.Collect(99999))
}

func TestSeedRingsDeterministic(t *testing.T) {
	a := newTestSim(t, DefaultParams())
	b := newTestSim(t, DefaultParams())
	agent := centerAgent(a.world, 12)

	a.SeedRings(agent)
	b.SeedRings(agent)

	sa := a.Objects()
	sb := b.Objects()
	require.Equal(t, len(sa), len(sb))
	for i := range sa {
		assert.Equal(t, sa[i].Type, sb[i].Type, "object %d type differs", i)
		assert.Equal(t, sa[i].X, sb[i].X, "object %d x differs", i)
		assert.Equal(t, sa[i].Y, sb[i].Y, "object %d y differs", i)
		assert.Equal(t, sa[i].Size, sb[i].Size, "object %d size differs", i)
	}
}

func TestRingSeedingScenario(t *testing.T) {
	// seed=42, agent at world center, spring: four rings (100/300/600/1000,
	// targets 80/120/150/150) stay within both the target total and the
	// outermost radius.
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)

	s.SeedRings(agent)

	total := 0
	for _, target := range s.params.RingTargets {
		total += target
	}
	assert.LessOrEqual(t, s.Count(), total)
	assert.Greater(t, s.Count(), 0, "a spring meadow center should spawn something")

	const epsilon = 1.0
	maxRadius := s.params.RingRadii[len(s.params.RingRadii)-1]
	for _, o := range s.objects {
		d := s.world.Dist(o.X, o.Y, agent.X, agent.Y)
		assert.LessOrEqual(t, d, maxRadius+epsilon, "object %d (%s) beyond outer ring", o.ID, o.Type.ID)
	}
}
