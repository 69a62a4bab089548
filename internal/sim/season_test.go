package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgame/world/internal/content"
)

func TestSeasonChangeKeepsVisibleObjects(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)
	typ := s.library.Objects["flower"]

	// A sits on screen, B far beyond the retention margin.
	onScreen := inject(s, typ, agent.X+100, agent.Y+50, 8)
	wantX, wantY, wantSize := onScreen.X, onScreen.Y, onScreen.Size
	offScreen := inject(s, typ, agent.X+s.params.ViewWidth, agent.Y+s.params.ViewHeight, 8)

	s.OnSeasonChange(content.Autumn, agent)
	require.Equal(t, content.Autumn, s.Season())

	var kept *Object
	for _, o := range s.objects {
		if o.ID == offScreen.ID {
			t.Fatalf("off-screen object %d survived the season change", offScreen.ID)
		}
		if o.ID == onScreen.ID {
			kept = o
		}
	}
	require.NotNil(t, kept, "on-screen object must survive the season change")
	assert.Equal(t, wantX, kept.X)
	assert.Equal(t, wantY, kept.Y)
	assert.Equal(t, wantSize, kept.Size)
}

func TestSeasonChangeKeepsPermanentObjects(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)

	house := s.library.Objects["house"]
	require.True(t, house.Permanent)
	far := inject(s, house, agent.X+s.params.DespawnRadius, agent.Y, 300)

	s.OnSeasonChange(content.Winter, agent)

	found := false
	for _, o := range s.objects {
		if o.ID == far.ID {
			found = true
		}
	}
	assert.True(t, found, "permanent objects persist across seasons regardless of distance")
}

func TestSeasonChangeSameSeasonIsNoOp(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)
	typ := s.library.Objects["flower"]

	inject(s, typ, agent.X+s.params.ViewWidth*2, agent.Y, 8)
	before := len(s.objects)

	s.OnSeasonChange(s.Season(), agent)
	assert.Equal(t, before, len(s.objects), "re-applying the current season must change nothing")
}

func TestSeasonChangeSpawnsOutsideView(t *testing.T) {
	s := newTestSim(t, DefaultParams())
	agent := centerAgent(s.world, 12)

	s.OnSeasonChange(content.Summer, agent)

	halfW := s.params.ViewWidth/2 + s.params.SeasonMargin
	halfH := s.params.ViewHeight/2 + s.params.SeasonMargin
	for _, o := range s.objects {
		dx, dy := s.world.WrapDelta(o.X-agent.X, o.Y-agent.Y)
		onScreen := math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
		assert.False(t, onScreen, "object %d (%s) spawned inside the visible area", o.ID, o.Type.ID)
	}
	assert.LessOrEqual(t, len(s.objects), s.params.MaxObjects)
}

func TestSeasonChangeIsDeterministic(t *testing.T) {
	a := newTestSim(t, DefaultParams())
	b := newTestSim(t, DefaultParams())
	agent := centerAgent(a.world, 12)

	a.OnSeasonChange(content.Winter, agent)
	b.OnSeasonChange(content.Winter, agent)

	sa := a.Objects()
	sb := b.Objects()
	require.Equal(t, len(sa), len(sb))
	for i := range sa {
		assert.Equal(t, sa[i].Type, sb[i].Type)
		assert.Equal(t, sa[i].X, sb[i].X)
		assert.Equal(t, sa[i].Y, sb[i].Y)
	}
}
