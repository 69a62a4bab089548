package sim

import (
	"github.com/verdantgame/world/internal/content"
)

// Object is a live spawned entity. Mutated only by the simulation tick.
type Object struct {
	ID   int64
	Type content.ObjectType

	X, Y   float64
	Size   float64
	VX, VY float64

	Collected bool
	// Permanent objects survive distance culling and season replacement.
	Permanent bool
}

// AgentState is the externally owned agent view the core reads each tick.
// The core never mutates agent state.
type AgentState struct {
	X, Y float64
	Size float64
	// Zoom is the camera zoom; 1 is the default view, smaller values are
	// zoomed out. Non-positive values are treated as 1.
	Zoom float64
}

func (a AgentState) zoom() float64 {
	if a.Zoom <= 0 {
		return 1
	}
	return a.Zoom
}

// Snapshot is the read-only object view handed to rendering and collision.
type Snapshot struct {
	ID        int64            `json:"id"`
	Type      content.ObjectID `json:"type"`
	Glyph     string           `json:"glyph"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Size      float64          `json:"size"`
	Permanent bool             `json:"permanent,omitempty"`
}
