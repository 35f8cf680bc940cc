package engine

// Direction is the flip direction through the ring
type Direction int8

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Segment is the paint description of one half-tile
// Angle is the rotation about the hinge in degrees: negative tilts a top half
// away from the viewer, positive tilts a bottom half; ±90 is edge-on
type Segment struct {
	Label   rune
	Angle   float64
	Shadow  float64
	Visible bool
}

// RenderState is the per-update snapshot consumed by a Renderer
// Static halves always describe the resting tile; overlays are only visible
// while a transition is in flight
type RenderState struct {
	StaticTop     Segment
	StaticBottom  Segment
	OverlayTop    Segment
	OverlayBottom Segment

	State     SequencerState
	Direction Direction
	Progress  float64
}

// InFlight reports whether overlays are part of the frame
func (r RenderState) InFlight() bool {
	return r.OverlayTop.Visible || r.OverlayBottom.Visible
}

// Renderer paints RenderState snapshots
// Implementations must not call back into the Sequencer from Render
type Renderer interface {
	Render(state RenderState)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(state RenderState)

// Render calls f(state)
func (f RendererFunc) Render(state RenderState) { f(state) }
