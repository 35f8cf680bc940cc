package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/splitflap/render"
	"github.com/lixenwraith/splitflap/vmath"
)

// Flipper is the tile surface a gesture drives
// *engine.Sequencer satisfies it
type Flipper interface {
	Next(duration time.Duration) bool
	Previous(duration time.Duration) bool
	BeginDrag(velocity float64) (bool, error)
	UpdateDrag(fraction float64)
	EndDrag() bool
}

// Tile pairs a flipper with the screen area it occupies
type Tile struct {
	Rect    render.Rect
	Flipper Flipper
}

// hinge is the divider row of a tile laid out by render.TileRenderer
func (t Tile) hinge() int {
	return t.Rect.Y + (t.Rect.H-1)/2
}

// GestureKind reports what a mouse event resolved to
type GestureKind uint8

const (
	GestureNone GestureKind = iota
	GesturePress
	GestureTap
	GestureDragBegin
	GestureDragMove
	GestureDragEnd
	GestureRejected
)

// Gesture turns the tcell mouse stream into taps and drags on tiles
// Vertical motion after a press begins a drag: downward flips forward,
// upward backward, with fraction = |dy| / tile height. A release without
// motion is a tap: top half flips forward, bottom half backward
type Gesture struct {
	tiles    []Tile
	duration time.Duration

	pressed  bool
	tile     int
	startY   int
	moved    bool
	dragging bool
	refused  bool
}

// NewGesture creates a recognizer; duration applies to tap flips
func NewGesture(duration time.Duration) *Gesture {
	return &Gesture{duration: duration, tile: -1}
}

// SetTiles replaces the hit-test layout
// A gesture in progress keeps driving its tile
func (g *Gesture) SetTiles(tiles []Tile) {
	g.tiles = append(g.tiles[:0], tiles...)
}

// Active reports whether a drag is in progress
func (g *Gesture) Active() bool {
	return g.dragging
}

// Tile returns the index of the tile under the current press, -1 if none
func (g *Gesture) Tile() int {
	if !g.pressed {
		return -1
	}
	return g.tile
}

// HandleMouse feeds one mouse event
func (g *Gesture) HandleMouse(ev *tcell.EventMouse) GestureKind {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !g.pressed:
		return g.press(x, y)
	case down && g.pressed:
		return g.motion(y)
	case !down && g.pressed:
		return g.release(y)
	}
	return GestureNone
}

func (g *Gesture) press(x, y int) GestureKind {
	idx := g.hit(x, y)
	if idx < 0 {
		return GestureNone
	}
	g.pressed = true
	g.tile = idx
	g.startY = y
	g.moved = false
	g.dragging = false
	g.refused = false
	return GesturePress
}

func (g *Gesture) motion(y int) GestureKind {
	if g.refused || g.tile >= len(g.tiles) {
		return GestureNone
	}
	t := g.tiles[g.tile]
	dy := y - g.startY

	if !g.dragging {
		if dy == 0 {
			return GestureNone
		}
		g.moved = true
		ok, err := t.Flipper.BeginDrag(float64(dy))
		if !ok || err != nil {
			g.refused = true
			return GestureRejected
		}
		g.dragging = true
		t.Flipper.UpdateDrag(g.fraction(t, dy))
		return GestureDragBegin
	}

	t.Flipper.UpdateDrag(g.fraction(t, dy))
	return GestureDragMove
}

func (g *Gesture) release(y int) GestureKind {
	defer g.clear()

	if g.tile >= len(g.tiles) {
		return GestureNone
	}
	t := g.tiles[g.tile]

	if g.dragging {
		t.Flipper.EndDrag()
		return GestureDragEnd
	}
	if g.moved || g.refused || y != g.startY {
		return GestureNone
	}

	var ok bool
	switch h := t.hinge(); {
	case y < h:
		ok = t.Flipper.Next(g.duration)
	case y > h:
		ok = t.Flipper.Previous(g.duration)
	default:
		return GestureNone
	}
	if !ok {
		return GestureRejected
	}
	return GestureTap
}

// Cancel ends a drag in progress, as when the terminal loses the mouse
// A begun drag cannot be undone, so the flip is released to completion
func (g *Gesture) Cancel() {
	if g.dragging && g.tile < len(g.tiles) {
		g.tiles[g.tile].Flipper.EndDrag()
	}
	g.clear()
}

func (g *Gesture) clear() {
	g.pressed = false
	g.dragging = false
	g.moved = false
	g.refused = false
	g.tile = -1
}

func (g *Gesture) fraction(t Tile, dy int) float64 {
	if t.Rect.H <= 0 {
		return 0
	}
	return vmath.Clamp01(vmath.Abs(float64(dy)) / float64(t.Rect.H))
}

func (g *Gesture) hit(x, y int) int {
	for i, t := range g.tiles {
		if t.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}
