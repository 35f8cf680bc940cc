package render

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/splitflap/engine"
	"github.com/lixenwraith/splitflap/vmath"
)

const (
	dividerRune = '─'
	flightRune  = '━'
)

// MinTileHeight is one row per half plus the divider
const MinTileHeight = 3

// TileRenderer paints one tile's RenderState onto a Surface
// Layout, top to bottom: top half, divider row at the hinge, bottom half
// Each half shows its label on the row touching the hinge
type TileRenderer struct {
	surface Surface
	rect    Rect
	palette Palette
	focused bool

	last engine.RenderState
}

// NewTileRenderer creates a renderer for the tile occupying rect
func NewTileRenderer(surface Surface, rect Rect, palette Palette) *TileRenderer {
	if rect.H < MinTileHeight {
		rect.H = MinTileHeight
	}
	if rect.W < 1 {
		rect.W = 1
	}
	return &TileRenderer{surface: surface, rect: rect, palette: palette}
}

// Rect returns the tile bounds
func (t *TileRenderer) Rect() Rect { return t.rect }

// SetRect moves the tile; the caller repaints
func (t *TileRenderer) SetRect(r Rect) {
	if r.H < MinTileHeight {
		r.H = MinTileHeight
	}
	t.rect = r
}

// SetFocused marks the tile as the keyboard target
func (t *TileRenderer) SetFocused(focused bool) {
	t.focused = focused
}

// HalfHeight returns the rows in one half
func (t *TileRenderer) HalfHeight() int {
	return (t.rect.H - 1) / 2
}

// Hinge returns the divider row
func (t *TileRenderer) Hinge() int {
	return t.rect.Y + t.HalfHeight()
}

// Render implements engine.Renderer
func (t *TileRenderer) Render(state engine.RenderState) {
	t.last = state
	t.Paint()
}

// Paint redraws the last received state
func (t *TileRenderer) Paint() {
	rs := t.last
	half := t.HalfHeight()

	t.paintHalf(rs.StaticTop, true, half)
	t.paintHalf(rs.StaticBottom, false, half)

	if rs.OverlayTop.Visible {
		t.paintHalf(rs.OverlayTop, true, VisibleRows(rs.OverlayTop.Angle, half))
	}
	if rs.OverlayBottom.Visible {
		t.paintHalf(rs.OverlayBottom, false, VisibleRows(rs.OverlayBottom.Angle, half))
	}

	ch := dividerRune
	if rs.InFlight() {
		ch = flightRune
	}
	Fill(t.surface, Rect{X: t.rect.X, Y: t.Hinge(), W: t.rect.W, H: 1}, ch, t.palette.dividerStyle(t.focused))

	// Rows below an odd remainder belong to no half
	for y := t.Hinge() + half + 1; y < t.rect.Y+t.rect.H; y++ {
		Fill(t.surface, Rect{X: t.rect.X, Y: y, W: t.rect.W, H: 1}, ' ', t.palette.backgroundStyle())
	}
}

// VisibleRows is the projected height of a half rotated by angle degrees
// about the hinge, in rows of a half that is half rows tall
func VisibleRows(angle float64, half int) int {
	c := math.Abs(math.Cos(vmath.DegToRad(angle)))
	return int(math.Round(c * float64(half)))
}

// paintHalf fills rows cells outward from the hinge
// A segment that is not visible paints a blank face
func (t *TileRenderer) paintHalf(seg engine.Segment, top bool, rows int) {
	style := t.palette.faceStyle(seg.Shadow)
	hinge := t.Hinge()

	for i := 0; i < rows; i++ {
		y := hinge + 1 + i
		if top {
			y = hinge - 1 - i
		}
		Fill(t.surface, Rect{X: t.rect.X, Y: y, W: t.rect.W, H: 1}, ' ', style)
		if i == 0 && seg.Visible && seg.Label != 0 {
			w := runewidth.RuneWidth(seg.Label)
			if w > t.rect.W || w == 0 {
				continue
			}
			t.surface.SetContent(t.rect.X+(t.rect.W-w)/2, y, seg.Label, nil, style)
		}
	}
}
