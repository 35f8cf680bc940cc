package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Surface is the part of tcell.Screen the renderers draw on
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Fill paints every cell of r with ch
func Fill(s Surface, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ch, nil, style)
		}
	}
}

// DrawText writes text from (x, y), clipped at maxWidth columns
// Returns the number of columns used
func DrawText(s Surface, x, y, maxWidth int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxWidth {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}

// textWidth returns the display columns of text
func textWidth(text string) int {
	return runewidth.StringWidth(text)
}
