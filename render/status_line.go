package render

// StatusLine draws a single row of text under the tiles
type StatusLine struct {
	surface Surface
	rect    Rect
	palette Palette
}

// NewStatusLine creates a status line spanning rect's first row
func NewStatusLine(surface Surface, rect Rect, palette Palette) *StatusLine {
	rect.H = 1
	return &StatusLine{surface: surface, rect: rect, palette: palette}
}

// SetRect moves the status line
func (s *StatusLine) SetRect(r Rect) {
	r.H = 1
	s.rect = r
}

// Draw clears the row and writes left and right-aligned text
// Right text is dropped when both do not fit
func (s *StatusLine) Draw(left, right string) {
	style := s.palette.statusStyle()
	Fill(s.surface, s.rect, ' ', style)

	used := DrawText(s.surface, s.rect.X, s.rect.Y, s.rect.W, left, style)
	if right == "" {
		return
	}
	w := textWidth(right)
	if used+1+w > s.rect.W {
		return
	}
	DrawText(s.surface, s.rect.X+s.rect.W-w, s.rect.Y, w, right, style)
}
