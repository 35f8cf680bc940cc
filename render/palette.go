package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/gdamore/tcell/v2"
)

// Palette colors a tile
type Palette struct {
	Background RGB
	Face       RGB
	Ink        RGB
	Divider    RGB
	Focus      RGB
	Status     RGB
}

var palettes = map[string]Palette{
	"classic": {
		Background: MustHex("#101010"),
		Face:       MustHex("#2b2b2b"),
		Ink:        MustHex("#f2c14e"),
		Divider:    MustHex("#050505"),
		Focus:      MustHex("#e07a1f"),
		Status:     MustHex("#8a8a8a"),
	},
	"paper": {
		Background: MustHex("#d8d4c8"),
		Face:       MustHex("#f7f3e8"),
		Ink:        MustHex("#1a1a1a"),
		Divider:    MustHex("#9c978a"),
		Focus:      MustHex("#b03a2e"),
		Status:     MustHex("#4a4a4a"),
	},
	"terminal": {
		Background: MustHex("#000000"),
		Face:       MustHex("#1c2a1c"),
		Ink:        MustHex("#4af626"),
		Divider:    MustHex("#000000"),
		Focus:      MustHex("#9dff8a"),
		Status:     MustHex("#2f8f2f"),
	},
}

// DefaultPalette is used when no color is configured
const DefaultPalette = "classic"

// PaletteNames lists available palettes in sorted order
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LookupPalette returns the named palette
// An unknown name reports the closest known palette
func LookupPalette(name string) (Palette, error) {
	key := strings.ToLower(name)
	p, ok := palettes[key]
	if !ok {
		if guess := closestPalette(key); guess != "" {
			return Palette{}, fmt.Errorf("render: unknown palette %q (did you mean %q?)", name, guess)
		}
		return Palette{}, fmt.Errorf("render: unknown palette %q (have %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

// closestPalette returns the palette name within edit distance 2 of name, or ""
func closestPalette(name string) string {
	best, bestDist := "", 3
	for _, k := range PaletteNames() {
		if d := levenshtein.ComputeDistance(name, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// faceStyle is the style of a half-tile face under shadow
func (p Palette) faceStyle(shadow float64) tcell.Style {
	return tcell.StyleDefault.
		Background(Shade(p.Face, shadow).Color()).
		Foreground(Shade(p.Ink, shadow).Color())
}

func (p Palette) dividerStyle(focused bool) tcell.Style {
	fg := p.Divider
	if focused {
		fg = p.Focus
	}
	return tcell.StyleDefault.Background(p.Background.Color()).Foreground(fg.Color())
}

func (p Palette) statusStyle() tcell.Style {
	return tcell.StyleDefault.Background(p.Background.Color()).Foreground(p.Status.Color())
}

func (p Palette) backgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(p.Background.Color())
}
