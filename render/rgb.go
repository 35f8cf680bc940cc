package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the shadow target
var RGBBlack = RGB{0, 0, 0}

// ParseHex reads "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("render: color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}, nil
}

// MustHex is ParseHex for package-level palettes
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// linear converts c for blending in go-colorful
func (c RGB) linear() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes src over c by alpha in linear RGB
// Alpha at or past the ends returns an input unchanged
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	r, g, b := c.linear().BlendLinearRgb(src.linear(), alpha).Clamped().RGB255()
	return RGB{r, g, b}
}

// Shade darkens c toward black by intensity
func Shade(c RGB, intensity float64) RGB {
	return Blend(c, RGBBlack, intensity)
}

// Luma returns the perceived brightness in [0,1]
func (c RGB) Luma() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}
