package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/lumen/pkg/math3d"
)

// PPMColor is an 8-bit display color.
type PPMColor struct {
	R, G, B uint8
}

// ToDisplayColor clamps each channel of c to [0, 1] and scales it to
// 0..255, rounding half up. Only apply it once shading is done.
// Rounding rather than truncating is what maps 0.5 to 128.
func ToDisplayColor(c math3d.Color) PPMColor {
	c = c.Clamp(0, 1)
	return PPMColor{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
	}
}

// String returns the PPM text form "r g b".
func (c PPMColor) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// RGBA returns the opaque color.RGBA for c.
func (c PPMColor) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

// FromColor converts any color.Color to a [0, 1] Color. Fully transparent
// colors become black.
func FromColor(c color.Color) math3d.Color {
	cf, _ := colorful.MakeColor(c)
	return math3d.RGB(cf.R, cf.G, cf.B)
}

// ParseColor parses a "#rgb" or "#rrggbb" hex string.
func ParseColor(s string) (math3d.Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return math3d.Color{}, fmt.Errorf("parse color: %w", err)
	}
	return math3d.RGB(cf.R, cf.G, cf.B), nil
}

// Colors for convenience
var (
	ColorBlack = math3d.RGB(0, 0, 0)
	ColorWhite = math3d.RGB(1, 1, 1)
	ColorRed   = math3d.RGB(1, 0, 0)
	ColorGreen = math3d.RGB(0, 1, 0)
	ColorBlue  = math3d.RGB(0, 0, 1)
	ColorGray  = math3d.RGB(0.5, 0.5, 0.5)
	ColorSky   = math3d.RGB(135.0/255, 206.0/255, 235.0/255)
)
