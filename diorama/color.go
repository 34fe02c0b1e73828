package diorama

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear-space RGB color, the form the renderer works in.
type Color struct {
	R, G, B float64
}

// ParseColor decodes an sRGB hex string and converts it to linear space.
// The conversion is applied exactly once.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is like ParseColor but panics on malformed input. Use it
// for compile-time constants only.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the sRGB hex representation.
func (c Color) Hex() string {
	return colorful.LinearRgb(c.R, c.G, c.B).Clamped().Hex()
}

func (c Color) String() string {
	return c.Hex()
}
