package core

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit terminal color.
type Color struct {
	R, G, B uint8
}

// Black is the background of an empty canvas.
var Black = Color{}

// ColorOf drops the alpha channel of c.
func ColorOf(c color.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
