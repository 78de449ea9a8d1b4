// Package palette defines the colors used by the creature and the
// selection indicators.
package palette

import "github.com/Faultbox/creature-poser/internal/joint"

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Array returns the color as [r, g, b, a] for uniform uploads.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Named colors (X11 values).
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Navy        = RGB(0, 0, 128)
	DarkOrange1 = RGB(255, 127, 0)
	DarkOrange2 = RGB(238, 118, 0)
	DarkOrange3 = RGB(205, 102, 0)
	DarkOrange4 = RGB(139, 69, 0)
	BlueGreen   = RGB(0, 128, 128)
)

// axisColors marks the active axis: u red, v green, w blue.
var axisColors = [joint.AxisCount]Color{Red, Green, Blue}

// AxisColor returns the indicator color for the selected axis.
func AxisColor(a joint.Axis) Color {
	if !a.Valid() {
		panic("palette: invalid axis")
	}
	return axisColors[a]
}
