package model

// Color is an RGBA colour with channels in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// ColorRed is the default tint for conical emission effects.
var ColorRed = Color{R: 1, G: 0, B: 0, A: 0.8}

// ColorOrange is the default tint for flame wall effects.
var ColorOrange = Color{R: 0.8, G: 0.3, B: 0.1, A: 1}

// ColorCyan is the default tint for flowing wall effects.
var ColorCyan = Color{R: 0, G: 0.9, B: 1, A: 0.9}

// WithAlpha returns a copy of the colour with the alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}
