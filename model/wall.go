package model

// WallSurface selects the procedural surface animated across a wall.
type WallSurface int

const (
	// WallSurfaceFlame renders a rising fire pattern.
	WallSurfaceFlame WallSurface = iota
	// WallSurfaceFlow renders a banded glow translating along the wall.
	WallSurfaceFlow
)

// String returns the surface name used for material-type registration.
func (s WallSurface) String() string {
	switch s {
	case WallSurfaceFlow:
		return "flow"
	default:
		return "flame"
	}
}

// WallSpec describes a perimeter wall extruded vertically through an
// ordered sequence of geodetic footprint vertices.
//
// Field defaults (applied by the effect registry when zero):
//   - Surface: WallSurfaceFlame
//   - Color: ColorOrange (flame) or ColorCyan (flow)
//   - Speed: 1.0
type WallSpec struct {
	// Vertices is the ordered ground footprint. At least 2 required;
	// ordering is preserved in the generated ribbon and drives the
	// s texture coordinate of the animated surface.
	Vertices []Cartographic

	// MinHeight and MaxHeight bound the vertical extrusion in metres.
	// MaxHeight must be strictly greater than MinHeight.
	MinHeight float64
	MaxHeight float64

	// Surface selects the animated pattern.
	Surface WallSurface

	// Color tints the pattern.
	Color Color

	// Speed is the animation rate multiplier applied to the renderer's
	// frame counter.
	Speed float64
}
