package model

import "time"

// ConeSpec describes a directional emission cone anchored at a geodetic
// point. The anchor is the apex of the cone; the cone extends
// AxialLength metres from the apex toward its base along the direction
// given by Orientation.
//
// Field defaults (applied by the effect registry when zero):
//   - Color: ColorRed
//   - SweepPeriod: 3s (one full ring sweep per period)
//   - Repeat: 4 rings per pattern period
type ConeSpec struct {
	// Anchor is the apex position. Immutable once supplied.
	Anchor Cartographic

	// Orientation tilts and turns the cone axis in the local
	// east-north-up frame at the anchor.
	Orientation HeadingPitchRoll

	// AxialLength is the apex-to-base distance in metres. Must be > 0.
	AxialLength float64

	// BaseRadius is the base radius in metres. Must be >= 0.
	BaseRadius float64

	// Thickness is the fraction of the repeating sweep pattern period
	// that is opaque. Clamped to [0, 1].
	Thickness float64

	// Color tints the sweep pattern.
	Color Color

	// SweepPeriod is the wall-clock duration of one full sweep.
	SweepPeriod time.Duration

	// Repeat is the ring density of the sweep pattern.
	Repeat float64

	// Offset shifts the sweep pattern's starting phase.
	Offset float64
}
