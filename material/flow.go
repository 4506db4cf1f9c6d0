package material

import "github.com/huweili0726/cesium-map/model"

// flowEdgeFade is the width of the alpha fade near the t texture-space
// boundaries 0 and 1, as a fraction of the texture extent.
const flowEdgeFade = 0.08

// Flow is the wall perimeter material: a banded glow translating along
// the s texture axis. Like Flame, its phase is frame-driven.
type Flow struct {
	color model.Color
	speed float64
}

// NewFlow constructs a flow material with the given speed multiplier.
func NewFlow(color model.Color, speed float64) *Flow {
	return &Flow{color: color, speed: speed}
}

// TypeName implements Material.
func (m *Flow) TypeName() string { return TypeFlow }

// Source implements Material.
func (m *Flow) Source() ShaderSource { return flowFragment }

// Snapshot implements Material.
func (m *Flow) Snapshot(s Sample) Snapshot {
	return Snapshot{
		Color: m.color,
		Scalars: map[string]float64{
			"speed":    m.speed,
			"phase":    FramePhase(s.Frame, frameBaseRate*m.speed),
			"edgeFade": flowEdgeFade,
		},
	}
}

// Equal implements Material. Flow materials are equal only when they
// are the same instance.
func (m *Flow) Equal(other Material) bool {
	return m == other
}
