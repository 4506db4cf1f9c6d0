package material

import "github.com/huweili0726/cesium-map/model"

// Flame is the wall fire material. Its phase derives from the
// renderer's frame counter rather than wall-clock time:
//
//	flameHeight = fract(frame * baseRate * speed)
//
// so the animation rate follows rendering cadence.
type Flame struct {
	color     model.Color
	speed     float64
	maxHeight float64
}

// NewFlame constructs a flame material. speed multiplies the base
// per-frame advance; maxHeight is the flame's reach in t texture space.
// A non-positive maxHeight falls back to the full-height default of 1,
// which keeps the shader's height division defined.
func NewFlame(color model.Color, speed, maxHeight float64) *Flame {
	if maxHeight <= 0 {
		maxHeight = 1
	}
	return &Flame{color: color, speed: speed, maxHeight: maxHeight}
}

// TypeName implements Material.
func (m *Flame) TypeName() string { return TypeFlame }

// Source implements Material.
func (m *Flame) Source() ShaderSource { return flameFragment }

// Snapshot implements Material.
func (m *Flame) Snapshot(s Sample) Snapshot {
	return Snapshot{
		Color: m.color,
		Scalars: map[string]float64{
			"speed":       m.speed,
			"maxHeight":   m.maxHeight,
			"flameHeight": FramePhase(s.Frame, frameBaseRate*m.speed),
		},
	}
}

// Equal implements Material. Flame materials are equal only when they
// are the same instance.
func (m *Flame) Equal(other Material) bool {
	return m == other
}
