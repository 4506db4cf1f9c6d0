package material

import "github.com/huweili0726/cesium-map/model"

// Sweep is the radar-style radial sweep material. Its phase is
// time-driven via a Clock, so two evaluations at different real times
// always see different phases.
type Sweep struct {
	color     model.Color
	clock     Clock
	repeat    float64
	offset    float64
	thickness float64
}

// NewSweep constructs a sweep material. thickness is clamped to [0, 1];
// it controls the fraction of the repeating ring period that is opaque.
func NewSweep(color model.Color, clock Clock, repeat, offset, thickness float64) *Sweep {
	if thickness < 0 {
		thickness = 0
	} else if thickness > 1 {
		thickness = 1
	}
	return &Sweep{
		color:     color,
		clock:     clock,
		repeat:    repeat,
		offset:    offset,
		thickness: thickness,
	}
}

// Color returns the sweep tint.
func (m *Sweep) Color() model.Color { return m.color }

// TypeName implements Material.
func (m *Sweep) TypeName() string { return TypeSweep }

// Source implements Material.
func (m *Sweep) Source() ShaderSource { return sweepFragment }

// Snapshot implements Material. The phase is recomputed from the clock
// on every call.
func (m *Sweep) Snapshot(s Sample) Snapshot {
	return Snapshot{
		Color: m.color,
		Scalars: map[string]float64{
			"phase":     m.clock.Phase(s.Time),
			"repeat":    m.repeat,
			"offset":    m.offset,
			"thickness": m.thickness,
		},
	}
}

// Equal implements Material. Two sweep materials are equal when they
// are the same instance or their colours match; the animation phase is
// deliberately excluded so the engine's property diffing does not see a
// change every frame.
func (m *Sweep) Equal(other Material) bool {
	if m == other {
		return true
	}
	o, ok := other.(*Sweep)
	return ok && o != nil && m.color == o.color
}
