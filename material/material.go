// Package material models the time-driven procedural surfaces applied
// to globe effects. A material never schedules anything: the rendering
// engine polls it once per drawn frame for a snapshot of shader uniform
// values (pull model). The GPU-side pattern evaluation itself lives in
// opaque shader source payloads the core hands to the engine without
// inspecting.
package material

import (
	"time"

	"github.com/huweili0726/cesium-map/model"
)

// Sample carries the two animation inputs a material may consume: the
// current wall-clock time for time-driven variants and the renderer's
// monotonically increasing frame counter for frame-driven ones.
type Sample struct {
	Time  time.Time
	Frame uint64
}

// Snapshot is the uniform-value set for one drawn frame.
type Snapshot struct {
	Color model.Color
	// Scalars holds the shader's scalar uniforms by name.
	Scalars map[string]float64
}

// ShaderSource is an opaque procedural-shader payload. The material
// core only carries it to the rendering engine; the fragment body is
// external-collaborator territory.
type ShaderSource struct {
	Name     string
	Fragment string
}

// Material produces a uniform-value snapshot for a given evaluation
// sample. All three variants (sweep, flame, flow) share this contract.
type Material interface {
	// TypeName identifies the material's shader type in the process-wide
	// type table.
	TypeName() string

	// Source returns the shader payload for the material's type.
	Source() ShaderSource

	// Snapshot evaluates the animation state at the given sample.
	Snapshot(s Sample) Snapshot

	// Equal reports whether two materials are interchangeable for the
	// rendering engine's property diffing. This affects change
	// detection only, never visual output.
	Equal(other Material) bool
}
