package effects

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/huweili0726/cesium-map/material"
	"github.com/huweili0726/cesium-map/model"
	"github.com/huweili0726/cesium-map/pose"
)

// Handle is an opaque reference to a constructed primitive. Each handle
// is owned exclusively by the registry entry it was stored under and is
// released exactly once on destroy.
type Handle struct {
	id string
}

// NewHandle wraps an engine-assigned identifier. Intended for Engine
// implementations; callers treat handles as opaque.
func NewHandle(id string) Handle { return Handle{id: id} }

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool { return h.id == "" }

// String returns the engine-assigned identifier for logging.
func (h Handle) String() string { return h.id }

// ConeGeometry parametrises a solid-of-revolution primitive: a
// truncated cylinder whose top radius is zero, which renders as a cone.
// The engine places it at its centroid along local +Z.
type ConeGeometry struct {
	Length     float64
	BaseRadius float64
	TopRadius  float64
}

// PrimitiveParams is the construction input for the rendering engine's
// primitive API. Exactly one of Cone or Wall is set.
type PrimitiveParams struct {
	Center      mgl64.Vec3
	Orientation mgl64.Quat

	Cone *ConeGeometry
	Wall *pose.WallGeometry

	Material material.Material
}

// Engine is the rendering-engine collaborator boundary. The registry
// drives it synchronously; the engine's own draw loop polls materials
// for uniform snapshots independently (pull model).
type Engine interface {
	// CreatePrimitive constructs a primitive and returns its handle.
	CreatePrimitive(ctx context.Context, params PrimitiveParams) (Handle, error)

	// RemovePrimitive releases a previously constructed primitive.
	RemovePrimitive(ctx context.Context, h Handle) error

	// FlyTo frames the camera on the given geodetic point from the
	// given range in metres.
	FlyTo(ctx context.Context, target model.Cartographic, rangeMeters float64) error

	// FrameCounter returns the renderer's monotonically increasing
	// frame count, the input to frame-driven materials.
	FrameCounter() uint64
}
