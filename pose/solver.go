// Package pose converts geodetic anchors and orientation angles into
// world-space primitive placements. The rendering engine places a
// solid-of-revolution primitive at its centroid; the solver shifts that
// centroid so the primitive's apex lands exactly on the anchor.
package pose

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/huweili0726/cesium-map/geodesy"
	"github.com/huweili0726/cesium-map/model"
)

// ErrDegenerateGeometry indicates a primitive with no usable extent.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Pose is the world-space placement of a primitive: centroid position
// and orientation, both in ECEF.
type Pose struct {
	Center      mgl64.Vec3
	Orientation mgl64.Quat
}

// Axis returns the world-space unit direction of the primitive's
// symmetry axis, pointing from base toward apex.
func (p Pose) Axis() mgl64.Vec3 {
	return p.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
}

// SolveCone computes the pose of a cone-shaped primitive whose apex
// must coincide with the anchor. axialLength is the apex-to-base
// distance in metres and must be positive.
//
// The primitive's local symmetry axis is +Z. The axis is rotated
// through the local east-north-up frame at the anchor composed with the
// intrinsic heading/pitch/roll rotation, yielding the world direction
// D. The primitive spans centroid ± D*(axialLength/2) with the apex at
// the +D end, so the centroid sits half a length behind the anchor:
//
//	centroid = anchor - D * axialLength/2
//
// The orientation quaternion is evaluated at the original anchor, not
// the shifted centroid: the tangent frame basis varies slightly with
// position on the ellipsoid, and the apex is the semantically
// meaningful reference point.
//
// Pitch is not range-restricted. Values outside [-pi/2, pi/2] produce a
// primitive pointing partly or fully downward; that is accepted
// behaviour, not an error.
func SolveCone(anchor model.Cartographic, o model.HeadingPitchRoll, axialLength float64) (Pose, error) {
	if axialLength <= 0 {
		return Pose{}, fmt.Errorf("%w: axial length %v must be positive", ErrDegenerateGeometry, axialLength)
	}

	apex := geodesy.CartographicToCartesian(anchor)
	rot := geodesy.OrientationRotation(anchor, o)

	// Direction transform only: the axis is a vector, not a point, so
	// no translation applies.
	axis := rot.Mul3x1(mgl64.Vec3{0, 0, 1})

	center := apex.Sub(axis.Mul(axialLength / 2))

	return Pose{
		Center:      center,
		Orientation: mgl64.Mat4ToQuat(rot.Mat4()).Normalize(),
	}, nil
}

// Apex reconstructs the anchor point from a solved pose, walking half
// the axial length forward along the symmetry axis. Used to verify the
// anchor-coincidence property.
func Apex(p Pose, axialLength float64) mgl64.Vec3 {
	return p.Center.Add(p.Axis().Mul(axialLength / 2))
}
