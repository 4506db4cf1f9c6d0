package geodesy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/huweili0726/cesium-map/model"
)

// EastNorthUp holds the orthonormal basis of the local tangent frame at
// a point on the ellipsoid, expressed in ECEF coordinates. Up is the
// geodetic surface normal, not the geocentric radial direction; the two
// differ everywhere except at the equator and the poles.
type EastNorthUp struct {
	East  mgl64.Vec3
	North mgl64.Vec3
	Up    mgl64.Vec3
}

// EastNorthUpFrame computes the local tangent frame at a geodetic
// position. The basis varies with position on the ellipsoid, so the
// choice of evaluation point matters for any orientation derived from
// it.
func EastNorthUpFrame(c model.Cartographic) EastNorthUp {
	lon := c.Lon * math.Pi / 180.0

	up := SurfaceNormal(c)
	east := mgl64.Vec3{-math.Sin(lon), math.Cos(lon), 0}
	north := up.Cross(east)

	return EastNorthUp{East: east, North: north, Up: up}
}

// Rotation returns the frame as a rotation matrix whose columns are the
// east, north, and up basis vectors. It maps local ENU coordinates into
// ECEF.
func (f EastNorthUp) Rotation() mgl64.Mat3 {
	return mgl64.Mat3FromCols(f.East, f.North, f.Up)
}

// OrientationRotation composes the local tangent frame at the given
// position with intrinsic heading, pitch, and roll rotations, in that
// order. The resulting matrix maps the primitive's local frame into
// ECEF: local +Z is the symmetry axis, which ends up pointing along the
// compass heading (clockwise from north) tilted up from horizontal by
// the pitch angle. Roll spins the primitive about its own axis.
//
// The ordering heading -> pitch -> roll is a contract: reversing it
// changes the resulting axis for any nonzero roll.
func OrientationRotation(c model.Cartographic, o model.HeadingPitchRoll) mgl64.Mat3 {
	enu := EastNorthUpFrame(c).Rotation()

	heading := mgl64.Rotate3DZ(-o.Heading)
	pitch := mgl64.Rotate3DX(o.Pitch - math.Pi/2)
	roll := mgl64.Rotate3DZ(o.Roll)

	return enu.Mul3(heading).Mul3(pitch).Mul3(roll)
}

// OrientationQuaternion is OrientationRotation expressed as a unit
// quaternion, the form the primitive construction API consumes.
func OrientationQuaternion(c model.Cartographic, o model.HeadingPitchRoll) mgl64.Quat {
	return mgl64.Mat4ToQuat(OrientationRotation(c, o).Mat4()).Normalize()
}
