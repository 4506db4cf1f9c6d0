package geodesy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/huweili0726/cesium-map/model"
)

// WGS84 reference ellipsoid parameters, metres.
const (
	// SemiMajorAxis is the WGS84 equatorial radius.
	SemiMajorAxis = 6378137.0
	// Flattening is the WGS84 flattening factor.
	Flattening = 1.0 / 298.257223563
	// SemiMinorAxis is the WGS84 polar radius derived from the flattening.
	SemiMinorAxis = SemiMajorAxis * (1.0 - Flattening)

	// firstEccentricitySquared = e² = f(2−f) for WGS84.
	firstEccentricitySquared = Flattening * (2.0 - Flattening)
)

// CartographicToCartesian converts a geodetic position to an ECEF
// Cartesian point in metres.
func CartographicToCartesian(c model.Cartographic) mgl64.Vec3 {
	lon := c.Lon * math.Pi / 180.0
	lat := c.Lat * math.Pi / 180.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Prime vertical radius of curvature.
	n := SemiMajorAxis / math.Sqrt(1.0-firstEccentricitySquared*sinLat*sinLat)

	return mgl64.Vec3{
		(n + c.Height) * cosLat * math.Cos(lon),
		(n + c.Height) * cosLat * math.Sin(lon),
		(n*(1.0-firstEccentricitySquared) + c.Height) * sinLat,
	}
}

// CartesianToCartographic converts an ECEF Cartesian point in metres
// back to a geodetic position. The latitude is solved iteratively; the
// iteration converges to well below a micrometre in a handful of steps
// for any point outside the Earth's core.
func CartesianToCartographic(p mgl64.Vec3) model.Cartographic {
	lon := math.Atan2(p.Y(), p.X())

	// Distance from the rotation axis.
	rho := math.Hypot(p.X(), p.Y())

	// Initial guess ignoring ellipsoidal flattening.
	lat := math.Atan2(p.Z(), rho*(1.0-firstEccentricitySquared))

	var height float64
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		n := SemiMajorAxis / math.Sqrt(1.0-firstEccentricitySquared*sinLat*sinLat)
		if math.Abs(lat) < math.Pi/4 {
			height = rho/math.Cos(lat) - n
		} else {
			// Near the poles rho/cos(lat) is ill-conditioned; use the
			// z-based form instead.
			height = p.Z()/sinLat - n*(1.0-firstEccentricitySquared)
		}
		next := math.Atan2(p.Z(), rho*(1.0-firstEccentricitySquared*n/(n+height)))
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}

	return model.Cartographic{
		Lon:    lon * 180.0 / math.Pi,
		Lat:    lat * 180.0 / math.Pi,
		Height: height,
	}
}

// SurfaceNormal returns the geodetic (ellipsoid) surface normal at the
// given position, as a unit vector in ECEF coordinates.
func SurfaceNormal(c model.Cartographic) mgl64.Vec3 {
	lon := c.Lon * math.Pi / 180.0
	lat := c.Lat * math.Pi / 180.0
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		cosLat * math.Cos(lon),
		cosLat * math.Sin(lon),
		math.Sin(lat),
	}
}
