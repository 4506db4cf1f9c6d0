package model

// Cartographic is a geodetic position on the reference ellipsoid.
// Longitude and latitude are in degrees, height in metres above the
// ellipsoid surface.
type Cartographic struct {
	Lon    float64
	Lat    float64
	Height float64
}

// HeadingPitchRoll carries orientation angles in radians. Heading is
// measured clockwise from local north, pitch positive tilts the axis
// upward from horizontal. Roll is part of the contract but always zero
// in practice.
type HeadingPitchRoll struct {
	Heading float64
	Pitch   float64
	Roll    float64
}
