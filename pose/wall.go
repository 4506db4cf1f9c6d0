package pose

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/huweili0726/cesium-map/geodesy"
	"github.com/huweili0726/cesium-map/model"
)

// WallColumn is one vertical ribbon edge: the ECEF positions of the
// wall at a single footprint vertex, extruded between the wall's height
// bounds. S is the normalized position of the column along the ribbon;
// the t texture coordinate runs 0 at Bottom to 1 at Top.
type WallColumn struct {
	Bottom mgl64.Vec3
	Top    mgl64.Vec3
	S      float64
}

// WallGeometry is a ribbon surface through an ordered sequence of
// footprint vertices. Column count equals input vertex count and
// ordering is preserved; the flame and flow materials rely on the
// resulting s/t texture mapping.
type WallGeometry struct {
	Columns []WallColumn
}

// BuildWallRibbon extrudes the wall footprint vertically between
// MinHeight and MaxHeight. At least two vertices are required and
// MaxHeight must exceed MinHeight, otherwise the wall degenerates.
func BuildWallRibbon(spec model.WallSpec) (WallGeometry, error) {
	if len(spec.Vertices) < 2 {
		return WallGeometry{}, fmt.Errorf("%w: wall needs at least 2 vertices, got %d",
			ErrDegenerateGeometry, len(spec.Vertices))
	}
	if spec.MaxHeight <= spec.MinHeight {
		return WallGeometry{}, fmt.Errorf("%w: wall height range [%v, %v] is empty",
			ErrDegenerateGeometry, spec.MinHeight, spec.MaxHeight)
	}

	columns := make([]WallColumn, len(spec.Vertices))
	for i, v := range spec.Vertices {
		bottom := v
		bottom.Height = spec.MinHeight
		top := v
		top.Height = spec.MaxHeight

		columns[i] = WallColumn{
			Bottom: geodesy.CartographicToCartesian(bottom),
			Top:    geodesy.CartographicToCartesian(top),
			S:      float64(i) / float64(len(spec.Vertices)-1),
		}
	}

	return WallGeometry{Columns: columns}, nil
}
