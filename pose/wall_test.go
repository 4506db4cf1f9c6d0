package pose

import (
	"errors"
	"math"
	"testing"

	"github.com/huweili0726/cesium-map/geodesy"
	"github.com/huweili0726/cesium-map/model"
)

func TestBuildWallRibbon_VertexCountPreserved(t *testing.T) {
	// Worked example: three footprint vertices extruded from 0 to 100m
	// produce three ribbon columns, order preserved.
	spec := model.WallSpec{
		Vertices: []model.Cartographic{
			{Lon: 0, Lat: 0},
			{Lon: 1, Lat: 0},
			{Lon: 1, Lat: 1},
		},
		MinHeight: 0,
		MaxHeight: 100,
	}

	geom, err := BuildWallRibbon(spec)
	if err != nil {
		t.Fatalf("BuildWallRibbon: %v", err)
	}
	if len(geom.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(geom.Columns))
	}

	for i, col := range geom.Columns {
		bottom := geodesy.CartesianToCartographic(col.Bottom)
		top := geodesy.CartesianToCartographic(col.Top)

		if math.Abs(bottom.Height) > 1e-3 {
			t.Errorf("column %d: bottom height %v, want 0", i, bottom.Height)
		}
		if math.Abs(top.Height-100) > 1e-3 {
			t.Errorf("column %d: top height %v, want 100", i, top.Height)
		}
		// Order preserved: columns sit over the input vertices.
		if math.Abs(bottom.Lon-spec.Vertices[i].Lon) > 1e-9 || math.Abs(bottom.Lat-spec.Vertices[i].Lat) > 1e-9 {
			t.Errorf("column %d: footprint (%v, %v), want (%v, %v)",
				i, bottom.Lon, bottom.Lat, spec.Vertices[i].Lon, spec.Vertices[i].Lat)
		}
	}

	// s runs 0..1 along the ribbon.
	wantS := []float64{0, 0.5, 1}
	for i, col := range geom.Columns {
		if math.Abs(col.S-wantS[i]) > 1e-12 {
			t.Errorf("column %d: s = %v, want %v", i, col.S, wantS[i])
		}
	}
}

func TestBuildWallRibbon_TwoVerticesSucceed(t *testing.T) {
	geom, err := BuildWallRibbon(model.WallSpec{
		Vertices:  []model.Cartographic{{Lon: 10, Lat: 10}, {Lon: 11, Lat: 10}},
		MinHeight: 50,
		MaxHeight: 150,
	})
	if err != nil {
		t.Fatalf("BuildWallRibbon: %v", err)
	}
	if len(geom.Columns) != 2 {
		t.Errorf("got %d columns, want 2", len(geom.Columns))
	}
}

func TestBuildWallRibbon_Degenerate(t *testing.T) {
	cases := []struct {
		name string
		spec model.WallSpec
	}{
		{"one vertex", model.WallSpec{
			Vertices:  []model.Cartographic{{Lon: 0, Lat: 0}},
			MaxHeight: 100,
		}},
		{"no vertices", model.WallSpec{MaxHeight: 100}},
		{"empty height range", model.WallSpec{
			Vertices:  []model.Cartographic{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}},
			MinHeight: 100,
			MaxHeight: 100,
		}},
		{"inverted height range", model.WallSpec{
			Vertices:  []model.Cartographic{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}},
			MinHeight: 200,
			MaxHeight: 100,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildWallRibbon(tc.spec); !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("got %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}
