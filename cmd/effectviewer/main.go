// Command effectviewer previews the three procedural effect surfaces
// by rasterizing their uniform snapshots CPU-side, one panel per
// material. Its draw loop supplies the monotonically increasing frame
// counter that drives the frame-driven flame and flow materials, so
// the preview animates exactly the way a GPU host would see it.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/huweili0726/cesium-map/effects"
	"github.com/huweili0726/cesium-map/internal/logging"
	"github.com/huweili0726/cesium-map/material"
	"github.com/huweili0726/cesium-map/model"
)

const (
	panelSize   = 180
	panelGap    = 12
	screenW     = panelSize*3 + panelGap*4
	screenH     = panelSize + panelGap*2 + 16
	previewTile = 2 // s-axis repetitions for the wall surfaces
)

type viewer struct {
	engine    *effects.MemoryEngine
	materials []material.Material
	labels    []string

	panels []*ebiten.Image
	pixels []byte
}

func newViewer() (*viewer, error) {
	ctx := context.Background()
	engine := effects.NewMemoryEngine()
	registry := effects.NewRegistry(engine, effects.WithLogger(logging.NewFromEnv()))

	// Create one effect per material variant and pull the constructed
	// materials back out of the engine, the same way a real host's
	// draw loop would.
	hSweep, err := registry.CreateCone(ctx, "preview-sweep", model.ConeSpec{
		Anchor:      model.Cartographic{Lon: 114, Lat: 35},
		AxialLength: 500000,
		BaseRadius:  100000,
		Thickness:   0.35,
		SweepPeriod: 3 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create sweep cone: %w", err)
	}

	wall := model.WallSpec{
		Vertices:  []model.Cartographic{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}},
		MaxHeight: 1000,
	}
	hFlame, err := registry.CreateWall(ctx, "preview-flame", wall)
	if err != nil {
		return nil, fmt.Errorf("create flame wall: %w", err)
	}
	wall.Surface = model.WallSurfaceFlow
	wall.Speed = 3
	hFlow, err := registry.CreateWall(ctx, "preview-flow", wall)
	if err != nil {
		return nil, fmt.Errorf("create flow wall: %w", err)
	}

	v := &viewer{
		engine: engine,
		labels: []string{"sweep", "flame", "flow"},
		pixels: make([]byte, panelSize*panelSize*4),
	}
	for _, h := range []effects.Handle{hSweep, hFlame, hFlow} {
		params, ok := engine.Primitive(h)
		if !ok {
			return nil, fmt.Errorf("engine lost primitive %v", h)
		}
		v.materials = append(v.materials, params.Material)
		v.panels = append(v.panels, ebiten.NewImage(panelSize, panelSize))
	}
	return v, nil
}

func (v *viewer) Update() error {
	// One engine frame per drawn frame.
	v.engine.Tick()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	sample := material.Sample{Time: time.Now(), Frame: v.engine.FrameCounter()}

	for i, mat := range v.materials {
		snap := mat.Snapshot(sample)
		v.rasterize(mat.TypeName(), snap)
		v.panels[i].WritePixels(v.pixels)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(panelGap+i*(panelSize+panelGap)), panelGap)
		screen.DrawImage(v.panels[i], op)
		ebitenutil.DebugPrintAt(screen, v.labels[i],
			panelGap+i*(panelSize+panelGap), panelGap+panelSize+2)
	}
}

func (v *viewer) Layout(_, _ int) (int, int) { return screenW, screenH }

// rasterize evaluates one material's procedural pattern over the panel
// in texture space, mirroring the shader payload's fragment logic.
func (v *viewer) rasterize(typeName string, snap material.Snapshot) {
	for y := 0; y < panelSize; y++ {
		// t runs bottom-up, matching the wall ribbon mapping.
		t := 1 - float64(y)/float64(panelSize-1)
		for x := 0; x < panelSize; x++ {
			s := float64(x) / float64(panelSize-1)

			var alpha, brightness float64
			switch typeName {
			case material.TypeSweep:
				alpha, brightness = sweepPattern(s, t, snap.Scalars)
			case material.TypeFlame:
				alpha, brightness = flamePattern(s*previewTile, t, snap.Scalars)
			case material.TypeFlow:
				alpha, brightness = flowPattern(s*previewTile, t, snap.Scalars)
			}

			off := (y*panelSize + x) * 4
			v.pixels[off+0] = channel(snap.Color.R * brightness * alpha)
			v.pixels[off+1] = channel(snap.Color.G * brightness * alpha)
			v.pixels[off+2] = channel(snap.Color.B * brightness * alpha)
			v.pixels[off+3] = channel(snap.Color.A * alpha)
		}
	}
}

func channel(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}

func main() {
	v, err := newViewer()
	if err != nil {
		panic(err)
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("effect material preview")
	if err := ebiten.RunGame(v); err != nil {
		panic(err)
	}
}
