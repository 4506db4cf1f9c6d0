package effects

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/huweili0726/cesium-map/model"
	"github.com/huweili0726/cesium-map/pose"
)

func testConeSpec() model.ConeSpec {
	return model.ConeSpec{
		Anchor:      model.Cartographic{Lon: 114, Lat: 35},
		Orientation: model.HeadingPitchRoll{Heading: 135 * math.Pi / 180},
		AxialLength: 500000,
		BaseRadius:  50000,
		Thickness:   0.3,
	}
}

func testWallSpec() model.WallSpec {
	return model.WallSpec{
		Vertices: []model.Cartographic{
			{Lon: 0, Lat: 0},
			{Lon: 1, Lat: 0},
			{Lon: 1, Lat: 1},
		},
		MaxHeight: 100,
	}
}

func TestCreateCone_StoresPrimitive(t *testing.T) {
	engine := NewMemoryEngine()
	reg := NewRegistry(engine)

	h, err := reg.CreateCone(context.Background(), "scan-1", testConeSpec())
	if err != nil {
		t.Fatalf("CreateCone: %v", err)
	}
	if h.IsZero() {
		t.Fatalf("zero handle from successful create")
	}
	if engine.PrimitiveCount() != 1 {
		t.Errorf("engine has %d primitives, want 1", engine.PrimitiveCount())
	}

	params, ok := engine.Primitive(h)
	if !ok {
		t.Fatalf("engine does not know handle %v", h)
	}
	if params.Cone == nil {
		t.Fatalf("primitive has no cone geometry")
	}
	if params.Cone.TopRadius != 0 {
		t.Errorf("cone top radius = %v, want 0 (apex)", params.Cone.TopRadius)
	}

	// The engine received the solved pose: centroid half a length
	// behind the apex.
	spec := testConeSpec()
	want, err := pose.SolveCone(spec.Anchor, spec.Orientation, spec.AxialLength)
	if err != nil {
		t.Fatalf("SolveCone: %v", err)
	}
	if params.Center.Sub(want.Center).Len() > 1e-6 {
		t.Errorf("primitive center = %v, want %v", params.Center, want.Center)
	}
}

func TestCreateCone_DuplicateID(t *testing.T) {
	engine := NewMemoryEngine()
	reg := NewRegistry(engine)
	ctx := context.Background()

	if _, err := reg.CreateCone(ctx, "dup", testConeSpec()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := reg.CreateCone(ctx, "dup", testConeSpec())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second create: got %v, want ErrAlreadyExists", err)
	}

	// Exactly one live entry and one engine primitive: the duplicate
	// attempt had no side effects.
	if reg.Len() != 1 {
		t.Errorf("registry has %d entries, want 1", reg.Len())
	}
	if engine.PrimitiveCount() != 1 {
		t.Errorf("engine has %d primitives, want 1", engine.PrimitiveCount())
	}
}

func TestCreateCone_InvalidSpec(t *testing.T) {
	reg := NewRegistry(NewMemoryEngine())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.ConeSpec)
	}{
		{"zero axial length", func(s *model.ConeSpec) { s.AxialLength = 0 }},
		{"negative axial length", func(s *model.ConeSpec) { s.AxialLength = -5 }},
		{"negative base radius", func(s *model.ConeSpec) { s.BaseRadius = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := testConeSpec()
			tc.mutate(&spec)
			if _, err := reg.CreateCone(ctx, "bad-"+tc.name, spec); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("got %v, want ErrInvalidSpec", err)
			}
		})
	}

	if _, err := reg.CreateCone(ctx, "", testConeSpec()); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("empty id: got %v, want ErrInvalidSpec", err)
	}
	if reg.Len() != 0 {
		t.Errorf("failed creations left %d entries", reg.Len())
	}
}

func TestCreateWall_VertexCountRule(t *testing.T) {
	reg := NewRegistry(NewMemoryEngine())
	ctx := context.Background()

	short := testWallSpec()
	short.Vertices = short.Vertices[:1]
	if _, err := reg.CreateWall(ctx, "wall-short", short); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("1 vertex: got %v, want ErrInvalidSpec", err)
	}

	two := testWallSpec()
	two.Vertices = two.Vertices[:2]
	if _, err := reg.CreateWall(ctx, "wall-two", two); err != nil {
		t.Errorf("2 vertices: %v", err)
	}
}

func TestCreateWall_SurfaceSelection(t *testing.T) {
	engine := NewMemoryEngine()
	reg := NewRegistry(engine)
	ctx := context.Background()

	flame := testWallSpec()
	hFlame, err := reg.CreateWall(ctx, "wall-flame", flame)
	if err != nil {
		t.Fatalf("flame wall: %v", err)
	}

	flow := testWallSpec()
	flow.Surface = model.WallSurfaceFlow
	hFlow, err := reg.CreateWall(ctx, "wall-flow", flow)
	if err != nil {
		t.Fatalf("flow wall: %v", err)
	}

	pFlame, _ := engine.Primitive(hFlame)
	pFlow, _ := engine.Primitive(hFlow)
	if pFlame.Material.TypeName() == pFlow.Material.TypeName() {
		t.Errorf("flame and flow walls share material type %q", pFlame.Material.TypeName())
	}
	if len(pFlame.Wall.Columns) != 3 {
		t.Errorf("wall has %d columns, want 3", len(pFlame.Wall.Columns))
	}
}

func TestDestroy(t *testing.T) {
	engine := NewMemoryEngine()
	reg := NewRegistry(engine)
	ctx := context.Background()

	if _, err := reg.CreateCone(ctx, "gone", testConeSpec()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := reg.Destroy(ctx, "gone"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry still has %d entries", reg.Len())
	}
	if engine.PrimitiveCount() != 0 {
		t.Errorf("engine still has %d primitives", engine.PrimitiveCount())
	}

	// A second destroy finds nothing.
	if err := reg.Destroy(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second destroy: got %v, want ErrNotFound", err)
	}
}

func TestDestroy_UnknownID(t *testing.T) {
	reg := NewRegistry(NewMemoryEngine())
	if err := reg.Destroy(context.Background(), "never-created"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGet(t *testing.T) {
	reg := NewRegistry(NewMemoryEngine())
	ctx := context.Background()

	created, err := reg.CreateCone(ctx, "findme", testConeSpec())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok := reg.Get("findme")
	if !ok || got != created {
		t.Errorf("Get = (%v, %v), want (%v, true)", got, ok, created)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Errorf("Get on unknown id reported a handle")
	}
}

func TestCreate_HostUnavailable(t *testing.T) {
	ctx := context.Background()

	// No engine at all.
	reg := NewRegistry(nil)
	if _, err := reg.CreateCone(ctx, "no-host", testConeSpec()); !errors.Is(err, ErrHostUnavailable) {
		t.Errorf("nil engine: got %v, want ErrHostUnavailable", err)
	}

	// Engine that rejects construction.
	engine := NewMemoryEngine()
	engine.FailCreates = true
	reg = NewRegistry(engine)
	if _, err := reg.CreateCone(ctx, "reject", testConeSpec()); !errors.Is(err, ErrHostUnavailable) {
		t.Errorf("failing engine: got %v, want ErrHostUnavailable", err)
	}
	if reg.Len() != 0 {
		t.Errorf("failed creation left %d entries", reg.Len())
	}
}

type panickyEngine struct{ *MemoryEngine }

func (panickyEngine) CreatePrimitive(context.Context, PrimitiveParams) (Handle, error) {
	panic("shader compilation exploded")
}

func TestCreate_EnginePanicTranslated(t *testing.T) {
	reg := NewRegistry(panickyEngine{NewMemoryEngine()})
	if _, err := reg.CreateCone(context.Background(), "boom", testConeSpec()); !errors.Is(err, ErrHostUnavailable) {
		t.Errorf("got %v, want ErrHostUnavailable", err)
	}
}

func TestZoomTo(t *testing.T) {
	engine := NewMemoryEngine()
	reg := NewRegistry(engine)
	ctx := context.Background()

	if _, err := reg.CreateCone(ctx, "cam", testConeSpec()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := reg.ZoomTo(ctx, "cam"); err != nil {
		t.Fatalf("ZoomTo: %v", err)
	}

	target := engine.LastFlyTo()
	if target.Lon != 114 || target.Lat != 35 {
		t.Errorf("camera target = (%v, %v), want (114, 35)", target.Lon, target.Lat)
	}

	if err := reg.ZoomTo(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ZoomTo unknown id: got %v, want ErrNotFound", err)
	}
}

type countingRecorder struct {
	created   int
	destroyed int
	failed    int
	live      int
}

func (c *countingRecorder) EffectCreated(string)      { c.created++ }
func (c *countingRecorder) EffectDestroyed()          { c.destroyed++ }
func (c *countingRecorder) EffectCreateFailed(string) { c.failed++ }
func (c *countingRecorder) SetLiveEffects(n int)      { c.live = n }

func TestRegistry_MetricsRecorder(t *testing.T) {
	rec := &countingRecorder{}
	reg := NewRegistry(NewMemoryEngine(), WithMetrics(rec))
	ctx := context.Background()

	if _, err := reg.CreateCone(ctx, "m1", testConeSpec()); err != nil {
		t.Fatalf("create: %v", err)
	}
	reg.CreateCone(ctx, "m1", testConeSpec()) // duplicate
	if _, err := reg.CreateWall(ctx, "m2", testWallSpec()); err != nil {
		t.Fatalf("create wall: %v", err)
	}
	if err := reg.Destroy(ctx, "m1"); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if rec.created != 2 || rec.destroyed != 1 || rec.failed != 1 {
		t.Errorf("recorder = %+v", rec)
	}
	if rec.live != 1 {
		t.Errorf("live gauge = %d, want 1", rec.live)
	}
}
