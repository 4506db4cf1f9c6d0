package material

import (
	"math"
	"testing"
	"time"

	"github.com/huweili0726/cesium-map/model"
)

func TestSweep_Snapshot(t *testing.T) {
	origin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock, _ := NewClock(origin, 4*time.Second)
	m := NewSweep(model.ColorRed, clock, 8, 0.1, 0.25)

	snap := m.Snapshot(Sample{Time: origin.Add(1 * time.Second)})

	if snap.Color != model.ColorRed {
		t.Errorf("color = %+v", snap.Color)
	}
	if phase := snap.Scalars["phase"]; math.Abs(phase-0.25) > 1e-12 {
		t.Errorf("phase = %v, want 0.25", phase)
	}
	if snap.Scalars["repeat"] != 8 || snap.Scalars["offset"] != 0.1 || snap.Scalars["thickness"] != 0.25 {
		t.Errorf("static uniforms = %v", snap.Scalars)
	}
}

func TestSweep_ThicknessClamped(t *testing.T) {
	clock, _ := NewClock(time.Now(), time.Second)

	if m := NewSweep(model.ColorRed, clock, 1, 0, 1.7); m.Snapshot(Sample{}).Scalars["thickness"] != 1 {
		t.Errorf("thickness not clamped to 1")
	}
	if m := NewSweep(model.ColorRed, clock, 1, 0, -0.3); m.Snapshot(Sample{}).Scalars["thickness"] != 0 {
		t.Errorf("thickness not clamped to 0")
	}
}

func TestSweep_Equality(t *testing.T) {
	clockA, _ := NewClock(time.Now(), time.Second)
	clockB, _ := NewClock(time.Now().Add(time.Hour), 9*time.Second)

	a := NewSweep(model.ColorRed, clockA, 4, 0, 0.5)
	b := NewSweep(model.ColorRed, clockB, 7, 0.2, 0.9)
	c := NewSweep(model.ColorCyan, clockA, 4, 0, 0.5)

	if !a.Equal(a) {
		t.Errorf("sweep not equal to itself")
	}
	// Equality follows colour only; animation parameters are excluded.
	if !a.Equal(b) {
		t.Errorf("same-colour sweeps unequal")
	}
	if a.Equal(c) {
		t.Errorf("different-colour sweeps equal")
	}
}

func TestFlame_FrameDriven(t *testing.T) {
	m := NewFlame(model.ColorOrange, 2, 1)

	// flameHeight = fract(frame * baseRate * speed). With speed 2 the
	// cycle completes every 500 frames.
	snap := m.Snapshot(Sample{Frame: 250})
	if h := snap.Scalars["flameHeight"]; math.Abs(h-0.5) > 1e-12 {
		t.Errorf("flameHeight at frame 250 = %v, want 0.5", h)
	}
	snap = m.Snapshot(Sample{Frame: 500})
	if h := snap.Scalars["flameHeight"]; math.Abs(h) > 1e-12 {
		t.Errorf("flameHeight at frame 500 = %v, want 0", h)
	}

	// Wall-clock time has no effect on a frame-driven material.
	a := m.Snapshot(Sample{Frame: 123, Time: time.Unix(0, 0)})
	b := m.Snapshot(Sample{Frame: 123, Time: time.Unix(99999, 0)})
	if a.Scalars["flameHeight"] != b.Scalars["flameHeight"] {
		t.Errorf("flame phase varies with wall clock")
	}
}

func TestFlame_NonPositiveMaxHeightDefaultsToFull(t *testing.T) {
	for _, maxHeight := range []float64{0, -3} {
		m := NewFlame(model.ColorOrange, 1, maxHeight)
		if got := m.Snapshot(Sample{}).Scalars["maxHeight"]; got != 1 {
			t.Errorf("maxHeight %v defaulted to %v, want 1", maxHeight, got)
		}
	}
}

func TestFlowAndFlame_IdentityEquality(t *testing.T) {
	flameA := NewFlame(model.ColorOrange, 1, 1)
	flameB := NewFlame(model.ColorOrange, 1, 1)
	if !flameA.Equal(flameA) || flameA.Equal(flameB) {
		t.Errorf("flame equality must be identity")
	}

	flowA := NewFlow(model.ColorCyan, 1)
	flowB := NewFlow(model.ColorCyan, 1)
	if !flowA.Equal(flowA) || flowA.Equal(flowB) {
		t.Errorf("flow equality must be identity")
	}
}

func TestFlow_Snapshot(t *testing.T) {
	m := NewFlow(model.ColorCyan, 1)
	snap := m.Snapshot(Sample{Frame: 500})

	if phase := snap.Scalars["phase"]; math.Abs(phase-0.5) > 1e-12 {
		t.Errorf("phase at frame 500 = %v, want 0.5", phase)
	}
	if snap.Scalars["edgeFade"] <= 0 {
		t.Errorf("edgeFade uniform missing")
	}
}

func TestEnsureRegistered_Idempotent(t *testing.T) {
	src := ShaderSource{Name: "TestIdempotent", Fragment: "void main() {}"}

	if err := EnsureRegistered(src); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := EnsureRegistered(src); err != nil {
		t.Fatalf("re-registration of identical source: %v", err)
	}

	got, ok := RegisteredSource("TestIdempotent")
	if !ok || got.Fragment != src.Fragment {
		t.Errorf("lookup after registration failed")
	}
}

func TestEnsureRegistered_ConflictRejected(t *testing.T) {
	src := ShaderSource{Name: "TestConflict", Fragment: "void main() {}"}
	if err := EnsureRegistered(src); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	conflicting := ShaderSource{Name: "TestConflict", Fragment: "void main() { discard; }"}
	if err := EnsureRegistered(conflicting); err == nil {
		t.Errorf("conflicting re-registration succeeded")
	}

	// The original source survives.
	got, _ := RegisteredSource("TestConflict")
	if got.Fragment != src.Fragment {
		t.Errorf("conflicting registration replaced the original")
	}
}

func TestEnsureRegistered_RejectsUnnamed(t *testing.T) {
	if err := EnsureRegistered(ShaderSource{Fragment: "x"}); err == nil {
		t.Errorf("unnamed source accepted")
	}
}
