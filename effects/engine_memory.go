package effects

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/huweili0726/cesium-map/model"
)

// MemoryEngine is an in-memory Engine implementation used by tests and
// the demo commands. It stores constructed primitives by handle and
// models the renderer's draw loop with an explicit Tick.
type MemoryEngine struct {
	mu         sync.Mutex
	primitives map[string]PrimitiveParams
	lastFlyTo  model.Cartographic

	frames atomic.Uint64

	// FailCreates forces CreatePrimitive to error, for exercising the
	// registry's host-failure path.
	FailCreates bool
}

// NewMemoryEngine constructs an empty engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{primitives: make(map[string]PrimitiveParams)}
}

// CreatePrimitive implements Engine. Handles are random UUIDs.
func (e *MemoryEngine) CreatePrimitive(ctx context.Context, params PrimitiveParams) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailCreates {
		return Handle{}, fmt.Errorf("primitive construction rejected")
	}
	if params.Cone == nil && params.Wall == nil {
		return Handle{}, fmt.Errorf("primitive has no geometry")
	}
	if params.Material == nil {
		return Handle{}, fmt.Errorf("primitive has no material")
	}

	h := NewHandle(uuid.NewString())
	e.primitives[h.String()] = params
	return h, nil
}

// RemovePrimitive implements Engine. Removing an unknown handle is an
// error; the registry's exactly-once release contract makes it
// unreachable in normal operation.
func (e *MemoryEngine) RemovePrimitive(ctx context.Context, h Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.primitives[h.String()]; !ok {
		return fmt.Errorf("unknown primitive handle %q", h.String())
	}
	delete(e.primitives, h.String())
	return nil
}

// FlyTo implements Engine by recording the requested camera target.
func (e *MemoryEngine) FlyTo(ctx context.Context, target model.Cartographic, rangeMeters float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastFlyTo = target
	return nil
}

// FrameCounter implements Engine.
func (e *MemoryEngine) FrameCounter() uint64 {
	return e.frames.Load()
}

// Tick advances the frame counter by one drawn frame.
func (e *MemoryEngine) Tick() {
	e.frames.Add(1)
}

// PrimitiveCount returns the number of live primitives.
func (e *MemoryEngine) PrimitiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.primitives)
}

// Primitive returns the stored construction parameters for a handle.
func (e *MemoryEngine) Primitive(h Handle) (PrimitiveParams, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.primitives[h.String()]
	return p, ok
}

// LastFlyTo returns the most recent camera target.
func (e *MemoryEngine) LastFlyTo() model.Cartographic {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastFlyTo
}
