// Package effects owns the lifecycle of anchored volumetric globe
// effects: directional emission cones and perimeter walls with
// procedural flame or flow surfaces. Effects are keyed by
// caller-supplied identifiers with at-most-one live effect per id;
// creation is idempotent-safe for retrying callers and teardown is
// explicit.
package effects

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/huweili0726/cesium-map/internal/logging"
	"github.com/huweili0726/cesium-map/material"
	"github.com/huweili0726/cesium-map/model"
	"github.com/huweili0726/cesium-map/pose"
)

// MetricsRecorder receives effect lifecycle counts. Implemented by
// observability.EffectsCollector; a nil recorder drops all updates.
type MetricsRecorder interface {
	EffectCreated(kind string)
	EffectDestroyed()
	EffectCreateFailed(reason string)
	SetLiveEffects(n int)
}

type entry struct {
	handle Handle
	kind   string

	// anchor and viewRange drive ZoomTo camera framing.
	anchor    model.Cartographic
	viewRange float64
}

// Registry maps effect identifiers to live rendering-engine handles.
// The id-to-handle map is the only shared mutable state; all mutations
// run under the registry mutex (single-writer semantics). Concurrent
// create and destroy on the same id remain a caller-side race the
// registry does not resolve.
type Registry struct {
	mu      sync.Mutex
	engine  Engine
	entries map[string]entry

	log     logging.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
	now     func() time.Time
}

// Option customises Registry construction.
type Option func(*Registry)

// WithLogger attaches a structured logger for lifecycle events.
func WithLogger(log logging.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics attaches an optional lifecycle metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithTimeSource overrides the wall clock used to seed sweep material
// origins. Intended for tests.
func WithTimeSource(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry constructs a registry bound to a rendering engine. A nil
// engine is tolerated at construction; creation calls will then fail
// with ErrHostUnavailable until one exists.
func NewRegistry(engine Engine, opts ...Option) *Registry {
	r := &Registry{
		engine:  engine,
		entries: make(map[string]entry),
		log:     logging.Noop(),
		tracer:  otel.Tracer("effects"),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// CreateCone creates a directional emission cone whose apex sits on the
// spec's anchor. Returns ErrAlreadyExists when id has a live effect
// (without side effects), ErrInvalidSpec when validation fails, and
// ErrHostUnavailable when the rendering engine is missing or fails
// during construction. A failed creation leaves the registry unchanged.
func (r *Registry) CreateCone(ctx context.Context, id string, spec model.ConeSpec) (Handle, error) {
	ctx, span := r.tracer.Start(ctx, "effects.CreateCone",
		trace.WithAttributes(attribute.String("effect.id", id)))
	defer span.End()

	h, err := r.createCone(ctx, id, spec)
	if err != nil {
		span.RecordError(err)
		r.recordCreateFailure(ctx, id, "cone", err)
		return Handle{}, err
	}

	r.log.Info(ctx, "effect created",
		logging.String("id", id),
		logging.String("kind", "cone"),
		logging.String("handle", h.String()),
		logging.Float64("lon", spec.Anchor.Lon),
		logging.Float64("lat", spec.Anchor.Lat),
	)
	return h, nil
}

func (r *Registry) createCone(ctx context.Context, id string, spec model.ConeSpec) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWritableLocked(id); err != nil {
		return Handle{}, err
	}
	if err := validateConeSpec(spec); err != nil {
		return Handle{}, err
	}
	applyConeDefaults(&spec)

	p, err := pose.SolveCone(spec.Anchor, spec.Orientation, spec.AxialLength)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	clock, err := material.NewClock(r.now(), spec.SweepPeriod)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	mat := material.NewSweep(spec.Color, clock, spec.Repeat, spec.Offset, spec.Thickness)
	if err := material.EnsureRegistered(mat.Source()); err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}

	h, err := r.constructLocked(ctx, PrimitiveParams{
		Center:      p.Center,
		Orientation: p.Orientation,
		Cone: &ConeGeometry{
			Length:     spec.AxialLength,
			BaseRadius: spec.BaseRadius,
			TopRadius:  0,
		},
		Material: mat,
	})
	if err != nil {
		return Handle{}, err
	}

	r.storeLocked(id, entry{
		handle:    h,
		kind:      "cone",
		anchor:    spec.Anchor,
		viewRange: 3 * spec.AxialLength,
	})
	return h, nil
}

// CreateWall creates a perimeter wall extruded through the spec's
// footprint vertices, surfaced with a flame or flow material. Error
// semantics match CreateCone.
func (r *Registry) CreateWall(ctx context.Context, id string, spec model.WallSpec) (Handle, error) {
	ctx, span := r.tracer.Start(ctx, "effects.CreateWall",
		trace.WithAttributes(attribute.String("effect.id", id)))
	defer span.End()

	h, err := r.createWall(ctx, id, spec)
	if err != nil {
		span.RecordError(err)
		r.recordCreateFailure(ctx, id, "wall", err)
		return Handle{}, err
	}

	r.log.Info(ctx, "effect created",
		logging.String("id", id),
		logging.String("kind", "wall"),
		logging.String("handle", h.String()),
		logging.String("surface", spec.Surface.String()),
		logging.Int("vertices", len(spec.Vertices)),
	)
	return h, nil
}

func (r *Registry) createWall(ctx context.Context, id string, spec model.WallSpec) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWritableLocked(id); err != nil {
		return Handle{}, err
	}
	applyWallDefaults(&spec)

	geom, err := pose.BuildWallRibbon(spec)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	var mat material.Material
	switch spec.Surface {
	case model.WallSurfaceFlow:
		mat = material.NewFlow(spec.Color, spec.Speed)
	default:
		mat = material.NewFlame(spec.Color, spec.Speed, 1)
	}
	if err := material.EnsureRegistered(mat.Source()); err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}

	h, err := r.constructLocked(ctx, PrimitiveParams{
		Wall:     &geom,
		Material: mat,
	})
	if err != nil {
		return Handle{}, err
	}

	r.storeLocked(id, entry{
		handle:    h,
		kind:      "wall",
		anchor:    wallCenter(spec),
		viewRange: 10 * (spec.MaxHeight - spec.MinHeight),
	})
	return h, nil
}

// Destroy removes the effect and instructs the rendering engine to
// release its primitive. Safe to call at most once per successful
// create; a second call returns ErrNotFound. Destruction is immediate
// and unconditional, even mid-animation.
func (r *Registry) Destroy(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "effects.Destroy",
		trace.WithAttributes(attribute.String("effect.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrNotFound, id)
		span.RecordError(err)
		return err
	}

	// The entry is gone regardless of how the engine release fares:
	// the handle is released at most once.
	delete(r.entries, id)
	if r.metrics != nil {
		r.metrics.EffectDestroyed()
		r.metrics.SetLiveEffects(len(r.entries))
	}

	if err := r.releasePrimitive(ctx, e.handle); err != nil {
		span.RecordError(err)
		r.log.Warn(ctx, "primitive release failed",
			logging.String("id", id), logging.Err(err))
		return err
	}

	r.log.Info(ctx, "effect destroyed", logging.String("id", id))
	return nil
}

// Get is a non-mutating lookup of the live handle for id.
func (r *Registry) Get(id string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e.handle, ok
}

// Len returns the number of live effects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ZoomTo frames the camera on the effect's anchor. Camera control is
// delegated entirely to the rendering engine.
func (r *Registry) ZoomTo(ctx context.Context, id string) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	engine := r.engine
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if engine == nil {
		return ErrHostUnavailable
	}
	return engine.FlyTo(ctx, e.anchor, e.viewRange)
}

// checkWritableLocked enforces the duplicate-id and host preconditions,
// in that order: a duplicate id reports AlreadyExists before any
// validation runs, so retrying callers get a stable answer.
func (r *Registry) checkWritableLocked(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty effect id", ErrInvalidSpec)
	}
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, id)
	}
	if r.engine == nil {
		return ErrHostUnavailable
	}
	return nil
}

// constructLocked calls into the engine, translating panics and errors
// from the collaborator into ErrHostUnavailable so construction faults
// never escape the registry boundary uncaught.
func (r *Registry) constructLocked(ctx context.Context, params PrimitiveParams) (h Handle, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			h = Handle{}
			err = fmt.Errorf("%w: primitive construction panicked: %v", ErrHostUnavailable, rec)
		}
	}()

	h, err = r.engine.CreatePrimitive(ctx, params)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}
	return h, nil
}

func (r *Registry) releasePrimitive(ctx context.Context, h Handle) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: primitive release panicked: %v", ErrHostUnavailable, rec)
		}
	}()

	if r.engine == nil {
		return ErrHostUnavailable
	}
	if err := r.engine.RemovePrimitive(ctx, h); err != nil {
		return fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}
	return nil
}

func (r *Registry) storeLocked(id string, e entry) {
	r.entries[id] = e
	if r.metrics != nil {
		r.metrics.EffectCreated(e.kind)
		r.metrics.SetLiveEffects(len(r.entries))
	}
}

func (r *Registry) recordCreateFailure(ctx context.Context, id, kind string, err error) {
	if r.metrics != nil {
		r.metrics.EffectCreateFailed(failureReason(err))
	}
	r.log.Warn(ctx, "effect creation failed",
		logging.String("id", id),
		logging.String("kind", kind),
		logging.Err(err),
	)
}

func validateConeSpec(spec model.ConeSpec) error {
	if spec.AxialLength <= 0 {
		return fmt.Errorf("%w: axial length %v must be positive", ErrInvalidSpec, spec.AxialLength)
	}
	if spec.BaseRadius < 0 {
		return fmt.Errorf("%w: base radius %v must be non-negative", ErrInvalidSpec, spec.BaseRadius)
	}
	return nil
}

func applyConeDefaults(spec *model.ConeSpec) {
	if spec.Color == (model.Color{}) {
		spec.Color = model.ColorRed
	}
	if spec.SweepPeriod == 0 {
		spec.SweepPeriod = 3 * time.Second
	}
	if spec.Repeat == 0 {
		spec.Repeat = 4
	}
}

func applyWallDefaults(spec *model.WallSpec) {
	if spec.Color == (model.Color{}) {
		if spec.Surface == model.WallSurfaceFlow {
			spec.Color = model.ColorCyan
		} else {
			spec.Color = model.ColorOrange
		}
	}
	if spec.Speed == 0 {
		spec.Speed = 1
	}
}

// wallCenter picks the midpoint vertex as the camera target; averaging
// longitudes is wrong across the antimeridian, the middle vertex never
// is.
func wallCenter(spec model.WallSpec) model.Cartographic {
	c := spec.Vertices[len(spec.Vertices)/2]
	c.Height = spec.MaxHeight
	return c
}
