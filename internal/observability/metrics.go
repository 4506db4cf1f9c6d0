package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EffectsCollector bundles Prometheus metrics for the effect registry
// and provides a ready-to-use /metrics handler.
type EffectsCollector struct {
	gatherer prometheus.Gatherer

	CreatedTotal   *prometheus.CounterVec
	DestroyedTotal prometheus.Counter
	CreateFailures *prometheus.CounterVec
	LiveEffects    prometheus.Gauge
}

// NewEffectsCollector registers effect metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registration is idempotent: a collector already registered under the
// same name is reused rather than duplicated.
func NewEffectsCollector(reg prometheus.Registerer) (*EffectsCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "effects_created_total",
		Help: "Total number of successfully created effects, labeled by effect kind.",
	}, []string{"kind"})
	created, err := registerCounterVec(reg, created, "effects_created_total")
	if err != nil {
		return nil, err
	}

	destroyed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "effects_destroyed_total",
		Help: "Total number of destroyed effects.",
	}), "effects_destroyed_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "effects_create_failures_total",
		Help: "Total number of failed effect creations, labeled by failure reason.",
	}, []string{"reason"})
	failures, err = registerCounterVec(reg, failures, "effects_create_failures_total")
	if err != nil {
		return nil, err
	}

	live, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "effects_live",
		Help: "Current number of live effects in the registry.",
	}), "effects_live")
	if err != nil {
		return nil, err
	}

	return &EffectsCollector{
		gatherer:       gatherer,
		CreatedTotal:   created,
		DestroyedTotal: destroyed,
		CreateFailures: failures,
		LiveEffects:    live,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EffectsCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// EffectCreated satisfies the effects.MetricsRecorder interface.
func (c *EffectsCollector) EffectCreated(kind string) {
	if c == nil || c.CreatedTotal == nil {
		return
	}
	c.CreatedTotal.WithLabelValues(kind).Inc()
}

// EffectDestroyed satisfies the effects.MetricsRecorder interface.
func (c *EffectsCollector) EffectDestroyed() {
	if c == nil || c.DestroyedTotal == nil {
		return
	}
	c.DestroyedTotal.Inc()
}

// EffectCreateFailed satisfies the effects.MetricsRecorder interface.
func (c *EffectsCollector) EffectCreateFailed(reason string) {
	if c == nil || c.CreateFailures == nil {
		return
	}
	c.CreateFailures.WithLabelValues(reason).Inc()
}

// SetLiveEffects satisfies the effects.MetricsRecorder interface.
func (c *EffectsCollector) SetLiveEffects(n int) {
	if c == nil || c.LiveEffects == nil {
		return
	}
	c.LiveEffects.Set(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
