package material

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidPeriod indicates a clock with a non-positive period.
var ErrInvalidPeriod = errors.New("invalid clock period")

// Clock derives a normalized animation phase from wall-clock time. The
// phase is recomputed on every evaluation, never cached, so the same
// clock evaluated at two different real times yields two different
// phases.
type Clock struct {
	// Origin is the instant at which the phase is zero.
	Origin time.Time
	// Period is the duration of one full animation cycle.
	Period time.Duration
}

// NewClock validates and constructs a Clock. Period must be positive.
func NewClock(origin time.Time, period time.Duration) (Clock, error) {
	if period <= 0 {
		return Clock{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	return Clock{Origin: origin, Period: period}, nil
}

// Phase returns the normalized progress through the current cycle,
// always in [0, 1). Evaluation times before the origin wrap into the
// same range, so a clock restarted with an origin in the future still
// produces a valid phase.
func (c Clock) Phase(now time.Time) float64 {
	if c.Period <= 0 {
		return 0
	}
	elapsed := now.Sub(c.Origin) % c.Period
	if elapsed < 0 {
		elapsed += c.Period
	}
	return float64(elapsed) / float64(c.Period)
}

// FramePhase derives a normalized phase from a renderer-supplied frame
// counter: fract(frame * rate). Frame-driven animations advance with
// rendering cadence rather than real time, which keeps them visually
// smooth regardless of system clock jitter.
func FramePhase(frame uint64, rate float64) float64 {
	v := float64(frame) * rate
	return v - math.Floor(v)
}
