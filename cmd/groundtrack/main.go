// Command groundtrack propagates a satellite TLE with SGP4 and keeps a
// sweeping sensor cone anchored at the sub-satellite point, pointed
// along the direction of travel. It exercises the full effect pipeline:
// pose solving at a moving anchor, idempotent create/destroy cycles,
// and Prometheus/tracing wiring.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/huweili0726/cesium-map/effects"
	"github.com/huweili0726/cesium-map/geodesy"
	"github.com/huweili0726/cesium-map/internal/logging"
	"github.com/huweili0726/cesium-map/internal/observability"
	"github.com/huweili0726/cesium-map/model"
)

const effectID = "groundtrack-scan"

func main() {
	duration := flag.Duration("duration", 60*time.Second, "total run duration")
	tick := flag.Duration("tick", 2*time.Second, "update interval")
	metricsAddr := flag.String("metrics-addr", ":9090", "address for the /metrics endpoint (empty disables)")
	axialLength := flag.Float64("axial-length", 500000, "cone apex-to-base length in metres")
	baseRadius := flag.Float64("base-radius", 120000, "cone base radius in metres")
	pitchDeg := flag.Float64("pitch", 15, "cone pitch above horizontal, degrees")
	tle1 := flag.String("tle1", "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990", "TLE line 1")
	tle2 := flag.String("tle2", "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760", "TLE line 2")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		panic(fmt.Errorf("init tracing: %w", err))
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewEffectsCollector(nil)
	if err != nil {
		panic(fmt.Errorf("register metrics: %w", err))
	}
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
	}

	engine := effects.NewMemoryEngine()
	registry := effects.NewRegistry(engine,
		effects.WithLogger(log),
		effects.WithMetrics(collector),
	)

	sat := satellite.TLEToSat(*tle1, *tle2, satellite.GravityWGS72)

	fmt.Printf("Tracking for %s, updating every %s\n", *duration, *tick)

	start := time.Now().UTC()
	var prev model.Cartographic
	havePrev := false

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()
	deadline := time.After(*duration)

loop:
	for {
		select {
		case <-deadline:
			break loop
		case now := <-ticker.C:
			subpoint := subSatellitePoint(sat, now.UTC())

			heading := 0.0
			if havePrev {
				heading = headingBetween(prev, subpoint)
			}
			prev, havePrev = subpoint, true

			// The anchor is immutable per effect, so advancing the
			// track is a destroy-then-create cycle.
			if _, ok := registry.Get(effectID); ok {
				if err := registry.Destroy(ctx, effectID); err != nil {
					fmt.Fprintf(os.Stderr, "destroy: %v\n", err)
					continue
				}
			}

			anchor := subpoint
			anchor.Height = 0
			_, err := registry.CreateCone(ctx, effectID, model.ConeSpec{
				Anchor: anchor,
				Orientation: model.HeadingPitchRoll{
					Heading: heading,
					Pitch:   *pitchDeg * math.Pi / 180,
				},
				AxialLength: *axialLength,
				BaseRadius:  *baseRadius,
				Thickness:   0.3,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "create: %v\n", err)
				continue
			}

			engine.Tick()
			fmt.Printf("[%s] subpoint (%.3f, %.3f) alt %.0f km, heading %.1f deg, %d live effects\n",
				now.Sub(start).Round(time.Second),
				subpoint.Lon, subpoint.Lat, subpoint.Height/1000,
				heading*180/math.Pi,
				registry.Len(),
			)
		}
	}

	if err := registry.Destroy(ctx, effectID); err == nil {
		fmt.Println("Final effect destroyed.")
	}
	fmt.Println("Tracking complete.")
}

// subSatellitePoint propagates the satellite to t and converts the ECEF
// position to geodetic coordinates. go-satellite works in kilometres;
// the geodesy layer works in metres.
func subSatellitePoint(sat satellite.Satellite, t time.Time) model.Cartographic {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	const kmToM = 1000.0
	return geodesy.CartesianToCartographic(mgl64.Vec3{
		posECEF.X * kmToM,
		posECEF.Y * kmToM,
		posECEF.Z * kmToM,
	})
}

// headingBetween computes the compass bearing from one subpoint to the
// next by projecting the ECEF displacement onto the local tangent frame
// at the destination.
func headingBetween(from, to model.Cartographic) float64 {
	delta := geodesy.CartographicToCartesian(to).Sub(geodesy.CartographicToCartesian(from))
	f := geodesy.EastNorthUpFrame(to)

	heading := math.Atan2(delta.Dot(f.East), delta.Dot(f.North))
	if heading < 0 {
		heading += 2 * math.Pi
	}
	return heading
}
