package main

import (
	"math"

	"github.com/huweili0726/cesium-map/material"
)

// CPU reference evaluation of the three procedural patterns. Each
// function returns (alpha, brightness) for a texture-space coordinate
// and a uniform snapshot, mirroring the corresponding shader payload.

func sweepPattern(s, t float64, u map[string]float64) (float64, float64) {
	repeat := u["repeat"]
	if repeat <= 0 {
		repeat = 1
	}
	sp := 1.0 / repeat

	dis := math.Hypot(s-0.5, t-0.5)
	m := math.Mod(dis+u["offset"]-u["phase"], sp)
	if m < 0 {
		m += sp
	}
	if m >= sp*(1-u["thickness"]) {
		return 1, 1
	}
	return 0, 1
}

func flamePattern(s, t float64, u map[string]float64) (float64, float64) {
	maxHeight := u["maxHeight"]
	if maxHeight <= 0 {
		maxHeight = 1
	}

	n := fbm(s*8, t*2-u["flameHeight"]*4)
	edge := t + (n-0.5)*0.4
	a := clamp((maxHeight - edge) / maxHeight)
	return a * a, 0.6 + 0.4*n
}

func flowPattern(s, t float64, u map[string]float64) (float64, float64) {
	band := s - u["phase"]
	band -= math.Floor(band)

	glow := smoothstep(0, 1, 1-math.Abs(band-0.5)*2)
	fade := smoothstep(0, u["edgeFade"], t) * smoothstep(1, 1-u["edgeFade"], t)
	return glow * fade, 1
}

// fbm layers value noise per the declared flame contract: NoiseOctaves
// octaves, frequency doubling and amplitude halving per octave.
func fbm(x, y float64) float64 {
	v := 0.0
	amp := material.NoiseGain
	for i := 0; i < material.NoiseOctaves; i++ {
		v += amp * valueNoise(x, y)
		x *= material.NoiseLacunarity
		y *= material.NoiseLacunarity
		amp *= material.NoiseGain
	}
	return v
}

func valueNoise(x, y float64) float64 {
	ix, fx := math.Floor(x), x-math.Floor(x)
	iy, fy := math.Floor(y), y-math.Floor(y)

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := hash(ix, iy)
	b := hash(ix+1, iy)
	c := hash(ix, iy+1)
	d := hash(ix+1, iy+1)

	return lerp(lerp(a, b, ux), lerp(c, d, ux), uy)
}

// hash matches the shader's sin-dot pseudorandom hash.
func hash(x, y float64) float64 {
	v := math.Sin(x*127.1+y*311.7) * 43758.5453123
	return v - math.Floor(v)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// smoothstep follows GLSL semantics and tolerates inverted edges, which
// the flow fade uses for the upper texture boundary.
func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
