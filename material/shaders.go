package material

// Shader type names used in the process-wide type table.
const (
	TypeSweep = "EffectSweep"
	TypeFlame = "EffectFlame"
	TypeFlow  = "EffectFlow"
)

// Declared noise contract for the flame surface. The fragment evaluator
// layers coherent noise to vary the flame edges; these parameters are
// part of the uniform contract and must match the shader body for
// visual parity.
const (
	// NoiseOctaves is the number of layered noise octaves.
	NoiseOctaves = 5
	// NoiseLacunarity doubles the noise frequency per octave.
	NoiseLacunarity = 2.0
	// NoiseGain halves the noise amplitude per octave.
	NoiseGain = 0.5
)

// Per-frame base advance of the frame-driven phases. A speed multiplier
// of 1 completes one cycle every thousand drawn frames.
const frameBaseRate = 1.0 / 1000.0

// sweepFragment animates a ring expanding from the texture-space
// center. phase drives the ring motion, repeat the ring density, and
// thickness the ring width as a fraction of ring spacing.
var sweepFragment = ShaderSource{
	Name: TypeSweep,
	Fragment: `
uniform vec4 color;
uniform float phase;
uniform float repeat;
uniform float offset;
uniform float thickness;

czm_material czm_getMaterial(czm_materialInput materialInput)
{
    czm_material material = czm_getDefaultMaterial(materialInput);
    float sp = 1.0 / repeat;
    vec2 st = materialInput.st;
    float dis = distance(st, vec2(0.5));
    float m = mod(dis + offset - phase, sp);
    float a = step(sp * (1.0 - thickness), m);
    material.diffuse = color.rgb;
    material.alpha = a * color.a;
    return material;
}
`,
}

// flameFragment renders a rising fire surface. flameHeight is the
// frame-driven phase; the layered noise parameters mirror the declared
// NoiseOctaves/NoiseLacunarity/NoiseGain contract.
var flameFragment = ShaderSource{
	Name: TypeFlame,
	Fragment: `
uniform vec4 color;
uniform float speed;
uniform float maxHeight;
uniform float flameHeight;

float hash(vec2 p)
{
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453123);
}

float vnoise(vec2 p)
{
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * (3.0 - 2.0 * f);
    return mix(mix(hash(i), hash(i + vec2(1.0, 0.0)), u.x),
               mix(hash(i + vec2(0.0, 1.0)), hash(i + vec2(1.0, 1.0)), u.x),
               u.y);
}

float fbm(vec2 p)
{
    float v = 0.0;
    float a = 0.5;
    for (int i = 0; i < 5; i++) {
        v += a * vnoise(p);
        p *= 2.0;
        a *= 0.5;
    }
    return v;
}

czm_material czm_getMaterial(czm_materialInput materialInput)
{
    czm_material material = czm_getDefaultMaterial(materialInput);
    vec2 st = materialInput.st;
    float n = fbm(vec2(st.s * 8.0, st.t * 2.0 - flameHeight * 4.0));
    float edge = st.t + (n - 0.5) * 0.4;
    float a = clamp((maxHeight - edge) / maxHeight, 0.0, 1.0);
    material.diffuse = color.rgb * (0.6 + 0.4 * n);
    material.alpha = a * a * color.a;
    return material;
}
`,
}

// flowFragment translates a banded glow along the s texture axis with a
// fade near the texture-space boundaries.
var flowFragment = ShaderSource{
	Name: TypeFlow,
	Fragment: `
uniform vec4 color;
uniform float speed;
uniform float phase;
uniform float edgeFade;

czm_material czm_getMaterial(czm_materialInput materialInput)
{
    czm_material material = czm_getDefaultMaterial(materialInput);
    vec2 st = materialInput.st;
    float band = fract(st.s - phase);
    float glow = smoothstep(0.0, 1.0, 1.0 - abs(band - 0.5) * 2.0);
    float fade = smoothstep(0.0, edgeFade, st.t) * smoothstep(1.0, 1.0 - edgeFade, st.t);
    material.diffuse = color.rgb;
    material.alpha = glow * fade * color.a;
    return material;
}
`,
}
