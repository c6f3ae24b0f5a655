// Package biome evaluates the terrain material masks shared by the terrain
// shader and CPU-side decisions such as vegetation gating.
//
// Every function here mirrors a line of the terrain fragment shader so a
// preview rendered on the CPU matches what the GPU draws.
package biome

import (
	"math"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/noise"
	"github.com/Faultbox/riverscape/internal/terrain"
)

// Layer is one entry of the terrain palette.
type Layer int

// Palette layers in compositing order.
const (
	Grass Layer = iota
	DarkGrass
	Forest
	Dirt
	RiverGrass
	Mud
	Path
	Rock
	Sand
	Snow
	layerCount
)

var layerNames = [layerCount]string{
	Grass:      "grass",
	DarkGrass:  "dark_grass",
	Forest:     "forest",
	Dirt:       "dirt",
	RiverGrass: "river_grass",
	Mud:        "mud",
	Path:       "path",
	Rock:       "rock",
	Sand:       "sand",
	Snow:       "snow",
}

// String returns the config name of the layer.
func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// ParseLayer looks a layer up by its config name.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// Layers returns every palette layer in compositing order.
func Layers() []Layer {
	out := make([]Layer, layerCount)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

// Input is what the masks see at one surface point.
type Input struct {
	X, Z          float64 // World position
	Height        float64
	Slope         float64 // 1 - normal.y
	RiverDistance float64 // Grid cells
}

// InputAt samples the terrain at world (x, z).
func InputAt(s *terrain.Sampler, x, z float64) Input {
	col := s.Column(x, z)
	return Input{
		X:             x,
		Z:             z,
		Height:        col.Height,
		Slope:         col.Slope,
		RiverDistance: col.RiverDistance,
	}
}

// Masks are the individual mask signals, each in [0, 1].
type Masks struct {
	Grass      float64
	Forest     float64
	Path       float64
	Rock       float64
	RiverGrass float64
	Mud        float64
	Sand       float64
	Snow       float64
	Detail     float64
}

// Weights is a convex blend over the palette; entries sum to 1.
type Weights [layerCount]float64

// Dominant returns the layer with the largest weight.
func (w Weights) Dominant() Layer {
	best := Grass
	for l := range w {
		if w[l] > w[best] {
			best = Layer(l)
		}
	}
	return best
}

// mix blends layer over the current weights by t, like GLSL mix(base, layer, t).
func (w *Weights) mix(layer Layer, t float64) {
	t = clamp01(t)
	for i := range w {
		w[i] *= 1 - t
	}
	w[layer] += t
}

// Evaluator evaluates masks for one configuration.
type Evaluator struct {
	cfg       config.BiomeConfig
	palette   config.PaletteConfig
	gridWidth float64
}

// NewEvaluator creates an evaluator. gridWidth normalizes river distances.
func NewEvaluator(cfg config.BiomeConfig, palette config.PaletteConfig, gridWidth int) *Evaluator {
	return &Evaluator{cfg: cfg, palette: palette, gridWidth: float64(max(gridWidth, 1))}
}

// Masks computes every mask at in.
func (e *Evaluator) Masks(in Input) Masks {
	c := &e.cfg
	x, z := in.X, in.Z

	n1 := noise.FBM2(x*c.Noise.FBM1, z*c.Noise.FBM1)
	n2 := noise.FBM2(x*c.Noise.FBM2+50, z*c.Noise.FBM2+50)
	n3 := noise.Value2(x*c.Noise.Large+100, z*c.Noise.Large+100)

	grass := smoothstep(c.GrassMask.Threshold1.Min, c.GrassMask.Threshold1.Max, n1)
	grass *= smoothstep(c.GrassMask.Threshold2.Min, c.GrassMask.Threshold2.Max, n2)
	grass = math.Pow(grass, c.GrassMask.Contrast)

	forest := smoothstep(c.ForestMask.Range.Min, c.ForestMask.Range.Max, n3) * c.ForestMask.Strength

	path := 1 - smoothstep(c.Paths.Width.Min, c.Paths.Width.Max, e.pathNoise(x, z))

	thr := c.Heights.RockSlopeThreshold
	rock := smoothstep(thr-0.15, thr+0.1, in.Slope)
	rock = clamp01(rock * (0.7 + noise.Value2(x*0.05, z*0.05)*0.5))

	nd := in.RiverDistance / e.gridWidth
	riverGrass := (1 - smoothstep(c.RiverGrass.Range.Min, c.RiverGrass.Range.Max, nd)) * c.RiverGrass.Strength
	mud := (1 - smoothstep(c.Mud.Range.Min, c.Mud.Range.Max, nd)) * c.Mud.Strength

	var sand, snow float64
	if c.Heights.Enabled {
		h := c.Heights
		sand = 1 - smoothstep(h.BeachMax, h.BeachMax+h.BeachBlend, in.Height)
		snow = smoothstep(h.SnowMin, h.SnowMin+h.SnowBlend, in.Height)
	}

	return Masks{
		Grass:      clamp01(grass),
		Forest:     clamp01(forest),
		Path:       path,
		Rock:       rock,
		RiverGrass: clamp01(riverGrass),
		Mud:        clamp01(mud),
		Sand:       sand,
		Snow:       snow,
		Detail:     noise.Value2(x*c.Noise.Detail, z*c.Noise.Detail),
	}
}

// pathNoise is near zero along the winding dirt paths.
func (e *Evaluator) pathNoise(x, z float64) float64 {
	p := &e.cfg.Paths
	path1 := math.Abs(math.Sin(z*p.Frequency1Y+noise.Value2(x*p.NoiseScale1, z*p.NoiseScale1)*p.NoiseAmplitude1) +
		math.Cos(x*p.Frequency1X)*0.5)
	path2 := math.Abs(math.Sin(x*p.Frequency2X + z*p.Frequency2Y +
		noise.Value2(x*p.NoiseScale2, z*p.NoiseScale2)*p.NoiseAmplitude2))
	return math.Min(path1, path2)
}

// Weights composites the masks in fixed order over a grass base.
func (e *Evaluator) Weights(in Input) Weights {
	return e.weights(e.Masks(in))
}

func (e *Evaluator) weights(m Masks) Weights {
	var w Weights
	w[Grass] = 1

	w.mix(DarkGrass, m.Forest*0.6)
	w.mix(Forest, m.Forest*0.4)
	w.mix(Dirt, (1-m.Grass)*0.7)
	w.mix(RiverGrass, m.RiverGrass)
	w.mix(Mud, m.Mud)
	w.mix(Path, m.Path*e.cfg.Paths.Strength*0.8)
	w.mix(Rock, m.Rock)
	if e.cfg.Heights.Enabled {
		w.mix(Sand, m.Sand)
		w.mix(Snow, m.Snow)
	}
	return w
}

// Color returns the graded palette color at in: blended tints, fine detail,
// warm tint, then the contrast curve.
func (e *Evaluator) Color(in Input) config.Color {
	m := e.Masks(in)
	w := e.weights(m)

	var r, g, b float64
	for l, weight := range w {
		if weight == 0 {
			continue
		}
		c := e.layerColor(Layer(l))
		r += c.R * weight
		g += c.G * weight
		b += c.B * weight
	}

	detail := 0.9 + m.Detail*0.2
	tint := e.palette.WarmTint
	contrast := e.cfg.Contrast

	return config.Color{
		R: math.Pow(math.Max(r*detail*tint.R, 0), contrast),
		G: math.Pow(math.Max(g*detail*tint.G, 0), contrast),
		B: math.Pow(math.Max(b*detail*tint.B, 0), contrast),
	}
}

func (e *Evaluator) layerColor(l Layer) config.Color {
	p := &e.palette
	switch l {
	case Grass:
		return p.Grass
	case DarkGrass:
		return p.DarkGrass
	case Forest:
		return p.Forest
	case Dirt:
		return p.Dirt
	case RiverGrass:
		return p.RiverGrass
	case Mud:
		return p.Mud
	case Path:
		return p.DirtPath
	case Rock:
		return p.Rock
	case Sand:
		return p.Sand
	case Snow:
		return p.Snow
	default:
		return config.Color{}
	}
}

// Gate answers biome weight queries against a terrain.
type Gate struct {
	eval    *Evaluator
	sampler *terrain.Sampler
}

// Bind returns a Gate evaluating masks on s.
func (e *Evaluator) Bind(s *terrain.Sampler) *Gate {
	return &Gate{eval: e, sampler: s}
}

// Weight returns the blend weight of the named layer at world (x, z), or 0 for
// an unknown layer.
func (g *Gate) Weight(layer string, x, z float64) float64 {
	l, ok := ParseLayer(layer)
	if !ok {
		return 0
	}
	return g.eval.Weights(InputAt(g.sampler, x, z))[l]
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
