package placement

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/config"
)

// Blade is one grass blade of a tuft.
type Blade struct {
	Instance    `yaml:",inline"`
	HeightScale float64 `yaml:"height_scale"` // Vertical stretch on top of Scale
	TiltX       float64 `yaml:"tilt_x"`       // Lean in radians
	TiltZ       float64 `yaml:"tilt_z"`
}

// Transform returns the blade's model matrix.
func (b Blade) Transform() mgl32.Mat4 {
	s := float32(b.Scale)
	return mgl32.Translate3D(float32(b.X), float32(b.Y), float32(b.Z)).
		Mul4(mgl32.HomogRotate3DY(float32(b.RotationY))).
		Mul4(mgl32.HomogRotate3DX(float32(b.TiltX))).
		Mul4(mgl32.HomogRotate3DZ(float32(b.TiltZ))).
		Mul4(mgl32.Scale3D(s, s*float32(b.HeightScale), s))
}

// PlaceGrass places tuft centres with the grass class rules, then fans each
// tuft out into blades jittered around its centre. It returns both.
func (p *Placer) PlaceGrass(g config.GrassConfig) (tufts []Instance, blades []Blade) {
	tufts = p.Place(g.PlacementConfig)
	if len(tufts) == 0 {
		return nil, nil
	}

	blades = make([]Blade, 0, len(tufts)*(g.Blades.Min+g.Blades.Max)/2)
	for _, tuft := range tufts {
		n := g.Blades.Min
		if g.Blades.Max > g.Blades.Min {
			n += p.rng.IntN(g.Blades.Max - g.Blades.Min)
		}

		for range n {
			x := tuft.X + (p.rng.Float64()-0.5)*g.TuftSpread
			z := tuft.Z + (p.rng.Float64()-0.5)*g.TuftSpread

			blades = append(blades, Blade{
				Instance: Instance{
					X:         x,
					Y:         p.terrain.HeightAt(x, z),
					Z:         z,
					RotationY: p.rng.Float64() * 2 * math.Pi,
					Scale:     tuft.Scale,
				},
				HeightScale: g.BladeHeight.Lerp(p.rng.Float64()),
				TiltX:       (p.rng.Float64()*2 - 1) * g.Tilt,
				TiltZ:       (p.rng.Float64()*2 - 1) * g.Tilt,
			})
		}
	}
	return tufts, blades
}
