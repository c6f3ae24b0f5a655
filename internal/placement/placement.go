// Package placement scatters vegetation instances over the terrain by
// rejection sampling.
package placement

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/logger"
)

// DefaultAttemptFactor bounds sampling at this many attempts per requested instance.
const DefaultAttemptFactor = 3

// Terrain is the read-only terrain view placement needs.
type Terrain interface {
	HeightAt(x, z float64) float64
	RiverDistanceAt(x, z float64) float64
}

// BiomeGate reports the weight of a biome layer at a world position.
type BiomeGate interface {
	Weight(layer string, x, z float64) float64
}

// Rand is the random source. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Instance is one placed object.
type Instance struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	RotationY float64 `yaml:"rotation_y"` // Radians in [0, 2π)
	Scale     float64 `yaml:"scale"`
}

// Transform returns the instance's model matrix: translate, yaw, uniform scale.
func (i Instance) Transform() mgl32.Mat4 {
	s := float32(i.Scale)
	return mgl32.Translate3D(float32(i.X), float32(i.Y), float32(i.Z)).
		Mul4(mgl32.HomogRotate3DY(float32(i.RotationY))).
		Mul4(mgl32.Scale3D(s, s, s))
}

// Settings configures a Placer.
type Settings struct {
	WorldSize     float64
	WaterLevel    float64
	AttemptFactor int // Attempts per requested instance; DefaultAttemptFactor if < 1
}

// Placer places instances for one terrain. A Placer draws from a single random
// stream and must not be shared between goroutines.
type Placer struct {
	terrain  Terrain
	settings Settings
	rng      Rand
	gate     BiomeGate
}

// NewPlacer creates a placer drawing from rng.
func NewPlacer(t Terrain, settings Settings, rng Rand) *Placer {
	if settings.AttemptFactor < 1 {
		settings.AttemptFactor = DefaultAttemptFactor
	}
	return &Placer{terrain: t, settings: settings, rng: rng}
}

// SetBiomeGate enables biome gating for classes that name a biome layer.
func (p *Placer) SetBiomeGate(g BiomeGate) {
	p.gate = g
}

// Place samples up to class.Count instances. It gives up after
// AttemptFactor*Count attempts, so the result may be shorter than requested.
func (p *Placer) Place(class config.PlacementConfig) []Instance {
	if class.Count <= 0 {
		return nil
	}

	maxAttempts := class.Count * p.settings.AttemptFactor
	span := p.settings.WorldSize * class.SpreadFactor
	out := make([]Instance, 0, class.Count)

	attempts := 0
	for ; len(out) < class.Count && attempts < maxAttempts; attempts++ {
		x := (p.rng.Float64() - 0.5) * span
		z := (p.rng.Float64() - 0.5) * span

		if !p.Accepts(class, x, z) {
			continue
		}

		out = append(out, Instance{
			X:         x,
			Y:         p.terrain.HeightAt(x, z),
			Z:         z,
			RotationY: p.rng.Float64() * 2 * math.Pi,
			Scale:     class.Scale.Lerp(p.rng.Float64()),
		})
	}

	if len(out) < class.Count {
		logger.Debug("placement ran out of attempts",
			zap.String("class", class.Name),
			zap.Int("requested", class.Count),
			zap.Int("placed", len(out)),
			zap.Int("attempts", attempts))
	}
	return out
}

// Accepts reports whether class may be placed at world (x, z).
func (p *Placer) Accepts(class config.PlacementConfig, x, z float64) bool {
	switch class.Rule {
	case config.RuleWaterClearance:
		if !p.clearsWater(class, x, z) {
			return false
		}
	case config.RuleRiverDistance:
		if !p.clearsRiver(class, x, z) {
			return false
		}
	case config.RuleBoth:
		if !p.clearsWater(class, x, z) || !p.clearsRiver(class, x, z) {
			return false
		}
	default:
		return false
	}

	if class.Biome != "" && p.gate != nil {
		return p.gate.Weight(class.Biome, x, z) >= class.MinBiomeWeight
	}
	return true
}

func (p *Placer) clearsWater(class config.PlacementConfig, x, z float64) bool {
	return p.terrain.HeightAt(x, z) >= p.settings.WaterLevel+class.Clearance
}

func (p *Placer) clearsRiver(class config.PlacementConfig, x, z float64) bool {
	return p.terrain.RiverDistanceAt(x, z) >= class.MinRiverDistance
}
