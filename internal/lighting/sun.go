// Package lighting provides the terrain lighting terms shared by the shader
// uniforms and CPU previews.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/config"
)

// Sun is a directional light with ambient fill and height-based occlusion.
type Sun struct {
	Direction  mgl32.Vec3 // Normalized, pointing towards the sun
	Ambient    float64
	Diffuse    float64
	AORange    config.Range
	AOStrength float64
}

// NewSun builds the light from config. Sun angles take precedence over the
// direction vector.
func NewSun(cfg config.LightingConfig) Sun {
	d := cfg.SunDirection
	dir := mgl32.Vec3{float32(d.X), float32(d.Y), float32(d.Z)}
	if a := cfg.SunAngles; a != nil {
		dir = SunDirection(a.Azimuth, a.Elevation)
	}
	return Sun{
		Direction:  dir.Normalize(),
		Ambient:    cfg.Ambient,
		Diffuse:    cfg.Diffuse,
		AORange:    cfg.AORange,
		AOStrength: cfg.AOStrength,
	}
}

// SunDirection converts longitude/latitude angles in degrees to a direction
// towards the sun. Longitude rotates around Y, latitude is elevation from the horizon.
func SunDirection(longitude, latitude float64) mgl32.Vec3 {
	lonRad := longitude * math.Pi / 180
	latRad := latitude * math.Pi / 180

	return mgl32.Vec3{
		float32(math.Cos(latRad) * math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}

// Shade returns the light factor for a surface with the given normal and height:
// (ambient + diffuse*max(N·L, 0)) scaled by the height occlusion.
func (s Sun) Shade(normal mgl32.Vec3, height float64) float64 {
	ndotl := math.Max(float64(normal.Dot(s.Direction)), 0)
	return (s.Ambient + ndotl*s.Diffuse) * s.HeightAO(height)
}

// HeightAO darkens low ground: 1-AOStrength at AORange.Min rising to 1 at AORange.Max.
func (s Sun) HeightAO(height float64) float64 {
	t := 0.0
	if s.AORange.Max > s.AORange.Min {
		t = math.Max(0, math.Min(1, (height-s.AORange.Min)/(s.AORange.Max-s.AORange.Min)))
		t = t * t * (3 - 2*t)
	} else if height >= s.AORange.Max {
		t = 1
	}
	return t*s.AOStrength + (1 - s.AOStrength)
}

// Uniforms returns the lighting uniforms keyed by GLSL name.
func (s Sun) Uniforms() map[string]any {
	return map[string]any{
		"sunDirection":    [3]float32{s.Direction.X(), s.Direction.Y(), s.Direction.Z()},
		"ambientStrength": float32(s.Ambient),
		"diffuseStrength": float32(s.Diffuse),
		"aoRangeMin":      float32(s.AORange.Min),
		"aoRangeMax":      float32(s.AORange.Max),
		"aoStrength":      float32(s.AOStrength),
	}
}
