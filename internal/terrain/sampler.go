package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/heightfield"
)

// Sampler answers world-space queries against an immutable height field.
// It holds no mutable state and is safe for concurrent use.
//
// World coordinates span [-worldSize/2, worldSize/2] on both axes and map onto
// grid coordinates [0, width-1] x [0, depth-1], so grid points coincide with
// mesh vertices.
type Sampler struct {
	field     *heightfield.Field
	river     heightfield.River
	worldSize float64
}

// NewSampler creates a sampler over field.
func NewSampler(field *heightfield.Field, river heightfield.River, worldSize float64) *Sampler {
	return &Sampler{field: field, river: river, worldSize: worldSize}
}

// Field returns the sampled height field.
func (s *Sampler) Field() *heightfield.Field {
	return s.field
}

// River returns the river used for distance queries.
func (s *Sampler) River() heightfield.River {
	return s.river
}

// WorldSize returns the world edge length.
func (s *Sampler) WorldSize() float64 {
	return s.worldSize
}

// CellSize returns the world-space spacing between grid points on x and z.
func (s *Sampler) CellSize() (float64, float64) {
	return s.worldSize / float64(s.field.Width-1), s.worldSize / float64(s.field.Depth-1)
}

// ToGrid converts world coordinates to continuous grid coordinates.
func (s *Sampler) ToGrid(x, z float64) (gx, gz float64) {
	gx = (x/s.worldSize + 0.5) * float64(s.field.Width-1)
	gz = (z/s.worldSize + 0.5) * float64(s.field.Depth-1)
	return gx, gz
}

// ToWorld converts grid coordinates to world coordinates.
func (s *Sampler) ToWorld(gx, gz float64) (x, z float64) {
	x = (gx/float64(s.field.Width-1) - 0.5) * s.worldSize
	z = (gz/float64(s.field.Depth-1) - 0.5) * s.worldSize
	return x, z
}

// HeightAt returns the bilinearly interpolated terrain height at world (x, z).
// Positions outside the field return 0.
func (s *Sampler) HeightAt(x, z float64) float64 {
	gx, gz := s.ToGrid(x, z)
	return s.HeightAtGrid(gx, gz)
}

// HeightAtGrid is HeightAt in grid coordinates.
func (s *Sampler) HeightAtGrid(gx, gz float64) float64 {
	f := s.field
	fx, fz := math.Floor(gx), math.Floor(gz)

	// Written as a negation so NaN falls outside.
	if !(fx >= 0 && fz >= 0 && fx < float64(f.Width) && fz < float64(f.Depth)) {
		return 0
	}

	x0, z0 := int(fx), int(fz)
	x1 := min(x0+1, f.Width-1)
	z1 := min(z0+1, f.Depth-1)
	tx, tz := gx-fx, gz-fz

	h00 := float64(f.At(x0, z0))
	h10 := float64(f.At(x1, z0))
	h01 := float64(f.At(x0, z1))
	h11 := float64(f.At(x1, z1))

	return h00*(1-tx)*(1-tz) +
		h10*tx*(1-tz) +
		h01*(1-tx)*tz +
		h11*tx*tz
}

// RiverDistanceAt returns the lateral distance, in grid cells, from world
// (x, z) to the river centreline.
func (s *Sampler) RiverDistanceAt(x, z float64) float64 {
	gx, gz := s.ToGrid(x, z)
	return s.river.Distance(gx, gz, s.field.Width)
}

// CenterlineX returns the world x of the river centreline at world z.
func (s *Sampler) CenterlineX(z float64) float64 {
	_, gz := s.ToGrid(0, z)
	x, _ := s.ToWorld(s.river.Center(gz, s.field.Width), gz)
	return x
}

// NormalAt estimates the surface normal at world (x, z) by central differences.
// Samples are clamped to the field so edges stay finite.
func (s *Sampler) NormalAt(x, z float64) mgl32.Vec3 {
	gx, gz := s.ToGrid(x, z)
	cx, cz := s.CellSize()

	maxX, maxZ := float64(s.field.Width-1), float64(s.field.Depth-1)
	l, r := clamp(gx-1, 0, maxX), clamp(gx+1, 0, maxX)
	d, u := clamp(gz-1, 0, maxZ), clamp(gz+1, 0, maxZ)
	gx, gz = clamp(gx, 0, maxX), clamp(gz, 0, maxZ)

	var dhdx, dhdz float64
	if r > l {
		dhdx = (s.HeightAtGrid(r, gz) - s.HeightAtGrid(l, gz)) / ((r - l) * cx)
	}
	if u > d {
		dhdz = (s.HeightAtGrid(gx, u) - s.HeightAtGrid(gx, d)) / ((u - d) * cz)
	}

	return mgl32.Vec3{float32(-dhdx), 1, float32(-dhdz)}.Normalize()
}

// SlopeAt returns 1 - normal.y at world (x, z): 0 on flat ground, approaching 1 on cliffs.
func (s *Sampler) SlopeAt(x, z float64) float64 {
	return 1 - float64(s.NormalAt(x, z).Y())
}

// Column gathers height, slope and river distance at world (x, z).
func (s *Sampler) Column(x, z float64) Column {
	return Column{
		Height:        s.HeightAt(x, z),
		Slope:         s.SlopeAt(x, z),
		RiverDistance: s.RiverDistanceAt(x, z),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
