// Package water provides the water plane and river surface geometry.
package water

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/terrain"
)

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // Flat array: x,y,z for each vertex (4 vertices)
	Level    float32   // Water Y level in world coordinates
}

// BuildPlane creates a water quad centred on the origin at the given level,
// covering worldSize*scale on each axis.
func BuildPlane(worldSize, scale, level float64) *Plane {
	half := float32(worldSize * scale / 2)
	y := float32(level)

	// Order: BL, BR, TR, TL for TRIANGLE_FAN rendering
	vertices := []float32{
		-half, y, -half,
		half, y, -half,
		half, y, half,
		-half, y, half,
	}

	return &Plane{
		Vertices: vertices,
		Level:    y,
	}
}

// LevelFor picks the water level for a field. Image fields sit the water a
// fixed fraction up their height range; noise fields use the configured level.
func LevelFor(field *heightfield.Field, cfg *config.Config) float64 {
	if field.Source == heightfield.ModeImage {
		return field.RelativeLevel(cfg.Heightmap.WaterFraction)
	}
	return cfg.Water.Height
}

// BuildRiver lays a ribbon along the river centreline, heightAboveBed above the
// terrain at the centre of each row.
func BuildRiver(s *terrain.Sampler, geom config.RiverGeometryConfig, heightAboveBed float64) *terrain.Mesh {
	cols := geom.WidthSegments + 1
	rows := geom.LengthSegments + 1

	size := s.WorldSize()
	half := size / 2

	vertices := make([]terrain.Vertex, 0, cols*rows)
	bounds := terrain.Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}

	for j := range rows {
		z := -half + float64(j)*size/float64(geom.LengthSegments)
		cx := s.CenterlineX(z)
		y := s.HeightAt(cx, z) + heightAboveBed

		for i := range cols {
			x := cx - geom.Width/2 + float64(i)*geom.Width/float64(geom.WidthSegments)
			pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
			vertices = append(vertices, terrain.Vertex{
				Position: pos,
				Normal:   mgl32.Vec3{0, 1, 0},
				TexCoord: mgl32.Vec2{
					float32(i) / float32(geom.WidthSegments),
					float32(j) / float32(geom.LengthSegments),
				},
			})
			for k := range 3 {
				bounds.Min[k] = min(bounds.Min[k], pos[k])
				bounds.Max[k] = max(bounds.Max[k], pos[k])
			}
		}
	}

	indices := make([]uint32, 0, geom.WidthSegments*geom.LengthSegments*6)
	for j := range geom.LengthSegments {
		for i := range geom.WidthSegments {
			a := uint32(j*cols + i)
			b := uint32((j+1)*cols + i)
			indices = append(indices,
				a, b, a+1,
				b, b+1, a+1,
			)
		}
	}

	return &terrain.Mesh{
		Vertices: vertices,
		Indices:  indices,
		Width:    cols,
		Depth:    rows,
		Bounds:   bounds,
	}
}
