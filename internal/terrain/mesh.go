package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/heightfield"
)

// BuildMesh creates a terrain mesh from a height field: a regular grid of
// (width-1) x (depth-1) quads centred on the origin and spanning worldSize,
// with smooth per-vertex normals. Every call returns a fresh mesh.
func BuildMesh(field *heightfield.Field, worldSize float64) *Mesh {
	width, depth := field.Width, field.Depth

	vertices := make([]Vertex, width*depth)

	bounds := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}

	half := worldSize / 2
	stepX := worldSize / float64(max(width-1, 1))
	stepZ := worldSize / float64(max(depth-1, 1))

	for z := range depth {
		for x := range width {
			i := z*width + x
			pos := mgl32.Vec3{
				float32(-half + float64(x)*stepX),
				field.Data[i],
				float32(-half + float64(z)*stepZ),
			}
			vertices[i] = Vertex{
				Position: pos,
				TexCoord: mgl32.Vec2{
					float32(x) / float32(max(width-1, 1)),
					float32(z) / float32(max(depth-1, 1)),
				},
			}
			updateBounds(&bounds, pos)
		}
	}

	var indices []uint32
	if width > 1 && depth > 1 {
		indices = make([]uint32, 0, (width-1)*(depth-1)*6)
	}
	for z := 0; z < depth-1; z++ {
		for x := 0; x < width-1; x++ {
			a := uint32(z*width + x)
			b := uint32((z+1)*width + x)
			c := uint32((z+1)*width + x + 1)
			d := uint32(z*width + x + 1)

			// Counter-clockwise seen from above, so face normals point up
			indices = append(indices,
				a, b, d,
				b, c, d,
			)
		}
	}

	SmoothNormals(vertices, indices)

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Width:    width,
		Depth:    depth,
		Bounds:   bounds,
	}
}

// SmoothNormals recomputes vertex normals from the triangles in indices.
// Unnormalized face normals are summed, which weights each face by its area.
func SmoothNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := vertices[i0].Position
		e1 := vertices[i1].Position.Sub(p0)
		e2 := vertices[i2].Position.Sub(p0)
		n := e1.Cross(e2)

		vertices[i0].Normal = vertices[i0].Normal.Add(n)
		vertices[i1].Normal = vertices[i1].Normal.Add(n)
		vertices[i2].Normal = vertices[i2].Normal.Add(n)
	}

	for i := range vertices {
		vertices[i].Normal = normalize(vertices[i].Normal)
	}
}

// normalize returns v scaled to unit length, or straight up for a zero vector.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
