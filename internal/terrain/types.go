// Package terrain builds the terrain mesh and answers height, slope and river
// distance queries against a height field.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
// Vertex i corresponds to height field cell i.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Width    int // Vertices along x
	Depth    int // Vertices along z
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Column is everything placement and biome masking need to know about one
// world position. It is computed per query and never stored.
type Column struct {
	Height        float64
	Slope         float64 // 1 - normal.y
	RiverDistance float64 // In grid cells
}
