package scene

import (
	"fmt"
	"sort"
)

// Summary is the exported description of a Result.
type Summary struct {
	ID         string         `yaml:"id"`
	Mode       string         `yaml:"mode"`
	Checksum   string         `yaml:"checksum"`
	Width      int            `yaml:"width"`
	Depth      int            `yaml:"depth"`
	MinHeight  float32        `yaml:"min_height"`
	MaxHeight  float32        `yaml:"max_height"`
	WaterLevel float64        `yaml:"water_level"`
	Mesh       MeshSummary    `yaml:"mesh"`
	River      MeshSummary    `yaml:"river"`
	Classes    []ClassSummary `yaml:"classes"`
	Grass      GrassSummary   `yaml:"grass"`
}

// MeshSummary describes a mesh.
type MeshSummary struct {
	Vertices  int `yaml:"vertices"`
	Triangles int `yaml:"triangles"`
}

// ClassSummary compares requested and placed counts for one vegetation class.
type ClassSummary struct {
	Name      string `yaml:"name"`
	Requested int    `yaml:"requested"`
	Placed    int    `yaml:"placed"`
}

// GrassSummary reports the grass system: requested and placed tufts, and the
// blades they fanned out into.
type GrassSummary struct {
	Name      string `yaml:"name"`
	Requested int    `yaml:"requested"`
	Tufts     int    `yaml:"tufts"`
	Blades    int    `yaml:"blades"`
}

// Summary describes r.
func (r *Result) Summary() Summary {
	s := Summary{
		ID:         r.ID.String(),
		Mode:       string(r.Mode),
		Checksum:   fmt.Sprintf("%016x", r.Field.Checksum()),
		Width:      r.Field.Width,
		Depth:      r.Field.Depth,
		MinHeight:  r.Field.Min,
		MaxHeight:  r.Field.Max,
		WaterLevel: r.WaterLevel,
		Mesh:       MeshSummary{Vertices: len(r.Mesh.Vertices), Triangles: r.Mesh.TriangleCount()},
		River:      MeshSummary{Vertices: len(r.River.Vertices), Triangles: r.River.TriangleCount()},
	}

	names := make([]string, 0, len(r.Vegetation))
	for name := range r.Vegetation {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.Classes = append(s.Classes, ClassSummary{
			Name:      name,
			Requested: r.Requested[name],
			Placed:    len(r.Vegetation[name]),
		})
	}

	s.Grass = GrassSummary{
		Name:      r.GrassName,
		Requested: r.Requested[r.GrassName],
		Tufts:     len(r.GrassTufts),
		Blades:    len(r.Grass),
	}
	return s
}
