// Package scene assembles a complete scene from a height field and runs the
// generation pipeline.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/riverscape/internal/biome"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/lighting"
	"github.com/Faultbox/riverscape/internal/placement"
	"github.com/Faultbox/riverscape/internal/terrain"
	"github.com/Faultbox/riverscape/internal/water"
)

// Result is everything derived from one height field. It is built in one go
// and never modified; a new height field produces a new Result.
type Result struct {
	ID         uuid.UUID
	Mode       heightfield.Mode
	Field      *heightfield.Field
	WaterLevel float64

	Sampler *terrain.Sampler
	Mesh    *terrain.Mesh
	Water   *water.Plane  // nil when the water plane is disabled
	River   *terrain.Mesh // River surface ribbon
	Biome   *biome.Evaluator
	Sun     lighting.Sun

	// Vegetation holds placed instances by class name; Requested the counts asked for.
	Vegetation map[string][]placement.Instance
	Requested  map[string]int
	GrassName  string // Grass system key in Requested
	GrassTufts []placement.Instance
	Grass      []placement.Blade

	// Uniforms are handed to the terrain material.
	Uniforms map[string]any
}

// InstanceCount returns the number of placed instances across all classes, not
// counting grass blades.
func (r *Result) InstanceCount() int {
	n := 0
	for _, insts := range r.Vegetation {
		n += len(insts)
	}
	return n
}
