// Package noise provides the coherent noise sources used for terrain heights
// and the value noise shared with the terrain shader.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise backends selectable from config.
const (
	KindImproved = "improved"
	KindPerlin   = "perlin"
	KindSimplex  = "simplex"
)

// Source is a deterministic 3D coherent noise function with output roughly in [-1, 1].
type Source interface {
	Noise3(x, y, z float64) float64
}

// New returns the noise source for kind. The same kind and seed always
// produce the same values.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case KindImproved, "":
		return NewImproved(seed), nil
	case KindPerlin:
		// n=1: octaves are layered by the caller
		return perlinSource{perlin.NewPerlin(2, 2, 1, seed)}, nil
	case KindSimplex:
		return simplexSource{opensimplex.New(seed)}, nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Noise3(x, y, z float64) float64 {
	return s.p.Noise3D(x, y, z)
}

type simplexSource struct {
	n opensimplex.Noise
}

func (s simplexSource) Noise3(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}
