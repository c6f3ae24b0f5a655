package scene

import (
	"context"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/riverscape/internal/biome"
	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/lighting"
	"github.com/Faultbox/riverscape/internal/logger"
	"github.com/Faultbox/riverscape/internal/placement"
	"github.com/Faultbox/riverscape/internal/terrain"
	"github.com/Faultbox/riverscape/internal/water"
)

// Builder derives a Result from a height field.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a builder for cfg.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build derives mesh, water, biome and vegetation from field. Vegetation
// classes are placed concurrently, each from its own random stream seeded by
// the world seed and the class name, so output does not depend on scheduling.
func (b *Builder) Build(ctx context.Context, field *heightfield.Field, river heightfield.River) (*Result, error) {
	cfg := b.cfg
	log := logger.Named("scene")

	sampler := terrain.NewSampler(field, river, cfg.World.Size)
	level := water.LevelFor(field, cfg)

	r := &Result{
		ID:         uuid.New(),
		Mode:       field.Source,
		Field:      field,
		WaterLevel: level,
		Sampler:    sampler,
		Mesh:       terrain.BuildMesh(field, cfg.World.Size),
		River:      water.BuildRiver(sampler, cfg.River.Geometry, cfg.River.WaterHeight),
		Biome:      biome.NewEvaluator(cfg.Biome, cfg.Palette, field.Width),
		Sun:        lighting.NewSun(cfg.Lighting),
		Vegetation: make(map[string][]placement.Instance, len(cfg.Vegetation.Classes)),
		Requested:  make(map[string]int, len(cfg.Vegetation.Classes)+1),
	}
	if cfg.Water.Enabled {
		r.Water = water.BuildPlane(cfg.World.Size, cfg.Water.PlaneScale, level)
	}

	gate := r.Biome.Bind(sampler)
	settings := placement.Settings{
		WorldSize:     cfg.World.Size,
		WaterLevel:    level,
		AttemptFactor: cfg.Vegetation.AttemptFactor,
	}
	newPlacer := func(name string) *placement.Placer {
		rng := rand.New(rand.NewPCG(cfg.World.Seed, xxhash.Sum64String(name)))
		p := placement.NewPlacer(sampler, settings, rng)
		p.SetBiomeGate(gate)
		return p
	}

	classes := cfg.Vegetation.Classes
	placed := make([][]placement.Instance, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	for i, class := range classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			placed[i] = newPlacer(class.Name).Place(class)
			return nil
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		grass := cfg.Vegetation.Grass
		p := newPlacer(grass.Name)
		r.GrassTufts, r.Grass = p.PlaceGrass(grass)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, class := range classes {
		r.Vegetation[class.Name] = placed[i]
		r.Requested[class.Name] = class.Count
		if len(placed[i]) < class.Count {
			log.Info("vegetation class under-filled",
				zap.String("class", class.Name),
				zap.Int("requested", class.Count),
				zap.Int("placed", len(placed[i])))
		}
	}
	r.GrassName = cfg.Vegetation.Grass.Name
	r.Requested[r.GrassName] = cfg.Vegetation.Grass.Count

	r.Uniforms = r.Biome.Uniforms()
	for k, v := range r.Sun.Uniforms() {
		r.Uniforms[k] = v
	}
	r.Uniforms["waterLevel"] = float32(level)

	log.Info("scene built",
		zap.Stringer("id", r.ID),
		zap.String("mode", string(r.Mode)),
		zap.Float32("minHeight", field.Min),
		zap.Float32("maxHeight", field.Max),
		zap.Float64("waterLevel", level),
		zap.Uint64("checksum", field.Checksum()),
		zap.Int("triangles", r.Mesh.TriangleCount()),
		zap.Int("instances", r.InstanceCount()),
		zap.Int("grassTufts", len(r.GrassTufts)),
		zap.Int("grassBlades", len(r.Grass)))

	return r, nil
}
