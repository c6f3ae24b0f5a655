package config

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration once so downstream stages can trust it.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.World.Size <= 0 {
		fail("world.size must be positive, got %v", c.World.Size)
	}
	if c.World.Resolution < 2 {
		fail("world.resolution must be at least 2, got %d", c.World.Resolution)
	}

	if c.Heightmap.Enabled && c.Heightmap.Source == "" {
		fail("heightmap.source is required when the heightmap is enabled")
	}
	if c.Heightmap.WaterFraction < 0 || c.Heightmap.WaterFraction > 1 {
		fail("heightmap.water_fraction must be within [0,1], got %v", c.Heightmap.WaterFraction)
	}

	switch c.Terrain.Noise.Kind {
	case "improved", "perlin", "simplex":
	default:
		fail("terrain.noise.kind %q is not one of improved, perlin, simplex", c.Terrain.Noise.Kind)
	}

	if c.River.Width <= 0 {
		fail("river.width must be positive, got %v", c.River.Width)
	}
	if c.River.BankWidth < c.River.Width {
		fail("river.bank_width (%v) must not be smaller than river.width (%v)", c.River.BankWidth, c.River.Width)
	}
	if c.River.Geometry.WidthSegments < 1 || c.River.Geometry.LengthSegments < 1 {
		fail("river.geometry segments must be at least 1")
	}

	if c.Water.PlaneScale <= 0 {
		fail("water.plane_scale must be positive, got %v", c.Water.PlaneScale)
	}

	if a := c.Lighting.SunAngles; a != nil {
		if a.Elevation < -90 || a.Elevation > 90 {
			fail("lighting.sun_angles.elevation must be within [-90,90], got %v", a.Elevation)
		}
	} else if sun := c.Lighting.SunDirection; sun.X == 0 && sun.Y == 0 && sun.Z == 0 {
		fail("lighting.sun_direction must not be zero")
	}
	if c.Lighting.AOStrength < 0 || c.Lighting.AOStrength > 1 {
		fail("lighting.ao_strength must be within [0,1], got %v", c.Lighting.AOStrength)
	}

	if c.Vegetation.AttemptFactor < 1 {
		fail("vegetation.attempt_factor must be at least 1, got %d", c.Vegetation.AttemptFactor)
	}

	seen := make(map[string]bool)
	for i := range c.Vegetation.Classes {
		pc := &c.Vegetation.Classes[i]
		if pc.Name == "" {
			fail("vegetation.classes[%d] has no name", i)
		} else if seen[pc.Name] {
			fail("vegetation class %q is defined twice", pc.Name)
		}
		seen[pc.Name] = true
		errs = append(errs, validatePlacement(pc)...)
	}

	g := &c.Vegetation.Grass
	errs = append(errs, validatePlacement(&g.PlacementConfig)...)
	if g.Blades.Min < 1 || g.Blades.Max < g.Blades.Min {
		fail("vegetation.grass.blades must satisfy 1 <= min <= max, got [%d,%d)", g.Blades.Min, g.Blades.Max)
	}
	if g.BladeHeight.Min <= 0 || g.BladeHeight.Max < g.BladeHeight.Min {
		fail("vegetation.grass.blade_height must be a positive range, got [%v,%v]", g.BladeHeight.Min, g.BladeHeight.Max)
	}

	if c.Output.PreviewSize < 1 {
		fail("output.preview_size must be positive, got %d", c.Output.PreviewSize)
	}

	return errors.Join(errs...)
}

func validatePlacement(pc *PlacementConfig) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: vegetation class %q: "+format, append([]any{ErrInvalidConfig, pc.Name}, args...)...))
	}

	if pc.Count < 0 {
		fail("count must not be negative, got %d", pc.Count)
	}
	if pc.SpreadFactor <= 0 || pc.SpreadFactor > 1 {
		fail("spread_factor must be within (0,1], got %v", pc.SpreadFactor)
	}
	switch pc.Rule {
	case RuleWaterClearance, RuleRiverDistance, RuleBoth:
	default:
		fail("rule %q is not one of %s, %s, %s", pc.Rule, RuleWaterClearance, RuleRiverDistance, RuleBoth)
	}
	if pc.MinRiverDistance < 0 {
		fail("min_river_distance must not be negative, got %v", pc.MinRiverDistance)
	}
	if pc.Scale.Min <= 0 || pc.Scale.Max < pc.Scale.Min {
		fail("scale must be a positive range, got [%v,%v]", pc.Scale.Min, pc.Scale.Max)
	}
	if pc.Biome != "" {
		if !slices.Contains(BiomeLayers, pc.Biome) {
			fail("biome %q is not a terrain layer", pc.Biome)
		}
		if pc.MinBiomeWeight < 0 || pc.MinBiomeWeight > 1 {
			fail("min_biome_weight must be within [0,1], got %v", pc.MinBiomeWeight)
		}
	}
	return errs
}
