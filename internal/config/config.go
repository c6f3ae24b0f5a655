// Package config handles scene configuration loading and management.
package config

// Config holds every tunable of the scene generator.
type Config struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Heightmap  HeightmapConfig  `yaml:"heightmap" toml:"heightmap"`
	Terrain    TerrainConfig    `yaml:"terrain" toml:"terrain"`
	River      RiverConfig      `yaml:"river" toml:"river"`
	Water      WaterConfig      `yaml:"water" toml:"water"`
	Biome      BiomeConfig      `yaml:"biome" toml:"biome"`
	Palette    PaletteConfig    `yaml:"palette" toml:"palette"`
	Lighting   LightingConfig   `yaml:"lighting" toml:"lighting"`
	Vegetation VegetationConfig `yaml:"vegetation" toml:"vegetation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

// Lerp maps t in [0,1) onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange is a half-open integer interval [Min, Max).
type IntRange struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// Color is a linear RGB triple. Components may exceed 1 (the terrain palette is
// used as a multiplicative tint).
type Color struct {
	R float64 `yaml:"r" toml:"r"`
	G float64 `yaml:"g" toml:"g"`
	B float64 `yaml:"b" toml:"b"`
}

// WorldConfig holds world extent and grid resolution.
type WorldConfig struct {
	Size       float64 `yaml:"size" toml:"size"`             // World edge length in world units
	Resolution int     `yaml:"resolution" toml:"resolution"` // Height samples per edge
	Seed       uint64  `yaml:"seed" toml:"seed"`             // Seed for placement streams
}

// HeightmapConfig controls image-driven terrain.
type HeightmapConfig struct {
	Enabled       bool     `yaml:"enabled" toml:"enabled"`
	Source        string   `yaml:"source" toml:"source"` // File path (relative to roots) or http(s) URL
	Roots         []string `yaml:"roots" toml:"roots"`   // Directories searched for relative sources
	HeightScale   float64  `yaml:"height_scale" toml:"height_scale"`
	HeightOffset  float64  `yaml:"height_offset" toml:"height_offset"`
	WaterFraction float64  `yaml:"water_fraction" toml:"water_fraction"` // Water level as a fraction of the height range
}

// NoiseLayer is one octave of the terrain height noise.
type NoiseLayer struct {
	Scale     float64 `yaml:"scale" toml:"scale"`
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Offset    float64 `yaml:"offset" toml:"offset"` // Third noise coordinate, decorrelates layers
}

// NoiseConfig selects the coherent noise backend.
type NoiseConfig struct {
	Kind   string       `yaml:"kind" toml:"kind"` // improved, perlin or simplex
	Seed   int64        `yaml:"seed" toml:"seed"`
	Layers []NoiseLayer `yaml:"layers" toml:"layers"`
}

// TerrainConfig holds procedural height parameters.
type TerrainConfig struct {
	BaseHeight float64     `yaml:"base_height" toml:"base_height"`
	MinHeight  float64     `yaml:"min_height" toml:"min_height"`
	Noise      NoiseConfig `yaml:"noise" toml:"noise"`
}

// RiverGeometryConfig describes the water ribbon laid along the river.
type RiverGeometryConfig struct {
	Width          float64 `yaml:"width" toml:"width"`
	WidthSegments  int     `yaml:"width_segments" toml:"width_segments"`
	LengthSegments int     `yaml:"length_segments" toml:"length_segments"`
}

// RiverConfig holds the river curve and trench profile.
// Widths, depth-axis frequencies and amplitudes are in height-field cells.
type RiverConfig struct {
	Width           float64             `yaml:"width" toml:"width"`
	BankWidth       float64             `yaml:"bank_width" toml:"bank_width"`
	CurveFrequency1 float64             `yaml:"curve_frequency1" toml:"curve_frequency1"`
	CurveAmplitude1 float64             `yaml:"curve_amplitude1" toml:"curve_amplitude1"`
	CurveFrequency2 float64             `yaml:"curve_frequency2" toml:"curve_frequency2"`
	CurveAmplitude2 float64             `yaml:"curve_amplitude2" toml:"curve_amplitude2"`
	Depth           float64             `yaml:"depth" toml:"depth"`
	BankDepth       float64             `yaml:"bank_depth" toml:"bank_depth"`
	WaterHeight     float64             `yaml:"water_height" toml:"water_height"` // Ribbon height above the river bed
	Geometry        RiverGeometryConfig `yaml:"geometry" toml:"geometry"`
}

// WaterConfig holds the water plane settings.
type WaterConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Height     float64 `yaml:"height" toml:"height"`           // Fixed level for procedural terrain
	PlaneScale float64 `yaml:"plane_scale" toml:"plane_scale"` // Plane size relative to the world
}

// NoiseScales are the biome noise frequencies.
type NoiseScales struct {
	FBM1   float64 `yaml:"fbm1" toml:"fbm1"`
	FBM2   float64 `yaml:"fbm2" toml:"fbm2"`
	Large  float64 `yaml:"large" toml:"large"`
	Detail float64 `yaml:"detail" toml:"detail"`
}

// PathConfig shapes the procedural dirt paths.
type PathConfig struct {
	Frequency1Y     float64 `yaml:"frequency1_y" toml:"frequency1_y"`
	Frequency1X     float64 `yaml:"frequency1_x" toml:"frequency1_x"`
	Frequency2X     float64 `yaml:"frequency2_x" toml:"frequency2_x"`
	Frequency2Y     float64 `yaml:"frequency2_y" toml:"frequency2_y"`
	NoiseScale1     float64 `yaml:"noise_scale1" toml:"noise_scale1"`
	NoiseScale2     float64 `yaml:"noise_scale2" toml:"noise_scale2"`
	NoiseAmplitude1 float64 `yaml:"noise_amplitude1" toml:"noise_amplitude1"`
	NoiseAmplitude2 float64 `yaml:"noise_amplitude2" toml:"noise_amplitude2"`
	Width           Range   `yaml:"width" toml:"width"`
	Strength        float64 `yaml:"strength" toml:"strength"`
}

// GrassMaskConfig shapes the patchy grass coverage.
type GrassMaskConfig struct {
	Threshold1 Range   `yaml:"threshold1" toml:"threshold1"`
	Threshold2 Range   `yaml:"threshold2" toml:"threshold2"`
	Contrast   float64 `yaml:"contrast" toml:"contrast"`
}

// BandConfig is a smoothstep band with a strength.
type BandConfig struct {
	Range    Range   `yaml:"range" toml:"range"`
	Strength float64 `yaml:"strength" toml:"strength"`
}

// HeightBandConfig controls slope rock and the height-banded sand/snow overlays.
type HeightBandConfig struct {
	Enabled            bool    `yaml:"enabled" toml:"enabled"` // Sand and snow overlays
	BeachMax           float64 `yaml:"beach_max" toml:"beach_max"`
	BeachBlend         float64 `yaml:"beach_blend" toml:"beach_blend"`
	RockSlopeThreshold float64 `yaml:"rock_slope_threshold" toml:"rock_slope_threshold"`
	SnowMin            float64 `yaml:"snow_min" toml:"snow_min"`
	SnowBlend          float64 `yaml:"snow_blend" toml:"snow_blend"`
}

// BiomeConfig holds the terrain masking thresholds shared by the shader and the CPU.
type BiomeConfig struct {
	Noise      NoiseScales      `yaml:"noise" toml:"noise"`
	Paths      PathConfig       `yaml:"paths" toml:"paths"`
	GrassMask  GrassMaskConfig  `yaml:"grass_mask" toml:"grass_mask"`
	ForestMask BandConfig       `yaml:"forest_mask" toml:"forest_mask"`
	RiverGrass BandConfig       `yaml:"river_grass" toml:"river_grass"`
	Mud        BandConfig       `yaml:"mud" toml:"mud"`
	Heights    HeightBandConfig `yaml:"heights" toml:"heights"`
	Contrast   float64          `yaml:"contrast" toml:"contrast"`
}

// PaletteConfig holds the terrain tint colors.
type PaletteConfig struct {
	Dirt       Color `yaml:"dirt" toml:"dirt"`
	DirtPath   Color `yaml:"dirt_path" toml:"dirt_path"`
	Grass      Color `yaml:"grass" toml:"grass"`
	DarkGrass  Color `yaml:"dark_grass" toml:"dark_grass"`
	Forest     Color `yaml:"forest" toml:"forest"`
	Mud        Color `yaml:"mud" toml:"mud"`
	RiverGrass Color `yaml:"river_grass" toml:"river_grass"`
	Sand       Color `yaml:"sand" toml:"sand"`
	Rock       Color `yaml:"rock" toml:"rock"`
	Snow       Color `yaml:"snow" toml:"snow"`
	WarmTint   Color `yaml:"warm_tint" toml:"warm_tint"`
}

// Vector is a 3D direction.
type Vector struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

// SunAngles places the sun by angles in degrees. Azimuth rotates around Y from
// +Z, elevation is measured from the horizon.
type SunAngles struct {
	Azimuth   float64 `yaml:"azimuth" toml:"azimuth"`
	Elevation float64 `yaml:"elevation" toml:"elevation"`
}

// LightingConfig holds the terrain lighting terms.
type LightingConfig struct {
	SunDirection Vector     `yaml:"sun_direction" toml:"sun_direction"`                  // Points towards the sun
	SunAngles    *SunAngles `yaml:"sun_angles,omitempty" toml:"sun_angles,omitempty"` // Overrides SunDirection when set
	Ambient      float64    `yaml:"ambient" toml:"ambient"`
	Diffuse      float64    `yaml:"diffuse" toml:"diffuse"`
	AORange      Range      `yaml:"ao_range" toml:"ao_range"` // Heights over which valley darkening fades out
	AOStrength   float64    `yaml:"ao_strength" toml:"ao_strength"`
}

// BiomeLayers are the terrain palette layer names a placement class may gate on.
var BiomeLayers = []string{
	"grass", "dark_grass", "forest", "dirt", "river_grass",
	"mud", "path", "rock", "sand", "snow",
}

// Placement rules.
const (
	RuleWaterClearance = "water_clearance"
	RuleRiverDistance  = "river_distance"
	RuleBoth           = "both"
)

// PlacementConfig describes one vegetation class.
type PlacementConfig struct {
	Name             string  `yaml:"name" toml:"name"`
	Count            int     `yaml:"count" toml:"count"`
	SpreadFactor     float64 `yaml:"spread_factor" toml:"spread_factor"`
	Rule             string  `yaml:"rule" toml:"rule"`
	Clearance        float64 `yaml:"clearance" toml:"clearance"`                   // Minimum height above the water level
	MinRiverDistance float64 `yaml:"min_river_distance" toml:"min_river_distance"` // In height-field cells
	Scale            Range   `yaml:"scale" toml:"scale"`
	Biome            string  `yaml:"biome" toml:"biome"` // Optional biome layer gate
	MinBiomeWeight   float64 `yaml:"min_biome_weight" toml:"min_biome_weight"`
}

// GrassConfig describes the dense grass tuft system.
type GrassConfig struct {
	PlacementConfig `yaml:",inline" toml:"placement"`
	Blades          IntRange `yaml:"blades" toml:"blades"`
	TuftSpread      float64  `yaml:"tuft_spread" toml:"tuft_spread"`
	BladeHeight     Range    `yaml:"blade_height" toml:"blade_height"`
	BladeWidth      float64  `yaml:"blade_width" toml:"blade_width"`
	Tilt            float64  `yaml:"tilt" toml:"tilt"` // Max lean in radians, each way
}

// VegetationConfig holds all placement classes.
type VegetationConfig struct {
	AttemptFactor int               `yaml:"attempt_factor" toml:"attempt_factor"`
	Classes       []PlacementConfig `yaml:"classes" toml:"classes"`
	Grass         GrassConfig       `yaml:"grass" toml:"grass"`
}

// OutputConfig controls what the CLI writes.
type OutputConfig struct {
	Dir         string `yaml:"dir" toml:"dir"`
	Prefix      string `yaml:"prefix" toml:"prefix"`
	PreviewSize int    `yaml:"preview_size" toml:"preview_size"`
	Previews    bool   `yaml:"previews" toml:"previews"`
	Instances   bool   `yaml:"instances" toml:"instances"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns the shipped scene configuration.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Size:       1000,
			Resolution: 256,
			Seed:       1,
		},
		Heightmap: HeightmapConfig{
			Enabled:       true,
			Source:        "textures/heightmap_rugged.png",
			Roots:         []string{"."},
			HeightScale:   500,
			HeightOffset:  0,
			WaterFraction: 0.18,
		},
		Terrain: TerrainConfig{
			BaseHeight: 40,
			MinHeight:  5,
			Noise: NoiseConfig{
				Kind: "improved",
				Layers: []NoiseLayer{
					{Scale: 0.008, Amplitude: 50, Offset: 0},
					{Scale: 0.02, Amplitude: 20, Offset: 0.5},
					{Scale: 0.05, Amplitude: 8, Offset: 1},
				},
			},
		},
		River: RiverConfig{
			Width:           12,
			BankWidth:       36,
			CurveFrequency1: 0.025,
			CurveAmplitude1: 25,
			CurveFrequency2: 0.008,
			CurveAmplitude2: 40,
			Depth:           20,
			BankDepth:       8,
			WaterHeight:     0.8,
			Geometry: RiverGeometryConfig{
				Width:          55,
				WidthSegments:  80,
				LengthSegments: 800,
			},
		},
		Water: WaterConfig{
			Enabled:    true,
			Height:     45,
			PlaneScale: 1.2,
		},
		Biome: BiomeConfig{
			Noise: NoiseScales{FBM1: 0.012, FBM2: 0.025, Large: 0.006, Detail: 0.08},
			Paths: PathConfig{
				Frequency1Y:     0.006,
				Frequency1X:     0.004,
				Frequency2X:     0.005,
				Frequency2Y:     0.003,
				NoiseScale1:     0.002,
				NoiseScale2:     0.003,
				NoiseAmplitude1: 2.0,
				NoiseAmplitude2: 1.5,
				Width:           Range{Min: 0.04, Max: 0.12},
				Strength:        0.92,
			},
			GrassMask: GrassMaskConfig{
				Threshold1: Range{Min: 0.3, Max: 0.65},
				Threshold2: Range{Min: 0.25, Max: 0.55},
				Contrast:   0.7,
			},
			ForestMask: BandConfig{Range: Range{Min: 0.55, Max: 0.8}, Strength: 0.7},
			RiverGrass: BandConfig{Range: Range{Min: 0.05, Max: 0.2}, Strength: 0.6},
			Mud:        BandConfig{Range: Range{Min: 0.0, Max: 0.06}, Strength: 0.5},
			Heights: HeightBandConfig{
				Enabled:            true,
				BeachMax:           5,
				BeachBlend:         3,
				RockSlopeThreshold: 0.7,
				SnowMin:            100,
				SnowBlend:          20,
			},
			Contrast: 1.1,
		},
		Palette: PaletteConfig{
			Dirt:       Color{0.85, 0.65, 0.45},
			DirtPath:   Color{1.0, 0.8, 0.55},
			Grass:      Color{0.5, 1.6, 0.35},
			DarkGrass:  Color{0.35, 1.3, 0.25},
			Forest:     Color{0.4, 1.4, 0.3},
			Mud:        Color{0.5, 0.4, 0.3},
			RiverGrass: Color{0.55, 1.4, 0.45},
			Sand:       Color{1.2, 1.1, 0.8},
			Rock:       Color{0.55, 0.52, 0.5},
			Snow:       Color{1.3, 1.35, 1.4},
			WarmTint:   Color{1.02, 1.0, 0.96},
		},
		Lighting: LightingConfig{
			SunDirection: Vector{X: 0.4, Y: 0.6, Z: 0.7},
			Ambient:      0.35,
			Diffuse:      0.65,
			AORange:      Range{Min: 20, Max: 60},
			AOStrength:   0.15,
		},
		Vegetation: VegetationConfig{
			AttemptFactor: 3,
			Classes: []PlacementConfig{
				{Name: "deciduous_trees", Count: 300, SpreadFactor: 0.88, Rule: RuleWaterClearance, Clearance: 30, Scale: Range{0.5, 1.1}},
				{Name: "cypress_trees", Count: 150, SpreadFactor: 0.88, Rule: RuleWaterClearance, Clearance: 30, Scale: Range{0.55, 1.0}},
				{Name: "bushes", Count: 600, SpreadFactor: 0.92, Rule: RuleWaterClearance, Clearance: 10, Scale: Range{0.4, 1.0}},
				{Name: "ground_cover", Count: 800, SpreadFactor: 0.92, Rule: RuleWaterClearance, Clearance: 12, Scale: Range{1, 1}},
				{Name: "rocks", Count: 40, SpreadFactor: 0.9, Rule: RuleWaterClearance, Clearance: 5, Scale: Range{0.3, 0.8}},
				{Name: "boulders", Count: 30, SpreadFactor: 0.9, Rule: RuleWaterClearance, Clearance: 5, Scale: Range{3, 10}},
			},
			Grass: GrassConfig{
				PlacementConfig: PlacementConfig{
					Name:         "grass",
					Count:        5000,
					SpreadFactor: 0.95,
					Rule:         RuleWaterClearance,
					Clearance:    3,
					Scale:        Range{0.7, 1.5},
				},
				Blades:      IntRange{Min: 6, Max: 15},
				TuftSpread:  1.0,
				BladeHeight: Range{2.0, 5.0},
				BladeWidth:  0.35,
				Tilt:        0.15,
			},
		},
		Output: OutputConfig{
			Dir:         "out",
			Prefix:      "scene",
			PreviewSize: 512,
			Previews:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
