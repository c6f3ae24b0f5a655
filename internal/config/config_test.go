package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.World.Size != 1000 {
		t.Errorf("expected world size 1000, got %v", cfg.World.Size)
	}
	if cfg.World.Resolution != 256 {
		t.Errorf("expected resolution 256, got %d", cfg.World.Resolution)
	}
	if got := len(cfg.Terrain.Noise.Layers); got != 3 {
		t.Fatalf("expected 3 noise layers, got %d", got)
	}
	if cfg.Terrain.Noise.Layers[0].Scale != 0.008 || cfg.Terrain.Noise.Layers[0].Amplitude != 50 {
		t.Errorf("unexpected first noise layer %+v", cfg.Terrain.Noise.Layers[0])
	}
	if cfg.River.Width != 12 || cfg.River.BankWidth != 36 {
		t.Errorf("unexpected river widths %v/%v", cfg.River.Width, cfg.River.BankWidth)
	}
	if cfg.Heightmap.WaterFraction != 0.18 {
		t.Errorf("expected water fraction 0.18, got %v", cfg.Heightmap.WaterFraction)
	}
	if cfg.Vegetation.AttemptFactor != 3 {
		t.Errorf("expected attempt factor 3, got %d", cfg.Vegetation.AttemptFactor)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestRange(t *testing.T) {
	r := Range{Min: 2, Max: 6}
	if got := r.Lerp(0.5); got != 4 {
		t.Errorf("Range.Lerp(0.5) = %v, want 4", got)
	}
	if !r.Contains(2) || !r.Contains(6) || r.Contains(6.01) {
		t.Error("Range.Contains does not treat the range as inclusive")
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scene.yaml")

	yamlContent := `
world:
  size: 500
  resolution: 128
  seed: 99

heightmap:
  enabled: false

terrain:
  noise:
    kind: simplex
    layers:
      - scale: 0.01
        amplitude: 30

vegetation:
  classes:
    - name: reeds
      count: 50
      spread_factor: 0.5
      rule: river_distance
      min_river_distance: 14
      scale: {min: 0.2, max: 0.4}

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.Size != 500 || cfg.World.Resolution != 128 || cfg.World.Seed != 99 {
		t.Errorf("world not loaded: %+v", cfg.World)
	}
	if cfg.Heightmap.Enabled {
		t.Error("expected heightmap to be disabled")
	}
	if cfg.Heightmap.HeightScale != 500 {
		t.Errorf("unset field should keep default 500, got %v", cfg.Heightmap.HeightScale)
	}
	if cfg.Terrain.Noise.Kind != "simplex" || len(cfg.Terrain.Noise.Layers) != 1 {
		t.Errorf("noise not loaded: %+v", cfg.Terrain.Noise)
	}
	if len(cfg.Vegetation.Classes) != 1 || cfg.Vegetation.Classes[0].Name != "reeds" {
		t.Fatalf("classes not replaced: %+v", cfg.Vegetation.Classes)
	}
	if cfg.Vegetation.Classes[0].Rule != RuleRiverDistance || cfg.Vegetation.Classes[0].MinRiverDistance != 14 {
		t.Errorf("class rule not loaded: %+v", cfg.Vegetation.Classes[0])
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "scene.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config does not validate: %v", err)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scene.toml")

	tomlContent := `
[world]
size = 750.0
resolution = 64

[river]
width = 8.0
bank_width = 20.0

[logging]
level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.Size != 750 {
		t.Errorf("expected world size 750, got %v", cfg.World.Size)
	}
	if cfg.World.Resolution != 64 {
		t.Errorf("expected resolution 64, got %d", cfg.World.Resolution)
	}
	if cfg.River.Width != 8 || cfg.River.BankWidth != 20 {
		t.Errorf("river not loaded: %v/%v", cfg.River.Width, cfg.River.BankWidth)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
world:
  size: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/scene.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero world size", func(c *Config) { c.World.Size = 0 }},
		{"tiny resolution", func(c *Config) { c.World.Resolution = 1 }},
		{"heightmap without source", func(c *Config) { c.Heightmap.Source = "" }},
		{"water fraction above one", func(c *Config) { c.Heightmap.WaterFraction = 1.5 }},
		{"unknown noise", func(c *Config) { c.Terrain.Noise.Kind = "worley" }},
		{"bank narrower than river", func(c *Config) { c.River.BankWidth = 4 }},
		{"zero attempt factor", func(c *Config) { c.Vegetation.AttemptFactor = 0 }},
		{"zero sun direction", func(c *Config) { c.Lighting.SunDirection = Vector{} }},
		{"sun elevation out of range", func(c *Config) { c.Lighting.SunAngles = &SunAngles{Elevation: 120} }},
		{"unknown rule", func(c *Config) { c.Vegetation.Classes[0].Rule = "anywhere" }},
		{"inverted scale", func(c *Config) { c.Vegetation.Classes[1].Scale = Range{Min: 2, Max: 1} }},
		{"spread above one", func(c *Config) { c.Vegetation.Classes[2].SpreadFactor = 1.2 }},
		{"duplicate class", func(c *Config) { c.Vegetation.Classes[1].Name = c.Vegetation.Classes[0].Name }},
		{"empty blade range", func(c *Config) { c.Vegetation.Grass.Blades = IntRange{Min: 0, Max: 0} }},
		{"unknown biome layer", func(c *Config) { c.Vegetation.Classes[0].Biome = "tundra" }},
		{"biome weight above one", func(c *Config) {
			c.Vegetation.Classes[0].Biome = "forest"
			c.Vegetation.Classes[0].MinBiomeWeight = 2
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sun angles without direction", func(c *Config) {
			c.Lighting.SunDirection = Vector{}
			c.Lighting.SunAngles = &SunAngles{Azimuth: 30, Elevation: 45}
		}},
		{"biome gate on river grass", func(c *Config) {
			c.Vegetation.Classes[2].Biome = "river_grass"
			c.Vegetation.Classes[2].MinBiomeWeight = 0.3
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "riverscape.toml"), []byte("[world]\nresolution = 32\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./riverscape.toml" {
		t.Errorf("findConfigFile() = %q, want ./riverscape.toml", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 77 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.World.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "heightmap flag",
			setup: func() { *flagHeightmap = "https://example.com/h.png" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Heightmap.Enabled || cfg.Heightmap.Source != "https://example.com/h.png" {
					t.Errorf("heightmap not overridden: %+v", cfg.Heightmap)
				}
			},
			teardown: func() { *flagHeightmap = "" },
		},
		{
			name:  "procedural flag",
			setup: func() { *flagProcedural = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Heightmap.Enabled {
					t.Error("expected heightmap disabled with procedural flag")
				}
			},
			teardown: func() { *flagProcedural = false },
		},
		{
			name: "resolution and output flags",
			setup: func() {
				*flagResolution = 64
				*flagOut = "/tmp/scene"
				*flagInstances = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Resolution != 64 {
					t.Errorf("expected resolution 64, got %d", cfg.World.Resolution)
				}
				if cfg.Output.Dir != "/tmp/scene" || !cfg.Output.Instances {
					t.Errorf("output not overridden: %+v", cfg.Output)
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagOut = ""
				*flagInstances = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scene.yaml")

	yamlContent := `
world:
  resolution: 100
  size: 800
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagResolution = 200
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.Resolution != 200 {
		t.Errorf("expected resolution 200 from flag, got %d", cfg.World.Resolution)
	}
	if cfg.World.Size != 800 {
		t.Errorf("expected size 800 from file, got %v", cfg.World.Size)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  resolution: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "saved.yaml")

	cfg := Default()
	cfg.World.Seed = 1234
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config failed: %v", err)
	}
	if loaded.World.Seed != 1234 {
		t.Errorf("expected saved seed 1234, got %d", loaded.World.Seed)
	}
	if len(loaded.Vegetation.Classes) != len(cfg.Vegetation.Classes) {
		t.Errorf("expected %d classes after reload, got %d", len(cfg.Vegetation.Classes), len(loaded.Vegetation.Classes))
	}
}
