package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Uint64("seed", 0, "World seed for vegetation placement (0 keeps the configured seed)")
	flagHeightmap  = flag.String("heightmap", "", "Heightmap image path or URL (enables image terrain)")
	flagProcedural = flag.Bool("procedural", false, "Ignore the heightmap and use noise terrain")
	flagResolution = flag.Int("resolution", 0, "Height samples per world edge")
	flagOut        = flag.String("out", "", "Output directory")
	flagInstances  = flag.Bool("instances", false, "Also write vegetation instance lists")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagHeightmap != "" {
		cfg.Heightmap.Enabled = true
		cfg.Heightmap.Source = *flagHeightmap
	}
	if *flagProcedural {
		cfg.Heightmap.Enabled = false
	}
	if *flagResolution > 0 {
		cfg.World.Resolution = *flagResolution
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagInstances {
		cfg.Output.Instances = true
	}
}
