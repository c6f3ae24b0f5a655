// Package main is the entry point for the riverscape scene generator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/riverscape/internal/assets"
	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/logger"
	"github.com/Faultbox/riverscape/internal/preview"
	"github.com/Faultbox/riverscape/internal/scene"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Riverscape Scene Generator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg)
	stop()

	if err != nil {
		logger.Error("scene generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, cfg *config.Config) error {
	manager := assets.NewManager(cfg.Heightmap.Roots...)
	defer manager.Close()

	pipeline, err := scene.NewPipeline(cfg, manager)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	result, err := pipeline.Generate(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	summaryPath := filepath.Join(cfg.Output.Dir, cfg.Output.Prefix+"_summary.yaml")
	if err := writeYAML(summaryPath, result.Summary()); err != nil {
		return err
	}
	logger.Info("wrote scene summary", zap.String("path", summaryPath))

	configPath := filepath.Join(cfg.Output.Dir, cfg.Output.Prefix+"_config.yaml")
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("writing effective config: %w", err)
	}

	if cfg.Output.Instances {
		instancesPath := filepath.Join(cfg.Output.Dir, cfg.Output.Prefix+"_instances.yaml")
		dump := struct {
			Vegetation any `yaml:"vegetation"`
			Grass      any `yaml:"grass"`
		}{result.Vegetation, result.Grass}
		if err := writeYAML(instancesPath, dump); err != nil {
			return err
		}
		logger.Info("wrote instance lists", zap.String("path", instancesPath))
	}

	if cfg.Output.Previews {
		files, err := preview.NewWriter(cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.PreviewSize).WriteAll(result)
		if err != nil {
			return err
		}
		logger.Info("wrote previews", zap.Strings("files", files))
	}

	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
