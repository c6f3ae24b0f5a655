package scene

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/logger"
)

// Pipeline runs scene generation and holds the current Result.
type Pipeline struct {
	cfg     *config.Config
	gen     *heightfield.Generator
	builder *Builder
	current atomic.Pointer[Result]
}

// NewPipeline creates a pipeline. fetcher resolves the heightmap source and may
// be nil when the heightmap is disabled.
func NewPipeline(cfg *config.Config, fetcher heightfield.Fetcher) (*Pipeline, error) {
	gen, err := heightfield.NewGenerator(cfg, fetcher)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		gen:     gen,
		builder: NewBuilder(cfg),
	}, nil
}

// Current returns the most recently published Result, or nil before the first build.
func (p *Pipeline) Current() *Result {
	return p.current.Load()
}

func (p *Pipeline) mode() heightfield.Mode {
	if p.cfg.Heightmap.Enabled {
		return heightfield.ModeImage
	}
	return heightfield.ModeNoise
}

// Generate builds the scene synchronously in the configured mode, falling back
// to noise terrain if the heightmap cannot be loaded.
func (p *Pipeline) Generate(ctx context.Context) (*Result, error) {
	res := p.cfg.World.Resolution
	field := p.gen.Generate(ctx, res, res, p.mode())

	r, err := p.builder.Build(ctx, field, p.gen.River())
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	p.current.Store(r)
	return r, nil
}

// Start publishes a noise-terrain scene immediately and returns it. If the
// heightmap is enabled it is loaded in the background; on success a scene
// rebuilt from the image replaces the current one and is sent on the returned
// channel. The channel is closed once loading has finished either way.
func (p *Pipeline) Start(ctx context.Context) (*Result, <-chan *Result, error) {
	res := p.cfg.World.Resolution

	r, err := p.builder.Build(ctx, p.gen.Noise(res, res), p.gen.River())
	if err != nil {
		return nil, nil, fmt.Errorf("building fallback scene: %w", err)
	}
	p.current.Store(r)

	updates := make(chan *Result, 1)
	if p.mode() != heightfield.ModeImage {
		close(updates)
		return r, updates, nil
	}

	go func() {
		defer close(updates)

		field, err := p.gen.Load(ctx, res, res)
		if err != nil {
			logger.Warn("heightmap unavailable, keeping procedural terrain",
				zap.String("source", p.cfg.Heightmap.Source),
				zap.Error(err))
			return
		}

		next, err := p.builder.Build(ctx, field, p.gen.River())
		if err != nil {
			logger.Warn("rebuilding scene from heightmap failed", zap.Error(err))
			return
		}

		p.current.Store(next)
		updates <- next
	}()

	return r, updates, nil
}
