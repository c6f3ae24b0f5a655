package heightfield

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/logger"
	"github.com/Faultbox/riverscape/internal/noise"
)

// Fetcher retrieves raw asset bytes for a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Generator produces height fields.
type Generator struct {
	terrain   config.TerrainConfig
	heightmap config.HeightmapConfig
	river     River
	noise     noise.Source
	fetcher   Fetcher
}

// NewGenerator creates a generator. fetcher may be nil if image mode is never used.
func NewGenerator(cfg *config.Config, fetcher Fetcher) (*Generator, error) {
	src, err := noise.New(cfg.Terrain.Noise.Kind, cfg.Terrain.Noise.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating terrain noise: %w", err)
	}

	return &Generator{
		terrain:   cfg.Terrain,
		heightmap: cfg.Heightmap,
		river:     NewRiver(cfg.River),
		noise:     src,
		fetcher:   fetcher,
	}, nil
}

// River returns the river carved by this generator.
func (g *Generator) River() River {
	return g.river
}

// Generate returns a width x depth field in the requested mode. Image mode
// falls back to noise on any fetch or decode failure; it never returns nil.
func (g *Generator) Generate(ctx context.Context, width, depth int, mode Mode) *Field {
	if mode == ModeImage {
		f, err := g.Load(ctx, width, depth)
		if err == nil {
			return f
		}
		logger.Warn("heightmap unavailable, using procedural terrain",
			zap.String("source", g.heightmap.Source),
			zap.Error(err))
	}
	return g.Noise(width, depth)
}

// Noise synthesizes a field from the configured noise layers and carves the river.
func (g *Generator) Noise(width, depth int) *Field {
	f := NewField(width, depth, ModeNoise)
	layers := g.terrain.Noise.Layers

	for z := range depth {
		for x := range width {
			fx, fz := float64(x), float64(z)

			h := g.terrain.BaseHeight
			for _, l := range layers {
				h += g.noise.Noise3(fx*l.Scale, fz*l.Scale, l.Offset) * l.Amplitude
			}

			h -= g.river.Carve(g.river.Distance(fx, fz, width))
			h = max(h, g.terrain.MinHeight)

			f.Data[z*width+x] = float32(h)
		}
	}

	f.updateBounds()
	return f
}

// Load fetches and decodes the configured heightmap image.
func (g *Generator) Load(ctx context.Context, width, depth int) (*Field, error) {
	if g.fetcher == nil {
		return nil, errors.New("no asset fetcher configured")
	}

	data, err := g.fetcher.Fetch(ctx, g.heightmap.Source)
	if err != nil {
		return nil, err
	}
	return g.Decode(data, width, depth)
}

// Decode decodes an encoded image and resamples it to width x depth.
func (g *Generator) Decode(data []byte, width, depth int) (*Field, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding heightmap: empty %s image", format)
	}

	f := g.FromImage(img, width, depth)
	logger.Debug("heightmap decoded",
		zap.String("format", format),
		zap.Int("imageWidth", b.Dx()),
		zap.Int("imageHeight", b.Dy()),
		zap.Float32("min", f.Min),
		zap.Float32("max", f.Max))
	return f, nil
}

// FromImage resamples img onto a width x depth grid by nearest-neighbour lookup
// of the red channel, mapped to [0, heightScale] + heightOffset. Alpha is ignored.
func (g *Generator) FromImage(img image.Image, width, depth int) *Field {
	f := NewField(width, depth, ModeImage)
	b := img.Bounds()
	imgW, imgH := b.Dx(), b.Dy()

	for z := range depth {
		iz := min(z*imgH/depth, imgH-1)
		for x := range width {
			ix := min(x*imgW/width, imgW-1)

			// Non-premultiplied, so translucent pixels keep their full red value.
			c := color.NRGBAModel.Convert(img.At(b.Min.X+ix, b.Min.Y+iz)).(color.NRGBA)
			v := float64(c.R) / 255

			f.Data[z*width+x] = float32(v*g.heightmap.HeightScale + g.heightmap.HeightOffset)
		}
	}

	f.updateBounds()
	return f
}
