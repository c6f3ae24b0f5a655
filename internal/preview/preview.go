// Package preview renders top-down PNG previews of a generated scene.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/image/draw"

	"github.com/Faultbox/riverscape/internal/biome"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/scene"
)

// Preview kinds, used as file name suffixes.
const (
	KindHeightmap  = "heightmap"
	KindBiome      = "biome"
	KindVegetation = "vegetation"
)

// textureLuma approximates the average brightness of the ground textures the
// palette tints are multiplied with.
const textureLuma = 0.55

var waterColor = color.RGBA{R: 40, G: 90, B: 140, A: 255}

// Writer saves preview images.
type Writer struct {
	outputDir string
	prefix    string
	size      int
}

// NewWriter creates a writer saving size x size images into outputDir.
func NewWriter(outputDir, prefix string, size int) *Writer {
	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
		size:      size,
	}
}

// Filename returns the path a preview of the given kind is written to.
func (w *Writer) Filename(kind string) string {
	filename := fmt.Sprintf("%s_%s.png", w.prefix, kind)
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}
	return filename
}

// Save scales img to the writer's size and writes it as PNG.
func (w *Writer) Save(kind string, img image.Image) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	if b := img.Bounds(); b.Dx() != w.size || b.Dy() != w.size {
		img = scale(img, w.size)
	}

	filename := w.Filename(kind)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// WriteAll writes the heightmap, biome and vegetation previews of r.
func (w *Writer) WriteAll(r *scene.Result) ([]string, error) {
	biomeMap := BiomeMap(r)

	images := []struct {
		kind string
		img  image.Image
	}{
		{KindHeightmap, Heightmap(r.Field)},
		{KindBiome, biomeMap},
		{KindVegetation, Vegetation(r, biomeMap, w.size)},
	}

	var files []string
	for _, p := range images {
		name, err := w.Save(p.kind, p.img)
		if err != nil {
			return files, fmt.Errorf("writing %s preview: %w", p.kind, err)
		}
		files = append(files, name)
	}
	return files, nil
}

// Heightmap renders f as grayscale, black at Min and white at Max.
func Heightmap(f *heightfield.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Depth))
	span := f.Range()

	for z := range f.Depth {
		for x := range f.Width {
			var v float32
			if span > 0 {
				v = (f.At(x, z) - f.Min) / span
			}
			img.Pix[z*img.Stride+x] = uint8(v*255 + 0.5)
		}
	}
	return img
}

// BiomeMap shades every grid cell with the terrain color and floods cells
// below the water level.
func BiomeMap(r *scene.Result) *image.RGBA {
	f := r.Field
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Depth))

	for z := range f.Depth {
		for x := range f.Width {
			if float64(f.At(x, z)) < r.WaterLevel {
				img.SetRGBA(x, z, waterColor)
				continue
			}
			wx, wz := r.Sampler.ToWorld(float64(x), float64(z))
			in := biome.InputAt(r.Sampler, wx, wz)
			c := r.Biome.Color(in)
			light := r.Sun.Shade(r.Sampler.NormalAt(wx, wz), in.Height)
			img.SetRGBA(x, z, color.RGBA{
				R: channel(c.R * light),
				G: channel(c.G * light),
				B: channel(c.B * light),
				A: 255,
			})
		}
	}
	return img
}

// Vegetation draws every placed instance as a dot over base, one color per class.
func Vegetation(r *scene.Result, base image.Image, size int) *image.RGBA {
	dst := scale(base, size)
	worldSize := r.Sampler.WorldSize()

	names := make([]string, 0, len(r.Vegetation))
	for name := range r.Vegetation {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := ClassColor(name)
		for _, inst := range r.Vegetation[name] {
			px := int((inst.X/worldSize + 0.5) * float64(size))
			pz := int((inst.Z/worldSize + 0.5) * float64(size))
			dot(dst, px, pz, 1, c)
		}
	}
	return dst
}

// ClassColor derives a stable, saturated color from a class name.
func ClassColor(name string) color.RGBA {
	h := xxhash.Sum64String(name)
	return color.RGBA{
		R: uint8(h) | 0x40,
		G: uint8(h>>8) | 0x40,
		B: uint8(h>>16) | 0x40,
		A: 255,
	}
}

func dot(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	b := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if image.Pt(x, y).In(b) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v*textureLuma))*255 + 0.5)
}
