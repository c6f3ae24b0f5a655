package preview

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/scene"
)

func testScene(t *testing.T) *scene.Result {
	t.Helper()
	cfg := config.Default()
	cfg.World.Resolution = 24
	cfg.World.Size = 240
	cfg.Water.Height = 30
	cfg.River.Geometry.WidthSegments = 2
	cfg.River.Geometry.LengthSegments = 8
	for i := range cfg.Vegetation.Classes {
		cfg.Vegetation.Classes[i].Count = 10
	}
	cfg.Vegetation.Grass.Count = 5

	gen, err := heightfield.NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	r, err := scene.NewBuilder(cfg).Build(context.Background(), gen.Noise(24, 24), gen.River())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func TestHeightmap(t *testing.T) {
	f := heightfield.NewField(3, 1, heightfield.ModeNoise)
	f.Data = []float32{10, 15, 20}
	f.Min, f.Max = 10, 20

	img := Heightmap(f)
	want := []uint8{0, 128, 255}
	for x, w := range want {
		if got := img.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}

	flat := heightfield.NewField(2, 2, heightfield.ModeNoise)
	for _, p := range Heightmap(flat).Pix {
		if p != 0 {
			t.Fatalf("flat field pixel = %d, want 0", p)
		}
	}
}

func TestBiomeMap(t *testing.T) {
	r := testScene(t)
	img := BiomeMap(r)

	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Fatalf("biome map is %v, want 24x24", b)
	}
	for z := range 24 {
		for x := range 24 {
			c := img.RGBAAt(x, z)
			under := float64(r.Field.At(x, z)) < r.WaterLevel
			if under != (c == waterColor) {
				t.Fatalf("cell (%d,%d) water=%v but color %v", x, z, under, c)
			}
		}
	}
}

func TestWriteAll(t *testing.T) {
	r := testScene(t)
	dir := filepath.Join(t.TempDir(), "previews")

	files, err := NewWriter(dir, "test", 64).WriteAll(r)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("wrote %d files, want 3", len(files))
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decoding %s: %v", name, err)
		}
		if b := img.Bounds(); b != image.Rect(0, 0, 64, 64) {
			t.Errorf("%s is %v, want 64x64", name, b)
		}
	}

	if got, want := files[0], filepath.Join(dir, "test_heightmap.png"); got != want {
		t.Errorf("first file = %s, want %s", got, want)
	}
}

func TestClassColorStable(t *testing.T) {
	if ClassColor("bushes") != ClassColor("bushes") {
		t.Error("ClassColor is not stable")
	}
	if ClassColor("bushes") == ClassColor("boulders") {
		t.Error("different classes share a color")
	}
}
