package water

import (
	"math"
	"testing"

	"github.com/Faultbox/riverscape/internal/config"
	"github.com/Faultbox/riverscape/internal/heightfield"
	"github.com/Faultbox/riverscape/internal/terrain"
)

func TestBuildPlane(t *testing.T) {
	p := BuildPlane(1000, 1.2, 45)

	if len(p.Vertices) != 12 {
		t.Fatalf("len(Vertices) = %d, want 12", len(p.Vertices))
	}
	if p.Level != 45 {
		t.Errorf("Level = %v, want 45", p.Level)
	}
	for i := 0; i < 12; i += 3 {
		if p.Vertices[i+1] != 45 {
			t.Errorf("vertex %d y = %v, want 45", i/3, p.Vertices[i+1])
		}
		if math.Abs(float64(p.Vertices[i])) != 600 || math.Abs(float64(p.Vertices[i+2])) != 600 {
			t.Errorf("vertex %d = (%v, %v), want corners at ±600", i/3, p.Vertices[i], p.Vertices[i+2])
		}
	}
}

func TestLevelFor(t *testing.T) {
	cfg := config.Default()

	image := &heightfield.Field{Min: 0, Max: 500, Source: heightfield.ModeImage}
	if got := LevelFor(image, cfg); math.Abs(got-90) > 1e-4 {
		t.Errorf("LevelFor(image) = %v, want 90", got)
	}

	noise := &heightfield.Field{Min: 0, Max: 500, Source: heightfield.ModeNoise}
	if got := LevelFor(noise, cfg); got != cfg.Water.Height {
		t.Errorf("LevelFor(noise) = %v, want %v", got, cfg.Water.Height)
	}
}

func TestBuildRiver(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Noise.Layers = nil

	g, err := heightfield.NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	f := g.Noise(64, 64)
	s := terrain.NewSampler(f, g.River(), 1000)

	geom := config.RiverGeometryConfig{Width: 40, WidthSegments: 4, LengthSegments: 10}
	m := BuildRiver(s, geom, 0.8)

	if len(m.Vertices) != 5*11 {
		t.Fatalf("len(Vertices) = %d, want %d", len(m.Vertices), 5*11)
	}
	if m.TriangleCount() != 4*10*2 {
		t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), 80)
	}

	for j := range 11 {
		mid := m.Vertices[j*5+2].Position
		z := float64(mid.Z())
		if cx := s.CenterlineX(z); math.Abs(float64(mid.X())-cx) > 1e-3 {
			t.Errorf("row %d centre x = %v, want %v", j, mid.X(), cx)
		}
		want := s.HeightAt(s.CenterlineX(z), z) + 0.8
		if math.Abs(float64(mid.Y())-want) > 1e-3 {
			t.Errorf("row %d surface = %v, want %v", j, mid.Y(), want)
		}
		left, right := m.Vertices[j*5].Position, m.Vertices[j*5+4].Position
		if w := right.X() - left.X(); math.Abs(float64(w)-40) > 1e-3 {
			t.Errorf("row %d width = %v, want 40", j, w)
		}
	}

	first, last := m.Vertices[0].Position.Z(), m.Vertices[len(m.Vertices)-1].Position.Z()
	if first != -500 || last != 500 {
		t.Errorf("ribbon spans z %v..%v, want -500..500", first, last)
	}
}
