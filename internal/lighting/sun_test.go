package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/riverscape/internal/config"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float64
		want     mgl32.Vec3
	}{
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{0, 0, mgl32.Vec3{0, 0, 1}},
		{90, 0, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		if got := SunDirection(tt.lon, tt.lat); !got.ApproxEqualThreshold(tt.want, 1e-6) {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
	}
}

func TestNewSunNormalizes(t *testing.T) {
	s := NewSun(config.Default().Lighting)
	if l := s.Direction.Len(); math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("sun direction length = %v, want 1", l)
	}
}

func TestNewSunFromAngles(t *testing.T) {
	cfg := config.Default().Lighting
	cfg.SunAngles = &config.SunAngles{Azimuth: 90, Elevation: 0}

	s := NewSun(cfg)
	if want := (mgl32.Vec3{1, 0, 0}); !s.Direction.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Direction = %v, want %v", s.Direction, want)
	}

	cfg.SunAngles = &config.SunAngles{Azimuth: 0, Elevation: 90}
	cfg.SunDirection = config.Vector{}
	if s := NewSun(cfg); !s.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("overhead sun Direction = %v, want up", s.Direction)
	}
}

func TestShade(t *testing.T) {
	s := Sun{
		Direction:  mgl32.Vec3{0, 1, 0},
		Ambient:    0.35,
		Diffuse:    0.65,
		AORange:    config.Range{Min: 20, Max: 60},
		AOStrength: 0.15,
	}

	tests := []struct {
		name   string
		normal mgl32.Vec3
		height float64
		want   float64
	}{
		{"lit high ground", mgl32.Vec3{0, 1, 0}, 100, 1},
		{"facing away", mgl32.Vec3{0, -1, 0}, 100, 0.35},
		{"lit valley floor", mgl32.Vec3{0, 1, 0}, 0, 0.85},
		{"halfway up", mgl32.Vec3{0, 1, 0}, 40, 0.925},
	}
	for _, tt := range tests {
		if got := s.Shade(tt.normal, tt.height); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: Shade() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUniforms(t *testing.T) {
	u := NewSun(config.Default().Lighting).Uniforms()
	for _, key := range []string{"sunDirection", "ambientStrength", "diffuseStrength", "aoRangeMin", "aoRangeMax", "aoStrength"} {
		if _, ok := u[key]; !ok {
			t.Errorf("missing uniform %s", key)
		}
	}
}
