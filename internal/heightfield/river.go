package heightfield

import (
	"math"

	"github.com/Faultbox/riverscape/internal/config"
)

// River is the meandering channel cut through the terrain. All distances are
// in grid cells; the curve is a function of the grid's depth axis.
//
// The generator, the query service and the water ribbon all use this one type,
// so carved terrain and vegetation exclusion always agree.
type River struct {
	Width     float64
	BankWidth float64
	Depth     float64
	BankDepth float64

	freq1, amp1 float64
	freq2, amp2 float64
}

// NewRiver builds the river from config.
func NewRiver(cfg config.RiverConfig) River {
	return River{
		Width:     cfg.Width,
		BankWidth: cfg.BankWidth,
		Depth:     cfg.Depth,
		BankDepth: cfg.BankDepth,
		freq1:     cfg.CurveFrequency1,
		amp1:      cfg.CurveAmplitude1,
		freq2:     cfg.CurveFrequency2,
		amp2:      cfg.CurveAmplitude2,
	}
}

// Offset is the lateral displacement of the centreline at depth coordinate gz.
func (r River) Offset(gz float64) float64 {
	return math.Sin(gz*r.freq1)*r.amp1 + math.Sin(gz*r.freq2)*r.amp2
}

// Center returns the grid x of the centreline at gz for a grid gridWidth cells wide.
func (r River) Center(gz float64, gridWidth int) float64 {
	return float64(gridWidth)/2 + r.Offset(gz)
}

// Distance returns the absolute lateral distance from (gx, gz) to the centreline.
func (r River) Distance(gx, gz float64, gridWidth int) float64 {
	return math.Abs(gx - r.Center(gz, gridWidth))
}

// Carve returns how far the terrain is lowered at the given distance from the
// centreline: a parabolic trench inside Width, then a linear bank out to BankWidth.
func (r River) Carve(dist float64) float64 {
	switch {
	case dist < r.Width:
		t := dist / r.Width
		return (1 - t*t) * r.Depth
	case dist < r.BankWidth:
		t := (dist - r.Width) / (r.BankWidth - r.Width)
		return (1 - t) * r.BankDepth
	default:
		return 0
	}
}
