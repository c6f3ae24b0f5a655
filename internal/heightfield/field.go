// Package heightfield generates the terrain elevation grid, either from
// layered noise with a carved river or from a grayscale image.
package heightfield

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Mode selects how a Field is produced.
type Mode string

// Generation modes.
const (
	ModeNoise Mode = "noise"
	ModeImage Mode = "image"
)

// Field is a dense row-major grid of elevations. Cell (x, z) lives at z*Width + x.
// A Field is not modified after generation; a new load replaces it wholesale.
type Field struct {
	Width  int
	Depth  int
	Data   []float32
	Min    float32
	Max    float32
	Source Mode
}

// NewField allocates a zeroed field.
func NewField(width, depth int, source Mode) *Field {
	return &Field{
		Width:  width,
		Depth:  depth,
		Data:   make([]float32, width*depth),
		Source: source,
	}
}

// Index returns the row-major index of cell (x, z).
func (f *Field) Index(x, z int) int {
	return z*f.Width + x
}

// At returns the elevation of cell (x, z). The cell must be in range.
func (f *Field) At(x, z int) float32 {
	return f.Data[z*f.Width+x]
}

// Range returns Max - Min.
func (f *Field) Range() float32 {
	return f.Max - f.Min
}

// RelativeLevel returns the elevation at fraction of the way from Min to Max.
func (f *Field) RelativeLevel(fraction float64) float64 {
	return float64(f.Min) + fraction*float64(f.Range())
}

// updateBounds recomputes Min and Max from Data.
func (f *Field) updateBounds() {
	if len(f.Data) == 0 {
		f.Min, f.Max = 0, 0
		return
	}
	f.Min = float32(math.Inf(1))
	f.Max = float32(math.Inf(-1))
	for _, h := range f.Data {
		f.Min = min(f.Min, h)
		f.Max = max(f.Max, h)
	}
}

// Checksum hashes the dimensions and samples. Equal fields have equal checksums.
func (f *Field) Checksum() uint64 {
	d := xxhash.New()

	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(f.Width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(f.Depth))
	d.Write(buf[:])

	for _, h := range f.Data {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(h))
		d.Write(buf[:4])
	}
	return d.Sum64()
}
