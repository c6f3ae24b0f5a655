package noise

import "math"

// Hash2 is the shader's sine hash, in [0, 1].
func Hash2(x, y float64) float64 {
	return fract(math.Sin(x*127.1+y*311.7) * 43758.5453)
}

// Value2 is smooth value noise in [0, 1], identical to the terrain shader's noise().
func Value2(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy

	a := Hash2(ix, iy)
	b := Hash2(ix+1, iy)
	c := Hash2(ix, iy+1)
	d := Hash2(ix+1, iy+1)

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	return a + (b-a)*ux + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

// FBM2 sums three octaves of Value2 with weights 0.5, 0.25 and 0.125.
// The result lies in [0, 0.875].
func FBM2(x, y float64) float64 {
	v, amp := 0.0, 0.5
	for range 3 {
		v += amp * Value2(x, y)
		x, y = x*2, y*2
		amp *= 0.5
	}
	return v
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}
