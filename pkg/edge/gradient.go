package edge

import "math"

// Gradient holds per-pixel Sobel gradient magnitude and direction.
// Direction is atan2(gy, gx) in radians, with y growing downwards.
type Gradient struct {
	Width     int
	Height    int
	Magnitude []float64
	Direction []float64
}

// Sobel computes the unnormalized Sobel gradient of f. Borders are
// handled by clamping, so a constant field has zero gradient everywhere.
func Sobel(f *Field) *Gradient {
	w, h := f.Width, f.Height
	g := &Gradient{
		Width:     w,
		Height:    h,
		Magnitude: make([]float64, w*h),
		Direction: make([]float64, w*h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nw, n, ne := f.At(x-1, y-1), f.At(x, y-1), f.At(x+1, y-1)
			west, east := f.At(x-1, y), f.At(x+1, y)
			sw, s, se := f.At(x-1, y+1), f.At(x, y+1), f.At(x+1, y+1)

			gx := (ne + 2*east + se) - (nw + 2*west + sw)
			gy := (sw + 2*s + se) - (nw + 2*n + ne)

			i := y*w + x
			g.Magnitude[i] = math.Hypot(gx, gy)
			g.Direction[i] = math.Atan2(gy, gx)
		}
	}
	return g
}
