package edge

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/raster"
)

// DefaultTruncate is the kernel half-width in units of sigma.
const DefaultTruncate = 3.0

// Field is a dense grid of float samples with the same layout as
// [raster.Image]. Stages hand Fields to each other; each run owns its own.
type Field struct {
	Width  int
	Height int
	Values []float64
}

func newField(w, h int) *Field {
	return &Field{Width: w, Height: h, Values: make([]float64, w*h)}
}

// At returns the value at (x, y), clamping coordinates to the grid.
func (f *Field) At(x, y int) float64 {
	return f.Values[clamp(y, f.Height)*f.Width+clamp(x, f.Width)]
}

// Kernel returns a normalized 1-D Gaussian of radius ⌈truncate·sigma⌉.
// The returned slice has length 2·radius+1 and sums to 1.
func Kernel(sigma, truncate float64) ([]float64, error) {
	if err := errors.ValidateSigma(sigma); err != nil {
		return nil, err
	}
	if truncate <= 0 || math.IsNaN(truncate) || math.IsInf(truncate, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "kernel truncate must be positive, got %v", truncate)
	}

	radius := int(math.Ceil(truncate * sigma))
	k := make([]float64, 2*radius+1)
	denom := 2 * sigma * sigma
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d / denom)
	}
	floats.Scale(1/floats.Sum(k), k)
	return k, nil
}

// Smooth convolves img with a separable Gaussian of the given sigma,
// rows first, then columns. Pixels beyond the border repeat the edge value.
func Smooth(img *raster.Image, sigma, truncate float64) (*Field, error) {
	k, err := Kernel(sigma, truncate)
	if err != nil {
		return nil, err
	}
	w, h := img.Width(), img.Height()
	r := len(k) / 2

	rows := newField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i, kv := range k {
				sum += kv * img.At(x+i-r, y)
			}
			rows.Values[y*w+x] = sum
		}
	}

	out := newField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i, kv := range k {
				sum += kv * rows.At(x, y+i-r)
			}
			out.Values[y*w+x] = sum
		}
	}
	return out, nil
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
