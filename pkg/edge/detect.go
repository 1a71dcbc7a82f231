// Package edge implements Canny edge detection on a [raster.Image].
//
// # Stages
//
// Detection runs four stages, each exported on its own so callers can
// inspect intermediate grids:
//
//  1. [Smooth]: separable Gaussian blur at scale sigma
//  2. [Sobel]: gradient magnitude and direction
//  3. [Suppress]: non-maximum suppression along the gradient axis
//  4. [Hysteresis]: double threshold with connectivity linking
//
// [Detect] chains them and checks that every grid has the dimensions of the
// input image. A mismatch is reported as PIPELINE_ERROR.
//
// # Thresholds
//
// By default thresholds are absolute Sobel magnitudes of an image with
// samples in [0, 1]: [DefaultLowThreshold] and [DefaultHighThreshold].
// Setting [Params.Relative] reinterprets them as fractions of the strongest
// suppressed response in the current run.
//
// # Concurrency
//
// Every call allocates its own grids and only reads the input image, so
// Detect may be called concurrently on the same image with different Params.
package edge

import (
	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/raster"
)

// Default hysteresis thresholds in absolute magnitude units.
const (
	DefaultLowThreshold  = 0.1
	DefaultHighThreshold = 0.2
)

// Params configures one detection run.
type Params struct {
	Sigma    float64
	Truncate float64 // kernel radius in units of sigma; 0 means DefaultTruncate
	Low      float64
	High     float64
	Relative bool
}

// DefaultParams returns Params for the given sigma with default thresholds.
func DefaultParams(sigma float64) Params {
	return Params{
		Sigma:    sigma,
		Truncate: DefaultTruncate,
		Low:      DefaultLowThreshold,
		High:     DefaultHighThreshold,
	}
}

// Stats summarizes one detection run.
type Stats struct {
	Candidates   int     // pixels surviving non-maximum suppression
	Strong       int     // pixels at or above the high threshold
	Weak         int     // weak pixels linked to a strong pixel
	Edges        int     // pixels in the final mask
	MaxMagnitude float64 // largest suppressed magnitude
}

// Result is the output of [Detect].
type Result struct {
	Mask     *Mask
	Gradient *Gradient
	Stats    Stats
}

// Detect runs the full Canny chain on img.
func Detect(img *raster.Image, p Params) (*Result, error) {
	if img == nil {
		return nil, errors.Pipelinef("edge: nil image")
	}
	if p.Truncate == 0 {
		p.Truncate = DefaultTruncate
	}
	if err := errors.ValidateThresholds(p.Low, p.High, p.Relative); err != nil {
		return nil, err
	}
	w, h := img.Width(), img.Height()

	smoothed, err := Smooth(img, p.Sigma, p.Truncate)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckDims("smooth", w, h, smoothed.Width, smoothed.Height); err != nil {
		return nil, err
	}

	grad := Sobel(smoothed)
	if err := errors.CheckDims("gradient", w, h, grad.Width, grad.Height); err != nil {
		return nil, err
	}

	thin := Suppress(grad)
	if err := errors.CheckDims("suppress", w, h, thin.Width, thin.Height); err != nil {
		return nil, err
	}

	mask, hs := Hysteresis(thin, Thresholds{Low: p.Low, High: p.High, Relative: p.Relative})
	if err := errors.CheckDims("hysteresis", w, h, mask.Width, mask.Height); err != nil {
		return nil, err
	}

	candidates := 0
	for _, v := range thin.Values {
		if v > 0 {
			candidates++
		}
	}

	return &Result{
		Mask:     mask,
		Gradient: grad,
		Stats: Stats{
			Candidates:   candidates,
			Strong:       hs.Strong,
			Weak:         hs.Weak,
			Edges:        hs.Strong + hs.Weak,
			MaxMagnitude: hs.Max,
		},
	}, nil
}
