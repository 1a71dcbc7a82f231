// Package pipeline provides the core edge-to-SVG pipeline for edgesvg.
//
// This package implements the complete load → detect → vectorize → serialize
// pipeline used by the CLI. By centralizing this logic, library callers and
// the CLI share one set of defaults and one validation path.
//
// # Architecture
//
// The pipeline loads the input raster once, then runs one independent scale
// per configured sigma:
//
//  1. Load: decode and normalize the image ([raster.Load])
//  2. Detect: Gaussian smoothing, Sobel, suppression and hysteresis ([edge.Detect])
//  3. Vectorize: trace, simplify and fit contours ([vector.Vectorize])
//  4. Serialize: write one SVG document ([svg.Render])
//
// Scales share only the read-only image, so they run in parallel unless
// [Options.Sequential] is set. Results are always reported in sigma order.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "photo.png"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline.WriteMarkers(os.Stdout, result.Documents()...)
//
// Run a single scale on an already loaded image:
//
//	scale, err := pipeline.RunScale(img, 1.5, opts)
//
// [raster.Load]: github.com/matzehuels/edgesvg/pkg/raster.Load
// [edge.Detect]: github.com/matzehuels/edgesvg/pkg/edge.Detect
// [vector.Vectorize]: github.com/matzehuels/edgesvg/pkg/vector.Vectorize
// [svg.Render]: github.com/matzehuels/edgesvg/pkg/svg.Render
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/edgesvg/pkg/edge"
	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/svg"
	"github.com/matzehuels/edgesvg/pkg/vector"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library
// =============================================================================

// DefaultSigmas are the smoothing scales rendered when none are configured.
var DefaultSigmas = []float64{1, 2}

const (
	// DefaultLowThreshold is the weak hysteresis threshold.
	DefaultLowThreshold = edge.DefaultLowThreshold

	// DefaultHighThreshold is the strong hysteresis threshold.
	DefaultHighThreshold = edge.DefaultHighThreshold

	// DefaultKernelTruncate is the Gaussian kernel radius in units of sigma.
	DefaultKernelTruncate = edge.DefaultTruncate

	// DefaultTolerance is the contour simplification tolerance in pixels.
	DefaultTolerance = vector.DefaultTolerance

	// DefaultMinPoints is the shortest contour kept, in pixels.
	DefaultMinPoints = vector.DefaultMinPoints

	// DefaultStrokeWidth is the SVG stroke width.
	DefaultStrokeWidth = svg.DefaultStrokeWidth

	// DefaultStrokeColor is the SVG stroke colour.
	DefaultStrokeColor = svg.DefaultStrokeColor
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the edge pipeline.
// Zero values select the defaults above.
type Options struct {
	// Input options
	Input        string `json:"input"`
	MaxDimension int    `json:"max_dimension,omitempty"` // downsample larger images; 0 = off

	// Detection options
	Sigmas             []float64 `json:"sigmas,omitempty"`
	LowThreshold       float64   `json:"low_threshold,omitempty"`
	HighThreshold      float64   `json:"high_threshold,omitempty"`
	RelativeThresholds bool      `json:"relative_thresholds,omitempty"` // thresholds are fractions of the max response
	KernelTruncate     float64   `json:"kernel_truncate,omitempty"`

	// Vectorization options
	Tolerance float64 `json:"tolerance,omitempty"` // RDP tolerance in pixels; 0 = DefaultTolerance
	Straight  bool    `json:"straight,omitempty"`  // emit polylines (default: false = cubic curves)
	MinPoints int     `json:"min_points,omitempty"`

	// Render options
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	StrokeColor string  `json:"stroke_color,omitempty"`
	FrameSize   int     `json:"frame_size,omitempty"` // fit into a square frame; 0 = image size

	// Runtime options (not serialized)
	Sequential bool        `json:"-"`
	Logger     *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and exported files.
	RunID string

	// Input is the path the image was loaded from.
	Input string

	// Width and Height are the dimensions of the processed raster.
	Width  int
	Height int

	// Scales holds one entry per sigma, in the order of Options.Sigmas.
	Scales []ScaleResult

	// Stats contains timing information.
	Stats Stats
}

// ScaleResult is the output of one sigma.
type ScaleResult struct {
	Sigma float64
	SVG   []byte
	Mask  *edge.Mask
	Paths []vector.Path
	Stats ScaleStats
}

// ScaleStats combines the statistics of each stage of one scale.
type ScaleStats struct {
	Edge     edge.Stats
	Vector   vector.Stats
	Duration time.Duration
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime  time.Duration
	ScaleTime time.Duration // wall time of all scales together
}

// Documents returns the SVG of every scale in sigma order.
func (r *Result) Documents() [][]byte {
	docs := make([][]byte, len(r.Scales))
	for i, s := range r.Scales {
		docs[i] = s.SVG
	}
	return docs
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateImagePath(o.Input); err != nil {
		return err
	}
	if err := o.ValidateForScale(); err != nil {
		return err
	}
	if o.MaxDimension < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max dimension must not be negative, got %d", o.MaxDimension)
	}
	o.validated = true
	return nil
}

// SetDefaults fills every zero-valued option with its default.
func (o *Options) SetDefaults() {
	if len(o.Sigmas) == 0 {
		o.Sigmas = slices.Clone(DefaultSigmas)
	}
	if o.LowThreshold == 0 && o.HighThreshold == 0 {
		o.LowThreshold = DefaultLowThreshold
		o.HighThreshold = DefaultHighThreshold
	}
	if o.KernelTruncate == 0 {
		o.KernelTruncate = DefaultKernelTruncate
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MinPoints == 0 {
		o.MinPoints = DefaultMinPoints
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.StrokeColor == "" {
		o.StrokeColor = DefaultStrokeColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForScale applies defaults and checks the options used by a single
// scale run. The input path is not required.
func (o *Options) ValidateForScale() error {
	o.SetDefaults()
	if err := errors.ValidateSigmas(o.Sigmas); err != nil {
		return err
	}
	if err := errors.ValidateThresholds(o.LowThreshold, o.HighThreshold, o.RelativeThresholds); err != nil {
		return err
	}
	if o.KernelTruncate < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "kernel truncate must be positive, got %v", o.KernelTruncate)
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance must not be negative, got %v", o.Tolerance)
	}
	if o.MinPoints < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "min points must be at least 2, got %d", o.MinPoints)
	}
	if o.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "stroke width must be positive, got %v", o.StrokeWidth)
	}
	if err := errors.ValidateColor(o.StrokeColor); err != nil {
		return err
	}
	if o.FrameSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must not be negative, got %d", o.FrameSize)
	}
	return nil
}

// ShouldSmooth returns whether contours are fitted with cubic curves.
func (o *Options) ShouldSmooth() bool {
	return !o.Straight
}

// EdgeParams returns the detection parameters for one sigma.
func (o *Options) EdgeParams(sigma float64) edge.Params {
	return edge.Params{
		Sigma:    sigma,
		Truncate: o.KernelTruncate,
		Low:      o.LowThreshold,
		High:     o.HighThreshold,
		Relative: o.RelativeThresholds,
	}
}

// VectorOptions returns the vectorization options.
func (o *Options) VectorOptions() vector.Options {
	return vector.Options{
		Tolerance: o.Tolerance,
		Smooth:    o.ShouldSmooth(),
		MinPoints: o.MinPoints,
	}
}

// SVGOptions returns the serializer options.
func (o *Options) SVGOptions() []svg.Option {
	opts := []svg.Option{
		svg.WithStrokeWidth(o.StrokeWidth),
		svg.WithStrokeColor(o.StrokeColor),
	}
	if o.FrameSize > 0 {
		opts = append(opts, svg.WithFrame(o.FrameSize))
	}
	return opts
}
