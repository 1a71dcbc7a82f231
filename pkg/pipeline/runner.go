package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/edgesvg/pkg/edge"
	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/observability"
	"github.com/matzehuels/edgesvg/pkg/raster"
	"github.com/matzehuels/edgesvg/pkg/svg"
	"github.com/matzehuels/edgesvg/pkg/vector"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log output is discarded.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → detect → vectorize → serialize pipeline
// once per sigma.
//
// Either every scale succeeds and the result holds one document per sigma,
// or the first error is returned and no documents are produced. Cancelling
// ctx stops pending scales between stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID: uuid.NewString(),
		Input: opts.Input,
	}
	logger := opts.Logger.With("run", shortID(result.RunID))
	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Input)
	img, err := raster.Load(opts.Input, raster.WithMaxDimension(opts.MaxDimension))
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, 0, result.Stats.LoadTime, err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Input, img.Width(), img.Height(), result.Stats.LoadTime, nil)
	result.Width, result.Height = img.Width(), img.Height()

	logger.Info("loaded image",
		"width", img.Width(),
		"height", img.Height(),
		"format", img.Format(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: one run per sigma
	scaleStart := time.Now()
	scales := make([]ScaleResult, len(opts.Sigmas))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Sequential {
		g.SetLimit(1)
	}
	for i, sigma := range opts.Sigmas {
		i, sigma := i, sigma
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = errors.New(errors.ErrCodeInternal, "sigma %v: panic: %v", sigma, p)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			hooks.OnScaleStart(gctx, sigma)
			res, err := runScale(gctx, img, sigma, &opts)
			hooks.OnScaleComplete(gctx, sigma, observability.ScaleStats{
				Edges:    res.Stats.Edge.Edges,
				Contours: res.Stats.Vector.Contours,
				Paths:    res.Stats.Vector.Paths,
				Bytes:    len(res.SVG),
			}, res.Stats.Duration, err)
			if err != nil {
				return err
			}
			scales[i] = res

			logger.Info("rendered scale",
				"sigma", sigma,
				"edges", res.Stats.Edge.Edges,
				"contours", res.Stats.Vector.Paths,
				"duration", res.Stats.Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Scales = scales
	result.Stats.ScaleTime = time.Since(scaleStart)

	size := 0
	for _, s := range scales {
		size += len(s.SVG)
	}
	hooks.OnOutput(ctx, len(scales), size)

	return result, nil
}

// RunScale runs detection, vectorization and serialization for one sigma.
// It has no side effects and allocates all intermediate grids itself, so
// concurrent calls on the same image are safe.
func RunScale(img *raster.Image, sigma float64, opts Options) (ScaleResult, error) {
	if err := opts.ValidateForScale(); err != nil {
		return ScaleResult{}, err
	}
	if err := errors.ValidateSigma(sigma); err != nil {
		return ScaleResult{}, err
	}
	return runScale(context.Background(), img, sigma, &opts)
}

func runScale(ctx context.Context, img *raster.Image, sigma float64, opts *Options) (ScaleResult, error) {
	start := time.Now()
	res := ScaleResult{Sigma: sigma}
	logger := opts.Logger.With("sigma", sigma)

	detected, err := edge.Detect(img, opts.EdgeParams(sigma))
	if err != nil {
		return res, fmt.Errorf("sigma %v: %w", sigma, err)
	}
	res.Mask = detected.Mask
	res.Stats.Edge = detected.Stats
	logger.Debug("detected edges",
		"candidates", detected.Stats.Candidates,
		"strong", detected.Stats.Strong,
		"weak", detected.Stats.Weak)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	paths, vstats := vector.Vectorize(detected.Mask, opts.VectorOptions())
	res.Paths = paths
	res.Stats.Vector = vstats
	logger.Debug("vectorized contours",
		"contours", vstats.Contours,
		"dropped", vstats.Dropped,
		"vertices", vstats.Vertices)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	doc := svg.Document{Width: img.Width(), Height: img.Height(), Paths: paths}
	if err := errors.CheckDims("vectorize", doc.Width, doc.Height, detected.Mask.Width, detected.Mask.Height); err != nil {
		return res, err
	}
	data, err := svg.Render(doc, opts.SVGOptions()...)
	if err != nil {
		return res, fmt.Errorf("sigma %v: %w", sigma, err)
	}
	res.SVG = data
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
