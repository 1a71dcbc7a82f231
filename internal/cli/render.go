package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgesvg/pkg/config"
	"github.com/matzehuels/edgesvg/pkg/io"
	"github.com/matzehuels/edgesvg/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Flags left at their defaults do not override the configuration file.
type renderOpts struct {
	configFile string // configuration file (default: XDG config path)
	output     string // output base path; empty writes marker-framed documents to stdout
	format     string // output format: "svg" or "json"
	debugDir   string // directory for per-scale edge mask PNGs

	sigmas      string  // comma-separated smoothing scales
	low         float64 // low hysteresis threshold
	high        float64 // high hysteresis threshold
	relative    bool    // thresholds relative to the strongest response
	truncate    float64 // Gaussian radius in sigmas
	tolerance   float64 // simplification tolerance in pixels
	straight    bool    // polylines instead of cubic curves
	minPoints   int     // minimum contour length
	strokeWidth float64 // SVG stroke width
	stroke      string  // SVG stroke colour
	frame       int     // square frame size; 0 = image size
	maxDim      int     // downsample inputs larger than this; 0 = off
	sequential  bool    // process scales one at a time
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [image]",
		Short: "Trace the edges of an image into SVG documents",
		Long: `Render detects edges in a raster image at each smoothing scale and writes
one SVG document per scale.

Without --output the documents are written to stdout in sigma order, framed by
SVG_CONTENT_START, SVG_CONTENT_SEPARATOR, and SVG_CONTENT_END lines. With
--output each scale is written to <base>_sigma<N>.svg.`,
		Example: `  edgesvg render photo.png
  edgesvg render photo.png --sigma 1,2,4 -o out/photo.svg
  edgesvg render photo.png -f json -o photo.json --debug-dir masks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			popts, err := opts.resolve(args[0], cmd.Flags().Changed)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, cmd, popts, &opts)
		},
	}

	defaults := config.DefaultConfig()

	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/edgesvg/config.toml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: marker-framed stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, json")
	cmd.Flags().StringVar(&opts.debugDir, "debug-dir", "", "write each scale's edge mask as PNG into this directory")

	cmd.Flags().StringVar(&opts.sigmas, "sigma", "1,2", "Gaussian smoothing scales (comma-separated)")
	cmd.Flags().Float64Var(&opts.low, "low", defaults.Detection.LowThreshold, "low hysteresis threshold")
	cmd.Flags().Float64Var(&opts.high, "high", defaults.Detection.HighThreshold, "high hysteresis threshold")
	cmd.Flags().BoolVar(&opts.relative, "relative", false, "treat thresholds as fractions of the strongest gradient")
	cmd.Flags().Float64Var(&opts.truncate, "truncate", defaults.Detection.KernelTruncate, "Gaussian kernel radius in sigmas")
	cmd.Flags().IntVar(&opts.maxDim, "max-dim", 0, "downsample images larger than this (0 = off)")

	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", defaults.Vector.Tolerance, "path simplification tolerance in pixels")
	cmd.Flags().BoolVar(&opts.straight, "straight", false, "emit straight line segments instead of curves")
	cmd.Flags().IntVar(&opts.minPoints, "min-points", defaults.Vector.MinPoints, "drop contours with fewer points")

	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", defaults.Render.StrokeWidth, "SVG stroke width")
	cmd.Flags().StringVar(&opts.stroke, "stroke", defaults.Render.StrokeColor, "SVG stroke colour")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "fit drawings into a square frame of this size (0 = image size)")

	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "process scales one at a time")

	return cmd
}

// resolve loads the configuration file and applies every flag the user set.
func (o *renderOpts) resolve(input string, changed func(string) bool) (pipeline.Options, error) {
	path, err := configPath(o.configFile)
	if err != nil {
		return pipeline.Options{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	p := cfg.Options(input)

	if changed("sigma") {
		sigmas, err := parseSigmas(o.sigmas)
		if err != nil {
			return pipeline.Options{}, err
		}
		p.Sigmas = sigmas
	}
	if changed("low") {
		p.LowThreshold = o.low
	}
	if changed("high") {
		p.HighThreshold = o.high
	}
	if changed("relative") {
		p.RelativeThresholds = o.relative
	}
	if changed("truncate") {
		p.KernelTruncate = o.truncate
	}
	if changed("max-dim") {
		p.MaxDimension = o.maxDim
	}
	if changed("tolerance") {
		p.Tolerance = o.tolerance
	}
	if changed("straight") {
		p.Straight = o.straight
	}
	if changed("min-points") {
		p.MinPoints = o.minPoints
	}
	if changed("stroke-width") {
		p.StrokeWidth = o.strokeWidth
	}
	if changed("stroke") {
		p.StrokeColor = o.stroke
	}
	if changed("frame") {
		p.FrameSize = o.frame
	}
	if changed("sequential") {
		p.Sequential = o.sequential
	}
	return p, nil
}

// runRender executes the pipeline and writes the result. Nothing is written
// to stdout unless every scale succeeded.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing %s...", filepath.Base(popts.Input)))
	spinner.Start()
	result, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Interrupted")
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Traced %s", filepath.Base(popts.Input)))
	prog.done("Rendered",
		"scales", len(result.Scales),
		"width", result.Width,
		"height", result.Height)
	for _, s := range result.Scales {
		if s.Stats.Edge.Edges == 0 {
			printWarning("no edges found at sigma %g", s.Sigma)
		}
	}

	if opts.debugDir != "" {
		if err := writeMasks(result, opts.debugDir); err != nil {
			return err
		}
	}

	switch opts.format {
	case pipeline.FormatJSON:
		return writeJSONResult(cmd, result, opts)
	default:
		return writeSVGResult(cmd, result, opts)
	}
}

func writeSVGResult(cmd *cobra.Command, result *pipeline.Result, opts *renderOpts) error {
	if opts.output == "" {
		return pipeline.WriteMarkers(cmd.OutOrStdout(), result.Documents()...)
	}

	base := basePath(opts.output, result.Input)
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, s := range result.Scales {
		path := scalePath(base, s.Sigma, pipeline.FormatSVG)
		if err := os.WriteFile(path, s.SVG, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
		printScaleStats(s.Sigma, s.Stats.Edge.Edges, s.Stats.Vector.Paths, len(s.SVG))
	}
	printSuccess("Wrote %d SVG files", len(result.Scales))
	return nil
}

func writeJSONResult(cmd *cobra.Command, result *pipeline.Result, opts *renderOpts) error {
	path := ""
	if opts.output != "" {
		path = basePath(opts.output, result.Input) + "." + pipeline.FormatJSON
	}
	out, err := openOutput(path, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := io.WriteJSON(io.FromResult(result), out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}

func writeMasks(result *pipeline.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	printInfo("Edge masks")
	for _, s := range result.Scales {
		path := scalePath(filepath.Join(dir, "mask"), s.Sigma, "png")
		if err := io.ExportMaskPNG(s.Mask, path); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
