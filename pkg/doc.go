// Package pkg provides the core libraries for edgesvg line drawings.
//
// # Overview
//
// Edgesvg turns a raster image into SVG documents that trace its edges, one
// document per Gaussian smoothing scale. Small scales keep fine texture while
// large scales keep only the dominant outlines.
//
// # Architecture
//
// The data flow for one scale:
//
//	image file
//	     ↓
//	[raster] decode, downsample, luminance
//	     ↓
//	[edge] Gaussian smoothing → Sobel gradient → non-maximum suppression → hysteresis
//	     ↓
//	[vector] contour tracing → simplification → curve fitting
//	     ↓
//	[svg] serialization
//
// [pipeline] runs the scales concurrently, collects the documents in sigma
// order, and frames them with the SVG_CONTENT_START, SVG_CONTENT_SEPARATOR,
// and SVG_CONTENT_END markers.
//
// # Quick Start
//
//	import "github.com/matzehuels/edgesvg/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "photo.png"})
//	if err != nil {
//	    return err
//	}
//	return pipeline.WriteMarkers(os.Stdout, result.Documents()...)
//
// # Main Packages
//
// [edge] - Canny edge detection on a luminance raster.
//
// [vector] - Edge mask to path conversion.
//
// [svg] - Path serialization with stroke and frame options.
//
// [pipeline] - Orchestration, options, and the marker stream.
//
// # Supporting Packages
//
// [config] - TOML and YAML configuration files.
//
// [io] - JSON export of paths and PNG export of edge masks.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for load and per-scale events.
//
// [buildinfo] - Version information injected at build time.
package pkg
