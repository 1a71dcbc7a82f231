// Package io provides JSON import and export of vectorized edges, and PNG
// export of edge masks.
//
// # Overview
//
// The SVG documents produced by the pipeline are meant for display. This
// package exposes the same geometry in forms other tools can consume:
//
//   - JSON: the fitted paths of every scale, with drawing commands and
//     coordinates in image space
//   - PNG: the binary edge mask of one scale, white edges on black
//
// # JSON Format
//
//	{
//	  "run_id": "0b9d6c3e-...",
//	  "input": "photo.png",
//	  "width": 640,
//	  "height": 480,
//	  "scales": [
//	    {
//	      "sigma": 1,
//	      "edges": 5120,
//	      "paths": [
//	        {"closed": false, "commands": [
//	          {"op": "M", "points": [{"x": 10, "y": 4}]},
//	          {"op": "C", "points": [{"x": 11, "y": 4}, {"x": 12, "y": 5}, {"x": 13, "y": 5}]}
//	        ]}
//	      ]
//	    }
//	  ]
//	}
//
// Scales appear in the order they were configured. Ops are the SVG path
// letters M, L, C and Z.
//
// # Export
//
// Use [ExportJSON] to write to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(io.FromResult(result), "edges.json")
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode the same format, so exported paths can
// be re-rendered with [svg.Render] without running detection again.
//
// # Masks
//
// [WriteMaskPNG] and [ExportMaskPNG] encode an [edge.Mask] as an 8-bit
// grayscale PNG of the mask's size.
//
// [svg.Render]: github.com/matzehuels/edgesvg/pkg/svg.Render
// [edge.Mask]: github.com/matzehuels/edgesvg/pkg/edge.Mask
package io
