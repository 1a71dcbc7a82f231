// Package svg serializes vector paths as a standalone SVG document.
//
// # Overview
//
// [Render] writes a [Document] as one <svg> root sized to the source image,
// a single <g> group carrying the stroke styling, and one <path> per
// [vector.Path]:
//
//	<svg xmlns="http://www.w3.org/2000/svg" width="W" height="H" viewBox="0 0 W H">
//	  <g fill="none" stroke="black" stroke-width="1" stroke-linecap="round" stroke-linejoin="round">
//	    <path d="M 1.0 2.0 C ..."/>
//	  </g>
//	</svg>
//
// Coordinates are written with one decimal. A NaN or infinite coordinate
// cannot be represented and fails the render with PIPELINE_ERROR.
//
// # Options
//
//   - [WithStrokeWidth]: line width in user units (default 1)
//   - [WithStrokeColor]: named colour or #rgb/#rrggbb (default black)
//   - [WithFrame]: fit the drawing into a square frame of the given size
//
// Basic usage:
//
//	data, err := svg.Render(svg.Document{Width: w, Height: h, Paths: paths},
//	    svg.WithStrokeColor("#333"),
//	)
//
// [vector.Path]: github.com/matzehuels/edgesvg/pkg/vector.Path
package svg
