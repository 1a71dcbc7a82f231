// Package vector turns an edge mask into drawable paths.
//
// Vectorization happens in three steps:
//
//   - [Trace] walks 8-connected edge pixels into [Contour] chains
//   - [Simplify] drops vertices closer than a tolerance to their chord
//   - [Fit] emits a [Path] of straight or cubic segments
//
// [Vectorize] runs all three over a mask. Paths use image coordinates and
// never leave the mask's bounds, control points included.
package vector

import "github.com/matzehuels/edgesvg/pkg/edge"

// DefaultMinPoints is the shortest contour, in pixels, kept by Vectorize.
const DefaultMinPoints = 2

// Options configures vectorization. A zero Tolerance is honoured here;
// pipeline.Options replaces it with DefaultTolerance before calling in.
type Options struct {
	Tolerance float64 // RDP tolerance in pixels; 0 keeps every pixel
	Smooth    bool    // fit cubic curves instead of straight segments
	MinPoints int     // contours with fewer pixels are dropped
}

// DefaultOptions returns the options used by the edgesvg pipeline.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		Smooth:    true,
		MinPoints: DefaultMinPoints,
	}
}

// Stats summarizes one vectorization.
type Stats struct {
	Contours int // contours traced, before MinPoints filtering
	Paths    int // paths emitted
	Closed   int // closed paths emitted
	Dropped  int // contours shorter than MinPoints
	Pixels   int // pixels covered by emitted paths
	Vertices int // vertices after simplification
}

// Vectorize traces m and fits every contour of at least opts.MinPoints
// pixels. Paths are returned in trace order.
func Vectorize(m *edge.Mask, opts Options) ([]Path, Stats) {
	var stats Stats
	if m == nil {
		return nil, stats
	}
	minPoints := max(opts.MinPoints, 2)
	canvas := Canvas{Width: m.Width, Height: m.Height}

	contours := Trace(m)
	stats.Contours = len(contours)

	paths := make([]Path, 0, len(contours))
	for _, c := range contours {
		if len(c.Points) < minPoints {
			stats.Dropped++
			continue
		}
		p := Fit(c, canvas, opts)
		paths = append(paths, p)

		stats.Paths++
		stats.Pixels += len(c.Points)
		stats.Vertices += vertexCount(p)
		if p.Closed {
			stats.Closed++
		}
	}
	return paths, stats
}

func vertexCount(p Path) int {
	n := 0
	for _, c := range p.Commands {
		if c.Op != Close {
			n++
		}
	}
	return n
}
