package vector

import (
	"image"

	"github.com/matzehuels/edgesvg/pkg/edge"
)

// Contour is a chain of 8-connected edge pixels.
type Contour struct {
	Points []image.Point
	Closed bool
}

// neighbours lists the step order used when extending a chain: the four
// axis neighbours first (N, E, S, W), then the diagonals (NE, SE, SW, NW).
// Preferring axis steps keeps chains from cutting corners.
var neighbours = [8]image.Point{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// minClosedLen is the shortest chain that can be treated as a loop.
const minClosedLen = 4

// Trace extracts contours from m.
//
// The mask is scanned in row-major order. Each unvisited edge pixel seeds a
// chain that is first extended forward, always taking the first unvisited
// neighbour in [neighbours] order, and then extended backward from the seed
// the same way. Every pixel belongs to at most one contour.
//
// Isolated single pixels are dropped, so every returned contour has at
// least two points. A chain whose ends are 8-adjacent and which has at
// least four points is marked Closed.
func Trace(m *edge.Mask) []Contour {
	if m == nil {
		return nil
	}
	visited := make([]bool, len(m.Edges))
	var contours []Contour

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if !m.Edges[i] || visited[i] {
				continue
			}
			seed := image.Pt(x, y)
			visited[i] = true

			forward := walk(m, visited, seed)
			backward := walk(m, visited, seed)

			pts := make([]image.Point, 0, len(backward)+1+len(forward))
			for j := len(backward) - 1; j >= 0; j-- {
				pts = append(pts, backward[j])
			}
			pts = append(pts, seed)
			pts = append(pts, forward...)

			if len(pts) < 2 {
				continue
			}
			contours = append(contours, Contour{
				Points: pts,
				Closed: len(pts) >= minClosedLen && adjacent(pts[0], pts[len(pts)-1]),
			})
		}
	}
	return contours
}

// walk follows unvisited edge pixels from start until the chain ends,
// marking them visited. start itself is not included.
func walk(m *edge.Mask, visited []bool, start image.Point) []image.Point {
	var out []image.Point
	cur := start
	for {
		next, ok := step(m, visited, cur)
		if !ok {
			return out
		}
		visited[next.Y*m.Width+next.X] = true
		out = append(out, next)
		cur = next
	}
}

func step(m *edge.Mask, visited []bool, p image.Point) (image.Point, bool) {
	for _, d := range neighbours {
		q := p.Add(d)
		if m.At(q.X, q.Y) && !visited[q.Y*m.Width+q.X] {
			return q, true
		}
	}
	return image.Point{}, false
}

func adjacent(a, b image.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0)
}
