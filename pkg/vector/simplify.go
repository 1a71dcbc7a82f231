package vector

import "math"

// DefaultTolerance is the default simplification tolerance in pixels.
const DefaultTolerance = 1.0

// Simplify reduces pts with the Ramer-Douglas-Peucker algorithm: a point is
// kept when it lies farther than tolerance from the chord of the span it
// belongs to. The first and last points are always kept.
//
// The recursion is unrolled onto an explicit stack, so long contours do not
// grow the goroutine stack. A tolerance of zero or less returns a copy.
func Simplify(pts []Coord, tolerance float64) []Coord {
	if len(pts) <= 2 || tolerance <= 0 {
		out := make([]Coord, len(pts))
		copy(out, pts)
		return out
	}

	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		far, dmax := -1, tolerance
		for i := s.lo + 1; i < s.hi; i++ {
			if d := chordDistance(pts[i], pts[s.lo], pts[s.hi]); d > dmax {
				far, dmax = i, d
			}
		}
		if far < 0 {
			continue
		}
		keep[far] = true
		stack = append(stack, span{s.lo, far}, span{far, s.hi})
	}

	out := make([]Coord, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// chordDistance returns the distance from p to the line through a and b,
// or to a itself when a and b coincide.
func chordDistance(p, a, b Coord) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*(p.X-a.X)-dx*(p.Y-a.Y)) / l
}
