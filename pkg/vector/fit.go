package vector

// Canvas bounds the coordinates a fitted path may use: [0, Width-1] on x
// and [0, Height-1] on y.
type Canvas struct {
	Width  int
	Height int
}

func (c Canvas) clamp(p Coord) Coord {
	if c.Width <= 0 || c.Height <= 0 {
		return p
	}
	p.X = min(max(p.X, 0), float64(c.Width-1))
	p.Y = min(max(p.Y, 0), float64(c.Height-1))
	return p
}

// Fit converts a contour to a path. The contour is simplified with
// opts.Tolerance, then emitted either as straight segments or, when
// opts.Smooth is set and at least three vertices remain, as a Catmull-Rom
// spline through the vertices expressed as cubic Béziers.
//
// Catmull-Rom control points can overshoot the polyline near sharp turns;
// they are clamped into canvas so that every coordinate of the path stays
// inside the image.
func Fit(c Contour, canvas Canvas, opts Options) Path {
	pts := make([]Coord, len(c.Points))
	for i, p := range c.Points {
		pts[i] = coordOf(p)
	}
	pts = Simplify(pts, opts.Tolerance)

	p := Path{Closed: c.Closed}
	if len(pts) == 0 {
		return p
	}
	p.Commands = append(p.Commands, Command{Op: MoveTo, Points: []Coord{pts[0]}})

	if !opts.Smooth || len(pts) < 3 {
		for _, q := range pts[1:] {
			p.Commands = append(p.Commands, Command{Op: LineTo, Points: []Coord{q}})
		}
	} else {
		p.Commands = append(p.Commands, catmullRom(pts, c.Closed, canvas)...)
	}

	if c.Closed {
		p.Commands = append(p.Commands, Command{Op: Close})
	}
	return p
}

// catmullRom returns one CubicTo per segment of pts. For closed input the
// segment from the last vertex back to the first is included.
func catmullRom(pts []Coord, closed bool, canvas Canvas) []Command {
	n := len(pts)
	at := func(i int) Coord {
		if closed {
			return pts[((i%n)+n)%n]
		}
		return pts[min(max(i, 0), n-1)]
	}

	segments := n - 1
	if closed {
		segments = n
	}

	out := make([]Command, 0, segments)
	for i := 0; i < segments; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		c1 := Coord{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := Coord{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}
		out = append(out, Command{
			Op:     CubicTo,
			Points: []Coord{canvas.clamp(c1), canvas.clamp(c2), p2},
		})
	}
	return out
}
