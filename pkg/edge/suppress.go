package edge

import "math"

// sectorOffsets maps a 45° direction sector to the unit step along the
// gradient. Sector 0 points east; sectors advance clockwise on screen.
var sectorOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Suppress thins the gradient to ridges one pixel wide.
//
// The gradient direction is quantized into eight 45° sectors. Opposite
// sectors describe the same axis, so the offset is flipped until the
// "after" neighbour lies below the pixel (or to its right on the same row).
// A pixel survives iff
//
//	m > before && m >= after && m > 0
//
// which keeps exactly one pixel of a two-pixel plateau: the first one along
// the axis. Neighbours outside the grid count as zero.
//
// The returned Field holds the magnitude of every survivor and zero elsewhere.
func Suppress(g *Gradient) *Field {
	w, h := g.Width, g.Height
	out := newField(w, h)

	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return g.Magnitude[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := g.Magnitude[i]
			if m <= 0 {
				continue
			}
			dx, dy := axis(g.Direction[i])
			before := at(x-dx, y-dy)
			after := at(x+dx, y+dy)
			if m > before && m >= after {
				out.Values[i] = m
			}
		}
	}
	return out
}

// axis returns the canonical neighbour offset for a gradient direction.
func axis(theta float64) (dx, dy int) {
	sector := int(math.Round(theta/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	dx, dy = sectorOffsets[sector][0], sectorOffsets[sector][1]
	if dy < 0 || (dy == 0 && dx < 0) {
		dx, dy = -dx, -dy
	}
	return dx, dy
}
