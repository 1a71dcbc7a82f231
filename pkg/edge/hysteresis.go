package edge

import "gonum.org/v1/gonum/floats"

// Mask is a binary edge map with the dimensions of its source image.
type Mask struct {
	Width  int
	Height int
	Edges  []bool
}

// NewMask returns an empty mask of the given size.
func NewMask(w, h int) *Mask {
	return &Mask{Width: w, Height: h, Edges: make([]bool, w*h)}
}

// At reports whether (x, y) is an edge pixel. Out-of-range coordinates are
// never edges.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Edges[y*m.Width+x]
}

// Set marks (x, y) as an edge pixel.
func (m *Mask) Set(x, y int, v bool) {
	m.Edges[y*m.Width+x] = v
}

// Count returns the number of edge pixels.
func (m *Mask) Count() int {
	n := 0
	for _, e := range m.Edges {
		if e {
			n++
		}
	}
	return n
}

// Thresholds selects the strong and weak hysteresis levels.
// With Relative set, Low and High are fractions of the largest suppressed
// magnitude; otherwise they are absolute magnitudes.
type Thresholds struct {
	Low      float64
	High     float64
	Relative bool
}

// HysteresisStats counts the pixels seen by [Hysteresis].
type HysteresisStats struct {
	Strong int // pixels at or above the high threshold
	Weak   int // weak pixels connected to a strong pixel
	Max    float64
}

// Hysteresis keeps every strong pixel and every weak pixel 8-connected to a
// strong one through other weak pixels. Zero-valued pixels are never edges.
//
// The search is a breadth-first worklist seeded with all strong pixels, so
// its depth does not depend on the length of an edge.
func Hysteresis(f *Field, t Thresholds) (*Mask, HysteresisStats) {
	w, h := f.Width, f.Height
	mask := NewMask(w, h)
	var stats HysteresisStats
	if len(f.Values) == 0 {
		return mask, stats
	}

	stats.Max = floats.Max(f.Values)
	low, high := t.Low, t.High
	if t.Relative {
		if stats.Max <= 0 {
			return mask, stats
		}
		low *= stats.Max
		high *= stats.Max
	}

	queue := make([]int, 0, 64)
	for i, v := range f.Values {
		if v > 0 && v >= high {
			mask.Edges[i] = true
			queue = append(queue, i)
			stats.Strong++
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if mask.Edges[j] {
					continue
				}
				if v := f.Values[j]; v > 0 && v >= low {
					mask.Edges[j] = true
					queue = append(queue, j)
					stats.Weak++
				}
			}
		}
	}
	return mask, stats
}
