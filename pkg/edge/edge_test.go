package edge

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/raster"
)

func mustImage(t *testing.T, w, h int, fn func(x, y int) float64) *raster.Image {
	t.Helper()
	pix := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = fn(x, y)
		}
	}
	img, err := raster.New(w, h, pix)
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	return img
}

func verticalStep(t *testing.T, w, h, col int) *raster.Image {
	return mustImage(t, w, h, func(x, _ int) float64 {
		if x >= col {
			return 1
		}
		return 0
	})
}

func TestKernel(t *testing.T) {
	tests := []struct {
		sigma, truncate float64
		wantLen         int
	}{
		{1, 3, 7},
		{2, 3, 13},
		{0.5, 3, 5},
		{1, 4, 9},
	}

	for _, tt := range tests {
		k, err := Kernel(tt.sigma, tt.truncate)
		if err != nil {
			t.Fatalf("Kernel(%v, %v) error: %v", tt.sigma, tt.truncate, err)
		}
		if len(k) != tt.wantLen {
			t.Errorf("Kernel(%v, %v) len = %d, want %d", tt.sigma, tt.truncate, len(k), tt.wantLen)
		}
		var sum float64
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Kernel(%v) sums to %v", tt.sigma, sum)
		}
		r := len(k) / 2
		for i := 0; i < r; i++ {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("Kernel(%v) not symmetric at %d", tt.sigma, i)
			}
			if k[i] >= k[i+1] {
				t.Errorf("Kernel(%v) not increasing towards centre at %d", tt.sigma, i)
			}
		}
	}
}

func TestKernelInvalid(t *testing.T) {
	tests := []struct {
		name            string
		sigma, truncate float64
	}{
		{"zero sigma", 0, 3},
		{"negative sigma", -1, 3},
		{"nan sigma", math.NaN(), 3},
		{"zero truncate", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Kernel(tt.sigma, tt.truncate); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Kernel() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestSmoothUniform(t *testing.T) {
	img := mustImage(t, 9, 6, func(int, int) float64 { return 0.5 })
	f, err := Smooth(img, 2, DefaultTruncate)
	if err != nil {
		t.Fatalf("Smooth() error: %v", err)
	}
	if f.Width != 9 || f.Height != 6 {
		t.Fatalf("dims = %dx%d, want 9x6", f.Width, f.Height)
	}
	for i, v := range f.Values {
		if math.Abs(v-0.5) > 1e-12 {
			t.Fatalf("Values[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestSobelConstantIsZero(t *testing.T) {
	f := &Field{Width: 4, Height: 4, Values: make([]float64, 16)}
	for i := range f.Values {
		f.Values[i] = 0.7
	}
	g := Sobel(f)
	for i, m := range g.Magnitude {
		if m != 0 {
			t.Fatalf("Magnitude[%d] = %v, want 0", i, m)
		}
	}
}

func TestSobelVerticalStep(t *testing.T) {
	f := &Field{Width: 4, Height: 3, Values: []float64{
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	}}
	g := Sobel(f)
	for y := 0; y < 3; y++ {
		i := y*4 + 1
		if g.Magnitude[i] != 4 {
			t.Errorf("Magnitude at (1,%d) = %v, want 4", y, g.Magnitude[i])
		}
		if g.Direction[i] != 0 {
			t.Errorf("Direction at (1,%d) = %v, want 0", y, g.Direction[i])
		}
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		theta  float64
		dx, dy int
	}{
		{0, 1, 0},
		{math.Pi, 1, 0},
		{-math.Pi, 1, 0},
		{math.Pi / 2, 0, 1},
		{-math.Pi / 2, 0, 1},
		{math.Pi / 4, 1, 1},
		{-3 * math.Pi / 4, 1, 1},
		{3 * math.Pi / 4, -1, 1},
		{-math.Pi / 4, -1, 1},
		{0.3, 1, 0},
		{0.5, 1, 1},
	}
	for _, tt := range tests {
		dx, dy := axis(tt.theta)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("axis(%v) = (%d,%d), want (%d,%d)", tt.theta, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestSuppressPlateauKeepsFirst(t *testing.T) {
	g := &Gradient{
		Width:     4,
		Height:    1,
		Magnitude: []float64{0, 1, 1, 0},
		Direction: make([]float64, 4),
	}
	out := Suppress(g)
	want := []float64{0, 1, 0, 0}
	for i := range want {
		if out.Values[i] != want[i] {
			t.Errorf("Values = %v, want %v", out.Values, want)
			break
		}
	}
}

func TestSuppressBorderPixelsSurvive(t *testing.T) {
	g := &Gradient{
		Width:     3,
		Height:    1,
		Magnitude: []float64{2, 1, 0.5},
		Direction: make([]float64, 3),
	}
	out := Suppress(g)
	if out.Values[0] != 2 {
		t.Errorf("border maximum suppressed: %v", out.Values)
	}
	if out.Values[1] != 0 || out.Values[2] != 0 {
		t.Errorf("non-maxima kept: %v", out.Values)
	}
}

func TestHysteresisLinksWeakToStrong(t *testing.T) {
	f := &Field{Width: 6, Height: 1, Values: []float64{0.3, 0.15, 0.15, 0, 0.15, 0.05}}
	mask, stats := Hysteresis(f, Thresholds{Low: 0.1, High: 0.2})

	want := []bool{true, true, true, false, false, false}
	for i, w := range want {
		if mask.Edges[i] != w {
			t.Fatalf("Edges = %v, want %v", mask.Edges, want)
		}
	}
	if stats.Strong != 1 || stats.Weak != 2 {
		t.Errorf("stats = %+v, want Strong=1 Weak=2", stats)
	}
}

func TestHysteresisDiagonalLink(t *testing.T) {
	f := &Field{Width: 3, Height: 3, Values: []float64{
		0.5, 0, 0,
		0, 0.15, 0,
		0, 0, 0.15,
	}}
	mask, _ := Hysteresis(f, Thresholds{Low: 0.1, High: 0.2})
	if mask.Count() != 3 {
		t.Errorf("Count() = %d, want 3", mask.Count())
	}
}

func TestHysteresisRelative(t *testing.T) {
	f := &Field{Width: 4, Height: 1, Values: []float64{0, 10, 5, 0.5}}
	mask, stats := Hysteresis(f, Thresholds{Low: 0.1, High: 0.9, Relative: true})
	want := []bool{false, true, true, false}
	for i, w := range want {
		if mask.Edges[i] != w {
			t.Fatalf("Edges = %v, want %v", mask.Edges, want)
		}
	}
	if stats.Max != 10 {
		t.Errorf("Max = %v, want 10", stats.Max)
	}

	zero := &Field{Width: 3, Height: 1, Values: make([]float64, 3)}
	if m, _ := Hysteresis(zero, Thresholds{Low: 0, High: 0, Relative: true}); m.Count() != 0 {
		t.Errorf("all-zero field produced %d edges", m.Count())
	}
	if m, _ := Hysteresis(zero, Thresholds{}); m.Count() != 0 {
		t.Errorf("zero thresholds marked zero pixels: %d edges", m.Count())
	}
}

func TestDetectUniformImage(t *testing.T) {
	img := mustImage(t, 32, 32, func(int, int) float64 { return 0.4 })
	for _, sigma := range []float64{1, 2} {
		res, err := Detect(img, DefaultParams(sigma))
		if err != nil {
			t.Fatalf("Detect(sigma=%v) error: %v", sigma, err)
		}
		if res.Mask.Count() != 0 {
			t.Errorf("Detect(sigma=%v) found %d edges on uniform image", sigma, res.Mask.Count())
		}
		if res.Stats.MaxMagnitude != 0 {
			t.Errorf("MaxMagnitude = %v, want 0", res.Stats.MaxMagnitude)
		}
	}
}

func TestDetectVerticalStepIsSingleColumn(t *testing.T) {
	const w, h, col = 20, 12, 10
	img := verticalStep(t, w, h, col)

	for _, sigma := range []float64{1, 2} {
		res, err := Detect(img, DefaultParams(sigma))
		if err != nil {
			t.Fatalf("Detect(sigma=%v) error: %v", sigma, err)
		}
		m := res.Mask
		if m.Width != w || m.Height != h {
			t.Fatalf("mask dims = %dx%d, want %dx%d", m.Width, m.Height, w, h)
		}

		edgeCol := -1
		for y := 0; y < h; y++ {
			var cols []int
			for x := 0; x < w; x++ {
				if m.At(x, y) {
					cols = append(cols, x)
				}
			}
			if len(cols) != 1 {
				t.Fatalf("sigma=%v row %d: edge columns %v, want exactly one", sigma, y, cols)
			}
			if edgeCol == -1 {
				edgeCol = cols[0]
			}
			if cols[0] != edgeCol {
				t.Errorf("sigma=%v row %d: column %d, want %d", sigma, y, cols[0], edgeCol)
			}
		}
		if edgeCol != col-1 && edgeCol != col {
			t.Errorf("sigma=%v: edge at column %d, want %d or %d", sigma, edgeCol, col-1, col)
		}
		if res.Stats.Edges != h {
			t.Errorf("Stats.Edges = %d, want %d", res.Stats.Edges, h)
		}
	}
}

func TestDetectLargerSigmaFindsFewerEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := mustImage(t, 64, 64, func(int, int) float64 { return rng.Float64() })

	r1, err := Detect(img, DefaultParams(1))
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Detect(img, DefaultParams(2))
	if err != nil {
		t.Fatal(err)
	}
	if r2.Mask.Count() > r1.Mask.Count() {
		t.Errorf("sigma 2 found %d edges, sigma 1 found %d", r2.Mask.Count(), r1.Mask.Count())
	}
}

func TestDetectDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	img := mustImage(t, 40, 30, func(int, int) float64 { return rng.Float64() })

	a, err := Detect(img, DefaultParams(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Detect(img, DefaultParams(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Mask.Edges {
		if a.Mask.Edges[i] != b.Mask.Edges[i] {
			t.Fatalf("masks differ at %d", i)
		}
	}
}

func TestDetectInvalidParams(t *testing.T) {
	img := verticalStep(t, 8, 8, 4)

	tests := []struct {
		name string
		p    Params
	}{
		{"zero sigma", Params{Sigma: 0, Low: 0.1, High: 0.2}},
		{"low above high", Params{Sigma: 1, Low: 0.5, High: 0.2}},
		{"negative low", Params{Sigma: 1, Low: -0.1, High: 0.2}},
		{"relative above one", Params{Sigma: 1, Low: 0.1, High: 1.5, Relative: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Detect(img, tt.p); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Detect() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDetectNilImage(t *testing.T) {
	if _, err := Detect(nil, DefaultParams(1)); !errors.Is(err, errors.ErrCodePipeline) {
		t.Errorf("Detect(nil) error = %v, want PIPELINE_ERROR", err)
	}
}
