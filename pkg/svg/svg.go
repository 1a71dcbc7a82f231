package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/vector"
)

// Defaults for stroke styling.
const (
	DefaultStrokeWidth = 1.0
	DefaultStrokeColor = "black"
)

// Document is the content of one SVG: the canvas size in pixels and the
// paths drawn on it.
type Document struct {
	Width  int
	Height int
	Paths  []vector.Path
}

type Option func(*renderer)

type renderer struct {
	strokeWidth float64
	strokeColor string
	frame       int
}

func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }
func WithStrokeColor(c string) Option  { return func(r *renderer) { r.strokeColor = c } }

// WithFrame renders into a size×size viewport. The drawing is scaled
// uniformly to fit and centred. Zero disables framing.
func WithFrame(size int) Option { return func(r *renderer) { r.frame = size } }

// Render serializes doc.
func Render(doc Document, opts ...Option) ([]byte, error) {
	r := renderer{strokeWidth: DefaultStrokeWidth, strokeColor: DefaultStrokeColor}
	for _, opt := range opts {
		opt(&r)
	}
	if err := r.validate(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	width, height := doc.Width, doc.Height
	if r.frame > 0 {
		width, height = r.frame, r.frame
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)

	buf.WriteString(`  <g fill="none"`)
	fmt.Fprintf(&buf, ` stroke="%s" stroke-width="%s"`, r.strokeColor, formatNumber(r.strokeWidth))
	buf.WriteString(` stroke-linecap="round" stroke-linejoin="round"`)
	if r.frame > 0 {
		fmt.Fprintf(&buf, ` transform="%s"`, frameTransform(r.frame, doc.Width, doc.Height))
	}
	buf.WriteString(">\n")

	for i, p := range doc.Paths {
		if len(p.Commands) == 0 {
			continue
		}
		d, err := pathData(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePipeline, err, "serialize path %d", i)
		}
		fmt.Fprintf(&buf, "    <path d=\"%s\"/>\n", d)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

func (r renderer) validate(doc Document) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return errors.Pipelinef("svg: canvas has zero area (%dx%d)", doc.Width, doc.Height)
	}
	if r.strokeWidth <= 0 || math.IsNaN(r.strokeWidth) || math.IsInf(r.strokeWidth, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "stroke width must be positive, got %v", r.strokeWidth)
	}
	if err := errors.ValidateColor(r.strokeColor); err != nil {
		return err
	}
	if r.frame < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must not be negative, got %d", r.frame)
	}
	return nil
}

// frameTransform maps a w×h canvas into the centre of a size×size frame.
func frameTransform(size, w, h int) string {
	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	dx := (float64(size) - float64(w)*scale) / 2
	dy := (float64(size) - float64(h)*scale) / 2
	return fmt.Sprintf("translate(%s,%s) scale(%s)", formatNumber(dx), formatNumber(dy), formatNumber(scale))
}

func pathData(p vector.Path) (string, error) {
	var buf bytes.Buffer
	for i, c := range p.Commands {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(c.Op.String())
		for _, q := range c.Points {
			if !finite(q.X) || !finite(q.Y) {
				return "", fmt.Errorf("non-finite coordinate (%v, %v)", q.X, q.Y)
			}
			fmt.Fprintf(&buf, " %.1f %.1f", q.X, q.Y)
		}
	}
	return buf.String(), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// formatNumber writes v without trailing zeros.
func formatNumber(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*1e4)/1e4)
}
