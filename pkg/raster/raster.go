// Package raster loads images into a normalized single-channel intensity field.
//
// An [Image] is the shared input of every scale run: it is built once by
// [Load], [Decode] or [FromImage] and never mutated afterwards, so it can be
// read from several goroutines without locking.
//
// # Formats
//
// PNG, JPEG and GIF are decoded by the standard library. BMP, TIFF and WebP
// decoders from golang.org/x/image are registered by this package.
//
// # Normalization
//
// Colour pixels are reduced to luminance with the Rec. 709 weights
// (0.2125, 0.7154, 0.0721). Alpha is ignored: non-premultiplied images
// (NRGBA, NRGBA64, the usual result of decoding PNG) contribute their stored
// RGB even where A is 0. Samples are scaled to [0, 1].
package raster

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/matzehuels/edgesvg/pkg/errors"
)

// Luminance weights applied to linear 16-bit channels.
const (
	weightR = 0.2125
	weightG = 0.7154
	weightB = 0.0721
)

// Image is a read-only grid of intensity samples in [0, 1], stored row-major.
type Image struct {
	width  int
	height int
	pix    []float64
	format string
}

// Width returns the number of columns.
func (im *Image) Width() int { return im.width }

// Height returns the number of rows.
func (im *Image) Height() int { return im.height }

// Format returns the name of the decoder that produced the image
// ("png", "jpeg", ...), or "" for images built with FromImage or New.
func (im *Image) Format() string { return im.format }

// At returns the sample at column x, row y. Coordinates outside the image
// are clamped to the nearest edge pixel.
func (im *Image) At(x, y int) float64 {
	return im.pix[clamp(y, im.height)*im.width+clamp(x, im.width)]
}

// Pixels returns a copy of the samples in row-major order.
func (im *Image) Pixels() []float64 {
	out := make([]float64, len(im.pix))
	copy(out, im.pix)
	return out
}

// New builds an Image from row-major samples. The slice is copied and
// samples are clamped to [0, 1].
func New(width, height int, pix []float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeEmptyImage, "image has zero area (%dx%d)", width, height)
	}
	if len(pix) != width*height {
		return nil, errors.Pipelinef("raster: %d samples for %dx%d image", len(pix), width, height)
	}
	out := make([]float64, len(pix))
	for i, v := range pix {
		out[i] = min(max(v, 0), 1)
	}
	return &Image{width: width, height: height, pix: out}, nil
}

// LoadOption configures how an image is loaded.
type LoadOption func(*loadConfig)

type loadConfig struct {
	maxDimension int
}

// WithMaxDimension downsamples images whose longer side exceeds n pixels,
// preserving the aspect ratio. Zero or negative disables downsampling.
func WithMaxDimension(n int) LoadOption {
	return func(c *loadConfig) { c.maxDimension = n }
}

// Load reads and decodes the image file at path.
func Load(path string, opts ...LoadOption) (*Image, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	img, err := Decode(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an image from r. Corrupt, empty or unsupported input
// yields DECODE_ERROR; a decoded image with zero area yields EMPTY_IMAGE.
func Decode(r io.Reader, opts ...LoadOption) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	img, err := FromImage(src, opts...)
	if err != nil {
		return nil, err
	}
	img.format = format
	return img, nil
}

// FromImage converts an already decoded image.
func FromImage(src image.Image, opts ...LoadOption) (*Image, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if src == nil {
		return nil, errors.New(errors.ErrCodeDecode, "nil image")
	}

	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeEmptyImage, "image has zero area (%dx%d)", b.Dx(), b.Dy())
	}

	img := luminance(src)
	if cfg.maxDimension > 0 && max(img.width, img.height) > cfg.maxDimension {
		img = downsample(img, cfg.maxDimension)
	}
	return img, nil
}

// downsample scales img so that its longer side equals limit. Scaling runs
// on the luminance samples so that alpha never reaches the resampler.
func downsample(img *Image, limit int) *Image {
	w, h := img.width, img.height
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}

	src := image.NewGray16(image.Rect(0, 0, img.width, img.height))
	for i, v := range img.pix {
		q := uint16(v*0xffff + 0.5)
		src.Pix[2*i] = uint8(q >> 8)
		src.Pix[2*i+1] = uint8(q)
	}
	dst := image.NewGray16(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return luminance(dst)
}

// luminance converts src to a normalized Image.
func luminance(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]float64, w*h)

	switch s := src.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+w]
			for x, v := range row {
				pix[y*w+x] = float64(v) / 0xff
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pix[y*w+x] = float64(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y) / 0xffff
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+4*w]
			for x := 0; x < w; x++ {
				p := row[4*x : 4*x+3 : 4*x+3]
				v := weightR*float64(p[0]) + weightG*float64(p[1]) + weightB*float64(p[2])
				pix[y*w+x] = min(v/0xff, 1)
			}
		}
	case *image.NRGBA64:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+8*w]
			for x := 0; x < w; x++ {
				p := row[8*x : 8*x+6 : 8*x+6]
				r := uint16(p[0])<<8 | uint16(p[1])
				g := uint16(p[2])<<8 | uint16(p[3])
				bl := uint16(p[4])<<8 | uint16(p[5])
				v := weightR*float64(r) + weightG*float64(g) + weightB*float64(bl)
				pix[y*w+x] = min(v/0xffff, 1)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				v := weightR*float64(c.R) + weightG*float64(c.G) + weightB*float64(c.B)
				pix[y*w+x] = min(v/0xffff, 1)
			}
		}
	}

	return &Image{width: w, height: h, pix: pix}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
