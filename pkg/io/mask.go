package io

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/matzehuels/edgesvg/pkg/edge"
)

// WriteMaskPNG encodes m as a grayscale PNG: edge pixels white, the rest black.
func WriteMaskPNG(m *edge.Mask, w io.Writer) error {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, e := range m.Edges {
		if e {
			img.Pix[i] = 0xff
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportMaskPNG writes m to a PNG file at path.
func ExportMaskPNG(m *edge.Mask, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteMaskPNG(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
