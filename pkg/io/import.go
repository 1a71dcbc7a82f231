package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/vector"
)

// ReadJSON decodes a document written by [WriteJSON].
//
// ReadJSON returns an error if:
//   - The JSON is malformed or uses an unknown op letter
//   - Width or height is not positive
//   - A path does not start with M
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "invalid canvas %dx%d", doc.Width, doc.Height)
	}
	for i, s := range doc.Scales {
		for j, p := range s.Paths {
			if len(p.Commands) == 0 || p.Commands[0].Op != vector.MoveTo {
				return Document{}, errors.New(errors.ErrCodeInvalidFormat, "scale %d path %d: must start with M", i, j)
			}
		}
	}
	return doc, nil
}

// ImportJSON reads a document from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
