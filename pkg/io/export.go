package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/edgesvg/pkg/pipeline"
	"github.com/matzehuels/edgesvg/pkg/vector"
)

// Document is the JSON form of a pipeline result.
type Document struct {
	RunID  string  `json:"run_id,omitempty"`
	Input  string  `json:"input,omitempty"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scales []Scale `json:"scales"`
}

// Scale holds the paths of one sigma.
type Scale struct {
	Sigma float64       `json:"sigma"`
	Edges int           `json:"edges"`
	Paths []vector.Path `json:"paths"`
}

// FromResult converts a pipeline result to its JSON form.
func FromResult(r *pipeline.Result) Document {
	doc := Document{
		RunID:  r.RunID,
		Input:  r.Input,
		Width:  r.Width,
		Height: r.Height,
		Scales: make([]Scale, len(r.Scales)),
	}
	for i, s := range r.Scales {
		paths := s.Paths
		if paths == nil {
			paths = []vector.Path{}
		}
		doc.Scales[i] = Scale{Sigma: s.Sigma, Edges: s.Stats.Edge.Edges, Paths: paths}
	}
	return doc
}

// WriteJSON encodes doc as indented JSON and writes it to w.
// This format can be re-imported with [ReadJSON].
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
