package pipeline

import (
	"bytes"
	"io"
	"strings"

	"github.com/matzehuels/edgesvg/pkg/errors"
)

// Markers frame the documents of a run on a text stream. Each marker sits
// on a line of its own.
const (
	MarkerStart     = "SVG_CONTENT_START"
	MarkerSeparator = "SVG_CONTENT_SEPARATOR"
	MarkerEnd       = "SVG_CONTENT_END"
)

// WriteMarkers writes docs to w framed by markers:
//
//	SVG_CONTENT_START
//	<doc 1>
//	SVG_CONTENT_SEPARATOR
//	<doc 2>
//	SVG_CONTENT_END
//
// A separator goes between every pair of documents. The stream is assembled
// in memory and written with a single call.
func WriteMarkers(w io.Writer, docs ...[]byte) error {
	if len(docs) == 0 {
		return errors.Pipelinef("no documents to write")
	}

	var buf bytes.Buffer
	buf.WriteString(MarkerStart + "\n")
	for i, d := range docs {
		if i > 0 {
			buf.WriteString(MarkerSeparator + "\n")
		}
		buf.Write(d)
		if len(d) == 0 || d[len(d)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString(MarkerEnd + "\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// ParseMarkers extracts the framed documents from s. Text before the start
// marker and after the end marker is ignored. Documents are returned with
// surrounding whitespace trimmed.
func ParseMarkers(s string) ([]string, error) {
	lines := strings.Split(s, "\n")

	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == MarkerStart {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing %s marker", MarkerStart)
	}

	var (
		docs []string
		cur  []string
	)
	for _, l := range lines[start+1:] {
		switch strings.TrimSpace(l) {
		case MarkerSeparator:
			docs = append(docs, strings.TrimSpace(strings.Join(cur, "\n")))
			cur = cur[:0]
		case MarkerEnd:
			docs = append(docs, strings.TrimSpace(strings.Join(cur, "\n")))
			return docs, nil
		default:
			cur = append(cur, l)
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "missing %s marker", MarkerEnd)
}
