package vector

import (
	"fmt"
	"image"
)

// Coord is a point in image space. X grows right, Y grows down.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func coordOf(p image.Point) Coord {
	return Coord{X: float64(p.X), Y: float64(p.Y)}
}

// Op is a path drawing instruction.
type Op int

const (
	MoveTo  Op = iota // one point
	LineTo            // one point
	CubicTo           // two control points, then the end point
	Close             // no points
)

var opLetters = [...]string{MoveTo: "M", LineTo: "L", CubicTo: "C", Close: "Z"}

// String returns the SVG path letter for op.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opLetters) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opLetters[op]
}

// MarshalText encodes op as its SVG letter.
func (op Op) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(opLetters) {
		return nil, fmt.Errorf("vector: unknown op %d", int(op))
	}
	return []byte(opLetters[op]), nil
}

// UnmarshalText decodes an SVG letter produced by MarshalText.
func (op *Op) UnmarshalText(b []byte) error {
	for i, l := range opLetters {
		if l == string(b) {
			*op = Op(i)
			return nil
		}
	}
	return fmt.Errorf("vector: unknown op %q", b)
}

// Command is one drawing instruction of a Path.
type Command struct {
	Op     Op      `json:"op"`
	Points []Coord `json:"points,omitempty"`
}

// Path is an ordered list of drawing commands. It always starts with
// MoveTo and, when Closed is set, ends with Close.
type Path struct {
	Closed   bool      `json:"closed"`
	Commands []Command `json:"commands"`
}

// Coords returns every coordinate referenced by p, control points included.
func (p Path) Coords() []Coord {
	var out []Coord
	for _, c := range p.Commands {
		out = append(out, c.Points...)
	}
	return out
}
