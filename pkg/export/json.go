package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

// Document is the JSON form of a composition.
type Document struct {
	Template string      `json:"template"`
	Seed     uint64      `json:"seed"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Shapes   []shapeJSON `json:"shapes"`
}

type shapeJSON struct {
	Kind  shape.Kind `json:"kind"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Size  float64    `json:"size"`
	Color string     `json:"color"`
}

// NewDocument converts a composition into its JSON form.
func NewDocument(c *composition.Composition, seed uint64) Document {
	doc := Document{
		Template: c.Template,
		Seed:     seed,
		Width:    c.Width,
		Height:   c.Height,
		Shapes:   make([]shapeJSON, len(c.Shapes)),
	}
	for i, s := range c.Shapes {
		doc.Shapes[i] = shapeJSON{
			Kind:  s.Kind,
			X:     s.Position.X,
			Y:     s.Position.Y,
			Size:  s.Size,
			Color: shape.FormatColor(s.Color),
		}
	}
	return doc
}

// Composition converts the document back into a composition.
func (d Document) Composition() (*composition.Composition, error) {
	c := &composition.Composition{
		Template: d.Template,
		Width:    d.Width,
		Height:   d.Height,
		Shapes:   make([]shape.Spec, len(d.Shapes)),
	}
	for i, s := range d.Shapes {
		pos := geom.Point{X: s.X, Y: s.Y}
		if !pos.Inside(0, 0, d.Width, d.Height) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "shape %d: position (%g, %g) outside %gx%g canvas", i, s.X, s.Y, d.Width, d.Height)
		}
		col, err := shape.ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		c.Shapes[i] = shape.Spec{
			Kind:     s.Kind,
			Position: pos,
			Size:     s.Size,
			Color:    col,
		}
	}
	return c, nil
}

// WriteJSON encodes c as an indented JSON document.
func WriteJSON(c *composition.Composition, seed uint64, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(c, seed)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode composition")
	}
	if err := errors.ValidateCanvasSize(doc.Width, doc.Height); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ImportJSON reads a composition document from a file.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// Replay clears s and draws the shapes of c onto it.
func Replay(s shape.Surface, c *composition.Composition) error {
	s.Clear()
	for i, spec := range c.Shapes {
		if err := shape.Draw(s, spec); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}
