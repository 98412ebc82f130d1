// Package shape draws single shape primitives onto a drawing surface.
//
// A [Spec] fully determines one drawing call: the [Kind], the center
// position, the size and the fill color. [Draw] translates a Spec into the
// primitive operations of a [Surface] (filled arc, filled rectangle, filled
// path). Draw never clears the surface; callers decide when a composition
// starts.
package shape

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/geom"
)

// Kind identifies a shape primitive. The zero value is not a valid kind.
type Kind int

const (
	Circle Kind = iota + 1
	Rectangle
	Triangle
)

// Kinds lists every supported kind in canonical order.
var Kinds = []Kind{Circle, Rectangle, Triangle}

var kindNames = map[Kind]string{
	Circle:    "circle",
	Rectangle: "rectangle",
	Triangle:  "triangle",
}

// String returns the lowercase kind name, or "kind(N)" for unknown values.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of [Kinds].
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind parses a kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnsupportedShapeKind, "unsupported shape kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.New(errors.ErrCodeUnsupportedShapeKind, "unsupported shape kind: %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Spec describes one shape to draw.
type Spec struct {
	Kind     Kind
	Position geom.Point // center
	Size     float64    // radius for circles, side length otherwise
	Color    color.RGBA
}

// ParseColor parses a "#rrggbb" hex color into an opaque color.RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseColor is like ParseColor but panics on error.
// It is intended for package-level palette defaults.
func MustParseColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatColor renders c as "#rrggbb", ignoring alpha.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
