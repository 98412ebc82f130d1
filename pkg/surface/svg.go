package surface

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

// SVG accumulates filled primitives as SVG elements. The document has no
// background element, so unpainted areas stay transparent.
type SVG struct {
	width, height float64
	body          bytes.Buffer
}

// NewSVG creates an empty SVG surface of the given size.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

// Clear discards all elements.
func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) FillArc(cx, cy, r float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		cx, cy, r, shape.FormatColor(c), opacityAttr(c))
}

func (s *SVG) FillRect(x, y, w, h float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		x, y, w, h, shape.FormatColor(c), opacityAttr(c))
}

func (s *SVG) FillPath(pts []geom.Point, c color.RGBA) {
	if len(pts) == 0 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&s.body, `  <polygon points="%s" fill="%s"%s/>`+"\n",
		strings.Join(coords, " "), shape.FormatColor(c), opacityAttr(c))
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func opacityAttr(c color.RGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` fill-opacity="%.3f"`, float64(c.A)/0xff)
}

var _ shape.Surface = (*SVG)(nil)
