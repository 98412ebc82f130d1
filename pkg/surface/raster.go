package surface

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

// Raster is a pixel surface. Its background starts (and is cleared to)
// fully transparent so exported PNGs keep an alpha channel.
type Raster struct {
	dc *gg.Context
}

// NewRaster creates a transparent width x height raster surface.
func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

// Size returns the canvas dimensions in pixels.
func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

// Clear resets every pixel to transparent.
func (r *Raster) Clear() {
	r.dc.ResetClip()
	r.dc.ClearPath()
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

func (r *Raster) FillArc(cx, cy, radius float64, c color.RGBA) {
	r.dc.DrawCircle(cx, cy, radius)
	r.fill(c)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.RGBA) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fill(c)
}

func (r *Raster) FillPath(pts []geom.Point, c color.RGBA) {
	if len(pts) == 0 {
		return
	}
	r.dc.NewSubPath()
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	r.fill(c)
}

func (r *Raster) fill(c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.Fill()
}

// Image returns the underlying RGBA image. It aliases the surface.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the current pixels as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

var _ shape.Surface = (*Raster)(nil)
