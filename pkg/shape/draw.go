package shape

import (
	"image/color"
	"math"

	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/geom"
)

// Surface is the drawing target consumed by [Draw]. Coordinates are in
// canvas units matching the surface's pixel dimensions; the background of
// a freshly cleared surface is transparent.
type Surface interface {
	// Size returns the canvas dimensions.
	Size() (width, height float64)
	// Clear erases everything previously drawn.
	Clear()
	// FillArc fills a full circle of radius r centered on (cx, cy).
	FillArc(cx, cy, r float64, c color.RGBA)
	// FillRect fills the axis-aligned rectangle with top-left (x, y).
	FillRect(x, y, w, h float64, c color.RGBA)
	// FillPath fills the closed polygon through pts.
	FillPath(pts []geom.Point, c color.RGBA)
}

// Draw paints spec onto s without clearing existing content.
//
// Geometry per kind, with (x, y) the position and s the size:
//   - circle: radius s around (x, y)
//   - rectangle: square of side s centered on (x, y)
//   - triangle: apex (x, y-s/2), base corners (x±s/2, y+s/2)
//
// Unknown kinds return UNSUPPORTED_SHAPE_KIND and non-positive sizes return
// INVALID_INPUT; in both cases nothing is painted.
func Draw(s Surface, spec Spec) error {
	if !(spec.Size > 0) || math.IsInf(spec.Size, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "shape size must be positive and finite, got %g", spec.Size)
	}

	x, y, size := spec.Position.X, spec.Position.Y, spec.Size
	half := size / 2

	switch spec.Kind {
	case Circle:
		s.FillArc(x, y, size, spec.Color)
	case Rectangle:
		s.FillRect(x-half, y-half, size, size, spec.Color)
	case Triangle:
		s.FillPath(TrianglePath(spec.Position, size), spec.Color)
	default:
		return errors.New(errors.ErrCodeUnsupportedShapeKind, "cannot draw shape of %s", spec.Kind)
	}
	return nil
}

// TrianglePath returns the apex and base corners of the triangle drawn for
// a triangle spec centered on p.
func TrianglePath(p geom.Point, size float64) []geom.Point {
	half := size / 2
	return []geom.Point{
		{X: p.X, Y: p.Y - half},
		{X: p.X + half, Y: p.Y + half},
		{X: p.X - half, Y: p.Y + half},
	}
}
