package export

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/surface"
)

// MaxScale bounds the PNG scale factor.
const MaxScale = 4.0

// MaxOutputPixels bounds the pixel count of an encoded PNG after scaling,
// so a large canvas can only be combined with a small scale.
const MaxOutputPixels = errors.MaxCanvasDimension * errors.MaxCanvasDimension

// ValidatePNGSize checks that a width x height canvas rasterizes to at
// least one pixel per side and that scaling it stays within
// MaxOutputPixels.
func ValidatePNGSize(width, height, scale float64) error {
	if err := validateScale(scale); err != nil {
		return err
	}
	w, h := int(math.Round(width)), int(math.Round(height))
	if w < 1 || h < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas %gx%g rasterizes to %dx%d pixels", width, height, w, h)
	}
	return checkOutput(scaled(w, h, scale))
}

func scaled(w, h int, scale float64) (int, int) {
	if scale == 1 {
		return w, h
	}
	return max(1, int(math.Round(float64(w)*scale))), max(1, int(math.Round(float64(h)*scale)))
}

func checkOutput(w, h int) error {
	if int64(w)*int64(h) > MaxOutputPixels {
		return errors.New(errors.ErrCodeInvalidInput, "png output %dx%d exceeds %d pixels; lower the canvas size or scale", w, h, MaxOutputPixels)
	}
	return nil
}

// PNG rasterizes c on a transparent canvas and encodes it. A scale other
// than 1 resamples the canvas with Catmull-Rom interpolation; the
// background stays transparent.
func PNG(c *composition.Composition, scale float64) ([]byte, error) {
	if err := ValidatePNGSize(c.Width, c.Height, scale); err != nil {
		return nil, err
	}

	r := surface.NewRaster(int(math.Round(c.Width)), int(math.Round(c.Height)))
	if err := Replay(r, c); err != nil {
		return nil, err
	}
	return EncodePNG(r.Image(), scale)
}

// EncodePNG encodes img, resampled by scale.
func EncodePNG(img image.Image, scale float64) ([]byte, error) {
	if err := validateScale(scale); err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := scaled(b.Dx(), b.Dy(), scale)
	if err := checkOutput(w, h); err != nil {
		return nil, err
	}

	out := img
	if scale != 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// SVG renders c as an SVG document.
func SVG(c *composition.Composition) ([]byte, error) {
	s := surface.NewSVG(c.Width, c.Height)
	if err := Replay(s, c); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

func validateScale(scale float64) error {
	if !(scale > 0) || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, scale)
	}
	return nil
}
