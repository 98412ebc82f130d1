package geom

import (
	"math"

	"github.com/matzehuels/kozu/pkg/errors"
)

const (
	// DefaultMargin is the inset from each canvas edge that sampled points
	// must respect.
	DefaultMargin = 50.0

	// MinSideRatio is the exclusive lower bound on shortest/longest side
	// for an accepted triangle.
	MinSideRatio = 0.5

	// MaxAttempts caps the number of candidate triangles drawn per call.
	MaxAttempts = 10_000
)

// Rand is the random source consumed by the samplers.
// Float64 must return values in [0, 1).
type Rand interface {
	Float64() float64
}

// Sampler draws constrained point sets. The zero value uses the package
// defaults.
type Sampler struct {
	Margin      float64 // edge inset; 0 means DefaultMargin
	MinRatio    float64 // exclusive shortest/longest bound; 0 means MinSideRatio
	MaxAttempts int     // candidate cap; 0 means MaxAttempts
}

// DefaultSampler is the sampler used by the package-level functions.
var DefaultSampler = Sampler{}

// SampleTrianglePositions draws three points inside the margin-inset canvas
// whose triangle is not a sliver. See [Sampler.Triangle].
func SampleTrianglePositions(width, height float64, rnd Rand) ([3]Point, error) {
	return DefaultSampler.Triangle(width, height, rnd)
}

// SampleSunPosition returns the single center point of the canvas.
func SampleSunPosition(width, height float64) []Point {
	return []Point{{X: width / 2, Y: height / 2}}
}

// Triangle repeatedly draws three independent uniform points in
// [margin, dim-margin] on each axis until minSide/maxSide exceeds the
// configured ratio. Points are returned in generation order.
//
// It fails with INSUFFICIENT_CANVAS before consuming any randomness when
// either dimension is not larger than twice the margin, and with
// SAMPLING_EXHAUSTED when the attempt cap is reached.
func (s Sampler) Triangle(width, height float64, rnd Rand) ([3]Point, error) {
	margin, ratio, attempts := s.params()

	if !fits(width, margin) || !fits(height, margin) {
		return [3]Point{}, errors.New(errors.ErrCodeInsufficientCanvas,
			"canvas %gx%g cannot hold a triangle with margin %g (need more than %g per side)",
			width, height, margin, 2*margin)
	}

	spanX := width - 2*margin
	spanY := height - 2*margin

	for range attempts {
		var pts [3]Point
		for i := range pts {
			pts[i] = Point{
				X: rnd.Float64()*spanX + margin,
				Y: rnd.Float64()*spanY + margin,
			}
		}
		if SideRatio(pts[0], pts[1], pts[2]) > ratio {
			return pts, nil
		}
	}

	return [3]Point{}, errors.New(errors.ErrCodeSamplingExhausted,
		"no triangle with side ratio above %g found in %d attempts on %gx%g canvas",
		ratio, attempts, width, height)
}

func (s Sampler) params() (margin, ratio float64, attempts int) {
	margin, ratio, attempts = s.Margin, s.MinRatio, s.MaxAttempts
	if margin <= 0 {
		margin = DefaultMargin
	}
	if ratio <= 0 {
		ratio = MinSideRatio
	}
	if attempts <= 0 {
		attempts = MaxAttempts
	}
	return margin, ratio, attempts
}

func fits(dim, margin float64) bool {
	return !math.IsNaN(dim) && !math.IsInf(dim, 0) && dim > 2*margin
}
