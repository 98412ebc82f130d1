package composition

import (
	"image/color"

	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

// Template names of the built-in strategies.
const (
	TemplateTriangle = "triangle"
	TemplateSun      = "sun"
)

// TriangleSizes are the small, large and medium size ranges of the
// triangle template, in generation order.
var TriangleSizes = [3]SizeRange{
	{Min: 20, Max: 40},
	{Min: 80, Max: 100},
	{Min: 50, Max: 70},
}

// SunSize is the size range of the sun template's single shape.
var SunSize = SizeRange{Min: 70, Max: 120}

// Triangle places a circle, a rectangle and a triangle on the corners of a
// balanced random triangle.
type Triangle struct {
	Sampler geom.Sampler
	Colors  [3]color.RGBA
	Sizes   [3]SizeRange
}

// NewTriangle returns the triangle template colored with p.
func NewTriangle(p Palette) *Triangle {
	return &Triangle{Colors: p.Triangle, Sizes: TriangleSizes}
}

func (t *Triangle) Name() string { return TemplateTriangle }

// Shapes samples three positions, then one size per range, then a uniform
// permutation assigning ranges to slots. Slot i always gets shape.Kinds[i]
// and Colors[i].
func (t *Triangle) Shapes(width, height float64, rnd Rand) ([]shape.Spec, error) {
	pts, err := t.Sampler.Triangle(width, height, rnd)
	if err != nil {
		return nil, err
	}

	var sizes [3]float64
	for i, r := range t.Sizes {
		sizes[i] = r.Sample(rnd)
	}
	order := [3]int{0, 1, 2}
	rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	specs := make([]shape.Spec, len(pts))
	for i, p := range pts {
		specs[i] = shape.Spec{
			Kind:     shape.Kinds[i],
			Position: p,
			Size:     sizes[order[i]],
			Color:    t.Colors[i],
		}
	}
	return specs, nil
}

// Sun places one shape of random kind at the canvas center.
type Sun struct {
	Color color.RGBA
	Size  SizeRange
}

// NewSun returns the sun template colored with p.
func NewSun(p Palette) *Sun {
	return &Sun{Color: p.Sun, Size: SunSize}
}

func (s *Sun) Name() string { return TemplateSun }

func (s *Sun) Shapes(width, height float64, rnd Rand) ([]shape.Spec, error) {
	pos := geom.SampleSunPosition(width, height)[0]
	kind := shape.Kinds[rnd.IntN(len(shape.Kinds))]
	return []shape.Spec{{
		Kind:     kind,
		Position: pos,
		Size:     s.Size.Sample(rnd),
		Color:    s.Color,
	}}, nil
}
