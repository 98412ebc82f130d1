package composition

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/kozu/pkg/shape"
)

// Rand is the random source used by templates. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Strategy is a composition template: a named, stateless policy mapping a
// canvas size to an ordered list of shapes.
type Strategy interface {
	Name() string
	Shapes(width, height float64, rnd Rand) ([]shape.Spec, error)
}

// Composition is the result of one generation call.
type Composition struct {
	Template string
	Width    float64
	Height   float64
	Shapes   []shape.Spec
}

// SizeRange is a closed-open interval of shape sizes.
type SizeRange struct {
	Min, Max float64
}

// Sample draws a uniform size from the range.
func (r SizeRange) Sample(rnd Rand) float64 {
	return rnd.Float64()*(r.Max-r.Min) + r.Min
}

// Contains reports whether v lies in [Min, Max].
func (r SizeRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r SizeRange) String() string {
	return fmt.Sprintf("[%g,%g]", r.Min, r.Max)
}

// Palette holds the fill colors used by the built-in templates.
type Palette struct {
	Triangle [3]color.RGBA // per slot: circle, rectangle, triangle
	Sun      color.RGBA
}

// DefaultPalette is the soft red/green/blue trio with an orange accent.
var DefaultPalette = Palette{
	Triangle: [3]color.RGBA{
		shape.MustParseColor("#ff6666"),
		shape.MustParseColor("#66ff66"),
		shape.MustParseColor("#6666ff"),
	},
	Sun: shape.MustParseColor("#ff9900"),
}

// Generate plans the shapes of st for the surface size, then clears the
// surface and draws them in order.
//
// If planning fails the surface is not modified. If a draw fails the
// remaining shapes are skipped and the error is returned; the next
// generation clears the partial result.
func Generate(s shape.Surface, st Strategy, rnd Rand) (*Composition, error) {
	width, height := s.Size()

	specs, err := st.Shapes(width, height, rnd)
	if err != nil {
		return nil, fmt.Errorf("%s composition: %w", st.Name(), err)
	}

	s.Clear()
	for i, spec := range specs {
		if err := shape.Draw(s, spec); err != nil {
			return nil, fmt.Errorf("%s composition: shape %d: %w", st.Name(), i, err)
		}
	}

	return &Composition{
		Template: st.Name(),
		Width:    width,
		Height:   height,
		Shapes:   specs,
	}, nil
}

// Func adapts a plain function to the Strategy interface.
func Func(name string, fn func(width, height float64, rnd Rand) ([]shape.Spec, error)) Strategy {
	return funcStrategy{name: name, fn: fn}
}

type funcStrategy struct {
	name string
	fn   func(width, height float64, rnd Rand) ([]shape.Spec, error)
}

func (f funcStrategy) Name() string { return f.name }

func (f funcStrategy) Shapes(width, height float64, rnd Rand) ([]shape.Spec, error) {
	return f.fn(width, height, rnd)
}
