package composition

import (
	"slices"
	"strings"

	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/shape"
)

// Selector is an ordered registry of named templates that can pick one
// uniformly at random. It holds no per-call state.
type Selector struct {
	strategies []Strategy
}

// NewSelector creates a selector with the given templates.
// It panics on invalid or duplicate names.
func NewSelector(strategies ...Strategy) *Selector {
	s := &Selector{}
	for _, st := range strategies {
		if err := s.Register(st); err != nil {
			panic(err)
		}
	}
	return s
}

// DefaultSelector returns a selector with the triangle and sun templates.
func DefaultSelector(p Palette) *Selector {
	return NewSelector(NewTriangle(p), NewSun(p))
}

// Register adds a template. Names must be valid template identifiers and
// unique within the selector.
func (s *Selector) Register(st Strategy) error {
	if err := errors.ValidateTemplateName(st.Name()); err != nil {
		return err
	}
	if _, ok := s.find(st.Name()); ok {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q already registered", st.Name())
	}
	s.strategies = append(s.strategies, st)
	return nil
}

// Names returns the registered template names in registration order.
func (s *Selector) Names() []string {
	names := make([]string, len(s.strategies))
	for i, st := range s.strategies {
		names[i] = st.Name()
	}
	return names
}

// Len returns the number of registered templates.
func (s *Selector) Len() int { return len(s.strategies) }

// Lookup returns the template with the given name.
func (s *Selector) Lookup(name string) (Strategy, error) {
	if st, ok := s.find(name); ok {
		return st, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidTemplate,
		"unknown template %q (must be one of: %s)", name, strings.Join(s.Names(), ", "))
}

func (s *Selector) find(name string) (Strategy, bool) {
	i := slices.IndexFunc(s.strategies, func(st Strategy) bool { return st.Name() == name })
	if i < 0 {
		return nil, false
	}
	return s.strategies[i], true
}

// Pick chooses a template with uniform probability.
func (s *Selector) Pick(rnd Rand) (Strategy, error) {
	if len(s.strategies) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "no templates registered")
	}
	return s.strategies[rnd.IntN(len(s.strategies))], nil
}

// GenerateRandom picks a template uniformly at random and generates it on
// surface. This is the entry point behind "create" and "regenerate".
func (s *Selector) GenerateRandom(surface shape.Surface, rnd Rand) (*Composition, error) {
	st, err := s.Pick(rnd)
	if err != nil {
		return nil, err
	}
	return Generate(surface, st, rnd)
}

// Generate runs the named template on surface.
func (s *Selector) Generate(name string, surface shape.Surface, rnd Rand) (*Composition, error) {
	st, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return Generate(surface, st, rnd)
}
