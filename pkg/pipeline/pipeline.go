// Package pipeline provides the generate → render pipeline for kozu.
//
// This package is shared by the CLI and the HTTP server so that both apply
// the same defaults, seeding and caching rules.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: pick a composition template (or use the requested one) and
//     plan its shapes on a recording surface, driven by a seeded PCG source
//  2. Render: replay the composition into each requested format (PNG, SVG,
//     JSON), consulting the artifact cache first
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// A zero seed asks the runner to pick one; [Result.Seed] always reports the
// seed that produced the composition.
package pipeline

import (
	"io"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kozu/pkg/cache"
	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/export"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width.
	DefaultWidth = 500.0

	// DefaultHeight is the default canvas height.
	DefaultHeight = 500.0

	// DefaultOutput is the file name used when saving a PNG without a path.
	DefaultOutput = "shapes.png"

	// DefaultConcurrency bounds parallel batch runs.
	DefaultConcurrency = 4

	// MaxBatch is the largest accepted batch size.
	MaxBatch = 10_000
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Template string  `json:"template,omitempty"` // empty picks a template at random
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Seed     uint64  `json:"seed,omitempty"` // zero picks a fresh seed
	Refresh  bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Template is the name of the template that ran.
	Template string

	// Seed is the seed that produced the composition.
	Seed uint64

	// Composition is the planned and drawn composition.
	Composition *composition.Composition

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache hits.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ShapeCount   int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache usage for a run.
type CacheInfo struct {
	Cacheable bool // Whether the run was eligible for caching (explicit seed, no refresh)
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
// The template name is checked against the runner's selector, not here.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateCanvasSize(o.Width, o.Height); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if !(o.Scale > 0) || o.Scale > export.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", export.MaxScale, o.Scale)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := export.ValidatePNGSize(o.Width, o.Height, o.Scale); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Cacheable reports whether rendered artifacts may be served from or
// stored in the cache. Only runs with an explicit seed are reproducible.
func (o *Options) Cacheable() bool {
	return o.Seed != 0 && !o.Refresh
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(seed uint64, format, style string) cache.ArtifactKeyOpts {
	keyOpts := cache.ArtifactKeyOpts{
		Template: o.Template,
		Seed:     seed,
		Width:    o.Width,
		Height:   o.Height,
		Format:   format,
		Palette:  style,
	}
	if format == FormatPNG {
		keyOpts.Scale = o.Scale
	}
	return keyOpts
}

// NewRand returns the PCG source that drives a composition for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSeed returns a random non-zero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Filename returns the conventional output name for format under base,
// e.g. "shapes.png" → "shapes.svg".
func Filename(base, format string) string {
	if base == "" {
		base = DefaultOutput
	}
	if ext := filepath.Ext(base); ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
