package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Canvas width and height accepted from users. Raster surfaces allocate
// width*height*4 bytes and need at least one pixel per side.
const (
	MinCanvasDimension = 1
	MaxCanvasDimension = 8192
)

// ValidateCanvasSize checks that a canvas size is finite and within
// [MinCanvasDimension, MaxCanvasDimension] on both axes.
//
// It does not check whether a template can be placed on the canvas; the
// geometry sampler reports that with ErrCodeInsufficientCanvas.
func ValidateCanvasSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "canvas size must be finite")
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas size must be positive (got %gx%g)", width, height)
	}
	if width < MinCanvasDimension || height < MinCanvasDimension {
		return New(ErrCodeInvalidInput, "canvas size too small (min %d per side, got %gx%g)", MinCanvasDimension, width, height)
	}
	if width > MaxCanvasDimension || height > MaxCanvasDimension {
		return New(ErrCodeInvalidInput, "canvas size too large (max %d per side)", MaxCanvasDimension)
	}
	return nil
}

// templateNameRegex matches registrable template names.
var templateNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateTemplateName validates a composition template name.
// Names are lowercase identifiers so they can be used in URLs and file names.
func ValidateTemplateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTemplate, "template name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidTemplate, "template name too long (max 64 characters)")
	}
	if !templateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTemplate, "invalid template name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates a file path used for writing artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
