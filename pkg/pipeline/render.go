package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/export"
)

// Render generates output artifacts in the requested formats.
func Render(c *composition.Composition, seed uint64, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderFormat(c, seed, format, scale)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders c as a single format. Scale only affects PNG output.
func RenderFormat(c *composition.Composition, seed uint64, format string, scale float64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPNG:
		data, err = export.PNG(c, scale)
	case FormatSVG:
		data, err = export.SVG(c)
	case FormatJSON:
		var buf bytes.Buffer
		err = export.WriteJSON(c, seed, &buf)
		data = buf.Bytes()
	default:
		err = ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
