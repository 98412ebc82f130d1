package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateCanvasSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"default", 500, 500, false},
		{"tiny but positive", 1, 1, false},
		{"max", MaxCanvasDimension, MaxCanvasDimension, false},

		{"sub-pixel width", 0.4, 500, true},
		{"sub-pixel height", 500, 0.99, true},
		{"zero width", 0, 500, true},
		{"negative height", 500, -1, true},
		{"too wide", MaxCanvasDimension + 1, 500, true},
		{"NaN", math.NaN(), 500, true},
		{"Inf", 500, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvasSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvasSize(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateTemplateName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"triangle", false},
		{"sun", false},
		{"rule-of-thirds", false},
		{"golden_ratio2", false},

		{"", true},
		{"Triangle", true},
		{"2sun", true},
		{"sun/../x", true},
		{"sun moon", true},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateTemplateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "shapes.png", false},
		{"nested", "out/compositions/shapes.svg", false},
		{"absolute", "/tmp/shapes.png", false},

		{"empty", "", true},
		{"directory", "out/", true},
		{"null byte", "shapes\x00.png", true},
		{"newline", "shapes\n.png", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
