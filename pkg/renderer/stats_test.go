package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green and blue luminance weights sum to 1, black adds nothing

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestPixelStats_Average(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black for a pixel without samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 2, 3))
	ps.AddSample(core.NewVec3(3, 2, 1))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(2, 2, 2) {
		t.Errorf("Expected average (2,2,2), got %v", got)
	}
}

func TestPixelStats_Variance(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float64
		expected float64
	}{
		{"no samples", nil, 0},
		{"single sample", []float64{1}, 0},
		{"constant", []float64{0.5, 0.5, 0.5}, 0},
		{"two values", []float64{0, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps PixelStats
			for _, s := range tt.samples {
				ps.AddSample(core.Splat(s))
			}
			if got := ps.Variance(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected variance %f, got %f", tt.expected, got)
			}
		})
	}
}
