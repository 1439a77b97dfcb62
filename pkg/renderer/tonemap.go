package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

// DefaultGamma is the display gamma applied to averaged radiance
const DefaultGamma = 2.0

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	// Negative radiance is possible with the unclamped geometric term
	colorVec = colorVec.Clamp(0.0, math.Inf(1))

	colorVec = colorVec.GammaCorrect(gamma)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
