package sampling

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
)

// PixelSampler is the baseline core.Sampler: a per-pixel LCG seeded from
// the frame seed and a hash of the pixel position. Dimensions are accepted
// but ignored, each call draws the next value of the sequence. A
// PixelSampler belongs to exactly one pixel evaluation.
type PixelSampler struct {
	rng *LCG
}

// NewPixelSampler initializes the sequence for one pixel of one frame.
// Identical (frameSeed, pixel) pairs produce identical sequences.
func NewPixelSampler(frameSeed int, pixel core.Vec2) *PixelSampler {
	seed := int32(frameSeed) + int32(PixelIntegerSeed(pixel.X, pixel.Y, 0))
	return &PixelSampler{rng: NewLCG(seed)}
}

// Sample returns the next value in [0, 1)
func (p *PixelSampler) Sample(dimension int) float64 {
	return p.rng.Float64()
}

// Sample2 returns two consecutive samples
func (p *PixelSampler) Sample2(dimension int) core.Vec2 {
	return core.NewVec2(p.Sample(dimension+0), p.Sample(dimension+1))
}

// Sample3 returns three consecutive samples
func (p *PixelSampler) Sample3(dimension int) core.Vec3 {
	return core.NewVec3(p.Sample(dimension+0), p.Sample(dimension+1), p.Sample(dimension+2))
}
