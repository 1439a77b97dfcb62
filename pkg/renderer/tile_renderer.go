package renderer

import (
	"image"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

// TileRenderer brings the pixels of a tile up to a target frame count
type TileRenderer struct {
	pixel      *PixelRenderer
	height     int
	frameSeeds []int
}

// NewTileRenderer creates a tile renderer. frameSeeds[k] is the seed of
// frame k and bounds the number of frames any pixel can accumulate.
func NewTileRenderer(pixel *PixelRenderer, height int, frameSeeds []int) *TileRenderer {
	return &TileRenderer{
		pixel:      pixel,
		height:     height,
		frameSeeds: frameSeeds,
	}
}

// RenderTileBounds renders the frames each pixel in bounds is missing.
// Tiles never overlap, so concurrent calls write disjoint pixelStats cells.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, targetSamples int) RenderStats {
	targetSamples = min(targetSamples, len(tr.frameSeeds))
	stats := tr.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.renderPixelFrames(i, j, &pixelStats[j][i], targetSamples)
			tr.updateStats(&stats, samplesUsed)
		}
	}

	tr.finalizeStats(&stats)
	return stats
}

// renderPixelFrames accumulates one estimate per missing frame
func (tr *TileRenderer) renderPixelFrames(i, j int, ps *PixelStats, targetSamples int) int {
	initialSampleCount := ps.SampleCount
	frag := tr.FragCoord(i, j)

	for ps.SampleCount < targetSamples {
		frame := ps.SampleCount
		ps.AddSample(tr.pixel.RenderPixel(tr.frameSeeds[frame], frame, frag))
	}

	return ps.SampleCount - initialSampleCount
}

// FragCoord converts image coordinates (top-left origin) to the fragment
// coordinate of the pixel center (bottom-left origin)
func (tr *TileRenderer) FragCoord(i, j int) core.Vec2 {
	return FragCoord(i, j, tr.height)
}

// FragCoord maps pixel (i, j) of an image with the given height, counted
// from the top-left, to its fragment coordinate
func FragCoord(i, j, height int) core.Vec2 {
	return core.NewVec2(float64(i)+0.5, float64(height-1-j)+0.5)
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	pixelCount := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:    pixelCount,
		TotalSamples:   0,
		AverageSamples: 0,
		MaxSamples:     maxSamples,
		MinSamples:     maxSamples,
		MaxSamplesUsed: 0,
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels == 0 {
		return
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
}
