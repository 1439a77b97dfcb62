package renderer

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/integrator"
	"github.com/df07/go-pixel-tracer/pkg/sampling"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

// PixelRenderer evaluates one radiance estimate for one pixel of one frame.
// It is safe for concurrent use: each call owns its sampler and the scene
// is never modified.
type PixelRenderer struct {
	scene     *scene.Scene
	camera    *Camera
	estimator integrator.PathEstimator
	antiAlias bool
}

// NewPixelRenderer wires a scene, camera and path estimator together
func NewPixelRenderer(scn *scene.Scene, camera *Camera, estimator integrator.PathEstimator, antiAlias bool) *PixelRenderer {
	return &PixelRenderer{
		scene:     scn,
		camera:    camera,
		estimator: estimator,
		antiAlias: antiAlias,
	}
}

// RenderPixel returns the unclamped RGB estimate for fragment coordinate
// frag. sampleIndex identifies the frame for samplers that stratify across
// frames; the LCG sampler derives everything from frameSeed.
func (pr *PixelRenderer) RenderPixel(frameSeed, sampleIndex int, frag core.Vec2) core.Vec3 {
	sampler := sampling.NewPixelSampler(frameSeed, frag)

	// The jitter is drawn even with anti-aliasing off so later draws keep their values
	jitter := sampler.Sample2(sampling.AntiAliasDimension)
	if pr.antiAlias {
		frag = frag.Add(core.NewVec2(-0.5, -0.5)).Add(jitter)
	}

	ray := pr.camera.GetRay(frag, sampler)
	return pr.estimator.RayColor(ray, pr.scene, sampler)
}
