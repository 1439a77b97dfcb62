package integrator

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

// PathEstimator computes one radiance estimate for a camera ray. The
// baseline is PathTracingIntegrator; strategies such as next-event
// estimation plug in behind the same interface.
type PathEstimator interface {
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
