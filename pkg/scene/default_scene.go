package scene

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// Recommended output size for the built-in scene. The camera sensor is
// twice as wide as it is tall.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// NewDefaultScene creates the built-in scene: two emissive spheres, two
// glossy spheres, a floor, a back wall and two side walls.
func NewDefaultScene() *Scene {
	s := NewScene()

	// Emitters
	s.AddSphere(core.NewVec3(7, -2, -12), 2.0, material.Material{
		Emission:   core.NewVec3(0.9, 0.5, 0.3).Multiply(20),
		Glossiness: 10.0,
	})
	s.AddSphere(core.NewVec3(-8, 4, -13), 1.0, material.Material{
		Emission:   core.NewVec3(0.3, 0.9, 0.8).Multiply(20),
		Glossiness: 10.0,
	})

	// Glossy spheres
	s.AddSphere(core.NewVec3(-2, -2, -12), 3.0,
		material.NewPhong(core.NewVec3(0.2, 0.5, 0.8), core.Splat(0.8), 40.0))
	s.AddSphere(core.NewVec3(3, -3.5, -14), 1.0,
		material.NewPhong(core.NewVec3(0.9, 0.8, 0.8), core.Splat(1.0), 10.0))

	// Floor
	s.AddPlane(core.NewVec3(0, 1, 0), 4.5,
		material.NewPhong(core.Splat(0.8), core.Splat(0), 50.0))
	// Back wall
	s.AddPlane(core.NewVec3(0, 0, 1), 18.5,
		material.NewPhong(core.NewVec3(0.9, 0.6, 0.3), core.Splat(0.02), 3000.0))
	// Left and right walls
	s.AddPlane(core.NewVec3(1, 0, 0), 10.0,
		material.NewPhong(core.Splat(0.2), core.Splat(0.1), 100.0))
	s.AddPlane(core.NewVec3(-1, 0, 0), 10.0,
		material.NewPhong(core.Splat(0.2), core.Splat(0.1), 100.0))

	return s
}
