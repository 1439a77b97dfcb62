package scene

import (
	"slices"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/geometry"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// Scene holds the primitives to render. It is built once and read-only
// afterwards, so it can be shared by any number of pixel evaluations.
type Scene struct {
	primitives []geometry.Primitive // spheres first, then planes
	numSpheres int
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		primitives: make([]geometry.Primitive, 0),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Add(sphere)
	return sphere
}

// AddPlane adds the plane dot(normal, x) + d = 0 to the scene
func (s *Scene) AddPlane(normal core.Vec3, d float64, mat material.Material) *geometry.Plane {
	plane := geometry.NewPlane(normal, d, mat)
	s.Add(plane)
	return plane
}

// Add inserts a primitive, keeping every sphere ahead of every plane
func (s *Scene) Add(p geometry.Primitive) {
	if _, isSphere := p.(*geometry.Sphere); isSphere {
		s.primitives = slices.Insert(s.primitives, s.numSpheres, p)
		s.numSpheres++
		return
	}
	s.primitives = append(s.primitives, p)
}

// Primitives returns the primitives in query order
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.primitives)
}

// Intersect finds the nearest hit with t in (tMin, tMax) by testing every
// primitive. It returns geometry.EmptyHit() when nothing qualifies.
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) geometry.HitInfo {
	hit, _ := s.IntersectPrimitive(ray, tMin, tMax)
	return hit
}

// IntersectPrimitive is Intersect that also returns the primitive hit, or
// nil on a miss
func (s *Scene) IntersectPrimitive(ray core.Ray, tMin, tMax float64) (geometry.HitInfo, geometry.Primitive) {
	best := geometry.EmptyHit()
	var nearest geometry.Primitive
	closestSoFar := tMax

	for _, p := range s.primitives {
		hit := p.Intersect(ray, tMin, tMax)

		// NaN and infinite t fail both comparisons
		if hit.Hit && hit.T < closestSoFar && hit.T > tMin {
			best = hit
			nearest = p
			closestSoFar = hit.T
		}
	}

	return best, nearest
}
