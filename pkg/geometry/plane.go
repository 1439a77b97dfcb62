package geometry

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// Plane represents the infinite plane dot(Normal, x) + D = 0
type Plane struct {
	Normal   core.Vec3 // Unit normal
	D        float64   // Signed offset
	Material material.Material
}

// NewPlane creates a new plane
func NewPlane(normal core.Vec3, d float64, mat material.Material) *Plane {
	return &Plane{
		Normal:   normal.Normalize(), // Ensure normal is normalized
		D:        d,
		Material: mat,
	}
}

// NewPlaneThroughPoint creates the plane with the given normal containing point
func NewPlaneThroughPoint(point, normal core.Vec3, mat material.Material) *Plane {
	n := normal.Normalize()
	return NewPlane(n, -n.Dot(point), mat)
}

// Intersect solves for the crossing of dot(x, Normal) + D = 0. A plane is
// infinite, so the hit flag is always set; tMin and tMax are not applied
// here. Rays parallel to the plane produce a non-finite t that the
// scene-level interval test rejects.
func (p *Plane) Intersect(ray core.Ray, tMin, tMax float64) HitInfo {
	t := -(ray.Origin.Dot(p.Normal) + p.D) / ray.Direction.Dot(p.Normal)

	return HitInfo{
		Hit:      true,
		T:        t,
		Position: ray.At(t),
		Normal:   p.Normal,
		Material: p.Material,
	}
}
