package geometry

import (
	"math"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// insideTolerance widens the sphere when deciding whether a ray starts
// inside it, so rays leaving the surface count as inside.
const insideTolerance = 0.001

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect returns the nearest hit with t strictly inside (tMin, tMax)
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) HitInfo {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return EmptyHit()
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2.0 * a)
	t1 := (-b + sqrtD) / (2.0 * a)

	t, ok := smallestInInterval(t0, t1, tMin, tMax)
	if !ok {
		return EmptyHit()
	}

	position := ray.At(t)
	normal := position.Subtract(s.Center).Normalize()

	// Keep the normal facing the incident ray when it starts inside
	if oc.Length() < s.Radius+insideTolerance {
		normal = normal.Negate()
	}

	return HitInfo{
		Hit:      true,
		T:        t,
		Position: position,
		Normal:   normal,
		Material: s.Material,
	}
}

// inInterval reports whether t lies in the open interval (tMin, tMax).
// NaN never does.
func inInterval(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}

// smallestInInterval sorts the two roots and returns the smaller one that
// lies in (tMin, tMax)
func smallestInInterval(t0, t1, tMin, tMax float64) (float64, bool) {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	if inInterval(t0, tMin, tMax) {
		return t0, true
	}
	if inInterval(t1, tMin, tMax) {
		return t1, true
	}
	return 0, false
}
