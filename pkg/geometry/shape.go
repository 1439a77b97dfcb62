package geometry

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// HitInfo contains information about a ray-object intersection
type HitInfo struct {
	Hit      bool              // Whether an intersection occurred
	T        float64           // Parameter t along the ray
	Position core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit surface normal facing the incident ray
	Material material.Material // Copy of the hit object's material
}

// EmptyHit returns the sentinel for "no intersection". Callers must check
// Hit before reading any other field.
func EmptyHit() HitInfo {
	return HitInfo{}
}

// Primitive is an object that can be hit by rays
type Primitive interface {
	Intersect(ray core.Ray, tMin, tMax float64) HitInfo
}
