package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

var testMaterial = material.NewPhong(core.NewVec3(0.5, 0.5, 0.5), core.Vec3{}, 10)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit := sphere.Intersect(ray, 0.001, 1000.0)
	if hit.Hit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit != EmptyHit() {
		t.Errorf("Expected empty hit sentinel, got %+v", hit)
	}
}

func TestSphere_Intersect_NearerRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{"unit direction", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 4.0},
		{"scaled direction", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2), 2.0},
		{"offset origin", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), 7.0},
		{"oblique", core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0, -1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit := sphere.Intersect(ray, 0.001, 1000.0)

			if !hit.Hit {
				t.Fatal("Expected hit, but got miss")
			}

			if tt.expectedT >= 0 && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			// position = origin + t*direction
			if !vecNear(hit.Position, ray.At(hit.T), 1e-9) {
				t.Errorf("Position %v inconsistent with ray.At(%f) = %v", hit.Position, hit.T, ray.At(hit.T))
			}

			// The nearer root faces the ray origin
			if hit.Position.Z < -5 {
				t.Errorf("Expected near side of sphere, got %v", hit.Position)
			}

			if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}

			// Outward normal points back at an outside observer
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Expected normal facing the ray, got %v", hit.Normal)
			}
		})
	}
}

func TestSphere_Intersect_InsideNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, testMaterial)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "from center",
			origin:         core.NewVec3(0, 0, 0),
			direction:      core.NewVec3(0, 0, 1),
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "off-center",
			origin:         core.NewVec3(1, 0, 0),
			direction:      core.NewVec3(1, 0, 0),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			// Secondary ray leaving the surface counts as inside
			name:           "from surface",
			origin:         core.NewVec3(0, 2, 0),
			direction:      core.NewVec3(0, -1, 0),
			expectedT:      4.0,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit := sphere.Intersect(ray, 0.001, 1000.0)

			if !hit.Hit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected inward normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Intersect_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Both roots (1 and 3) beyond tMax
	if hit := sphere.Intersect(ray, 0.001, 0.5); hit.Hit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots before tMin
	if hit := sphere.Intersect(ray, 3.5, 1000.0); hit.Hit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Nearer root excluded, farther root selected
	hit := sphere.Intersect(ray, 1.5, 1000.0)
	if !hit.Hit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got hit=%t t=%f", hit.Hit, hit.T)
	}

	// The interval is open: a root exactly at tMax is rejected
	if hit := sphere.Intersect(ray, 0.001, 1.0); hit.Hit {
		t.Errorf("Expected miss for root on open tMax bound, got t=%f", hit.T)
	}
}

func TestSphere_Intersect_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	// Grazes the sphere at (1,0,0): discriminant is exactly zero
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit := sphere.Intersect(ray, 0.001, 1000.0)
	if !hit.Hit {
		t.Fatal("Expected tangent hit inside the interval, but got miss")
	}
	if !vecNear(hit.Position, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected tangent point (1,0,0), got %v", hit.Position)
	}

	// The single root fails the interval test
	if hit := sphere.Intersect(ray, 0.001, 1.0); hit.Hit {
		t.Errorf("Expected miss when tangent root is outside interval, got t=%f", hit.T)
	}
}

func TestSphere_Intersect_CarriesMaterial(t *testing.T) {
	mat := material.NewEmissive(core.NewVec3(18, 10, 6))
	sphere := NewSphere(core.NewVec3(7, -2, -12), 2.0, mat)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(7, -2, -12).Normalize())

	hit := sphere.Intersect(ray, 0.001, 10000.0)
	if !hit.Hit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Errorf("Expected material %+v, got %+v", mat, hit.Material)
	}
	expectedT := core.NewVec3(7, -2, -12).Length() - 2.0
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
	}
}
