package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/geometry"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

var (
	red  = material.NewPhong(core.NewVec3(0.8, 0.1, 0.1), core.Vec3{}, 10)
	grey = material.NewPhong(core.Splat(0.5), core.Vec3{}, 10)
)

func TestScene_AddKeepsSpheresFirst(t *testing.T) {
	s := NewScene()
	s.AddPlane(core.NewVec3(0, 1, 0), 1, grey)
	s.AddSphere(core.NewVec3(0, 0, -5), 1, red)
	s.AddPlane(core.NewVec3(0, 0, 1), 10, grey)
	s.AddSphere(core.NewVec3(2, 0, -5), 1, red)

	prims := s.Primitives()
	if len(prims) != 4 || s.GetPrimitiveCount() != 4 {
		t.Fatalf("Expected 4 primitives, got %d", len(prims))
	}
	for i, p := range prims {
		_, isSphere := p.(*geometry.Sphere)
		if isSphere != (i < 2) {
			t.Errorf("Primitive %d: expected sphere=%t, got %T", i, i < 2, p)
		}
	}
}

func TestScene_Intersect_NearestOfPlaneAndSphere(t *testing.T) {
	tests := []struct {
		name          string
		sphereCenter  core.Vec3
		planeD        float64
		expectedT     float64
		expectedPlane bool
	}{
		{"sphere in front of plane", core.NewVec3(0, 0, -5), 10, 4, false},
		{"plane in front of sphere", core.NewVec3(0, 0, -15), 3, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			s.AddSphere(tt.sphereCenter, 1, red)
			s.AddPlane(core.NewVec3(0, 0, 1), tt.planeD, grey)

			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			hit := s.Intersect(ray, 0.001, 10000)

			if !hit.Hit {
				t.Fatal("Expected hit, got empty hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if (hit.Material == grey) != tt.expectedPlane {
				t.Errorf("Expected plane hit=%t, got material %+v", tt.expectedPlane, hit.Material)
			}
		})
	}
}

func TestScene_Intersect_RejectsPlaneBehindRay(t *testing.T) {
	s := NewScene()
	s.AddPlane(core.NewVec3(0, 0, 1), -5, grey) // z = 5, behind the ray

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit := s.Intersect(ray, 0.001, 10000); hit.Hit {
		t.Errorf("Expected miss for plane behind ray, got t=%f", hit.T)
	}
}

func TestScene_Intersect_RejectsParallelPlane(t *testing.T) {
	s := NewScene()
	s.AddPlane(core.NewVec3(0, 1, 0), 4.5, grey)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit := s.Intersect(ray, 0.001, 10000)
	if hit.Hit {
		t.Errorf("Expected parallel ray to miss, got t=%f", hit.T)
	}
	if hit != geometry.EmptyHit() {
		t.Errorf("Expected empty hit sentinel, got %+v", hit)
	}
}

func TestScene_Intersect_RespectsTMax(t *testing.T) {
	s := NewScene()
	s.AddSphere(core.NewVec3(0, 0, -50), 1, red)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit := s.Intersect(ray, 0.001, 10); hit.Hit {
		t.Errorf("Expected miss beyond tMax, got t=%f", hit.T)
	}
}

func TestScene_Intersect_Empty(t *testing.T) {
	s := NewScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit := s.Intersect(ray, 0.001, 10000); hit != geometry.EmptyHit() {
		t.Errorf("Expected empty hit for empty scene, got %+v", hit)
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	if s.GetPrimitiveCount() != 8 {
		t.Fatalf("Expected 8 primitives, got %d", s.GetPrimitiveCount())
	}

	emitters := 0
	for _, p := range s.Primitives() {
		if sphere, ok := p.(*geometry.Sphere); ok && sphere.Material.IsEmissive() {
			emitters++
		}
	}
	if emitters != 2 {
		t.Errorf("Expected 2 emissive spheres, got %d", emitters)
	}

	// Looking at the warm emitter from the origin hits it before anything else
	target := core.NewVec3(7, -2, -12)
	hit := s.Intersect(core.NewRay(core.Vec3{}, target.Normalize()), 0.001, 10000)
	if !hit.Hit {
		t.Fatal("Expected to hit the warm emitter")
	}
	expected := core.NewVec3(18, 10, 6)
	if hit.Material.Emission.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected emission %v, got %v", expected, hit.Material.Emission)
	}

	// Looking away from everything (+z) misses: the back wall is behind, the
	// floor and side walls are parallel
	miss := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0.001, 10000)
	if miss.Hit {
		t.Errorf("Expected +z ray to leave the scene, got t=%f", miss.T)
	}
}

func TestScene_IntersectPrimitive(t *testing.T) {
	s := NewScene()
	sphere := s.AddSphere(core.NewVec3(0, 0, -5), 1, red)
	plane := s.AddPlane(core.NewVec3(0, 1, 0), 1, grey)

	hit, prim := s.IntersectPrimitive(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 10000)
	if !hit.Hit || prim != geometry.Primitive(sphere) {
		t.Errorf("Expected the sphere, got %T (hit=%t)", prim, hit.Hit)
	}

	hit, prim = s.IntersectPrimitive(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), 0.001, 10000)
	if !hit.Hit || prim != geometry.Primitive(plane) {
		t.Errorf("Expected the plane, got %T (hit=%t)", prim, hit.Hit)
	}

	hit, prim = s.IntersectPrimitive(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 0.001, 10000)
	if hit.Hit || prim != nil {
		t.Errorf("Expected a miss, got %T", prim)
	}
}
