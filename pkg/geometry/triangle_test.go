package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2, testMaterial())

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle center",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Triangle behind ray origin",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Hit beyond TMax",
			ray:       core.NewRayBounded(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1), core.Epsilon, 0.5),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got %v", hit.Normal)
			}
			if hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Normal %v should face the incoming ray", hit.Normal)
			}
		})
	}
}

func TestTriangle_FrontFace(t *testing.T) {
	// Counter-clockwise when viewed from +Z, so the outward normal is +Z
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial())

	hit, ok := triangle.Hit(core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if !hit.FrontFace {
		t.Error("Expected front face when hitting from +Z")
	}
	if !vecNear(triangle.NormalAt(hit.Point), core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected outward normal +Z, got %v", triangle.NormalAt(hit.Point))
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 core.Vec3
	}{
		{"collinear", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)},
		{"repeated vertex", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)},
		{"single point", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangle := NewTriangle(tt.v0, tt.v1, tt.v2, testMaterial())
			if !triangle.IsDegenerate() {
				t.Error("Expected triangle to be degenerate")
			}
			ray := core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1))
			if _, ok := triangle.Hit(ray); ok {
				t.Error("Expected degenerate triangle to never be hit")
			}
		})
	}
}

func TestTriangle_SmoothNormalsAndUVs(t *testing.T) {
	normals := [3]core.Vec3{
		core.NewVec3(-1, -1, 1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(0, 1, 1),
	}
	triangle := NewSmoothTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), normals, testMaterial()).
		WithUVs([3]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)})

	// Hitting exactly at V1 must return V1's normal and UV
	hit, ok := triangle.Hit(core.NewRay(core.NewVec3(1, 0, 1), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit at vertex")
	}
	expected := core.NewVec3(1, 0, 1).Normalize()
	if !vecNear(hit.Normal, expected, 1e-9) {
		t.Errorf("Expected interpolated normal %v, got %v", expected, hit.Normal)
	}
	if math.Abs(hit.UV.X-1) > 1e-9 || math.Abs(hit.UV.Y) > 1e-9 {
		t.Errorf("Expected uv=(1,0), got %v", hit.UV)
	}
}
