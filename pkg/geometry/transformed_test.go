package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTransformed_TranslatedSphere(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	shape := NewTransformed(sphere, core.NewTransform(core.NewVec3(3, 0, 0), core.NewVec3(1, 1, 1), core.Vec3{}))

	hit, ok := shape.Hit(core.NewRay(core.NewVec3(3, 0, 5), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit on translated sphere")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if !vecNear(hit.Point, core.NewVec3(3, 0, 1), 1e-9) {
		t.Errorf("Expected point (3,0,1), got %v", hit.Point)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal +Z, got %v", hit.Normal)
	}

	if _, ok := shape.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected miss at the untransformed location")
	}
}

func TestTransformed_ScaledSphere(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	// Ellipsoid with semi-axes 2, 1, 1
	shape := NewTransformed(sphere, core.NewTransform(core.Vec3{}, core.NewVec3(2, 1, 1), core.Vec3{}))

	hit, ok := shape.Hit(core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected world-space t=3, got %f", hit.T)
	}
	if !vecNear(hit.Normal, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected normal +X, got %v", hit.Normal)
	}

	// Off-axis hit: normal must stay unit length and face the ray
	ray := core.NewRay(core.NewVec3(1, 0.5, 5), core.NewVec3(0, 0, -1))
	hit, ok = shape.Hit(ray)
	if !ok {
		t.Fatal("Expected off-axis hit")
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Normal %v should face the ray", hit.Normal)
	}
}

func TestTransformed_RotatedPlane(t *testing.T) {
	// Plane with +Y normal rotated 90 degrees about Z gets a -X normal
	plane := NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0), testMaterial())
	shape := NewTransformed(plane, core.NewTransform(core.Vec3{}, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 90)))

	hit, ok := shape.Hit(core.NewRay(core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0)))
	if !ok {
		t.Fatal("Expected hit on rotated plane")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if !vecNear(shape.NormalAt(hit.Point), core.NewVec3(-1, 0, 0), 1e-9) {
		t.Errorf("Expected outward normal -X, got %v", shape.NormalAt(hit.Point))
	}
}

func TestTransformed_SingularTransform(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	shape := NewTransformed(sphere, core.NewTransform(core.Vec3{}, core.NewVec3(0, 1, 1), core.Vec3{}))

	if _, ok := shape.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected no hit through a singular transform")
	}
}

func TestTransformed_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	shape := NewTransformed(sphere, core.NewTransform(core.NewVec3(0, 5, 0), core.NewVec3(2, 2, 2), core.Vec3{}))

	box := shape.BoundingBox()
	if !vecNear(box.Min, core.NewVec3(-2, 3, -2), 1e-9) || !vecNear(box.Max, core.NewVec3(2, 7, 2), 1e-9) {
		t.Errorf("Unexpected bounding box %+v", box)
	}
}

func TestTransformed_LargeScaleKeepsWorldEpsilon(t *testing.T) {
	// Sphere of radius 1000 in world space
	sphere := NewSphere(core.Vec3{}, 1, testMaterial())
	shape := NewTransformed(sphere, core.NewTransform(core.Vec3{}, core.NewVec3(1000, 1000, 1000), core.Vec3{}))

	tests := []struct {
		name    string
		originZ float64
		wantT   float64
	}{
		{"near hit well above epsilon", 1000.05, 0.05},
		{"origin within epsilon of the surface", 1000 + core.Epsilon/10, 2000 + core.Epsilon/10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := shape.Hit(core.NewRay(core.NewVec3(0, 0, tt.originZ), core.NewVec3(0, 0, -1)))
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.wantT) > 1e-6 {
				t.Errorf("Expected t=%f, got %f", tt.wantT, hit.T)
			}
		})
	}
}
