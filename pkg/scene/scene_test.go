package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(geometry.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func TestScene_NearestHit(t *testing.T) {
	s := newTestScene(t)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	far := geometry.NewSphere(core.NewVec3(0, 0, -10), 1, mat)
	near := geometry.NewSphere(core.NewVec3(0, 0, -4), 1, mat)
	// Insertion order must not matter
	s.AddShape(far, near)

	hit, ok := s.NearestHit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Shape != near {
		t.Error("Expected the nearer sphere to be reported")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", hit.T)
	}

	if _, ok := s.NearestHit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected miss when looking away from every shape")
	}
}

func TestScene_NearestHit_RespectsInterval(t *testing.T) {
	s := newTestScene(t)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -4), 1, mat))

	ray := core.NewRayBounded(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.Epsilon, 2.5)
	if _, ok := s.NearestHit(ray); ok {
		t.Error("Expected no hit beyond TMax")
	}
}

func TestScene_IsOccluded(t *testing.T) {
	s := newTestScene(t)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5, mat))

	tests := []struct {
		name        string
		origin      core.Vec3
		direction   core.Vec3
		maxDistance float64
		expected    bool
	}{
		{"blocker between point and light", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 5, true},
		{"light in front of blocker", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1.0, false},
		{"blocker off to the side", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 5, false},
		{"directional light at infinity", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), math.Inf(1), true},
		{"zero distance", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsOccluded(tt.origin, tt.direction, tt.maxDistance); got != tt.expected {
				t.Errorf("Expected occluded=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScene_Validate(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		build    func(s *Scene)
		expected error
	}{
		{"valid", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
		}, nil},
		{"valid without lights", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
			s.Lights = nil
		}, nil},
		{"missing camera", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
			s.Camera = nil
		}, ErrMissingCamera},
		{"no primitives", func(s *Scene) {}, ErrNoPrimitives},
		{"zero samples", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
			s.SamplingConfig.SamplesPerPixel = 0
		}, ErrInvalidConfig},
		{"negative depth", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
			s.SamplingConfig.MaxDepth = -1
		}, ErrInvalidConfig},
		{"shape without material", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, nil))
		}, ErrInvalidConfig},
		{"invalid material", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, &material.Material{Reflectivity: 2}))
		}, ErrInvalidConfig},
		{"nil light", func(s *Scene) {
			s.AddShape(geometry.NewSphere(core.Vec3{}, 1, mat))
			s.AddLight(nil)
		}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)))
			tt.build(s)

			err := s.Validate()
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestScene_SetCamera_Invalid(t *testing.T) {
	config := geometry.DefaultCameraConfig()
	config.Width = 0
	if _, err := NewScene(config); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("Expected ErrMissingCamera, got %v", err)
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s, err := NewTriangleMeshScene()
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	// floor (2) + pyramid (6) + ellipsoid (1) + glass sphere (1)
	if got := s.GetPrimitiveCount(); got != 10 {
		t.Errorf("Expected 10 primitives, got %d", got)
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.Name, func(t *testing.T) {
			s, err := NewBuiltinScene(info.Name)
			if err != nil {
				t.Fatalf("Failed to build scene: %v", err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene failed validation: %v", err)
			}
		})
	}
}

func TestBuiltinScenes_CameraOverride(t *testing.T) {
	s, err := NewBuiltinScene("default", geometry.CameraConfig{Width: 32, Height: 24})
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	if s.Camera.Width() != 32 || s.Camera.Height() != 24 {
		t.Errorf("Expected 32x24 camera, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}
}

func TestBuiltinScenes_Unknown(t *testing.T) {
	if _, err := NewBuiltinScene("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
