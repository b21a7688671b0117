package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

var (
	// ErrMissingCamera is returned when a scene has no camera to render from
	ErrMissingCamera = errors.New("scene has no camera")
	// ErrNoPrimitives is returned when a scene contains nothing to intersect
	ErrNoPrimitives = errors.New("scene has no primitives")
	// ErrInvalidConfig is returned for unusable sampling, material or light settings
	ErrInvalidConfig = errors.New("invalid scene configuration")
)

// Scene contains all the elements needed for rendering.
// A scene must not be modified once rendering has started.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	Lights         []lights.Light   // Lights in the scene
	Ambient        core.Vec3        // Ambient light color
	Background     core.Vec3        // Color returned for rays that hit nothing
	SamplingConfig SamplingConfig
	OutputFile     string // Preferred output file name, if the scene source named one
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum reflection/refraction recursion depth
}

// DefaultSamplingConfig returns one centered sample per pixel and five bounces
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 1,
		MaxDepth:        5,
	}
}

// NewScene creates an empty scene with a camera built from cameraConfig
func NewScene(cameraConfig geometry.CameraConfig) (*Scene, error) {
	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		Lights:         make([]lights.Light, 0),
		SamplingConfig: DefaultSamplingConfig(),
	}
	if err := s.SetCamera(cameraConfig); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCamera replaces the scene camera
func (s *Scene) SetCamera(config geometry.CameraConfig) error {
	camera, err := geometry.NewCamera(config)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingCamera, err)
	}
	s.Camera = camera
	s.CameraConfig = config
	return nil
}

// AddShape adds objects to the scene
func (s *Scene) AddShape(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight adds lights to the scene
func (s *Scene) AddLight(l ...lights.Light) {
	s.Lights = append(s.Lights, l...)
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrMissingCamera
	}
	if len(s.Shapes) == 0 {
		return ErrNoPrimitives
	}
	if s.SamplingConfig.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, s.SamplingConfig.SamplesPerPixel)
	}
	if s.SamplingConfig.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, s.SamplingConfig.MaxDepth)
	}
	if !s.Ambient.IsFinite() || !s.Background.IsFinite() {
		return fmt.Errorf("%w: ambient and background colors must be finite", ErrInvalidConfig)
	}
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("%w: shape %d is nil", ErrInvalidConfig, i)
		}
		mat := shape.GetMaterial()
		if mat == nil {
			return fmt.Errorf("%w: shape %d has no material", ErrInvalidConfig, i)
		}
		if err := mat.Validate(); err != nil {
			return fmt.Errorf("%w: shape %d: %w", ErrInvalidConfig, i, err)
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("%w: light %d is nil", ErrInvalidConfig, i)
		}
	}
	return nil
}

// NearestHit returns the closest intersection along the ray across all shapes
func (s *Scene) NearestHit(ray core.Ray) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray); ok {
			closest = hit
			ray.TMax = hit.T
		}
	}
	return closest, closest != nil
}

// IsOccluded reports whether anything lies between origin and a point maxDistance
// along direction. The caller offsets origin off the surface it starts on.
func (s *Scene) IsOccluded(origin, direction core.Vec3, maxDistance float64) bool {
	tMax := maxDistance
	if !math.IsInf(maxDistance, 1) {
		tMax = maxDistance - core.Epsilon
	}
	if !(tMax > core.Epsilon) {
		return false
	}

	ray := core.NewRayBounded(origin, direction, core.Epsilon, tMax)
	for _, shape := range s.Shapes {
		if _, ok := shape.Hit(ray); ok {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, looking through meshes and transforms
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.Transformed:
		return countPrimitivesInShape(obj.Shape)
	default:
		return 1
	}
}
