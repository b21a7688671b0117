package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSimpleSphereScene creates a unit sphere at the origin lit by one point light above it,
// viewed from (0,0,5) against a black background
func NewSimpleSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
		Width:  200,
		Height: 200,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	s.Background = core.NewVec3(0, 0, 0)

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0,
		material.NewPhong(core.NewVec3(0.9, 0.3, 0.3), 1.0, 0.8, 0.5, 32)))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)))

	return s, nil
}

// NewAmbientOnlyScene creates a diffuse sphere with no lights, so only the ambient term contributes
func NewAmbientOnlyScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
		Width:  100,
		Height: 100,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.Ambient = core.NewVec3(0.4, 0.4, 0.4)
	s.Background = core.NewVec3(0, 0, 0)

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewDiffuse(core.NewVec3(0.2, 0.6, 0.9))))
	return s, nil
}

// NewMirrorsScene creates two parallel mirrors facing each other with a matte sphere between them.
// The camera looks along the corridor so that both the sphere and the mirrors are in view.
func NewMirrorsScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 6),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60.0,
		Width:  160,
		Height: 120,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	s.Background = core.NewVec3(0.05, 0.05, 0.1)
	s.SamplingConfig = SamplingConfig{SamplesPerPixel: 1, MaxDepth: 5}

	mirror := material.NewMirror(core.NewVec3(0.8, 0.9, 0.8), 0.9)
	s.AddShape(
		geometry.NewPlane(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0), mirror),
		geometry.NewPlane(core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), mirror),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewPhong(core.NewVec3(0.9, 0.6, 0.1), 0.2, 0.8, 0.5, 64)),
	)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 4, 4), core.NewVec3(1, 1, 1)))

	return s, nil
}
