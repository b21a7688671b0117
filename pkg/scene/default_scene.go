package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a scene with diffuse, mirror and glass spheres on a checkered floor
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1.5, 6),
		LookAt: core.NewVec3(0, 0.6, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Width:  400,
		Height: 225,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.Ambient = core.NewVec3(0.15, 0.15, 0.15)
	s.Background = core.NewVec3(0.55, 0.7, 0.9)
	s.SamplingConfig = SamplingConfig{
		SamplesPerPixel: 4,
		MaxDepth:        8,
	}

	// Create materials
	red := material.NewPhong(core.NewVec3(0.8, 0.2, 0.15), 0.3, 0.8, 0.4, 32)
	blue := material.NewPhong(core.NewVec3(0.15, 0.3, 0.8), 0.3, 0.7, 0.2, 16)
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	glass := material.NewGlass(1.5, 0.9)
	floor := material.NewTexturedPhong(
		material.NewCheckerSolid(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.15, 0.15, 0.15), 1.0),
		0.3, 0.8, 0.1, 8,
	)
	floor.Reflectivity = 0.15

	s.AddShape(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(-1.6, 0.7, -0.5), 0.7, red),
		geometry.NewSphere(core.NewVec3(0, 1.0, -1.5), 1.0, mirror),
		geometry.NewSphere(core.NewVec3(1.4, 0.6, 0.4), 0.6, glass),
		geometry.NewSphere(core.NewVec3(0.3, 0.3, 1.2), 0.3, blue),
	)

	s.AddLight(
		lights.NewPointLight(core.NewVec3(-4, 6, 4), core.NewVec3(0.7, 0.7, 0.7)),
		lights.NewDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewVec3(0.3, 0.3, 0.25)),
		lights.NewSpotLight(core.NewVec3(3, 5, 2), core.NewVec3(-0.5, -1, -0.4), core.NewVec3(0.4, 0.35, 0.3), 15, 30),
	)

	return s, nil
}
