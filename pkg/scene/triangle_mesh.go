package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a pyramid mesh, a textured floor made of triangles
// and a rotated ellipsoid, exercising meshes, UV textures and transforms
func NewTriangleMeshScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(3, 3, 6),
		LookAt: core.NewVec3(0, 0.8, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Width:  400,
		Height: 300,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.Ambient = core.NewVec3(0.2, 0.2, 0.2)
	s.Background = core.NewVec3(0.1, 0.1, 0.15)
	s.SamplingConfig = SamplingConfig{SamplesPerPixel: 4, MaxDepth: 5}

	// Textured floor: two triangles with UVs spanning a checkerboard texture
	checker := material.NewCheckerboardTexture(64, 64, 8, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.3, 0.6))
	floorMat := material.NewTexturedPhong(checker, 0.4, 0.8, 0.0, 1)
	floorVertices := []core.Vec3{
		core.NewVec3(-4, 0, -4),
		core.NewVec3(4, 0, -4),
		core.NewVec3(4, 0, 4),
		core.NewVec3(-4, 0, 4),
	}
	floor, err := geometry.NewTriangleMesh(floorVertices, []int{0, 2, 1, 0, 3, 2}, floorMat, &geometry.TriangleMeshOptions{
		UVs: []core.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}},
	})
	if err != nil {
		return nil, fmt.Errorf("floor mesh: %w", err)
	}

	// Square pyramid, counter-clockwise faces seen from outside
	pyramidVertices := []core.Vec3{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(-1, 0, 1),
		core.NewVec3(0, 1.6, 0),
	}
	pyramidFaces := []int{
		3, 2, 4,
		2, 1, 4,
		1, 0, 4,
		0, 3, 4,
		0, 1, 2, 0, 2, 3,
	}
	pyramidMat := material.NewPhong(core.NewVec3(0.85, 0.65, 0.2), 0.2, 0.7, 0.6, 64)
	pyramidMat.Reflectivity = 0.25
	pyramid, err := geometry.NewTriangleMesh(pyramidVertices, pyramidFaces, pyramidMat, nil)
	if err != nil {
		return nil, fmt.Errorf("pyramid mesh: %w", err)
	}

	// Ellipsoid painted with its own UV coordinates to show the spherical mapping under a transform
	uvMat := material.NewTexturedPhong(material.NewUVDebugTexture(32, 32), 0.2, 0.8, 0.4, 32)
	ellipsoid := geometry.NewTransformed(
		geometry.NewSphere(core.Vec3{}, 1, uvMat),
		core.NewTransform(core.NewVec3(-2.2, 0.6, 1), core.NewVec3(0.4, 0.6, 0.4), core.NewVec3(0, 0, 30)),
	)

	s.AddShape(
		floor,
		pyramid,
		ellipsoid,
		geometry.NewSphere(core.NewVec3(1.8, 0.5, 1.5), 0.5, material.NewGlass(1.5, 0.85)),
	)
	s.AddLight(
		lights.NewPointLight(core.NewVec3(4, 6, 4), core.NewVec3(0.8, 0.8, 0.8)),
		lights.NewPointLight(core.NewVec3(-5, 3, -2), core.NewVec3(0.3, 0.3, 0.35)),
	)

	return s, nil
}
