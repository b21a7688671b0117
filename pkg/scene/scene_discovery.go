package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned for a built-in scene name that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a built-in scene, optionally overriding parts of its camera
type Builder func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	Build       Builder
}

var builtinScenes = map[string]SceneInfo{
	"default": {
		Name:        "default",
		Description: "Diffuse, mirror and glass spheres on a checkered floor",
		Build:       NewDefaultScene,
	},
	"simple-sphere": {
		Name:        "simple-sphere",
		Description: "Unit sphere lit by a single point light",
		Build:       NewSimpleSphereScene,
	},
	"ambient": {
		Name:        "ambient",
		Description: "Diffuse sphere lit by ambient light only",
		Build:       NewAmbientOnlyScene,
	},
	"mirrors": {
		Name:        "mirrors",
		Description: "Matte sphere between two parallel mirrors",
		Build:       NewMirrorsScene,
	},
	"trianglemesh": {
		Name:        "trianglemesh",
		Description: "Pyramid mesh, textured floor and transformed ellipsoid",
		Build:       NewTriangleMeshScene,
	},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, info := range builtinScenes {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// NewBuiltinScene builds the named built-in scene
func NewBuiltinScene(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	info, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return info.Build(cameraOverrides...)
}
