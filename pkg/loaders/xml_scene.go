package loaders

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidSceneFile is returned for scene files that are well-formed XML but
// miss required elements or carry unusable values
var ErrInvalidSceneFile = errors.New("invalid scene file")

type xmlScene struct {
	XMLName    xml.Name    `xml:"scene"`
	OutputFile string      `xml:"output_file,attr"`
	Background *xmlColor   `xml:"background_color"`
	Camera     *xmlCamera  `xml:"camera"`
	Lights     xmlLights   `xml:"lights"`
	Surfaces   xmlSurfaces `xml:"surfaces"`
	Samples    *xmlCount   `xml:"samples"`
}

type xmlVec3 struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

type xmlColor struct {
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
}

type xmlCount struct {
	N int `xml:"n,attr"`
}

type xmlAngle struct {
	Theta float64 `xml:"theta,attr"`
}

type xmlCamera struct {
	Position   *xmlVec3 `xml:"position"`
	LookAt     *xmlVec3 `xml:"lookat"`
	Up         *xmlVec3 `xml:"up"`
	Fov        *struct {
		Angle float64 `xml:"angle,attr"`
	} `xml:"horizontal_fov"`
	Resolution *struct {
		Horizontal int `xml:"horizontal,attr"`
		Vertical   int `xml:"vertical,attr"`
	} `xml:"resolution"`
	MaxBounces *xmlCount `xml:"max_bounces"`
}

type xmlLights struct {
	Ambient  []xmlLight `xml:"ambient_light"`
	Point    []xmlLight `xml:"point_light"`
	Parallel []xmlLight `xml:"parallel_light"`
	Spot     []xmlLight `xml:"spot_light"`
}

type xmlLight struct {
	Color     *xmlColor `xml:"color"`
	Position  *xmlVec3  `xml:"position"`
	Direction *xmlVec3  `xml:"direction"`
	Falloff   *struct {
		Alpha1 float64 `xml:"alpha1,attr"`
		Alpha2 float64 `xml:"alpha2,attr"`
	} `xml:"falloff"`
}

type xmlSurfaces struct {
	Spheres   []xmlSphere   `xml:"sphere"`
	Meshes    []xmlMesh     `xml:"mesh"`
	Planes    []xmlPlane    `xml:"plane"`
	Triangles []xmlTriangle `xml:"triangle"`
}

// xmlSurface holds the children every surface element may carry
type xmlSurface struct {
	Solid     *xmlMaterial  `xml:"material_solid"`
	Textured  *xmlMaterial  `xml:"material_textured"`
	Transform *xmlTransform `xml:"transform"`
}

type xmlSphere struct {
	xmlSurface
	Radius   float64  `xml:"radius,attr"`
	Position *xmlVec3 `xml:"position"`
}

type xmlMesh struct {
	xmlSurface
	Name string `xml:"name,attr"`
}

type xmlPlane struct {
	xmlSurface
	Position *xmlVec3 `xml:"position"`
	Normal   *xmlVec3 `xml:"normal"`
}

type xmlTriangle struct {
	xmlSurface
	Vertices []xmlVec3 `xml:"vertex"`
}

type xmlMaterial struct {
	Color   *xmlColor `xml:"color"`
	Texture *struct {
		Name string `xml:"name,attr"`
	} `xml:"texture"`
	Phong *struct {
		Ka       float64 `xml:"ka,attr"`
		Kd       float64 `xml:"kd,attr"`
		Ks       float64 `xml:"ks,attr"`
		Exponent float64 `xml:"exponent,attr"`
	} `xml:"phong"`
	Reflectance *struct {
		R float64 `xml:"r,attr"`
	} `xml:"reflectance"`
	Transmittance *struct {
		T float64 `xml:"t,attr"`
	} `xml:"transmittance"`
	Refraction *struct {
		Iof float64 `xml:"iof,attr"`
	} `xml:"refraction"`
}

type xmlTransform struct {
	Translate *xmlVec3  `xml:"translate"`
	Scale     *xmlVec3  `xml:"scale"`
	RotateX   *xmlAngle `xml:"rotateX"`
	RotateY   *xmlAngle `xml:"rotateY"`
	RotateZ   *xmlAngle `xml:"rotateZ"`
}

func (v xmlVec3) vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func (c xmlColor) vec3() core.Vec3 {
	return core.NewVec3(c.R, c.G, c.B)
}

// sceneBuilder resolves external files relative to the scene file and
// loads each one only once
type sceneBuilder struct {
	baseDir  string
	meshes   map[string]*MeshData
	textures map[string]*material.ImageTexture
}

// LoadSceneXML loads a scene description file. Mesh and texture files are
// resolved relative to the directory of the scene file.
func LoadSceneXML(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseSceneXML(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseSceneXML reads a scene description. Relative mesh and texture names are
// resolved against baseDir.
func ParseSceneXML(r io.Reader, baseDir string) (*scene.Scene, error) {
	var doc xmlScene
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene XML: %w", err)
	}

	cameraConfig, maxDepth, err := doc.Camera.config()
	if err != nil {
		return nil, err
	}
	s, err := scene.NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}

	s.OutputFile = doc.OutputFile
	if doc.Background != nil {
		s.Background = doc.Background.vec3()
	}
	if maxDepth >= 0 {
		s.SamplingConfig.MaxDepth = maxDepth
	}
	if doc.Samples != nil {
		if doc.Samples.N < 1 {
			return nil, fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidSceneFile, doc.Samples.N)
		}
		s.SamplingConfig.SamplesPerPixel = doc.Samples.N
	}

	if err := doc.Lights.addTo(s); err != nil {
		return nil, err
	}

	builder := &sceneBuilder{
		baseDir:  baseDir,
		meshes:   make(map[string]*MeshData),
		textures: make(map[string]*material.ImageTexture),
	}
	if err := builder.addSurfaces(s, doc.Surfaces); err != nil {
		return nil, err
	}

	return s, nil
}

// config converts the camera element. Its angle is the half-angle of the view
// frustum measured from the view direction to the top edge of the image.
func (c *xmlCamera) config() (geometry.CameraConfig, int, error) {
	if c == nil {
		return geometry.CameraConfig{}, 0, fmt.Errorf("%w: no camera element", scene.ErrMissingCamera)
	}
	if c.Position == nil || c.LookAt == nil || c.Up == nil || c.Fov == nil || c.Resolution == nil {
		return geometry.CameraConfig{}, 0, fmt.Errorf("%w: camera needs position, lookat, up, horizontal_fov and resolution",
			scene.ErrMissingCamera)
	}

	config := geometry.CameraConfig{
		Center: c.Position.vec3(),
		LookAt: c.LookAt.vec3(),
		Up:     c.Up.vec3(),
		VFov:   2 * c.Fov.Angle,
		Width:  c.Resolution.Horizontal,
		Height: c.Resolution.Vertical,
	}

	maxDepth := -1 // keep the scene default
	if c.MaxBounces != nil {
		if c.MaxBounces.N < 0 {
			return geometry.CameraConfig{}, 0, fmt.Errorf("%w: max_bounces must not be negative, got %d",
				ErrInvalidSceneFile, c.MaxBounces.N)
		}
		maxDepth = c.MaxBounces.N
	}
	return config, maxDepth, nil
}

// addTo adds the lights to the scene; ambient lights add up into the scene ambient color
func (l xmlLights) addTo(s *scene.Scene) error {
	for _, light := range l.Ambient {
		if light.Color == nil {
			return fmt.Errorf("%w: ambient_light needs a color", ErrInvalidSceneFile)
		}
		s.Ambient = s.Ambient.Add(light.Color.vec3())
	}
	for _, light := range l.Point {
		if light.Color == nil || light.Position == nil {
			return fmt.Errorf("%w: point_light needs color and position", ErrInvalidSceneFile)
		}
		s.AddLight(lights.NewPointLight(light.Position.vec3(), light.Color.vec3()))
	}
	for _, light := range l.Parallel {
		if light.Color == nil || light.Direction == nil {
			return fmt.Errorf("%w: parallel_light needs color and direction", ErrInvalidSceneFile)
		}
		s.AddLight(lights.NewDirectionalLight(light.Direction.vec3(), light.Color.vec3()))
	}
	for _, light := range l.Spot {
		if light.Color == nil || light.Position == nil || light.Direction == nil || light.Falloff == nil {
			return fmt.Errorf("%w: spot_light needs color, position, direction and falloff", ErrInvalidSceneFile)
		}
		s.AddLight(lights.NewSpotLight(light.Position.vec3(), light.Direction.vec3(), light.Color.vec3(),
			light.Falloff.Alpha1, light.Falloff.Alpha2))
	}
	return nil
}

func (b *sceneBuilder) addSurfaces(s *scene.Scene, surfaces xmlSurfaces) error {
	for i, sphere := range surfaces.Spheres {
		if sphere.Position == nil {
			return fmt.Errorf("%w: sphere %d has no position", ErrInvalidSceneFile, i)
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("%w: sphere %d radius must be positive, got %v", ErrInvalidSceneFile, i, sphere.Radius)
		}
		mat, err := b.material(sphere.xmlSurface)
		if err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddShape(sphere.transformed(geometry.NewSphere(sphere.Position.vec3(), sphere.Radius, mat)))
	}

	for i, mesh := range surfaces.Meshes {
		mat, err := b.material(mesh.xmlSurface)
		if err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
		data, err := b.mesh(mesh.Name)
		if err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
		triangles, err := data.ToTriangleMesh(mat)
		if err != nil {
			return fmt.Errorf("mesh %d (%s): %w", i, mesh.Name, err)
		}
		s.AddShape(mesh.transformed(triangles))
	}

	for i, plane := range surfaces.Planes {
		if plane.Position == nil || plane.Normal == nil {
			return fmt.Errorf("%w: plane %d needs position and normal", ErrInvalidSceneFile, i)
		}
		mat, err := b.material(plane.xmlSurface)
		if err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
		s.AddShape(plane.transformed(geometry.NewPlane(plane.Position.vec3(), plane.Normal.vec3(), mat)))
	}

	for i, triangle := range surfaces.Triangles {
		if len(triangle.Vertices) != 3 {
			return fmt.Errorf("%w: triangle %d needs 3 vertices, got %d", ErrInvalidSceneFile, i, len(triangle.Vertices))
		}
		mat, err := b.material(triangle.xmlSurface)
		if err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
		v := triangle.Vertices
		s.AddShape(triangle.transformed(geometry.NewTriangle(v[0].vec3(), v[1].vec3(), v[2].vec3(), mat)))
	}

	return nil
}

// transformed wraps shape in the surface's transform, if it has one
func (sf xmlSurface) transformed(shape geometry.Shape) geometry.Shape {
	if sf.Transform == nil {
		return shape
	}
	t := sf.Transform

	translation := core.Vec3{}
	if t.Translate != nil {
		translation = t.Translate.vec3()
	}
	scale := core.NewVec3(1, 1, 1)
	if t.Scale != nil {
		scale = t.Scale.vec3()
	}
	var rotation core.Vec3
	if t.RotateX != nil {
		rotation.X = t.RotateX.Theta
	}
	if t.RotateY != nil {
		rotation.Y = t.RotateY.Theta
	}
	if t.RotateZ != nil {
		rotation.Z = t.RotateZ.Theta
	}

	return geometry.NewTransformed(shape, core.NewTransform(translation, scale, rotation))
}

// material builds the surface material from material_solid or material_textured
func (b *sceneBuilder) material(sf xmlSurface) (*material.Material, error) {
	m := sf.Solid
	textured := false
	if m == nil {
		m = sf.Textured
		textured = true
	}
	if m == nil {
		return nil, fmt.Errorf("%w: surface has no material_solid or material_textured", ErrInvalidSceneFile)
	}
	if m.Phong == nil {
		return nil, fmt.Errorf("%w: material has no phong element", ErrInvalidSceneFile)
	}

	var color material.ColorSource
	switch {
	case textured:
		if m.Texture == nil || m.Texture.Name == "" {
			return nil, fmt.Errorf("%w: material_textured needs a texture name", ErrInvalidSceneFile)
		}
		texture, err := b.texture(m.Texture.Name)
		if err != nil {
			return nil, err
		}
		color = texture
	case m.Color != nil:
		color = material.NewSolidColor(m.Color.vec3())
	default:
		return nil, fmt.Errorf("%w: material_solid needs a color", ErrInvalidSceneFile)
	}

	mat := material.NewTexturedPhong(color, m.Phong.Ka, m.Phong.Kd, m.Phong.Ks, m.Phong.Exponent)
	if m.Reflectance != nil {
		mat.Reflectivity = m.Reflectance.R
	}
	if m.Transmittance != nil {
		mat.Transparency = m.Transmittance.T
	}
	if m.Refraction != nil {
		mat.RefractiveIndex = m.Refraction.Iof
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneFile, err)
	}
	return mat, nil
}

func (b *sceneBuilder) mesh(name string) (*MeshData, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: mesh has no name", ErrInvalidSceneFile)
	}
	if data, ok := b.meshes[name]; ok {
		return data, nil
	}
	data, err := LoadMesh(b.resolve(name))
	if err != nil {
		return nil, err
	}
	b.meshes[name] = data
	return data, nil
}

func (b *sceneBuilder) texture(name string) (*material.ImageTexture, error) {
	if texture, ok := b.textures[name]; ok {
		return texture, nil
	}
	texture, err := LoadTexture(b.resolve(name))
	if err != nil {
		return nil, err
	}
	b.textures[name] = texture
	return texture, nil
}

func (b *sceneBuilder) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.baseDir, name)
}
