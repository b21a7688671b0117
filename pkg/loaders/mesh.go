package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// degenerateAreaTolerance is the squared cross-product length below which a face has no area
const degenerateAreaTolerance = 1e-20

// MeshData contains indexed triangle data read from a mesh file
type MeshData struct {
	Vertices  []core.Vec3 // Vertex positions
	Faces     []int       // Triangle indices (3 per triangle)
	Normals   []core.Vec3 // Per-vertex normals - empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates - empty if not present

	SkippedFaces int // Faces dropped because they had no area
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// ToTriangleMesh builds a renderable mesh with the given material
func (m *MeshData) ToTriangleMesh(mat *material.Material) (*geometry.TriangleMesh, error) {
	var options *geometry.TriangleMeshOptions
	if len(m.Normals) > 0 || len(m.TexCoords) > 0 {
		options = &geometry.TriangleMeshOptions{}
		if len(m.Normals) > 0 {
			options.Normals = m.Normals
		}
		if len(m.TexCoords) > 0 {
			options.UVs = m.TexCoords
		}
	}
	return geometry.NewTriangleMesh(m.Vertices, m.Faces, mat, options)
}

// LoadMesh loads an OBJ or PLY file, chosen by file extension
func LoadMesh(filename string) (*MeshData, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		return LoadOBJ(filename)
	case ".ply":
		return LoadPLY(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: %s", ext, filename)
	}
}

// appendTriangleFan splits a convex polygon into triangles sharing its first corner.
// Triangles without area are counted in skipped instead of being appended.
func appendTriangleFan(faces []int, polygon []int, vertices []core.Vec3) (result []int, skipped int) {
	for i := 1; i+1 < len(polygon); i++ {
		a, b, c := polygon[0], polygon[i], polygon[i+1]
		if isDegenerateFace(vertices[a], vertices[b], vertices[c]) {
			skipped++
			continue
		}
		faces = append(faces, a, b, c)
	}
	return faces, skipped
}

// isDegenerateFace reports whether the triangle abc has (numerically) zero area
func isDegenerateFace(a, b, c core.Vec3) bool {
	pa, pb, pc := toR3(a), toR3(b), toR3(c)
	normal := r3.Cross(r3.Sub(pb, pa), r3.Sub(pc, pa))
	return r3.Norm2(normal) < degenerateAreaTolerance
}

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
