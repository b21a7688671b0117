package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh represents a collection of triangles sharing one material.
// Rays that miss the mesh bounds skip the per-triangle tests entirely.
type TriangleMesh struct {
	triangles []*Triangle
	bbox      core.AABB
	material  *material.Material
}

// TriangleMeshOptions contains optional per-vertex data for triangle mesh creation
type TriangleMeshOptions struct {
	Normals []core.Vec3 // Optional vertex normals, one per vertex
	UVs     []core.Vec2 // Optional texture coordinates, one per vertex
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle. Zero-area faces are dropped.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			return nil, fmt.Errorf("got %d normals for %d vertices", len(options.Normals), len(vertices))
		}
		if options.UVs != nil && len(options.UVs) != len(vertices) {
			return nil, fmt.Errorf("got %d texture coordinates for %d vertices", len(options.UVs), len(vertices))
		}
	}

	mesh := &TriangleMesh{material: mat}
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i/3, idx, len(vertices))
			}
		}

		var triangle *Triangle
		if options != nil && options.Normals != nil {
			triangle = NewSmoothTriangle(vertices[i0], vertices[i1], vertices[i2],
				[3]core.Vec3{options.Normals[i0], options.Normals[i1], options.Normals[i2]}, mat)
		} else {
			triangle = NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		}
		if triangle.IsDegenerate() {
			continue
		}
		if options != nil && options.UVs != nil {
			triangle.WithUVs([3]core.Vec2{options.UVs[i0], options.UVs[i1], options.UVs[i2]})
		}

		if len(mesh.triangles) == 0 {
			mesh.bbox = triangle.BoundingBox()
		} else {
			mesh.bbox = mesh.bbox.Union(triangle.BoundingBox())
		}
		mesh.triangles = append(mesh.triangles, triangle)
	}

	return mesh, nil
}

// Hit returns the nearest triangle hit along the ray
func (tm *TriangleMesh) Hit(ray core.Ray) (*HitRecord, bool) {
	if len(tm.triangles) == 0 || !tm.bbox.Hit(ray) {
		return nil, false
	}

	var closest *HitRecord
	for _, triangle := range tm.triangles {
		if hit, ok := triangle.Hit(ray); ok {
			closest = hit
			ray.TMax = hit.T
		}
	}
	if closest == nil {
		return nil, false
	}
	closest.Shape = tm
	return closest, true
}

// NormalAt returns the normal of the triangle containing the point, or the zero vector
func (tm *TriangleMesh) NormalAt(point core.Vec3) core.Vec3 {
	for _, triangle := range tm.triangles {
		if containsPoint(triangle, point) {
			return triangle.NormalAt(point)
		}
	}
	return core.Vec3{}
}

// containsPoint reports whether point lies on the triangle, within Epsilon of its plane
func containsPoint(t *Triangle, point core.Vec3) bool {
	rel := point.Subtract(t.V0)
	if abs(rel.Dot(t.normal)) > core.Epsilon {
		return false
	}
	// Barycentric coordinates via the triangle's edge vectors
	d00 := t.edge1.Dot(t.edge1)
	d01 := t.edge1.Dot(t.edge2)
	d11 := t.edge2.Dot(t.edge2)
	d20 := rel.Dot(t.edge1)
	d21 := rel.Dot(t.edge2)
	denom := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return v >= -core.Epsilon && w >= -core.Epsilon && v+w <= 1+core.Epsilon
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// GetMaterial returns the material shared by every triangle
func (tm *TriangleMesh) GetMaterial() *material.Material {
	return tm.material
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}
