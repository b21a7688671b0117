package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// determinantTolerance rejects rays lying in the triangle's plane
const determinantTolerance = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3          // The three vertices
	Material   *material.Material // Material of the triangle

	// Optional per-vertex data; nil means flat shading and barycentric UVs
	Normals *[3]core.Vec3
	UVs     *[3]core.Vec2

	normal     core.Vec3 // Cached geometric normal, zero when degenerate
	edge1      core.Vec3
	edge2      core.Vec3
	bbox       core.AABB
	degenerate bool
}

// NewTriangle creates a new triangle from three vertices.
// The geometric normal follows the counter-clockwise winding V0, V1, V2.
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}

	t.edge1 = v1.Subtract(v0)
	t.edge2 = v2.Subtract(v0)
	t.normal = t.edge1.Cross(t.edge2).Normalize()
	t.degenerate = t.normal.IsZero()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// NewSmoothTriangle creates a triangle whose shading normal is interpolated from vertex normals
func NewSmoothTriangle(v0, v1, v2 core.Vec3, normals [3]core.Vec3, mat *material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	t.Normals = &normals
	return t
}

// WithUVs attaches per-vertex texture coordinates and returns the triangle
func (t *Triangle) WithUVs(uvs [3]core.Vec2) *Triangle {
	t.UVs = &uvs
	return t
}

// IsDegenerate reports whether the triangle has zero area
func (t *Triangle) IsDegenerate() bool {
	return t.degenerate
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray) (*HitRecord, bool) {
	if t.degenerate || ray.IsDegenerate() {
		return nil, false
	}

	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -determinantTolerance && a < determinantTolerance {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * t.edge2.Dot(q)
	if !ray.Contains(tHit) {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
		Shape:    t,
	}

	w := 1 - u - v
	outward := t.normal
	if t.Normals != nil {
		n := t.Normals[0].Multiply(w).Add(t.Normals[1].Multiply(u)).Add(t.Normals[2].Multiply(v)).Normalize()
		if !n.IsZero() {
			outward = n
		}
	}
	hitRecord.SetFaceNormal(ray, outward)

	if t.UVs != nil {
		hitRecord.UV = core.NewVec2(
			w*t.UVs[0].X+u*t.UVs[1].X+v*t.UVs[2].X,
			w*t.UVs[0].Y+u*t.UVs[1].Y+v*t.UVs[2].Y,
		)
	} else {
		hitRecord.UV = core.NewVec2(u, v)
	}

	return hitRecord, true
}

// NormalAt returns the geometric normal of the triangle
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() *material.Material {
	return t.Material
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
